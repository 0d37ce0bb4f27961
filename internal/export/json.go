package export

import (
	"encoding/json"
	"io"
)

// JSONExporter exports transcripts in indented JSON format.
type JSONExporter struct{}

// Export exports a transcript to JSON format.
func (e *JSONExporter) Export(t *Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// Extension returns the file extension for this format.
func (e *JSONExporter) Extension() string {
	return "json"
}

// Package export renders conversation transcripts in shareable formats.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/docqa/docchat/internal/docchat"
)

// Transcript is the unit of export: a message history plus the citations
// attached to its most recent answer.
type Transcript struct {
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Messages   []docchat.Message `json:"messages" yaml:"messages"`
	Citations  []string          `json:"citations,omitempty" yaml:"citations,omitempty"`
}

// Exporter defines the interface for all export formats.
type Exporter interface {
	Export(t *Transcript, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, md)", format)
	}
}

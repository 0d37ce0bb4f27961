package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/docqa/docchat/internal/docchat"
)

// MarkdownExporter exports transcripts in Markdown format.
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format.
func (e *MarkdownExporter) Export(t *Transcript, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# Conversation\n\n")
	_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", t.ExportedAt.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(t.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range t.Messages {
		timestamp := ""
		if !msg.Timestamp.IsZero() {
			timestamp = fmt.Sprintf(" (%s)", msg.Timestamp.Format("2006-01-02 15:04:05"))
		}

		_, _ = fmt.Fprintf(w, "**%s:**%s\n\n%s\n\n", roleLabel(msg.Role), timestamp, escapeMarkdown(msg.Content))

		if i < len(t.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	if len(t.Citations) > 0 {
		_, _ = fmt.Fprintf(w, "---\n\n## Citations\n\n")
		for _, c := range t.Citations {
			_, _ = fmt.Fprintf(w, "- %s\n", c)
		}
	}

	return nil
}

func roleLabel(role string) string {
	switch role {
	case docchat.RoleUser:
		return "You"
	case docchat.RoleAssistant:
		return "Assistant"
	case docchat.RoleError:
		return "Error"
	default:
		return role
	}
}

// escapeMarkdown escapes emphasis markers outside code blocks.
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format.
func (e *MarkdownExporter) Extension() string {
	return "md"
}

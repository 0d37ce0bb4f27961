package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/docqa/docchat/internal/docchat"
)

func sampleTranscript() *Transcript {
	return &Transcript{
		ExportedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		Messages: []docchat.Message{
			{Role: docchat.RoleUser, Content: "what is the refund policy?"},
			{Role: docchat.RoleAssistant, Content: "Refunds are **possible** within 30 days."},
		},
		Citations: []string{"policy.pdf p.2"},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format    string
		wantExt   string
		wantError bool
	}{
		{format: "json", wantExt: "json"},
		{format: "yaml", wantExt: "yaml"},
		{format: "md", wantExt: "md"},
		{format: "markdown", wantExt: "md"},
		{format: "xml", wantError: true},
		{format: "", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			e, err := NewExporter(tt.format)
			if (err != nil) != tt.wantError {
				t.Fatalf("NewExporter(%q) error = %v, wantError %v", tt.format, err, tt.wantError)
			}
			if err != nil {
				return
			}
			if e.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", e.Extension(), tt.wantExt)
			}
		})
	}
}

func TestJSONExportRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var decoded Transcript
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if len(decoded.Messages) != 2 {
		t.Fatalf("decoded %d messages, want 2", len(decoded.Messages))
	}
	if decoded.Messages[0].Content != "what is the refund policy?" {
		t.Errorf("decoded content = %q", decoded.Messages[0].Content)
	}
	if len(decoded.Citations) != 1 {
		t.Errorf("decoded citations = %v", decoded.Citations)
	}
}

func TestYAMLExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "what is the refund policy?") {
		t.Errorf("YAML output missing message content:\n%s", out)
	}
	if !strings.Contains(out, "policy.pdf p.2") {
		t.Errorf("YAML output missing citation:\n%s", out)
	}
}

func TestMarkdownExport(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(sampleTranscript(), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "**You:**") {
		t.Errorf("markdown output missing user label:\n%s", out)
	}
	if !strings.Contains(out, "**Assistant:**") {
		t.Errorf("markdown output missing assistant label:\n%s", out)
	}
	// Emphasis in message content is escaped.
	if !strings.Contains(out, `\*\*possible\*\*`) {
		t.Errorf("markdown output did not escape emphasis:\n%s", out)
	}
	if !strings.Contains(out, "- policy.pdf p.2") {
		t.Errorf("markdown output missing citations section:\n%s", out)
	}
}

func TestMarkdownExportPreservesCodeBlocks(t *testing.T) {
	transcript := &Transcript{
		ExportedAt: time.Now(),
		Messages: []docchat.Message{
			{Role: docchat.RoleAssistant, Content: "```\n**raw**\n```"},
		},
	}

	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(transcript, &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), "**raw**") {
		t.Errorf("content inside code block was escaped:\n%s", buf.String())
	}
}

package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docqa/docchat/internal/docchat"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		history []docchat.Message
	}{
		{
			name: "plain ascii",
			history: []docchat.Message{
				{Role: docchat.RoleUser, Content: "hello"},
				{Role: docchat.RoleAssistant, Content: "hi there"},
			},
		},
		{
			name: "multibyte content",
			history: []docchat.Message{
				{Role: docchat.RoleUser, Content: "こんにちは 🙂"},
				{Role: docchat.RoleAssistant, Content: "Привет, мир! émojis: 🎉🚀"},
				{Role: docchat.RoleError, Content: "ошибка — σφάλμα"},
			},
		},
		{
			name: "content that breaks naive storage",
			history: []docchat.Message{
				{Role: docchat.RoleUser, Content: "quotes \" and \\ backslashes\nand newlines"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(t.TempDir())

			if err := store.Save(tt.history); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			loaded := store.Load()
			if len(loaded) != len(tt.history) {
				t.Fatalf("Load() returned %d messages, want %d", len(loaded), len(tt.history))
			}
			for i := range loaded {
				if loaded[i].Role != tt.history[i].Role {
					t.Errorf("message %d role = %q, want %q", i, loaded[i].Role, tt.history[i].Role)
				}
				if loaded[i].Content != tt.history[i].Content {
					t.Errorf("message %d content = %q, want %q", i, loaded[i].Content, tt.history[i].Content)
				}
			}
		})
	}
}

func TestLoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewStore(t.TempDir())
	if got := store.Load(); len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}

func TestLoadInvalidJSONClearsEntry(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{{{not json"},
		{name: "not an array", data: `{"role":"user"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store := NewStore(dir)
			if err := os.WriteFile(store.Path(), []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}

			if got := store.Load(); len(got) != 0 {
				t.Errorf("Load() = %v, want empty", got)
			}

			if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
				t.Error("corrupted history file was not cleared")
			}
		})
	}
}

func TestLoadCorruptContentGetsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	// Middle message carries content that is not valid base64.
	data, err := json.Marshal([]storedMessage{
		{Role: docchat.RoleUser, Content: "aGVsbG8="},
		{Role: docchat.RoleAssistant, Content: "!!not-base64!!"},
		{Role: docchat.RoleUser, Content: "d29ybGQ="},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), data, 0644); err != nil {
		t.Fatal(err)
	}

	loaded := store.Load()
	if len(loaded) != 3 {
		t.Fatalf("Load() returned %d messages, want 3", len(loaded))
	}
	if loaded[0].Content != "hello" {
		t.Errorf("message 0 content = %q, want %q", loaded[0].Content, "hello")
	}
	if loaded[1].Content != UnreadablePlaceholder {
		t.Errorf("message 1 content = %q, want placeholder", loaded[1].Content)
	}
	if loaded[1].Role != docchat.RoleAssistant {
		t.Errorf("message 1 role = %q, role must survive", loaded[1].Role)
	}
	if loaded[2].Content != "world" {
		t.Errorf("message 2 content = %q, want %q", loaded[2].Content, "world")
	}
}

func TestClear(t *testing.T) {
	store := NewStore(t.TempDir())

	// Clearing a missing file is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() on missing file error = %v", err)
	}

	if err := store.Save([]docchat.Message{{Role: docchat.RoleUser, Content: "x"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := store.Load(); len(got) != 0 {
		t.Errorf("Load() after Clear() = %v, want empty", got)
	}
}

func TestArchives(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	older := docchat.Archived{
		ID:         "11111111-aaaa-bbbb-cccc-000000000000",
		ArchivedAt: time.Now().Add(-time.Hour),
		Messages:   []docchat.Message{{Role: docchat.RoleUser, Content: "older ❓"}},
	}
	newer := docchat.Archived{
		ID:         "22222222-aaaa-bbbb-cccc-000000000000",
		ArchivedAt: time.Now(),
		Messages:   []docchat.Message{{Role: docchat.RoleUser, Content: "newer"}},
	}

	if err := store.SaveArchive(older); err != nil {
		t.Fatalf("SaveArchive() error = %v", err)
	}
	if err := store.SaveArchive(newer); err != nil {
		t.Fatalf("SaveArchive() error = %v", err)
	}

	// A corrupted archive file is skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "archive", "broken.json"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	archives, err := store.Archives()
	if err != nil {
		t.Fatalf("Archives() error = %v", err)
	}
	if len(archives) != 2 {
		t.Fatalf("Archives() returned %d, want 2", len(archives))
	}
	if archives[0].ID != newer.ID {
		t.Errorf("first archive = %s, want newest first", archives[0].ID)
	}
	if archives[1].Messages[0].Content != "older ❓" {
		t.Errorf("archived content = %q, want round-tripped original", archives[1].Messages[0].Content)
	}
}

func TestArchivesEmpty(t *testing.T) {
	store := NewStore(t.TempDir())
	archives, err := store.Archives()
	if err != nil {
		t.Fatalf("Archives() error = %v", err)
	}
	if len(archives) != 0 {
		t.Errorf("Archives() = %v, want empty", archives)
	}
}

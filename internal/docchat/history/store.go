// Package history persists conversation transcripts to the state
// directory. Message bodies are base64-encoded over their UTF-8 bytes so
// any text, including emoji and non-Latin scripts, round-trips exactly.
package history

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/docqa/docchat/internal/docchat"
	"github.com/docqa/docchat/internal/logging"
)

const (
	fileName   = "chatHistory.json"
	archiveDir = "archive"

	// UnreadablePlaceholder replaces the content of a persisted message
	// whose encoding cannot be decoded.
	UnreadablePlaceholder = "[unreadable message]"
)

// storedMessage is the on-disk form of a message. Content holds the
// base64-encoded body.
type storedMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Store reads and writes transcripts under a fixed file in dir.
type Store struct {
	dir string
}

// NewStore creates a store rooted at stateDir.
func NewStore(stateDir string) *Store {
	return &Store{dir: stateDir}
}

// Path returns the location of the active transcript file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Save serializes the transcript and writes it to the history file.
// A nil or empty history writes an empty array.
func (s *Store) Save(history []docchat.Message) error {
	stored := make([]storedMessage, 0, len(history))
	for _, msg := range history {
		stored = append(stored, storedMessage{
			Role:      msg.Role,
			Content:   base64.StdEncoding.EncodeToString([]byte(msg.Content)),
			Timestamp: msg.Timestamp,
		})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("serializing chat history: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("writing chat history: %w", err)
	}
	return nil
}

// Load reads the persisted transcript. It never fails: a missing file
// yields an empty history, a structurally invalid file is cleared and
// yields an empty history, and a message whose content cannot be decoded
// is kept with UnreadablePlaceholder as its content.
func (s *Store) Load() []docchat.Message {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warnf("reading chat history: %v", err)
		}
		return nil
	}

	var stored []storedMessage
	if err := json.Unmarshal(data, &stored); err != nil {
		logging.Errorf("chat history is corrupted, clearing it: %v", err)
		if err := s.Clear(); err != nil {
			logging.Warnf("clearing corrupted chat history: %v", err)
		}
		return nil
	}

	history := make([]docchat.Message, 0, len(stored))
	for i, msg := range stored {
		content, err := decodeContent(msg.Content)
		if err != nil {
			logging.Errorf("decoding message %d content: %v", i, err)
			content = UnreadablePlaceholder
		}
		history = append(history, docchat.Message{
			Role:      msg.Role,
			Content:   content,
			Timestamp: msg.Timestamp,
		})
	}
	if len(history) == 0 {
		return nil
	}
	return history
}

// Clear removes the persisted transcript. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.Path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing chat history: %w", err)
	}
	return nil
}

// SaveArchive writes an archived conversation to its own file under the
// archive directory, using the same content encoding as the active
// transcript.
func (s *Store) SaveArchive(a docchat.Archived) error {
	stored := struct {
		ID         string          `json:"id"`
		ArchivedAt time.Time       `json:"archived_at"`
		Messages   []storedMessage `json:"messages"`
	}{
		ID:         a.ID,
		ArchivedAt: a.ArchivedAt,
	}
	for _, msg := range a.Messages {
		stored.Messages = append(stored.Messages, storedMessage{
			Role:      msg.Role,
			Content:   base64.StdEncoding.EncodeToString([]byte(msg.Content)),
			Timestamp: msg.Timestamp,
		})
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing archive: %w", err)
	}

	dir := filepath.Join(s.dir, archiveDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, a.ID+".json"), data, 0644); err != nil {
		return fmt.Errorf("writing archive: %w", err)
	}
	return nil
}

// Archives returns all archived conversations, newest first. Corrupted
// archive files are skipped with a log entry.
func (s *Store) Archives() ([]docchat.Archived, error) {
	dir := filepath.Join(s.dir, archiveDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading archive directory: %w", err)
	}

	var archives []docchat.Archived
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		a, err := s.loadArchive(filepath.Join(dir, entry.Name()))
		if err != nil {
			logging.Warnf("skipping archive %s: %v", entry.Name(), err)
			continue
		}
		archives = append(archives, a)
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].ArchivedAt.After(archives[j].ArchivedAt)
	})
	return archives, nil
}

func (s *Store) loadArchive(path string) (docchat.Archived, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return docchat.Archived{}, fmt.Errorf("reading archive: %w", err)
	}

	var stored struct {
		ID         string          `json:"id"`
		ArchivedAt time.Time       `json:"archived_at"`
		Messages   []storedMessage `json:"messages"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return docchat.Archived{}, fmt.Errorf("parsing archive: %w", err)
	}

	a := docchat.Archived{ID: stored.ID, ArchivedAt: stored.ArchivedAt}
	for i, msg := range stored.Messages {
		content, err := decodeContent(msg.Content)
		if err != nil {
			logging.Errorf("decoding archived message %d content: %v", i, err)
			content = UnreadablePlaceholder
		}
		a.Messages = append(a.Messages, docchat.Message{
			Role:      msg.Role,
			Content:   content,
			Timestamp: msg.Timestamp,
		})
	}
	return a, nil
}

func decodeContent(encoded string) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

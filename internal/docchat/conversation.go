package docchat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docqa/docchat/internal/api"
	"github.com/docqa/docchat/internal/docchat/session"
	"github.com/docqa/docchat/internal/logging"
)

const (
	// DefaultFallbackResponse is used when the service returns an empty
	// answer for a question.
	DefaultFallbackResponse = "No response from bot."

	// DefaultErrorMessage is appended to the transcript when a send fails
	// and the server supplied no message of its own.
	DefaultErrorMessage = "An unexpected error occurred."

	// DefaultSuggestDebounce is the delay applied by ScheduleSuggestions
	// before a suggestion lookup is actually issued.
	DefaultSuggestDebounce = 300 * time.Millisecond
)

// HistoryStore persists the active transcript. history.Store implements it.
type HistoryStore interface {
	Save(history []Message) error
	Load() []Message
}

// ArchiveStore persists snapshots of finished conversations. Stores that
// also implement it receive a copy of the transcript on StartNewChat.
type ArchiveStore interface {
	SaveArchive(a Archived) error
}

// Options configures a Conversation.
type Options struct {
	// FallbackResponse replaces an empty answer from the service.
	// Empty means DefaultFallbackResponse.
	FallbackResponse string

	// SuggestDebounce is the delay used by ScheduleSuggestions.
	// Zero means DefaultSuggestDebounce.
	SuggestDebounce time.Duration
}

// Conversation owns the active transcript and orchestrates calls to the
// Q&A service. Sends are serialized by the pending guard: a second
// SendMessage while one is in flight is a no-op, not queued. Suggestion
// lookups are not gated by that guard and may run concurrently.
type Conversation struct {
	client   *api.Client
	sessions *session.Manager
	store    HistoryStore

	fallback        string
	suggestDebounce time.Duration

	mu           sync.Mutex
	history      []Message
	citations    []string
	suggestions  []string
	pending      bool
	lastError    string
	input        string
	archive      []Archived
	suggestTimer *time.Timer
}

// New creates a conversation backed by the given client, session manager
// and history store. The store may be nil, in which case nothing is
// persisted.
func New(client *api.Client, sessions *session.Manager, store HistoryStore, opts Options) *Conversation {
	fallback := opts.FallbackResponse
	if fallback == "" {
		fallback = DefaultFallbackResponse
	}
	debounce := opts.SuggestDebounce
	if debounce <= 0 {
		debounce = DefaultSuggestDebounce
	}
	return &Conversation{
		client:          client,
		sessions:        sessions,
		store:           store,
		fallback:        fallback,
		suggestDebounce: debounce,
	}
}

// Restore loads the persisted transcript into the active conversation.
// Intended to run once at startup, before any send.
func (c *Conversation) Restore() {
	if c.store == nil {
		return
	}
	loaded := c.store.Load()
	c.mu.Lock()
	c.history = loaded
	c.mu.Unlock()
}

// SendMessage sends text to the service and reports whether the send was
// accepted. Empty (after trimming) text and sends issued while another is
// in flight are no-ops.
//
// The user message is appended before the network call and is never rolled
// back; the call settles by appending exactly one further message, either
// the assistant's answer or an error entry. The conversation always
// returns to idle and the input buffer is always cleared.
func (c *Conversation) SendMessage(text string) bool {
	trimmed := strings.TrimSpace(text)

	c.mu.Lock()
	if trimmed == "" || c.pending {
		c.mu.Unlock()
		return false
	}
	c.pending = true
	c.history = append(c.history, Message{Role: RoleUser, Content: trimmed, Timestamp: time.Now()})
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.pending = false
		c.input = ""
		c.mu.Unlock()
	}()

	resp, err := c.client.Ask(c.sessions.Current(), trimmed)

	c.mu.Lock()
	if err != nil {
		msg := extractErrorMessage(err)
		c.lastError = msg
		c.history = append(c.history, Message{Role: RoleError, Content: msg, Timestamp: time.Now()})
	} else {
		answer := resp.Response
		if answer == "" {
			answer = c.fallback
		}
		c.history = append(c.history, Message{Role: RoleAssistant, Content: answer, Timestamp: time.Now()})
		c.citations = append([]string(nil), resp.Citations...)
		// A response without suggestions keeps the previous ones; callers
		// wanting a clean slate go through StartNewChat.
		if len(resp.Suggestions) > 0 {
			c.suggestions = append([]string(nil), resp.Suggestions...)
		}
		c.lastError = ""
	}
	snapshot := append([]Message(nil), c.history...)
	c.mu.Unlock()

	c.persist(snapshot)
	return true
}

// FetchSuggestions looks up follow-up suggestions for partial input.
// Empty input clears the suggestions without a network call. Lookup
// failures clear the suggestions and are only logged, never surfaced as a
// chat error.
func (c *Conversation) FetchSuggestions(partial string) {
	trimmed := strings.TrimSpace(partial)
	if trimmed == "" {
		c.mu.Lock()
		c.suggestions = nil
		c.mu.Unlock()
		return
	}

	got, err := c.client.Suggest(c.sessions.Current(), trimmed)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		logging.Warnf("fetching suggestions: %v", err)
		c.suggestions = nil
		return
	}
	c.suggestions = got
}

// ScheduleSuggestions debounces FetchSuggestions for callers that react to
// every input change: only the last call within the debounce window issues
// a lookup.
func (c *Conversation) ScheduleSuggestions(partial string) {
	c.mu.Lock()
	if c.suggestTimer != nil {
		c.suggestTimer.Stop()
	}
	c.suggestTimer = time.AfterFunc(c.suggestDebounce, func() {
		c.FetchSuggestions(partial)
	})
	c.mu.Unlock()
}

// StartNewChat archives the current transcript if it is non-empty, clears
// all conversation state, and requests a fresh session identifier.
// Returns the new identifier, which is empty when the bootstrap failed.
func (c *Conversation) StartNewChat() string {
	c.mu.Lock()
	var archived *Archived
	if len(c.history) > 0 {
		a := Archived{
			ID:         uuid.New().String(),
			ArchivedAt: time.Now(),
			Messages:   c.history,
		}
		c.archive = append(c.archive, a)
		archived = &a
	}
	c.history = nil
	c.citations = nil
	c.suggestions = nil
	c.lastError = ""
	c.mu.Unlock()

	if archived != nil {
		if as, ok := c.store.(ArchiveStore); ok {
			if err := as.SaveArchive(*archived); err != nil {
				logging.Errorf("archiving conversation: %v", err)
			}
		}
	}
	c.persist(nil)

	return c.sessions.Reset()
}

// History returns a copy of the active transcript.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history...)
}

// Citations returns the citations attached to the most recent answer.
func (c *Conversation) Citations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.citations...)
}

// Suggestions returns the current follow-up suggestions.
func (c *Conversation) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.suggestions...)
}

// Pending reports whether a send is in flight.
func (c *Conversation) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// LastError returns the message of the most recent failed send, or the
// empty string after a successful send.
func (c *Conversation) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Archive returns the list of conversations archived in this process.
func (c *Conversation) Archive() []Archived {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Archived(nil), c.archive...)
}

// Input returns the current input buffer.
func (c *Conversation) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SetInput updates the input buffer. SendMessage clears it when the send
// settles.
func (c *Conversation) SetInput(text string) {
	c.mu.Lock()
	c.input = text
	c.mu.Unlock()
}

func (c *Conversation) persist(history []Message) {
	if c.store == nil {
		return
	}
	if err := c.store.Save(history); err != nil {
		logging.Errorf("saving chat history: %v", err)
	}
}

// extractErrorMessage prefers the server-supplied message over the raw
// transport error.
func extractErrorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return DefaultErrorMessage
}

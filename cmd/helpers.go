package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/docqa/docchat/internal/api"
	"github.com/docqa/docchat/internal/docchat"
	"github.com/docqa/docchat/internal/docchat/config"
	"github.com/docqa/docchat/internal/docchat/history"
	"github.com/docqa/docchat/internal/docchat/session"
)

// chatEnv bundles the wired-up components a chat-facing command needs.
type chatEnv struct {
	cfg          *config.Config
	client       *api.Client
	sessions     *session.Manager
	store        *history.Store
	conversation *docchat.Conversation
}

// buildChatEnv loads the configuration and wires the client, session
// manager, history store and conversation together.
func buildChatEnv() (*chatEnv, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	client := api.NewClient(cfg.BaseURL, cfg.Timeout())
	sessions := session.NewManager(client, cfg.StateDir)
	store := history.NewStore(cfg.StateDir)
	conversation := docchat.New(client, sessions, store, docchat.Options{
		FallbackResponse: cfg.FallbackResponse,
		SuggestDebounce:  cfg.SuggestDebounce(),
	})

	return &chatEnv{
		cfg:          cfg,
		client:       client,
		sessions:     sessions,
		store:        store,
		conversation: conversation,
	}, nil
}

// ensureSession bootstraps a session identifier when none exists yet.
// Bootstrap failures are logged by the manager; an empty identifier is
// still usable.
func (e *chatEnv) ensureSession() string {
	if id := e.sessions.Current(); id != "" {
		return id
	}
	return e.sessions.Bootstrap()
}

// showSpinner displays a spinner on stderr until done receives a value.
func showSpinner(done chan bool) {
	frames := []string{"|", "/", "-", "\\"}
	i := 0
	for {
		select {
		case <-done:
			fmt.Fprint(os.Stderr, "\r \r")
			return
		default:
			fmt.Fprintf(os.Stderr, "\r%s", frames[i%len(frames)])
			i++
			time.Sleep(100 * time.Millisecond)
		}
	}
}

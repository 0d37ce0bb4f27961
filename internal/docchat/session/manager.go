// Package session manages the opaque per-user session identifier issued by
// the Q&A service. The identifier is cached in memory and persisted to a
// file in the state directory so it survives restarts.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/docqa/docchat/internal/api"
	"github.com/docqa/docchat/internal/logging"
)

// fileName is the durable storage entry holding the session identifier.
const fileName = "user_id"

// Manager acquires and caches the session identifier. An empty identifier
// is a valid, continuable state: requests are sent with an empty User-ID
// header and the next explicit user action may bootstrap again.
type Manager struct {
	client *api.Client
	dir    string

	mu     sync.Mutex
	userID string
}

// NewManager creates a manager persisting to stateDir.
func NewManager(client *api.Client, stateDir string) *Manager {
	return &Manager{client: client, dir: stateDir}
}

// Bootstrap requests a session identifier from the service and stores it
// in memory and on disk. Failures are logged, not returned: the caller
// continues with an empty identifier. There is no automatic retry.
func (m *Manager) Bootstrap() string {
	id, err := m.client.StartSession()
	if err != nil {
		logging.Errorf("starting session: %v", err)
		return ""
	}

	m.mu.Lock()
	m.userID = id
	m.mu.Unlock()

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		logging.Errorf("creating state directory: %v", err)
		return id
	}
	if err := os.WriteFile(m.path(), []byte(id), 0600); err != nil {
		logging.Errorf("persisting session identifier: %v", err)
	}

	logging.Debugf("session started with user_id %s", id)
	return id
}

// Current returns the cached identifier, falling back to the persisted one
// when memory is empty. Returns the empty string when no session exists.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userID != "" {
		return m.userID
	}

	data, err := os.ReadFile(m.path())
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warnf("reading persisted session identifier: %v", err)
		}
		return ""
	}
	m.userID = strings.TrimSpace(string(data))
	return m.userID
}

// Reset discards the cached and persisted identifier and bootstraps a
// fresh one. Used when starting a new chat.
func (m *Manager) Reset() string {
	m.mu.Lock()
	m.userID = ""
	m.mu.Unlock()

	if err := os.Remove(m.path()); err != nil && !os.IsNotExist(err) {
		logging.Warnf("removing persisted session identifier: %v", err)
	}

	return m.Bootstrap()
}

func (m *Manager) path() string {
	return filepath.Join(m.dir, fileName)
}

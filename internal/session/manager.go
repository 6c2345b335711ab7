package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or has
// already been closed.
var ErrSessionNotFound = errors.New("session not found")

// Manager is the registry of live sessions.  It also owns the shared
// one-second ticker that drives every session's hold countdown and
// debounced view saves.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager constructs an empty manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Add registers a session.
func (m *Manager) Add(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get returns a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove unregisters a session and releases its selection so the local
// state does not outlive the view it belonged to.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.ClearSelection()
	return nil
}

// ForLayoutEvent returns every live session viewing the given
// layout+event, the audience of a seat-status push.
func (m *Manager) ForLayoutEvent(layoutID, eventID uint64) []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Session
	for _, s := range m.sessions {
		if s.LayoutID == layoutID && s.EventID == eventID {
			out = append(out, s)
		}
	}
	return out
}

// Run ticks every session once per second until the context is
// cancelled.  Intended to run in its own goroutine from main.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.RLock()
			live := make([]*Session, 0, len(m.sessions))
			for _, s := range m.sessions {
				live = append(live, s)
			}
			m.mu.RUnlock()
			for _, s := range live {
				s.Tick(ctx)
			}
		}
	}
}

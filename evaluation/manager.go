package evaluation

import (
	"context"
	"sync"

	"github.com/danielhkuo/sponsor-eval/session"
)

// Manager hands out one Session per session ID
type Manager struct {
	roster    Roster
	sender    Sender
	cache     session.Cache
	namespace func(sessionID string) string

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager. namespace maps a session ID to the cache
// namespace of its record; nil uses the ID itself.
func NewManager(r Roster, sender Sender, cache session.Cache, namespace func(string) string) *Manager {
	if namespace == nil {
		namespace = func(id string) string { return id }
	}
	return &Manager{
		roster:    r,
		sender:    sender,
		cache:     cache,
		namespace: namespace,
		sessions:  make(map[string]*Session),
	}
}

// Create registers a fresh session for a newly issued id
func (m *Manager) Create(id string) *Session {
	s := m.newSession(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[id]; ok {
		return existing
	}
	m.sessions[id] = s
	return s
}

// Get returns the session for id. An id not seen since startup is accepted
// only when the cache holds a record for it.
func (m *Manager) Get(ctx context.Context, id string) (*Session, bool) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		return s, true
	}

	s = m.newSession(id)
	if !s.Restore(ctx) {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// a concurrent Get or Create may have won
	if existing, ok := m.sessions[id]; ok {
		return existing, true
	}
	m.sessions[id] = s
	return s, true
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

func (m *Manager) newSession(id string) *Session {
	return NewSession(m.roster, m.sender, session.NewAdapter(m.cache, m.namespace(id)))
}

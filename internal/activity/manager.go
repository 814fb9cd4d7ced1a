package activity

import (
	"context"
	"sync"

	"backend-healthband/internal/location"
	"backend-healthband/internal/vitals"
)

// Manager owns at most one session per user. Concurrent sessions for the same
// user are rejected by the session itself.
type Manager struct {
	sampler location.Sampler
	feed    *vitals.Feed
	store   recordCreator

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(sampler location.Sampler, feed *vitals.Feed, store recordCreator) *Manager {
	return &Manager{
		sampler:  sampler,
		feed:     feed,
		store:    store,
		sessions: map[string]*Session{},
	}
}

func (m *Manager) Start(ctx context.Context, userID string) error {
	return m.session(userID).Start(ctx)
}

func (m *Manager) Stop(ctx context.Context, userID string) (Record, error) {
	return m.session(userID).Stop(ctx)
}

func (m *Manager) Status(userID string) Status {
	return m.session(userID).Status()
}

func (m *Manager) session(userID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := NewSession(userID, m.sampler, m.feed, m.store)
	m.sessions[userID] = s
	return s
}

// Package session keys logged-in patrons by opaque uuid tokens, so no
// interactive-loop state leaks into the engine.
package session

import (
	"fmt"
	"sync"
	"time"

	"library-backend/internal/domain"

	"github.com/google/uuid"
)

type Session struct {
	Token     string
	Patron    domain.Patron
	CreatedAt time.Time
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]Session)}
}

// Create opens a session for the patron and returns its token.
func (m *Manager) Create(patron domain.Patron) Session {
	s := Session{
		Token:     uuid.NewString(),
		Patron:    patron,
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	return s
}

// Get resolves a token to its session.
func (m *Manager) Get(token string) (Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return Session{}, fmt.Errorf("session %q: %w", token, domain.ErrNotFound)
	}
	return s, nil
}

// Delete ends a session. Deleting an unknown token is a no-op.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}

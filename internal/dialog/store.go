// Package dialog tracks the in-flight "select an event to delete"
// interaction, keyed by user identity. At most one session is open per user;
// the event snapshot is immutable once captured, so events logged while the
// dialog is open never appear in it.
package dialog

import (
	"context"
	"sync"
	"time"

	"postwriter/internal/models"
)

// Session is the pending deletion interaction for one user. Events is the
// ordered snapshot shown to the user; the 1-based reply index selects into it.
type Session struct {
	UserID   int64          `json:"user_id"`
	Events   []models.Event `json:"events"`
	OpenedAt time.Time      `json:"opened_at"`
}

// Store is the capability contract for dialog bookkeeping. Open replaces any
// session already held for the user; Close on an absent user is a no-op.
type Store interface {
	Open(ctx context.Context, session *Session) error
	Get(ctx context.Context, userID int64) (*Session, bool, error)
	Close(ctx context.Context, userID int64) error
}

// MemoryStore keeps sessions in a process-local map. One bounded entry per
// user, so an abandoned dialog is not a leak.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*Session)}
}

func (m *MemoryStore) Open(_ context.Context, session *Session) error {
	m.mu.Lock()
	m.sessions[session.UserID] = session
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(_ context.Context, userID int64) (*Session, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[userID]
	return session, ok, nil
}

func (m *MemoryStore) Close(_ context.Context, userID int64) error {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
	return nil
}

package session

import (
	"context"
	"sync"

	"github.com/rentafind/rentafind/internal/client/models"
)

// MemoryStore is a Store that lives only for the process lifetime.
// Used in tests and as a fallback when no local database is available.
type MemoryStore struct {
	mu   sync.Mutex
	sess models.Session
	set  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Restore(ctx context.Context) models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return models.Session{}
	}
	sess := m.sess
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}

func (m *MemoryStore) Save(ctx context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = s
	m.set = true
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = models.Session{}
	m.set = false
	return nil
}

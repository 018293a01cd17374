package order

import (
	"context"
	"sync"

	"rattan-bot/pkg/keylock"
)

// UpdateFunc receives a private copy of the stored session, or nil when none
// exists. Returning a nil session removes it. Returning an error discards
// every change made to the copy.
type UpdateFunc func(current *Session) (*Session, error)

// Store keeps sessions by id. Update must give fn exclusive access to the id
// for its whole run; different ids must not block each other.
type Store interface {
	Update(ctx context.Context, id int64, fn UpdateFunc) error
}

// MemoryStore keeps sessions in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	locks    *keylock.Locker
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[int64]*Session),
		locks:    keylock.New(),
	}
}

func (m *MemoryStore) Update(ctx context.Context, id int64, fn UpdateFunc) error {
	unlock, err := m.locks.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	m.mu.RLock()
	current := m.sessions[id]
	m.mu.RUnlock()

	if current != nil {
		current = current.Clone()
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if next == nil {
		delete(m.sessions, id)
		return nil
	}
	m.sessions[id] = next
	return nil
}

// Len reports the number of active sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

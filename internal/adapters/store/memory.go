package store

import (
	"sync"

	"github.com/baditaflorin/go_user_registry/internal/core/domain"
	"github.com/baditaflorin/go_user_registry/internal/ports"
)

// MemoryStore holds the username to record mapping in process memory.
// All state is volatile and scoped to the process lifetime. Access is
// guarded so a shared instance is safe behind the HTTP surface; the
// registry contract itself assumes a single writer.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() ports.UserStore {
	return &MemoryStore{
		users: make(map[string]domain.User),
	}
}

// Insert stores rec under username unless the key is already present.
func (s *MemoryStore) Insert(username string, rec domain.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return false
	}
	s.users[username] = rec
	return true
}

// Lookup returns the record stored under username, if any.
func (s *MemoryStore) Lookup(username string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[username]
	return rec, ok
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users)
}

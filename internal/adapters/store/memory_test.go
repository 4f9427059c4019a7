package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/baditaflorin/go_user_registry/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestInsertAndLookup(t *testing.T) {
	s := NewMemoryStore()

	rec := domain.User{Email: "a@b.com", CreatedAt: time.Now()}
	require.True(t, s.Insert("alice", rec))

	got, ok := s.Lookup("alice")
	require.True(t, ok)
	require.Equal(t, rec, got)
	require.Equal(t, 1, s.Len())
}

func TestInsertDuplicateKeepsFirstRecord(t *testing.T) {
	s := NewMemoryStore()

	require.True(t, s.Insert("alice", domain.User{Email: "a@b.com"}))
	require.False(t, s.Insert("alice", domain.User{Email: "c@d.com"}))

	got, ok := s.Lookup("alice")
	require.True(t, ok)
	require.Equal(t, "a@b.com", got.Email)
	require.Equal(t, 1, s.Len())
}

func TestLookupMissing(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Lookup("nobody")
	require.False(t, ok)
	require.Equal(t, 0, s.Len())
}

func TestConcurrentInsertSingleWinner(t *testing.T) {
	s := NewMemoryStore()

	const goroutines = 32
	wins := make(chan string, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			email := fmt.Sprintf("user%d@example.com", id)
			if s.Insert("contended", domain.User{Email: email}) {
				wins <- email
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for email := range wins {
		winners = append(winners, email)
	}
	require.Len(t, winners, 1)

	got, ok := s.Lookup("contended")
	require.True(t, ok)
	require.Equal(t, winners[0], got.Email)
}

package store

import (
	"context"
	"sync"
)

// TeacherStore holds the single mutable "current teacher" value
// All access goes through an internal mutex; the critical section is the
// value swap only, no I/O or formatting happens while the lock is held
type TeacherStore struct {
	mu   sync.Mutex
	name string
}

// newTeacherStore creates a new TeacherStore instance holding initial
func newTeacherStore(initial string) (*TeacherStore, error) {
	if initial == "" {
		return nil, ErrEmptyTeacherName
	}
	return &TeacherStore{name: initial}, nil
}

// Read returns the current teacher name
func (s *TeacherStore) Read(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.name, nil
}

// Set swaps in name and returns the value it replaced
// The swap is atomic with respect to concurrent Set and Read calls: the
// previous value handed back is the one this caller's write displaced, not
// a stale read taken outside the lock
func (s *TeacherStore) Set(_ context.Context, name string) (string, error) {
	if name == "" {
		return "", ErrEmptyTeacherName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.name
	s.name = name
	return prev, nil
}

package store

import (
	"context"
	"sync"

	"github.com/classboard/classboard/pkg/types"
)

// identitySequencer hands out the next student ID. IDs are the 1-based
// insertion rank, so the sequence stays contiguous only if Next is called
// under the same lock as the append it numbers.
// NOTE: Not safe for concurrent use on its own - the roster lock covers it
type identitySequencer struct {
	next int
}

// Next returns the next ID in the sequence
// NOTE: Caller must hold the roster lock
func (q *identitySequencer) Next() int {
	q.next++
	return q.next
}

// RosterStore owns the append-only collection of student records
// Insertion order equals ID order; records are never updated or deleted
type RosterStore struct {
	mu       sync.Mutex
	students []types.Student
	seq      identitySequencer
}

// newRosterStore creates a new, empty RosterStore instance
func newRosterStore() *RosterStore {
	return &RosterStore{}
}

// Add appends a new student record with the next contiguous ID
// The ID computation and the append run under one critical section. Splitting
// them into separate locked steps is the classical bug here: two concurrent
// callers would compute the same ID
func (s *RosterStore) Add(_ context.Context, firstName, lastName, favoriteLanguage string) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	student := types.Student{
		ID:               s.seq.Next(),
		FirstName:        firstName,
		LastName:         lastName,
		FavoriteLanguage: favoriteLanguage,
	}
	s.students = append(s.students, student)

	return student, nil
}

// List returns a snapshot copy of the roster in insertion order
// Returning a copy keeps concurrent Add calls from mutating a slice the
// caller is still iterating
func (s *RosterStore) List(_ context.Context) ([]types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Student, len(s.students))
	copy(out, s.students)
	return out, nil
}

// Find returns the student with the given ID, or false if absent
// IDs are the 1-based insertion rank, so the lookup is a direct index
func (s *RosterStore) Find(_ context.Context, id int) (types.Student, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 1 || id > len(s.students) {
		return types.Student{}, false, nil
	}
	return s.students[id-1], true, nil
}

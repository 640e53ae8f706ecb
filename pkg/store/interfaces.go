package store

import (
	"context"

	"github.com/classboard/classboard/pkg/types"
)

// TeacherStoreInterface defines operations on the single mutable teacher name
// This interface enables mocking in tests and follows the dependency inversion principle
type TeacherStoreInterface interface {
	// Read returns the current teacher name
	// The name is never empty once the store is constructed
	Read(ctx context.Context) (string, error)

	// Set atomically swaps in name and returns the previous value
	// The returned value is the one immediately preceding this caller's own
	// swap in the store's modification order
	// Returns ErrEmptyTeacherName if name is empty; the stored value is unchanged
	Set(ctx context.Context, name string) (string, error)
}

// RosterStoreInterface defines operations on the append-only student roster
type RosterStoreInterface interface {
	// List returns a point-in-time snapshot of the roster in insertion order
	// Inserts racing with List are not visible within the returned slice
	List(ctx context.Context) ([]types.Student, error)

	// Add assigns the next contiguous ID and appends a new student record
	// ID assignment and the append happen under one critical section, so
	// concurrent callers always receive distinct, gap-free IDs
	Add(ctx context.Context, firstName, lastName, favoriteLanguage string) (types.Student, error)

	// Find returns the student with the given ID
	// Absence is reported via the bool, not an error
	Find(ctx context.Context, id int) (types.Student, bool, error)
}

// StoreInterface is the main interface that combines all store operations
// This is the primary interface that should be used by consumers
type StoreInterface interface {
	// GetTeacherStore returns the teacher store operations
	GetTeacherStore() TeacherStoreInterface

	// GetRosterStore returns the roster store operations
	GetRosterStore() RosterStoreInterface
}

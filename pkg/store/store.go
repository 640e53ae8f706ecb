package store

// Store provides a high-level interface for the registry's mutable state:
// the current teacher name and the student roster
// Each sub-store guards its own state with an internal mutex; callers need
// no external synchronization
type Store struct {
	Teacher TeacherStoreInterface
	Roster  RosterStoreInterface
}

// New creates a new Store instance with all sub-stores initialized
// initialTeacher must be non-empty; the teacher name invariant is
// "never empty after initialization"
func New(initialTeacher string) (*Store, error) {
	teacher, err := newTeacherStore(initialTeacher)
	if err != nil {
		return nil, err
	}

	return &Store{
		Teacher: teacher,
		Roster:  newRosterStore(),
	}, nil
}

// GetTeacherStore returns the teacher store operations
func (s *Store) GetTeacherStore() TeacherStoreInterface {
	return s.Teacher
}

// GetRosterStore returns the roster store operations
func (s *Store) GetRosterStore() RosterStoreInterface {
	return s.Roster
}

// Compile-time interface compliance checks
var (
	_ TeacherStoreInterface = (*TeacherStore)(nil)
	_ RosterStoreInterface  = (*RosterStore)(nil)
	_ StoreInterface        = (*Store)(nil)
)

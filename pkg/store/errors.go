package store

import "errors"

// ErrEmptyTeacherName is returned by TeacherStore.Set when the new name is
// empty. Validation happens before mutation, so the stored value is unchanged.
var ErrEmptyTeacherName = errors.New("teacher name must not be empty")

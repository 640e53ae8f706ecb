package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestStore creates a Store seeded with the default teacher for tests
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New("Mat")
	require.NoError(t, err)
	return s
}

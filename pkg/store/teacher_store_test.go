package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherStore_Set(t *testing.T) {
	tests := []struct {
		Name     string
		NewValue string
		WantPrev string
		WantErr  error
		WantRead string
	}{
		{
			Name:     "replaces the initial value and returns it",
			NewValue: "Another teacher",
			WantPrev: "Mat",
			WantRead: "Another teacher",
		},
		{
			Name:     "empty name is rejected and the value is unchanged",
			NewValue: "",
			WantErr:  ErrEmptyTeacherName,
			WantRead: "Mat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			s := newTestStore(t)
			ctx := context.Background()

			prev, err := s.Teacher.Set(ctx, tt.NewValue)

			if tt.WantErr != nil {
				assert.ErrorIs(t, err, tt.WantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.WantPrev, prev)
			}

			got, err := s.Teacher.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.WantRead, got)
		})
	}
}

func TestTeacherStore_NewRejectsEmptyInitial(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyTeacherName)
}

// TestTeacherStore_ConcurrentSet checks that every swap observes the value it
// actually displaced: chaining each reported previous value back to the
// writer that stored it must account for every write exactly once.
func TestTeacherStore_ConcurrentSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const writers = 64

	prevs := make([]string, writers)
	names := make([]string, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		names[i] = string(rune('A' + i%26)) + string(rune('a'+i/26))
	}
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prev, err := s.Teacher.Set(ctx, names[i])
			assert.NoError(t, err)
			prevs[i] = prev
		}(i)
	}
	wg.Wait()

	final, err := s.Teacher.Read(ctx)
	require.NoError(t, err)

	// The displaced values plus the final value must be exactly the initial
	// value plus every written value: each write is displaced once, except
	// the last, which survives as the final read.
	observed := append(append([]string{}, prevs...), final)
	expected := append([]string{"Mat"}, names...)
	assert.ElementsMatch(t, expected, observed)
}

func TestTeacherStore_ConcurrentSetTwoWriters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	prevs := make([]string, 2)
	for i, name := range []string{"A", "B"} {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			prev, err := s.Teacher.Set(ctx, name)
			assert.NoError(t, err)
			prevs[i] = prev
		}(i, name)
	}
	wg.Wait()

	final, err := s.Teacher.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, []string{"A", "B"}, final)

	// One writer displaced "Mat", the other displaced its peer.
	assert.ElementsMatch(t, []string{"Mat", "A", "B"}, append(prevs, final))
}

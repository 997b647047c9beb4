package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/taskstore/internal/testutil"
)

// createTestStore creates a store seeded with the default example task whose
// next allocated id is 2.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(WithIDSource(testutil.NewDeterministicClockAt(1)))
	require.NoError(t, err)
	return s
}

// createEmptyStore creates a store with no tasks whose first id is 1.
func createEmptyStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(WithSeed(nil), WithIDSource(testutil.NewDeterministicClock()))
	require.NoError(t, err)
	return s
}

func ids(tasks []Task) []int64 {
	out := make([]int64, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

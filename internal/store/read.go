package store

import (
	"context"
	"fmt"
)

// List returns every task in insertion order.
//
// Returns an empty slice (not nil) when the store is empty.
func (s *Store) List(ctx context.Context) ([]Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// Get returns the task with the given id.
// Returns an error wrapping ErrNotFound if no such task exists.
func (s *Store) Get(ctx context.Context, id int64) (Task, error) {
	if err := ctx.Err(); err != nil {
		return Task{}, fmt.Errorf("get task: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, fmt.Errorf("get task %d: %w", id, ErrNotFound)
	}
	return s.tasks[i], nil
}

// Len returns the number of live tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

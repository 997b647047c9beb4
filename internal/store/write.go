package store

import (
	"context"
	"fmt"
)

// Create appends a new, not-completed task and returns it.
//
// Text is stored as given; an empty string is accepted.
func (s *Store) Create(ctx context.Context, text string) (Task, error) {
	if err := ctx.Err(); err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := Task{
		ID:        s.nextID(),
		Text:      text,
		Completed: false,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

// Update applies the patch to the task with the given id and returns the
// result. The id itself never changes.
// Returns an error wrapping ErrNotFound if no such task exists.
func (s *Store) Update(ctx context.Context, id int64, p Patch) (Task, error) {
	if err := ctx.Err(); err != nil {
		return Task{}, fmt.Errorf("update task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, fmt.Errorf("update task %d: %w", id, ErrNotFound)
	}

	if p.Text != nil {
		s.tasks[i].Text = *p.Text
	}
	if p.Completed != nil {
		s.tasks[i].Completed = *p.Completed
	}
	return s.tasks[i], nil
}

// Delete removes the task with the given id, keeping the order of the rest.
// Deleting an absent id is a no-op; removed reports whether a task was dropped.
func (s *Store) Delete(ctx context.Context, id int64) (removed bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	copy(s.tasks[i:], s.tasks[i+1:])
	s.tasks[len(s.tasks)-1] = Task{}
	s.tasks = s.tasks[:len(s.tasks)-1]
	return true, nil
}

// nextID draws ids until one is free. Caller holds the write lock.
func (s *Store) nextID() int64 {
	for {
		id := s.ids.Next()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

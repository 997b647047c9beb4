package store

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned when no live task has the requested id.
var ErrNotFound = errors.New("task not found")

// Task is a single todo record.
type Task struct {
	ID        int64  `json:"id" yaml:"id" toml:"id"`
	Text      string `json:"text" yaml:"text" toml:"text"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// Patch describes an update. Nil fields are left unchanged.
type Patch struct {
	Text      *string
	Completed *bool
}

// DefaultSeed returns the tasks a fresh store starts with.
func DefaultSeed() []Task {
	return []Task{
		{ID: 1, Text: "Example task", Completed: false},
	}
}

// Store holds the authoritative, ordered task list.
// The zero value is not usable; construct with New.
type Store struct {
	mu    sync.RWMutex
	tasks []Task
	ids   IDSource
}

// Option configures a Store.
type Option func(*config)

type config struct {
	seed    []Task
	seedSet bool
	ids     IDSource
}

// WithSeed replaces the default seed. An empty slice starts the store empty.
func WithSeed(seed []Task) Option {
	return func(c *config) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithIDSource sets the id allocator. Defaults to a MillisClock.
func WithIDSource(ids IDSource) Option {
	return func(c *config) {
		c.ids = ids
	}
}

// New creates a store populated with the seed.
// Returns an error if the seed contains duplicate ids.
func New(opts ...Option) (*Store, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	seed := cfg.seed
	if !cfg.seedSet {
		seed = DefaultSeed()
	}
	ids := cfg.ids
	if ids == nil {
		ids = NewMillisClock()
	}

	seen := make(map[int64]bool, len(seed))
	tasks := make([]Task, 0, len(seed))
	for _, t := range seed {
		if seen[t.ID] {
			return nil, fmt.Errorf("seed: duplicate task id %d", t.ID)
		}
		seen[t.ID] = true
		tasks = append(tasks, t)
	}

	return &Store{
		tasks: tasks,
		ids:   ids,
	}, nil
}

// indexOf returns the position of id, or -1. Caller holds the lock.
func (s *Store) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

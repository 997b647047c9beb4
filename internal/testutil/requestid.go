package testutil

import "sync"

// FixedRequestIDs returns predetermined request ids for tests.
//
// Request logs and response headers then carry known values:
//
//	gen := NewFixedRequestIDs("req-1", "req-2")
//	gen.Generate() // "req-1"
//	gen.Generate() // "req-2"
//	gen.Generate() // "req-2" (the last id repeats once the list is used up)
//
// With no ids, Generate returns "test-request".
//
// Thread-safety: FixedRequestIDs is safe for concurrent use via internal mutex.
type FixedRequestIDs struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedRequestIDs creates a generator that returns ids in order.
func NewFixedRequestIDs(ids ...string) *FixedRequestIDs {
	if len(ids) == 0 {
		ids = []string{"test-request"}
	}
	return &FixedRequestIDs{ids: ids}
}

// Generate returns the next id.
func (g *FixedRequestIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}

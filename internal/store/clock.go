package store

import (
	"sync/atomic"
	"time"
)

// IDSource allocates task ids. Implementations must be safe for concurrent
// use and must never return the same value twice.
type IDSource interface {
	Next() int64
}

// MillisClock allocates ids from the wall clock in Unix milliseconds.
//
// Two calls within the same millisecond (or after the wall clock steps
// backwards) still get strictly increasing ids: the result is always at
// least one more than the previous id.
//
// Thread-safety: MillisClock is safe for concurrent use (atomic CAS loop).
type MillisClock struct {
	last atomic.Int64
	now  func() time.Time
}

// NewMillisClock creates a clock reading time.Now.
func NewMillisClock() *MillisClock {
	return &MillisClock{now: time.Now}
}

// NewMillisClockWith creates a clock reading the given time function.
// Used by tests to pin or rewind time.
func NewMillisClockWith(now func() time.Time) *MillisClock {
	return &MillisClock{now: now}
}

// Next returns the next id.
func (c *MillisClock) Next() int64 {
	for {
		prev := c.last.Load()
		id := c.now().UnixMilli()
		if id <= prev {
			id = prev + 1
		}
		if c.last.CompareAndSwap(prev, id) {
			return id
		}
	}
}

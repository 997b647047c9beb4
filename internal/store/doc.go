// Package store provides the in-memory Task store behind the REST API.
//
// The store owns an ordered collection of tasks and is the single source of
// truth for them. Nothing is persisted: every process starts from the seed.
//
// # Ordering
//
//   - List returns tasks in the order they were created (seed first)
//   - Delete preserves the relative order of the remaining tasks
//
// # IDs
//
//   - IDs come from an IDSource (MillisClock in production)
//   - Create skips any id already held by a live task, so seed ids never collide
//   - IDs are never reassigned or mutated
//
// # Copies
//
//   - Read operations return copies; callers cannot mutate the collection
//
// # Concurrency
//
// HTTP handlers run on many goroutines. Each operation holds the store lock
// for its whole body, so every operation is atomic with respect to the others.
package store

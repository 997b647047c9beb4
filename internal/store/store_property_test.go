package store

import (
	"context"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/roach88/taskstore/internal/testutil"
)

func newRapidStore(t *rapid.T, n int) *Store {
	s, err := New(WithSeed(nil), WithIDSource(testutil.NewDeterministicClock()))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < n; i++ {
		if _, err := s.Create(ctx, rapid.String().Draw(t, "text")); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	return s
}

// Create then List contains the new task exactly once, at the end.
func TestProperty_CreateThenListContainsOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newRapidStore(t, rapid.IntRange(0, 20).Draw(t, "n"))
		ctx := context.Background()

		created, err := s.Create(ctx, rapid.String().Draw(t, "new"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		tasks, _ := s.List(ctx)
		count := 0
		for _, task := range tasks {
			if task.ID == created.ID {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("task %d appears %d times", created.ID, count)
		}
		if tasks[len(tasks)-1] != created {
			t.Fatalf("new task is not last: %+v", tasks)
		}
	})
}

// Delete removes exactly that task; others keep their relative order.
func TestProperty_DeletePreservesOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newRapidStore(t, rapid.IntRange(1, 20).Draw(t, "n"))
		ctx := context.Background()

		before, _ := s.List(ctx)
		victim := rapid.SampledFrom(before).Draw(t, "victim")

		removed, err := s.Delete(ctx, victim.ID)
		if err != nil || !removed {
			t.Fatalf("delete %d: removed=%v err=%v", victim.ID, removed, err)
		}

		after, _ := s.List(ctx)
		want := slices.DeleteFunc(slices.Clone(before), func(task Task) bool {
			return task.ID == victim.ID
		})
		if !slices.Equal(after, want) {
			t.Fatalf("after delete got %+v, want %+v", after, want)
		}
	})
}

// Get of a missing id returns ErrNotFound and a zero Task.
func TestProperty_GetMissingIsNotFound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newRapidStore(t, rapid.IntRange(0, 10).Draw(t, "n"))
		ctx := context.Background()

		id := rapid.Int64().Filter(func(id int64) bool {
			_, err := s.Get(ctx, id)
			return err != nil
		}).Draw(t, "missing")

		got, err := s.Get(ctx, id)
		if err == nil || !errorsIsNotFound(err) {
			t.Fatalf("get %d: err=%v", id, err)
		}
		if got != (Task{}) {
			t.Fatalf("get %d returned partial task %+v", id, got)
		}
	})
}

// Update changes only text and completed; id and position are preserved.
func TestProperty_UpdatePreservesID(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := newRapidStore(t, rapid.IntRange(1, 10).Draw(t, "n"))
		ctx := context.Background()

		before, _ := s.List(ctx)
		idx := rapid.IntRange(0, len(before)-1).Draw(t, "idx")
		target := before[idx]

		var p Patch
		if rapid.Bool().Draw(t, "setText") {
			p.Text = ptr(rapid.String().Draw(t, "text"))
		}
		if rapid.Bool().Draw(t, "setCompleted") {
			p.Completed = ptr(rapid.Bool().Draw(t, "completed"))
		}

		updated, err := s.Update(ctx, target.ID, p)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != target.ID {
			t.Fatalf("id changed: %d -> %d", target.ID, updated.ID)
		}

		after, _ := s.List(ctx)
		if after[idx] != updated {
			t.Fatalf("task moved or differs: %+v vs %+v", after[idx], updated)
		}
		for i := range before {
			if i != idx && before[i] != after[i] {
				t.Fatalf("unrelated task %d changed", before[i].ID)
			}
		}
	})
}

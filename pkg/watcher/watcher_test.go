package watcher

import (
	"errors"
	"testing"
	"time"
)

func TestNewRejectsInvalidArguments(t *testing.T) {
	if _, err := New(0, 0.1, 1, time.Second, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("capacity=0 error = %v, want ErrInvalidArgument", err)
	}
	if _, err := New(10, 0, 1, time.Second, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("percentageChange=0 error = %v, want ErrInvalidArgument", err)
	}
	if _, err := New(10, 0.1, 0, time.Second, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("minNodeCount=0 error = %v, want ErrInvalidArgument", err)
	}
}

func TestTopIsDescendingAndCapped(t *testing.T) {
	w, err := New(2, 0.5, 10, time.Hour, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Observe(1, 5)
	w.Observe(2, 10)
	w.Observe(3, 1)

	top := w.Top()
	if len(top) != 2 {
		t.Fatalf("Top() len = %d, want 2", len(top))
	}
	if top[0].Vertex != 2 || top[1].Vertex != 1 {
		t.Fatalf("Top() = %v, want vertex 2 then vertex 1", top)
	}
}

func TestFiresOnceEnoughNodesChangeAndIntervalElapsed(t *testing.T) {
	var fired []Firing
	clock := time.Unix(0, 0)
	w, err := New(10, 0.2, 2, time.Second, func(f Firing) { fired = append(fired, f) })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.now = func() time.Time { return clock }
	w.lastFire = clock

	w.Observe(1, 10)
	w.Observe(2, 10)
	if len(fired) != 0 {
		t.Fatalf("fired on first observation, want no fire until a relative change is seen")
	}

	clock = clock.Add(2 * time.Second)
	w.Observe(1, 13) // +30%, past the 20% threshold
	w.Observe(2, 13) // +30%
	if len(fired) != 1 {
		t.Fatalf("fired %d times, want 1", len(fired))
	}
	if len(fired[0].Entries) != 2 {
		t.Fatalf("firing had %d entries, want 2", len(fired[0].Entries))
	}
}

func TestDoesNotFireBeforeIntervalElapses(t *testing.T) {
	var fired int
	clock := time.Unix(0, 0)
	w, err := New(10, 0.1, 1, time.Hour, func(Firing) { fired++ })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.now = func() time.Time { return clock }
	w.lastFire = clock

	w.Observe(1, 10)
	clock = clock.Add(time.Second)
	w.Observe(1, 20)
	if fired != 0 {
		t.Fatalf("fired before updateInterval elapsed")
	}
}

func TestDoesNotFireWithTooFewChangedNodes(t *testing.T) {
	var fired int
	clock := time.Unix(0, 0)
	w, err := New(10, 0.1, 5, time.Millisecond, func(Firing) { fired++ })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.now = func() time.Time { return clock }
	w.lastFire = clock

	w.Observe(1, 10)
	clock = clock.Add(time.Second)
	w.Observe(1, 20)
	if fired != 0 {
		t.Fatalf("fired with only one node having changed, want minNodeCount=5 to gate it")
	}
}

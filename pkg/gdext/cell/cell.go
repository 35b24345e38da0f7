package cell

import (
	"fmt"
	"sync"
)

type borrowState uint8

const (
	stateFree borrowState = iota
	stateShared
	stateExclusive
)

// Cell owns a payload and arbitrates access to it. The host object embedding
// the payload must outlive the cell; the cell itself only tracks borrows.
//
// The host drives one logical call stack into extension code at a time per
// object, but goroutines are ambient in Go, so state transitions are mutex
// guarded. Acquisition stays non-blocking either way: a conflict fails
// immediately instead of waiting.
type Cell[T any] struct {
	mu     sync.Mutex
	state  borrowState
	shared int
	value  T
}

// New creates a cell in the Free state holding value.
func New[T any](value T) *Cell[T] {
	return &Cell[T]{value: value}
}

// Borrow acquires shared access. It succeeds while no exclusive borrow is
// outstanding; any number of shared borrows may coexist.
func (c *Cell[T]) Borrow() (*RefGuard[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == stateExclusive {
		return nil, c.conflictLocked()
	}
	c.state = stateShared
	c.shared++
	return &RefGuard[T]{cell: c}, nil
}

// BorrowMut acquires exclusive access. It succeeds only from the Free state;
// both an outstanding shared and an outstanding exclusive borrow reject it.
func (c *Cell[T]) BorrowMut() (*MutGuard[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateFree {
		return nil, c.conflictLocked()
	}
	c.state = stateExclusive
	return &MutGuard[T]{cell: c}, nil
}

// BorrowInaccessible acquires the exclusive claim without exposing the
// payload. It is used while the enclosing object's own handle must be
// mutably reachable: holding the claim proves no guard can alias the payload
// for the guard's lifetime.
func (c *Cell[T]) BorrowInaccessible() (*InaccessibleGuard[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateFree {
		return nil, c.conflictLocked()
	}
	c.state = stateExclusive
	return &InaccessibleGuard[T]{cell: c}, nil
}

// BorrowDyn acquires exclusive access and narrows the payload to the
// capability view D exactly once. The facet stays valid for the guard's
// lifetime because the payload is pinned and exclusively held until Release.
func BorrowDyn[T any, D any](c *Cell[T], narrow func(*T) D) (*DynGuard[T, D], error) {
	inner, err := c.BorrowMut()
	if err != nil {
		return nil, err
	}
	return &DynGuard[T, D]{inner: inner, facet: narrow(&c.value)}, nil
}

// IsFree reports whether no borrow is outstanding.
func (c *Cell[T]) IsFree() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateFree
}

// SharedCount returns the number of live shared borrows.
func (c *Cell[T]) SharedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shared
}

func (c *Cell[T]) conflictLocked() error {
	return &BorrowError{TypeName: c.typeName(), Shared: c.shared}
}

func (c *Cell[T]) typeName() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

func (c *Cell[T]) releaseShared() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateShared || c.shared <= 0 {
		panic(fmt.Sprintf("cell: shared release of %s in state %d (count %d)", c.typeName(), c.state, c.shared))
	}
	c.shared--
	if c.shared == 0 {
		c.state = stateFree
	}
}

func (c *Cell[T]) releaseExclusive() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != stateExclusive {
		panic(fmt.Sprintf("cell: exclusive release of %s in state %d", c.typeName(), c.state))
	}
	c.state = stateFree
}

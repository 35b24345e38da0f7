package cell

import "fmt"

// noCopy triggers go vet's copylocks check on guard types. Copying a guard
// would let one logical claim be released twice.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// RefGuard is a live shared borrow. The payload reached through Value must be
// treated as read-only; mutation requires a MutGuard.
type RefGuard[T any] struct {
	noCopy   noCopy
	cell     *Cell[T]
	released bool
}

// Value returns the payload. It panics after Release.
func (g *RefGuard[T]) Value() *T {
	if g.released {
		panic(fmt.Sprintf("cell: access through released shared guard (%s)", g.cell.typeName()))
	}
	return &g.cell.value
}

// Release returns the shared claim. Safe to call more than once and on every
// exit path; only the first call decrements the count.
func (g *RefGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.cell.releaseShared()
}

// MutGuard is a live exclusive borrow.
type MutGuard[T any] struct {
	noCopy   noCopy
	cell     *Cell[T]
	released bool
}

// Value returns the payload for reading and writing. It panics after Release.
func (g *MutGuard[T]) Value() *T {
	if g.released {
		panic(fmt.Sprintf("cell: access through released exclusive guard (%s)", g.cell.typeName()))
	}
	return &g.cell.value
}

// Release returns the exclusive claim. Idempotent.
func (g *MutGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.cell.releaseExclusive()
}

// InaccessibleGuard holds the exclusive claim while exposing no payload view
// at all. While it is alive the payload is provably unreachable from outside
// the current call, which is what makes handing out a mutable view of the
// enclosing object's handle sound.
type InaccessibleGuard[T any] struct {
	noCopy   noCopy
	cell     *Cell[T]
	released bool
}

// Release returns the exclusive claim. Idempotent.
func (g *InaccessibleGuard[T]) Release() {
	if g.released {
		return
	}
	g.released = true
	g.cell.releaseExclusive()
}

// DynGuard is an exclusive borrow narrowed to a capability view D. The facet
// is computed once at acquisition; it must never be read after Release, since
// its validity derives from the payload being pinned under the inner guard.
type DynGuard[T any, D any] struct {
	noCopy noCopy
	inner  *MutGuard[T]
	facet  D
}

// Facet returns the capability view. It panics after Release.
func (g *DynGuard[T, D]) Facet() D {
	if g.inner.released {
		panic(fmt.Sprintf("cell: access through released dynamic guard (%s)", g.inner.cell.typeName()))
	}
	return g.facet
}

// Release returns the underlying exclusive claim. Idempotent.
func (g *DynGuard[T, D]) Release() {
	g.inner.Release()
}

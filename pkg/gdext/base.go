package gdext

import (
	"unsafe"

	"github.com/Ughuuu/gdext/pkg/gdext/cell"
)

// ObjectID identifies a host-owned object instance. The host guarantees ids
// are never reused within a process.
type ObjectID uint64

// Base is a reference-style handle to the host-owned object that encloses an
// embedded payload. The object's lifetime is governed by the host, not by the
// payload's borrow state, which is why base access does not re-enter the
// borrow tracker.
type Base struct {
	ptr unsafe.Pointer
	id  ObjectID
}

// NewBase wraps the host object pointer and instance id handed to the binding
// when the object was created.
func NewBase(ptr unsafe.Pointer, id ObjectID) Base {
	return Base{ptr: ptr, id: id}
}

// ID returns the host instance id.
func (b Base) ID() ObjectID { return b.id }

// Ptr returns the raw host object pointer for forwarding into host calls.
func (b Base) Ptr() unsafe.Pointer { return b.ptr }

// BaseRef is an immutable view of the enclosing object's handle, for payload
// code that needs to call the object's own (non-payload) behavior with a
// read-only receiver. It is built through Storage.BaseRef, which takes the
// caller's live payload guard as witness.
type BaseRef[T any] struct {
	base Base
}

// Handle returns the enclosing object's handle.
func (r BaseRef[T]) Handle() Base { return r.base }

// BaseMut is a mutable view of the enclosing object's handle. It can only be
// built together with an InaccessibleGuard: while the guard is alive the
// payload is unreachable, so no second path to it can alias the mutable base
// access. BaseMut owns the guard and releases it.
type BaseMut[T any] struct {
	base  Base
	guard *cell.InaccessibleGuard[T]
}

// Handle returns the enclosing object's handle for mutating calls.
func (m *BaseMut[T]) Handle() Base { return m.base }

// Release returns the payload claim held by the underlying guard. Idempotent.
func (m *BaseMut[T]) Release() {
	m.guard.Release()
}

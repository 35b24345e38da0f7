package gdext

import (
	"sync/atomic"

	"github.com/Ughuuu/gdext/pkg/gdext/cell"
)

// Storage binds a host-owned object's handle to the Go payload embedded in
// it. The host object strictly bounds the payload's lifetime: the host
// creates the storage when it instantiates the object and destroys it when
// the object dies. Exactly one payload exists per object.
type Storage[T any] struct {
	base      Base
	cell      *cell.Cell[T]
	destroyed atomic.Bool
}

// NewStorage attaches payload to the object identified by base.
func NewStorage[T any](base Base, payload T) *Storage[T] {
	return &Storage[T]{base: base, cell: cell.New(payload)}
}

// Bind acquires shared access to the payload.
func (s *Storage[T]) Bind() (*cell.RefGuard[T], error) {
	if s.destroyed.Load() {
		return nil, ErrStorageDestroyed
	}
	return s.cell.Borrow()
}

// BindMut acquires exclusive access to the payload.
func (s *Storage[T]) BindMut() (*cell.MutGuard[T], error) {
	if s.destroyed.Load() {
		return nil, ErrStorageDestroyed
	}
	return s.cell.BorrowMut()
}

// BindDyn acquires exclusive access narrowed to the capability view D.
func BindDyn[T any, D any](s *Storage[T], narrow func(*T) D) (*cell.DynGuard[T, D], error) {
	if s.destroyed.Load() {
		return nil, ErrStorageDestroyed
	}
	return cell.BorrowDyn(s.cell, narrow)
}

// Base returns the enclosing object's handle.
func (s *Storage[T]) Base() Base { return s.base }

// payloadGuard is any live guard exposing the payload. Shared and exclusive
// guards both qualify.
type payloadGuard[T any] interface {
	Value() *T
}

// BaseRef returns an immutable view of the enclosing object's handle. The
// guard witnesses a live borrow of the payload, which is what keeps the
// enclosing object alive while the view is used; passing a released guard
// panics.
func (s *Storage[T]) BaseRef(g payloadGuard[T]) BaseRef[T] {
	g.Value()
	return BaseRef[T]{base: s.base}
}

// BaseMut makes the payload inaccessible and returns a mutable view of the
// enclosing object's handle, e.g. for a lifecycle callback that synchronously
// re-enters the object. Fails with a borrow conflict while any payload guard
// is live.
func (s *Storage[T]) BaseMut() (*BaseMut[T], error) {
	if s.destroyed.Load() {
		return nil, ErrStorageDestroyed
	}
	guard, err := s.cell.BorrowInaccessible()
	if err != nil {
		return nil, err
	}
	return &BaseMut[T]{base: s.base, guard: guard}, nil
}

// Destroy tears the storage down ahead of the host object's death. It fails
// with the outstanding borrow's conflict error if any guard is still live;
// destroying a borrowed payload would invalidate the guard's view.
func (s *Storage[T]) Destroy() error {
	if s.destroyed.Load() {
		return nil
	}
	// Acquiring the exclusive claim proves no guard is outstanding.
	guard, err := s.cell.BorrowInaccessible()
	if err != nil {
		return err
	}
	s.destroyed.Store(true)
	guard.Release()
	return nil
}

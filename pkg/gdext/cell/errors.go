package cell

import (
	"errors"
	"fmt"
)

// ErrBorrowConflict is the class every conflicting acquisition matches via
// errors.Is. The concrete error is always a *BorrowError carrying the payload
// type and the conflicting state.
var ErrBorrowConflict = errors.New("cell: borrow conflict")

// BorrowError reports a rejected acquisition. Shared carries the live shared
// count at the time of the conflict; zero means the payload was exclusively
// borrowed.
type BorrowError struct {
	TypeName string
	Shared   int
}

func (e *BorrowError) Error() string {
	if e.Shared > 0 {
		return fmt.Sprintf("cell: %s is already borrowed (shared %d times)", e.TypeName, e.Shared)
	}
	return fmt.Sprintf("cell: %s is already exclusively borrowed", e.TypeName)
}

func (e *BorrowError) Is(target error) bool {
	return target == ErrBorrowConflict
}

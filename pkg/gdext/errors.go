package gdext

import (
	"errors"

	"github.com/Ughuuu/gdext/internal/ffi"
)

var (
	// ErrNotBuilt reports that no dynamic host loader exists on this
	// platform. Callers can fall back to OpenWith and an injected interface
	// table.
	ErrNotBuilt = errors.New("gdext: host loader not built for this platform")

	// ErrNotLoaded signals use of the host interface before Open succeeded.
	ErrNotLoaded = errors.New("gdext: host interface not loaded; call Open first")

	// ErrAlreadyLoaded signals a second Open in the same process. The
	// negotiated interface is immutable process-wide state.
	ErrAlreadyLoaded = errors.New("gdext: host interface already loaded")

	// ErrLibraryClosed reports a double Close of a Library handle.
	ErrLibraryClosed = errors.New("gdext: library already closed")

	// ErrStorageDestroyed reports payload access after the enclosing
	// object's storage was torn down.
	ErrStorageDestroyed = errors.New("gdext: storage already destroyed")
)

// remapError converts raw ffi layer errors to public API errors.
func remapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ffi.ErrNotBuilt) {
		return ErrNotBuilt
	}
	return err
}

package ffi

import "errors"

var (
	// ErrNotBuilt reports that the host loader is not available on this
	// platform. Callers can use this to fall back to an injected interface
	// table (tests, in-process hosts).
	ErrNotBuilt = errors.New("gdext/internal/ffi: host loader not built for this platform")

	// ErrNilEntryToken signals that the host passed a null entry point.
	ErrNilEntryToken = errors.New("gdext/internal/ffi: entry token is null")

	// ErrMissingProc signals that a required host function could not be
	// resolved by name. The table must not be used.
	ErrMissingProc = errors.New("gdext/internal/ffi: required host function missing")
)

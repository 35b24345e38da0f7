//go:build !(darwin || freebsd || linux || windows)

package ffi

// Stub implementation for platforms without purego support. The package
// still compiles so that callers can inject an interface table directly
// (tests, in-process hosts) and fall back on ErrNotBuilt otherwise.

func Load(EntryToken) (*Interface, error) {
	return nil, ErrNotBuilt
}

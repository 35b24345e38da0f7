//go:build darwin || freebsd || linux

package ffi

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// OpenHostLibrary loads the shared library at path and returns the address of
// the named entry symbol as the token a host would have passed at load time.
// Used by out-of-process tooling (cmd/gdext-probe); in-process extensions
// receive the token directly from the host.
func OpenHostLibrary(path, symbol string) (EntryToken, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return 0, fmt.Errorf("gdext/internal/ffi: dlopen %s: %w", path, err)
	}
	addr, err := purego.Dlsym(lib, symbol)
	if err != nil {
		return 0, fmt.Errorf("gdext/internal/ffi: dlsym %s: %w", symbol, err)
	}
	return EntryToken(addr), nil
}

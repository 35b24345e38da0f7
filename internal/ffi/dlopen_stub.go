//go:build !(darwin || freebsd || linux)

package ffi

// OpenHostLibrary needs dlopen, which this platform does not expose through
// purego. Extensions still work: the host hands the token in directly.
func OpenHostLibrary(string, string) (EntryToken, error) {
	return 0, ErrNotBuilt
}

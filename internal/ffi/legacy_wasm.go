//go:build js || wasip1

package ffi

// DetectLegacy always reports a modern host on WebAssembly targets: function
// references are table indices in a separate space from data pointers there,
// so reading "memory" at the token would be meaningless. Legacy hosts do not
// exist on these targets.
func DetectLegacy(EntryToken) (*Version, bool) {
	return nil, false
}

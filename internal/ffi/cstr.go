package ffi

import "unsafe"

// goString converts a NUL-terminated C string referenced by ptr into a Go
// string. Equivalent to C.GoString but implemented without cgo so the package
// builds with CGO disabled.
func goString(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(ptr), n)) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	return string(unsafe.Slice(ptr, n))
}

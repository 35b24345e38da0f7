// Package mockhost provides an in-memory host implementation for tests and
// examples.
//
// The real host reaches the binding as a table of function pointers operating
// on opaque memory. mockhost plays that host in pure Go: its Interface method
// hands out a fully populated function table whose String values are backed by
// a registry of byte buffers keyed through the opaque blob, so codec and
// negotiation logic can be exercised end to end without a native engine.
package mockhost

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/Ughuuu/gdext/internal/ffi"
)

// Host is an in-memory engine. All methods are safe for concurrent use.
type Host struct {
	version ffi.Version

	mu          sync.Mutex
	nextID      uint64
	strings     map[uint64][]byte
	allocs      map[unsafe.Pointer][]byte
	failMeasure bool
}

// New creates a host reporting the given version triple.
func New(major, minor, patch uint32) *Host {
	return &Host{
		version: ffi.Version{
			Major:  major,
			Minor:  minor,
			Patch:  patch,
			String: fmt.Sprintf("Mock Engine v%d.%d.%d.mock", major, minor, patch),
		},
		nextID:  1,
		strings: map[uint64][]byte{},
		allocs:  map[unsafe.Pointer][]byte{},
	}
}

// LiveStrings reports how many host Strings are currently allocated. Tests
// use it to prove the codec neither leaks nor double-frees.
func (h *Host) LiveStrings() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.strings)
}

// LiveAllocations reports how many mem_alloc blocks have not been freed.
func (h *Host) LiveAllocations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.allocs)
}

// FailMeasurements makes every string_to_utf8_chars call return a negative
// length, simulating an internal host error the binding must treat as fatal.
func (h *Host) FailMeasurements() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failMeasure = true
}

func (h *Host) measurementsFailing() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failMeasure
}

// The opaque String blob carries the registry id in its first eight bytes.
// Only the host interprets this layout; the binding treats the blob as opaque.

func (h *Host) writeHandle(dst unsafe.Pointer, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.strings[id] = data
	*(*uint64)(dst) = id
}

func (h *Host) readHandle(src unsafe.Pointer) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := *(*uint64)(src)
	data, ok := h.strings[id]
	if !ok {
		panic(fmt.Sprintf("mockhost: use of unknown String handle %d", id))
	}
	return data
}

func (h *Host) freeHandle(target unsafe.Pointer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := *(*uint64)(target)
	if _, ok := h.strings[id]; !ok {
		panic(fmt.Sprintf("mockhost: double free of String handle %d", id))
	}
	delete(h.strings, id)
	*(*uint64)(target) = 0
}

// Interface returns the host's resolved function table, the same shape the
// purego loader produces from a native engine.
func (h *Host) Interface() *ffi.Interface {
	return &ffi.Interface{
		GetGodotVersion: func() ffi.Version {
			return h.version
		},

		StringNewWithUTF8CharsAndLen: func(dst *ffi.OpaqueString, chars *byte, size int64) {
			var data []byte
			if size > 0 && chars != nil {
				data = append([]byte(nil), unsafe.Slice(chars, size)...)
			}
			h.writeHandle(unsafe.Pointer(dst), data)
		},

		StringToUTF8Chars: func(src *ffi.OpaqueString, dst *byte, maxLen int64) int64 {
			if h.measurementsFailing() {
				return -1
			}
			data := h.readHandle(unsafe.Pointer(src))
			if dst != nil && maxLen > 0 {
				n := int64(len(data))
				if n > maxLen {
					n = maxLen
				}
				copy(unsafe.Slice(dst, n), data[:n])
			}
			return int64(len(data))
		},

		VariantGetPtrConstructor: func(tag ffi.TypeTag, variant int32) ffi.PtrConstructor {
			if tag != ffi.TypeTagString {
				return nil
			}
			switch variant {
			case ffi.CtorDefault:
				return func(dst, _ unsafe.Pointer) {
					h.writeHandle(dst, nil)
				}
			case ffi.CtorCopy:
				return func(dst, arg unsafe.Pointer) {
					src := h.readHandle(arg)
					h.writeHandle(dst, append([]byte(nil), src...))
				}
			default:
				return nil
			}
		},

		VariantGetPtrDestructor: func(tag ffi.TypeTag) ffi.PtrDestructor {
			if tag != ffi.TypeTagString {
				return nil
			}
			return h.freeHandle
		},

		// The registry entry keeps each block reachable, which is what
		// stands in for host-owned memory here.
		MemAlloc: func(size uint64) unsafe.Pointer {
			if size == 0 {
				size = 1
			}
			buf := make([]byte, size)
			ptr := unsafe.Pointer(&buf[0])
			h.mu.Lock()
			defer h.mu.Unlock()
			h.allocs[ptr] = buf
			return ptr
		},

		MemFree: func(ptr unsafe.Pointer) {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.allocs[ptr]; !ok {
				panic(fmt.Sprintf("mockhost: free of unknown block %p", ptr))
			}
			delete(h.allocs, ptr)
		},
	}
}

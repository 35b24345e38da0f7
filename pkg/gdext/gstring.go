package gdext

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/Ughuuu/gdext/internal/ffi"
)

// GString wraps a host-owned String value. The bytes behind it live in the
// host; construction and destruction go through the host's per-type
// constructor and destructor tables. A GString must be released with Destroy
// once its owner is done with it, and must not be passed around by plain
// struct copy; Clone invokes the host's copy constructor for that.
type GString struct {
	opaque    ffi.OpaqueString
	destroyed bool
}

// NewGString constructs an empty host String through the default constructor.
func NewGString() GString {
	var g GString
	ctor := activeLibrary().strDefaultCtor()
	ctor(unsafe.Pointer(&g.opaque), nil)
	return g
}

// NewGStringFromString constructs a host String directly from the UTF-8 bytes
// of s, with explicit length. No intermediate copy is made beyond what the
// host itself requires.
func NewGStringFromString(s string) GString {
	lib := activeLibrary()

	var g GString
	b := []byte(s)
	var chars *byte
	if len(b) > 0 {
		chars = &b[0]
	}
	lib.iface.StringNewWithUTF8CharsAndLen(&g.opaque, chars, int64(len(b)))
	runtime.KeepAlive(b)
	return g
}

// String converts the host String back to Go text. The host's measure-or-copy
// function is called twice: once with a nil destination to size the buffer,
// then again to fill it.
//
// The result is interpreted as UTF-8 without re-validation: the host contract
// guarantees well-formed UTF-8 on this path. That trust boundary must be
// revisited if the contract is ever relaxed.
func (g *GString) String() string {
	lib := activeLibrary()

	length := lib.iface.StringToUTF8Chars(&g.opaque, nil, 0)
	if length < 0 {
		// A negative length breaks the host contract; any further call
		// through this table risks undefined behavior.
		panic(fmt.Sprintf("gdext: host returned negative String length %d", length))
	}
	if length == 0 {
		return ""
	}

	buf := make([]byte, length)
	lib.iface.StringToUTF8Chars(&g.opaque, &buf[0], length)
	return string(buf)
}

// Clone duplicates the host-side value through the copy constructor. The
// clone owns its own host String and must be destroyed independently.
func (g *GString) Clone() GString {
	var dup GString
	ctor := activeLibrary().strCopyCtor()
	ctor(unsafe.Pointer(&dup.opaque), unsafe.Pointer(&g.opaque))
	return dup
}

// Destroy releases the host-side value. Idempotent; a destroyed GString must
// not be used again.
func (g *GString) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	dtor := activeLibrary().strDtor()
	dtor(unsafe.Pointer(&g.opaque))
}

// LeakCString copies the String into a NUL-terminated buffer on the host
// allocator for a legacy embedder API whose return convention is a raw C
// string rather than a String handle. The block is leaked on purpose:
// ownership passes to the host, which never reports when it is done.
//
// Deprecated: transitional mechanism for the legacy return convention only;
// it will be removed once the host switches that API to String handles.
func (g *GString) LeakCString() *byte {
	lib := activeLibrary()

	s := g.String()
	ptr := lib.iface.MemAlloc(uint64(len(s)) + 1)
	buf := unsafe.Slice((*byte)(ptr), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	return (*byte)(ptr)
}

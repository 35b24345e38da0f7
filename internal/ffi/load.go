//go:build darwin || freebsd || linux || windows

package ffi

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// rawGodotVersion mirrors the host's version struct filled by
// get_godot_version. The string pointer stays a uintptr so the garbage
// collector never scans a host-owned address as a Go pointer.
type rawGodotVersion struct {
	major   uint32
	minor   uint32
	patch   uint32
	fullStr uintptr
}

// Load resolves the full host function table through the get_proc_address
// function the token points at. Each required name that resolves to null
// fails the load; the caller must not proceed with a partial table.
func Load(token EntryToken) (*Interface, error) {
	if token == 0 {
		return nil, ErrNilEntryToken
	}

	var getProc func(name string) uintptr
	purego.RegisterFunc(&getProc, uintptr(token))

	resolve := func(name string) (uintptr, error) {
		addr := getProc(name)
		if addr == 0 {
			return 0, fmt.Errorf("%w: %s", ErrMissingProc, name)
		}
		return addr, nil
	}

	iface := &Interface{}

	addr, err := resolve("get_godot_version")
	if err != nil {
		return nil, err
	}
	var rawGetVersion func(out unsafe.Pointer)
	purego.RegisterFunc(&rawGetVersion, addr)
	iface.GetGodotVersion = func() Version {
		var raw rawGodotVersion
		rawGetVersion(unsafe.Pointer(&raw))
		return Version{
			Major:  raw.major,
			Minor:  raw.minor,
			Patch:  raw.patch,
			String: goString((*byte)(unsafe.Pointer(raw.fullStr))),
		}
	}

	addr, err = resolve("string_new_with_utf8_chars_and_len")
	if err != nil {
		return nil, err
	}
	var rawStringNew func(dst, chars unsafe.Pointer, size int64)
	purego.RegisterFunc(&rawStringNew, addr)
	iface.StringNewWithUTF8CharsAndLen = func(dst *OpaqueString, chars *byte, size int64) {
		rawStringNew(unsafe.Pointer(dst), unsafe.Pointer(chars), size)
	}

	addr, err = resolve("string_to_utf8_chars")
	if err != nil {
		return nil, err
	}
	var rawToUTF8 func(src, dst unsafe.Pointer, maxLen int64) int64
	purego.RegisterFunc(&rawToUTF8, addr)
	iface.StringToUTF8Chars = func(src *OpaqueString, dst *byte, maxLen int64) int64 {
		return rawToUTF8(unsafe.Pointer(src), unsafe.Pointer(dst), maxLen)
	}

	addr, err = resolve("variant_get_ptr_constructor")
	if err != nil {
		return nil, err
	}
	var rawGetCtor func(tag uint32, variant int32) uintptr
	purego.RegisterFunc(&rawGetCtor, addr)
	iface.VariantGetPtrConstructor = func(tag TypeTag, variant int32) PtrConstructor {
		fn := rawGetCtor(uint32(tag), variant)
		if fn == 0 {
			return nil
		}
		var ctor func(dst, arg unsafe.Pointer)
		purego.RegisterFunc(&ctor, fn)
		return ctor
	}

	addr, err = resolve("variant_get_ptr_destructor")
	if err != nil {
		return nil, err
	}
	var rawGetDtor func(tag uint32) uintptr
	purego.RegisterFunc(&rawGetDtor, addr)
	iface.VariantGetPtrDestructor = func(tag TypeTag) PtrDestructor {
		fn := rawGetDtor(uint32(tag))
		if fn == 0 {
			return nil
		}
		var dtor func(target unsafe.Pointer)
		purego.RegisterFunc(&dtor, fn)
		return dtor
	}

	addr, err = resolve("mem_alloc")
	if err != nil {
		return nil, err
	}
	var rawMemAlloc func(size uint64) uintptr
	purego.RegisterFunc(&rawMemAlloc, addr)
	iface.MemAlloc = func(size uint64) unsafe.Pointer {
		return unsafe.Pointer(rawMemAlloc(size))
	}

	addr, err = resolve("mem_free")
	if err != nil {
		return nil, err
	}
	var rawMemFree func(ptr unsafe.Pointer)
	purego.RegisterFunc(&rawMemFree, addr)
	iface.MemFree = func(ptr unsafe.Pointer) {
		rawMemFree(ptr)
	}

	return iface, nil
}

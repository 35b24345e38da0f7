package ffi

import (
	"fmt"
	"unsafe"
)

// EntryToken is the raw value the host passes to the extension entry point at
// load time. For a modern host it is the address of the get_proc_address
// function; a legacy host passes a pointer to its interface struct instead.
// DetectLegacy distinguishes the two before the token is ever called.
type EntryToken uintptr

// TypeTag discriminates engine built-in types in the per-type constructor and
// destructor tables. Only String is needed by the binding core; the values
// match the host's variant type enumeration.
type TypeTag uint32

const (
	TypeTagString TypeTag = 4
)

// Constructor variant indices within the per-type constructor table.
const (
	CtorDefault int32 = 0
	CtorCopy    int32 = 1
)

// Version is the host version reported during negotiation.
type Version struct {
	Major  uint32
	Minor  uint32
	Patch  uint32
	String string
}

// Triple renders the numeric part, e.g. "4.1.0".
func (v Version) Triple() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// OpaqueString is the engine's String value representation: a fixed-size,
// pointer-aligned blob whose contents only host functions may interpret. The
// binding constructs and destroys it exclusively through the per-type tables.
type OpaqueString struct {
	opaque uint64
}

// PtrConstructor constructs a value in place at dst. For the default variant
// arg is nil; for the copy variant arg points at the source value.
type PtrConstructor func(dst unsafe.Pointer, arg unsafe.Pointer)

// PtrDestructor destroys the value at target, releasing host-side resources.
type PtrDestructor func(target unsafe.Pointer)

// Interface is the resolved host function table. It is populated exactly once
// during negotiation and read-only afterwards; components cache individual
// entries but never mutate the table.
type Interface struct {
	// GetGodotVersion reports the running host's version.
	GetGodotVersion func() Version

	// StringNewWithUTF8CharsAndLen constructs a host String at dst from a
	// UTF-8 byte buffer with explicit length.
	StringNewWithUTF8CharsAndLen func(dst *OpaqueString, chars *byte, size int64)

	// StringToUTF8Chars copies the String's UTF-8 bytes into dst (at most
	// maxLen bytes) and returns the full required length. Called with a nil
	// dst and zero maxLen it only measures. Negative return values signal an
	// internal host error and must be treated as fatal.
	StringToUTF8Chars func(src *OpaqueString, dst *byte, maxLen int64) int64

	// VariantGetPtrConstructor resolves a constructor from the per-type
	// table; nil means the host has no such constructor.
	VariantGetPtrConstructor func(tag TypeTag, variant int32) PtrConstructor

	// VariantGetPtrDestructor resolves the per-type destructor.
	VariantGetPtrDestructor func(tag TypeTag) PtrDestructor

	// MemAlloc allocates size bytes on the host allocator. Memory obtained
	// here is owned by the host side and survives until MemFree.
	MemAlloc func(size uint64) unsafe.Pointer

	// MemFree releases memory obtained from MemAlloc.
	MemFree func(ptr unsafe.Pointer)
}

// Validate reports the first required entry that is missing. A table with a
// nil required function pointer must never be used; any call through it is
// undefined behavior rather than a recoverable error.
func (i *Interface) Validate() error {
	if i == nil {
		return fmt.Errorf("%w: interface table is nil", ErrMissingProc)
	}
	checks := []struct {
		name string
		ok   bool
	}{
		{"get_godot_version", i.GetGodotVersion != nil},
		{"string_new_with_utf8_chars_and_len", i.StringNewWithUTF8CharsAndLen != nil},
		{"string_to_utf8_chars", i.StringToUTF8Chars != nil},
		{"variant_get_ptr_constructor", i.VariantGetPtrConstructor != nil},
		{"variant_get_ptr_destructor", i.VariantGetPtrDestructor != nil},
		{"mem_alloc", i.MemAlloc != nil},
		{"mem_free", i.MemFree != nil},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrMissingProc, c.name)
		}
	}
	return nil
}

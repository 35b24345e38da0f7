//go:build !js && !wasip1

package ffi

import "unsafe"

// legacyInterface mirrors the leading fields of the 4.0-era host interface
// struct. The layout is frozen by the host's compatibility promise, so a
// field-by-field mirror is sufficient for the probe.
type legacyInterface struct {
	versionMajor  uint32
	versionMinor  uint32
	versionPatch  uint32
	versionString *byte
}

// DetectLegacy is a best-effort platform probe for 4.0-era hosts, which pass
// a pointer to their interface struct where modern hosts pass the
// get_proc_address function. It reinterprets token as that struct and checks
// whether the first two 32-bit fields read (4, 0).
//
// Reading data at a function pointer's address is undefined-behavior-adjacent
// and acceptable only because the alternative is an undiagnosed crash: on the
// targets this file builds for, function pointers and data pointers share an
// address space and a function's first words are never (4, 0). Do not
// generalize this pattern elsewhere.
func DetectLegacy(token EntryToken) (*Version, bool) {
	if token == 0 {
		return nil, false
	}
	p := unsafe.Pointer(uintptr(token))

	// Read word by word. Only if the first word already matches do we touch
	// any further memory.
	if *(*uint32)(p) != 4 {
		return nil, false
	}
	if *(*uint32)(unsafe.Add(p, 4)) != 0 {
		return nil, false
	}

	// At this point it is reasonably safe to assume the legacy struct.
	legacy := (*legacyInterface)(p)
	return &Version{
		Major:  legacy.versionMajor,
		Minor:  legacy.versionMinor,
		Patch:  legacy.versionPatch,
		String: goString(legacy.versionString),
	}, true
}

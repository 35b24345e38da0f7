//go:build !js && !wasip1

package ffi

import (
	"runtime"
	"testing"
	"unsafe"
)

func tokenFor(li *legacyInterface) EntryToken {
	return EntryToken(uintptr(unsafe.Pointer(li)))
}

func TestDetectLegacyMatchesFourZero(t *testing.T) {
	str := []byte("Godot Engine v4.0.2.stable.official\x00")
	li := &legacyInterface{
		versionMajor:  4,
		versionMinor:  0,
		versionPatch:  2,
		versionString: &str[0],
	}

	v, legacy := DetectLegacy(tokenFor(li))
	runtime.KeepAlive(li)
	runtime.KeepAlive(str)

	if !legacy {
		t.Fatalf("expected (4, 0) header to be classified as legacy")
	}
	if v.Major != 4 || v.Minor != 0 || v.Patch != 2 {
		t.Fatalf("unexpected version triple: %s", v.Triple())
	}
	if v.String != "Godot Engine v4.0.2.stable.official" {
		t.Fatalf("unexpected version string: %q", v.String)
	}
}

func TestDetectLegacyRejectsModernHeader(t *testing.T) {
	cases := []legacyInterface{
		{versionMajor: 4, versionMinor: 1}, // modern host would never be probed as (4,1)
		{versionMajor: 5, versionMinor: 0},
		{versionMajor: 0, versionMinor: 0},
	}
	for _, c := range cases {
		c := c
		if _, legacy := DetectLegacy(tokenFor(&c)); legacy {
			t.Fatalf("header (%d, %d) misclassified as legacy", c.versionMajor, c.versionMinor)
		}
		runtime.KeepAlive(&c)
	}
}

func TestDetectLegacyNullToken(t *testing.T) {
	if _, legacy := DetectLegacy(0); legacy {
		t.Fatalf("null token must not be classified as legacy")
	}
}

package ffi

import (
	"errors"
	"strings"
	"testing"
	"unsafe"
)

func completeInterface() *Interface {
	return &Interface{
		GetGodotVersion:              func() Version { return Version{Major: 4, Minor: 1} },
		StringNewWithUTF8CharsAndLen: func(*OpaqueString, *byte, int64) {},
		StringToUTF8Chars:            func(*OpaqueString, *byte, int64) int64 { return 0 },
		VariantGetPtrConstructor:     func(TypeTag, int32) PtrConstructor { return nil },
		VariantGetPtrDestructor:      func(TypeTag) PtrDestructor { return nil },
		MemAlloc:                     func(uint64) unsafe.Pointer { return nil },
		MemFree:                      func(unsafe.Pointer) {},
	}
}

func TestValidateComplete(t *testing.T) {
	if err := completeInterface().Validate(); err != nil {
		t.Fatalf("complete table must validate: %v", err)
	}
}

func TestValidateNamesMissingEntry(t *testing.T) {
	iface := completeInterface()
	iface.StringToUTF8Chars = nil

	err := iface.Validate()
	if !errors.Is(err, ErrMissingProc) {
		t.Fatalf("expected ErrMissingProc, got %v", err)
	}
	if !strings.Contains(err.Error(), "string_to_utf8_chars") {
		t.Fatalf("error must name the missing function: %v", err)
	}
}

func TestValidateNilTable(t *testing.T) {
	var iface *Interface
	if err := iface.Validate(); !errors.Is(err, ErrMissingProc) {
		t.Fatalf("nil table must fail validation, got %v", err)
	}
}

func TestGoString(t *testing.T) {
	buf := []byte("hello\x00trailing")
	if got := goString(&buf[0]); got != "hello" {
		t.Fatalf("goString = %q, want %q", got, "hello")
	}
	if got := goString(nil); got != "" {
		t.Fatalf("goString(nil) = %q, want empty", got)
	}
	empty := []byte{0}
	if got := goString(&empty[0]); got != "" {
		t.Fatalf("goString(empty) = %q, want empty", got)
	}
}

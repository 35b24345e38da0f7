// Package gdext exposes a safe Go facade over a GDExtension-style host
// engine. The host owns every native object and hands the binding nothing but
// an untyped, versioned function-pointer interface; this package negotiates
// that interface at load time, marshals text across the boundary, and guards
// access to Go payloads embedded in host-owned objects so that aliasing is
// detected at the moment of access instead of corrupting memory.
//
// Version negotiation runs once per process via Open (or OpenWith for an
// injected interface table) and gates everything else: no host function is
// trusted before the running host's version has been verified against the
// version the binding was compiled for.
package gdext

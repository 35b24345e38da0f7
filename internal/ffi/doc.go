// Package ffi is the raw boundary to the host engine. Every function pointer
// obtained from the host's entry point is resolved and wrapped here, and all
// unsafe pointer handling is isolated in this package.
// Import surface: the pkg/gdext facade, mockhost (which implements the host
// side of this boundary), and the cmd/examples binaries. Nothing else may
// import it; internalcheck enforces the list.
package ffi

// Package cell provides runtime borrow tracking for payloads embedded in
// host-owned objects.
//
// The host can hand out any number of live references to the same object, so
// aliasing of the Go payload behind it cannot be ruled out at compile time.
// A Cell records at runtime whether its payload is free, shared, or
// exclusively borrowed, and every access goes through a guard obtained from
// the cell. A conflicting acquisition fails immediately with a *BorrowError;
// it never blocks, because the typical conflict is re-entrant access from the
// same logical call stack, where waiting would self-deadlock.
//
// Guards release their claim through Release, which is idempotent and safe to
// defer. Guards must not be copied; go vet's copylocks check enforces this.
package cell

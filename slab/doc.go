// Package slab implements a size-class slab allocator over anonymous page
// mappings.
//
// # Overview
//
// Requests up to 2048 bytes are rounded up to one of eight power-of-two
// size classes (16 to 2048 bytes) and served from a per-class free list.
// Requests above 2048 bytes are rounded up to a whole number of pages and
// mapped directly. All memory comes from the operating system and lives
// outside the Go heap.
//
//	a := slab.New(nil)
//	p := a.Alloc(100)       // 128-byte block
//	n := a.UsableSize(p)    // 128
//	a.Free(p)               // back on the 128-byte free list
//
// # Slab Pages
//
// When a class free list is empty the allocator maps one 4KB page and
// divides it into equal blocks. Block 0 holds the page header:
//
//	Offset  Size  Field
//	0x00    4     Ownership tag (12073110)
//	0x04    4     Reserved
//	0x08    8     Block size
//
// Blocks 1..n-1 are linked into the class free list in address order. Block
// 0 is never handed out. Pages are never returned to the operating system
// while the allocator is in use.
//
// # Free
//
// Free accepts nil, a pointer returned by Alloc, or any address inside a
// small block. The address is truncated to its page base, the page is looked
// up, and its header tag is checked. Unrecognized pointers are ignored. A
// recognized block goes on the front of its class list, so the most recently
// freed block of a class is the next one allocated.
//
// Large objects are recorded so UsableSize can report their length, but Free
// leaves them mapped unless Options.ReclaimLarge is set.
//
// # Out of Memory
//
// TryAlloc returns an error wrapping ErrNoMemory. Alloc instead hands the
// failure to the Reporter, which by default writes to stderr and exits with
// status 2.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally. Separate instances share no state.
package slab

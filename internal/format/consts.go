// Package format describes the in-memory layout of slab pages: the page
// header stamped at offset 0 and the constants shared by the page source and
// the allocator. It is deliberately small and allocation-free so the fatal
// paths can lean on it.
package format

const (
	// PageSize is the granularity of every mapping made by the allocator.
	// Slab pages are exactly one PageSize; large objects are a multiple of it.
	PageSize = 0x1000

	// PageMask clears the in-page bits of an address.
	PageMask = PageSize - 1

	// Magic is the ownership tag written at the start of every slab page.
	Magic uint32 = 12073110

	// MinBlockShift and MaxBlockShift bound the power-of-two size classes.
	MinBlockShift = 4
	MaxBlockShift = 11

	// MinBlockSize is the smallest block handed out (class 0).
	MinBlockSize = 1 << MinBlockShift

	// MaxBlockSize is the largest small-object block. Requests above it take
	// the large-object path.
	MaxBlockSize = 1 << MaxBlockShift

	// NumClasses is the number of small-object size classes (16..2048).
	NumClasses = MaxBlockShift - MinBlockShift + 1
)

// Page header layout (little-endian):
//
//	Offset  Size  Field
//	0x00    4     Ownership tag (Magic)
//	0x04    4     Reserved, zero
//	0x08    8     Block size of every block in this page
const (
	HeaderTagOffset  = 0x00
	HeaderSizeOffset = 0x08
	HeaderSize       = 0x10
)

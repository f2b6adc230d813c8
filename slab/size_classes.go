package slab

import (
	"math/bits"

	"github.com/joshuapare/slabkit/internal/format"
)

const (
	// NumClasses is the number of small-object size classes.
	NumClasses = format.NumClasses

	// MinBlockSize is the smallest block handed out.
	MinBlockSize = format.MinBlockSize

	// MaxSmallSize is the largest request served from a size class. Larger
	// requests are mapped directly.
	MaxSmallSize = format.MaxBlockSize

	// PageSize is the mapping granularity.
	PageSize = format.PageSize
)

// ClassInfo describes one size class.
type ClassInfo struct {
	Index         int    // position in the free-list table
	BlockSize     uint64 // bytes per block
	BlocksPerPage int    // usable blocks per slab page (block 0 holds the header)
}

// ClassFor returns the size class for a request of size bytes. Sizes up to
// MinBlockSize map to class 0; exact class boundaries map to that class.
// ok is false when size must take the large-object path.
func ClassFor(size uint64) (idx int, ok bool) {
	if size > MaxSmallSize {
		return 0, false
	}
	if size <= MinBlockSize {
		return 0, true
	}
	return bits.Len64(size-1) - format.MinBlockShift, true
}

// ClassSize returns the block size of class idx.
func ClassSize(idx int) uint64 {
	return 1 << (uint(idx) + format.MinBlockShift)
}

// classOf maps a header block size back to its class index.
func classOf(blockSize uint64) int {
	return bits.TrailingZeros64(blockSize) - format.MinBlockShift
}

// Classes returns the size class table.
func Classes() []ClassInfo {
	out := make([]ClassInfo, NumClasses)
	for i := range out {
		bs := ClassSize(i)
		out[i] = ClassInfo{
			Index:         i,
			BlockSize:     bs,
			BlocksPerPage: int(PageSize/bs) - 1,
		}
	}
	return out
}

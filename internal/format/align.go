package format

import "github.com/joshuapare/slabkit/internal/buf"

// PageBase truncates addr down to the start of its page.
func PageBase(addr uintptr) uintptr {
	return addr &^ PageMask
}

// PageOffset returns the offset of addr within its page.
func PageOffset(addr uintptr) uintptr {
	return addr & PageMask
}

// AlignPage rounds n up to the next multiple of PageSize. ok is false when
// the result does not fit in uint64.
//
// Example:
//
//	AlignPage(1)    = 4096
//	AlignPage(4096) = 4096
//	AlignPage(4097) = 8192
func AlignPage(n uint64) (uint64, bool) {
	return buf.RoundUp(n, PageSize)
}

// BlockStart truncates an in-page offset down to the start of the block of
// size blockSize that contains it.
func BlockStart(off, blockSize uintptr) uintptr {
	return off - off%blockSize
}

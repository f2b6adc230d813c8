package slab

import (
	"log/slog"
)

// Result describes what Free did with a pointer. Free never fails; the
// result exists so callers can tell a release from a silent no-op.
type Result uint8

const (
	// ResultFreed means the block was pushed onto its class free list.
	ResultFreed Result = iota
	// ResultNil means the pointer was nil.
	ResultNil
	// ResultForeign means the pointer does not belong to a slab page owned by
	// this allocator (unknown page, header tag mismatch, or the header block).
	ResultForeign
	// ResultAlreadyFree means the block was already on a free list.
	ResultAlreadyFree
	// ResultLargeIgnored means the pointer is a large object and was left
	// mapped.
	ResultLargeIgnored
	// ResultLargeReleased means the large object was unmapped (ReclaimLarge).
	ResultLargeReleased
)

var resultNames = [...]string{
	ResultFreed:         "freed",
	ResultNil:           "nil",
	ResultForeign:       "foreign",
	ResultAlreadyFree:   "already-free",
	ResultLargeIgnored:  "large-ignored",
	ResultLargeReleased: "large-released",
}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "unknown"
}

// Recognized reports whether the allocator took ownership of the pointer back.
func (r Result) Recognized() bool {
	return r == ResultFreed || r == ResultLargeReleased
}

// Options configures an Allocator. A nil *Options, or zero fields, select defaults.
type Options struct {
	// Source provides pages. Default: DefaultPageSource().
	Source PageSource

	// Reporter receives fatal mapping failures from Alloc. Default: write
	// to stderr and exit with status 2.
	Reporter Reporter

	// Logger receives debug records for carves and large mappings.
	// Default: discard, unless SLABKIT_LOG_ALLOC is set.
	Logger *slog.Logger

	// ReclaimLarge unmaps large objects on Free. When false, releasing a
	// large object leaves its mapping in place for the life of the allocator.
	ReclaimLarge bool
}

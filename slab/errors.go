package slab

import "errors"

var (
	// ErrNoMemory indicates the page source refused to provide memory, or the
	// request cannot be represented as a mapping length.
	ErrNoMemory = errors.New("slab: out of memory")

	// ErrMisaligned indicates a page source returned a region that does not
	// start on a page boundary or has the wrong length.
	ErrMisaligned = errors.New("slab: page source returned a misaligned region")
)

//go:build !unix && !windows

package pagesrc

import (
	"unsafe"

	"github.com/joshuapare/slabkit/internal/format"
)

// mapAnon carves a page-aligned window out of a Go heap allocation when the
// platform has no anonymous mapping facility.
func mapAnon(n int) ([]byte, error) {
	raw := make([]byte, n+format.PageSize)
	off := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) & format.PageMask); rem != 0 {
		off = format.PageSize - rem
	}
	return raw[off : off+n : off+n], nil
}

func unmapAnon([]byte) error {
	return nil
}

package format

import (
	"fmt"

	"github.com/joshuapare/slabkit/internal/buf"
)

// PageHeader is the metadata stamped into block 0 of a slab page. It is
// written once when the page is carved and never changes afterwards.
type PageHeader struct {
	Tag       uint32
	BlockSize uint64
}

// PutPageHeader stamps a header for blockSize into the start of page.
func PutPageHeader(page []byte, blockSize uint64) error {
	head, ok := buf.Slice(page, 0, HeaderSize)
	if !ok {
		return fmt.Errorf("header: %w", ErrTruncated)
	}
	if !ValidBlockSize(blockSize) {
		return fmt.Errorf("header: %w (%d)", ErrBadBlockSize, blockSize)
	}
	buf.PutU32LE(head[HeaderTagOffset:], Magic)
	buf.PutU32LE(head[HeaderTagOffset+4:], 0)
	buf.PutU64LE(head[HeaderSizeOffset:], blockSize)
	return nil
}

// ReadPageHeader decodes the header at the start of page without validating it.
func ReadPageHeader(page []byte) (PageHeader, error) {
	head, ok := buf.Slice(page, 0, HeaderSize)
	if !ok {
		return PageHeader{}, fmt.Errorf("header: %w", ErrTruncated)
	}
	return PageHeader{
		Tag:       buf.U32LE(head[HeaderTagOffset:]),
		BlockSize: buf.U64LE(head[HeaderSizeOffset:]),
	}, nil
}

// ParsePageHeader decodes and validates the header at the start of page. A
// page whose tag is not Magic is reported as ErrSignatureMismatch.
func ParsePageHeader(page []byte) (PageHeader, error) {
	h, err := ReadPageHeader(page)
	if err != nil {
		return PageHeader{}, err
	}
	if h.Tag != Magic {
		return PageHeader{}, fmt.Errorf("header: %w", ErrSignatureMismatch)
	}
	if !ValidBlockSize(h.BlockSize) {
		return PageHeader{}, fmt.Errorf("header: %w (%d)", ErrBadBlockSize, h.BlockSize)
	}
	return h, nil
}

// ValidBlockSize reports whether n is one of the small-object size classes.
func ValidBlockSize(n uint64) bool {
	return n >= MinBlockSize && n <= MaxBlockSize && n&(n-1) == 0
}

package format

import (
	"errors"
	"testing"
)

func TestPutAndParsePageHeader(t *testing.T) {
	page := make([]byte, PageSize)
	if err := PutPageHeader(page, 64); err != nil {
		t.Fatalf("PutPageHeader: %v", err)
	}
	h, err := ParsePageHeader(page)
	if err != nil {
		t.Fatalf("ParsePageHeader: %v", err)
	}
	if h.Tag != Magic || h.BlockSize != 64 {
		t.Fatalf("unexpected header: %+v", h)
	}
	// Magic lands little-endian at offset 0.
	if page[0] != 0x96 || page[1] != 0x38 || page[2] != 0xb8 || page[3] != 0x00 {
		t.Fatalf("unexpected tag bytes: % x", page[:4])
	}
}

func TestParsePageHeaderErrors(t *testing.T) {
	if _, err := ParsePageHeader(make([]byte, HeaderSize-1)); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncated error, got %v", err)
	}

	page := make([]byte, PageSize)
	if _, err := ParsePageHeader(page); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("expected signature error on zeroed page, got %v", err)
	}

	if err := PutPageHeader(page, 128); err != nil {
		t.Fatalf("PutPageHeader: %v", err)
	}
	page[HeaderSizeOffset] = 24 // not a power of two
	if _, err := ParsePageHeader(page); !errors.Is(err, ErrBadBlockSize) {
		t.Fatalf("expected block size error, got %v", err)
	}
}

func TestPutPageHeaderRejectsBadSize(t *testing.T) {
	page := make([]byte, PageSize)
	for _, n := range []uint64{0, 8, 24, 4096} {
		if err := PutPageHeader(page, n); !errors.Is(err, ErrBadBlockSize) {
			t.Fatalf("PutPageHeader(%d): expected ErrBadBlockSize, got %v", n, err)
		}
	}
	if err := PutPageHeader(page[:4], 16); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected truncated error, got %v", err)
	}
}

func TestValidBlockSize(t *testing.T) {
	for shift := MinBlockShift; shift <= MaxBlockShift; shift++ {
		if !ValidBlockSize(1 << shift) {
			t.Fatalf("1<<%d should be valid", shift)
		}
	}
	for _, n := range []uint64{0, 1, 8, 17, 3000, 4096} {
		if ValidBlockSize(n) {
			t.Fatalf("%d should be invalid", n)
		}
	}
}

package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a page header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrSignatureMismatch indicates the page does not begin with the ownership tag.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrBadBlockSize indicates the header block size is not a valid size class.
	ErrBadBlockSize = errors.New("format: invalid block size")
)

package buf

import (
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow uint64.
func AddOverflowSafe(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// RoundUp rounds n up to the next multiple of m, returning ok = false when the
// rounded value does not fit in uint64. m must be non-zero.
//
//	RoundUp(1, 4096)    = 4096, true
//	RoundUp(4096, 4096) = 4096, true
//	RoundUp(4097, 4096) = 8192, true
func RoundUp(n, m uint64) (uint64, bool) {
	rem := n % m
	if rem == 0 {
		return n, true
	}
	return AddOverflowSafe(n, m-rem)
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	if n > len(b)-off {
		return nil, false
	}
	return b[off : off+n], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

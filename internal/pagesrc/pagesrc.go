// Package pagesrc provides the allocator's only source of raw memory:
// anonymous, private, read-write page mappings obtained from the operating
// system. Memory returned here lives outside the Go heap on unix and windows.
package pagesrc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/slabkit/internal/format"
)

var (
	// ErrBadLength indicates a mapping length that is not a positive multiple of the page size.
	ErrBadLength = errors.New("pagesrc: length must be a positive multiple of the page size")

	// ErrBudgetExceeded indicates a budgeted source refused to map more memory.
	ErrBudgetExceeded = errors.New("pagesrc: mapping budget exceeded")
)

// Source hands out page-aligned, page-multiple regions of read-write memory.
type Source interface {
	// Map returns a new region of exactly n bytes. n must be a positive
	// multiple of format.PageSize. The contents are unspecified.
	Map(n int) ([]byte, error)

	// Unmap returns a region previously obtained from Map. b must be the
	// exact slice Map returned.
	Unmap(b []byte) error
}

// Default returns the operating-system backed source.
func Default() Source {
	return osSource{}
}

type osSource struct{}

func (osSource) Map(n int) ([]byte, error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}
	b, err := mapAnon(n)
	if err != nil {
		return nil, fmt.Errorf("pagesrc: map %d bytes: %w", n, err)
	}
	return b, nil
}

func (osSource) Unmap(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := unmapAnon(b); err != nil {
		return fmt.Errorf("pagesrc: unmap %d bytes: %w", len(b), err)
	}
	return nil
}

func checkLength(n int) error {
	if n <= 0 || n%format.PageSize != 0 {
		return fmt.Errorf("%w (%d)", ErrBadLength, n)
	}
	return nil
}

// Budgeted wraps src so that at most limit bytes are mapped at any time.
// Unmapped regions are credited back.
func Budgeted(src Source, limit uint64) *BudgetSource {
	return &BudgetSource{src: src, limit: limit}
}

// BudgetSource is a Source with a ceiling on live mapped bytes.
type BudgetSource struct {
	src   Source
	limit uint64
	used  uint64
}

// Map maps n bytes from the wrapped source if the budget allows it.
func (s *BudgetSource) Map(n int) ([]byte, error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}
	if uint64(n) > s.limit-s.used {
		return nil, fmt.Errorf("%w: used=%d want=%d limit=%d", ErrBudgetExceeded, s.used, n, s.limit)
	}
	b, err := s.src.Map(n)
	if err != nil {
		return nil, err
	}
	s.used += uint64(n)
	return b, nil
}

// Unmap releases b through the wrapped source and credits the budget.
func (s *BudgetSource) Unmap(b []byte) error {
	if err := s.src.Unmap(b); err != nil {
		return err
	}
	s.used -= uint64(len(b))
	return nil
}

// Used returns the number of bytes currently mapped through s.
func (s *BudgetSource) Used() uint64 {
	return s.used
}

package slab

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/slabkit/internal/format"
	"github.com/joshuapare/slabkit/internal/logger"
)

// fatalRecorder is a Reporter that records messages instead of exiting.
type fatalRecorder struct {
	msgs []string
}

func (r *fatalRecorder) Fatal(msg string) {
	r.msgs = append(r.msgs, msg)
}

// newTestAllocator creates an allocator whose mappings are released when the test ends.
func newTestAllocator(t testing.TB, opts *Options) *Allocator {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	a := New(opts)
	t.Cleanup(func() {
		require.NoError(t, a.Close())
	})
	return a
}

// bytesAt views n bytes starting at p.
func bytesAt(p unsafe.Pointer, n uint64) []byte {
	return unsafe.Slice((*byte)(p), n)
}

// pageOf returns the slab page record containing p.
func pageOf(t testing.TB, a *Allocator, p unsafe.Pointer) *slabPage {
	t.Helper()
	pg, ok := a.pages[format.PageBase(uintptr(p))]
	require.True(t, ok, "pointer %p is not on a slab page", p)
	return pg
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

func requireFilled(t testing.TB, b []byte, v byte, msg string) {
	t.Helper()
	for i := range b {
		require.Equal(t, v, b[i], "%s: byte %d", msg, i)
	}
}

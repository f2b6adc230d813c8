package slab

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/joshuapare/slabkit/internal/diag"
	"github.com/joshuapare/slabkit/internal/format"
	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/internal/pagesrc"
)

// Messages passed to the Reporter. They are constants so the fatal path
// builds nothing.
const (
	fatalLargeMsg = "mmap failed! Giving up.\n"
	fatalSmallMsg = "mmap failed\n"
)

// Allocator is a size-class slab allocator over anonymous page mappings.
//
// Small requests (up to MaxSmallSize) are served from per-class free lists
// backed by slab pages; larger requests are mapped directly. Memory returned
// by an Allocator is outside the Go heap and is not zeroed.
//
// An Allocator is not safe for concurrent use.
type Allocator struct {
	src          PageSource
	reporter     Reporter
	log          *slog.Logger
	reclaimLarge bool

	// Free-list heads, indexed by class.
	lists [NumClasses]*slot

	// Slab pages keyed by page base address.
	pages map[uintptr]*slabPage

	// Live large mappings keyed by base address.
	large map[uintptr][]byte

	stats Stats
}

// New creates an Allocator with empty free lists. opts may be nil.
func New(opts *Options) *Allocator {
	if opts == nil {
		opts = &Options{}
	}
	a := &Allocator{
		src:          opts.Source,
		reporter:     opts.Reporter,
		log:          opts.Logger,
		reclaimLarge: opts.ReclaimLarge,
		pages:        make(map[uintptr]*slabPage),
		large:        make(map[uintptr][]byte),
	}
	if a.src == nil {
		a.src = pagesrc.Default()
	}
	if a.reporter == nil {
		a.reporter = diag.Stderr()
	}
	if a.log == nil {
		a.log = logger.FromEnv()
	}
	return a
}

// TryAlloc returns a block of at least size bytes. When the page source
// cannot provide memory it returns an error wrapping ErrNoMemory and leaves
// the allocator unchanged.
func (a *Allocator) TryAlloc(size uint64) (unsafe.Pointer, error) {
	a.stats.AllocCalls++
	cls, ok := ClassFor(size)
	if !ok {
		return a.allocLarge(size)
	}
	if a.lists[cls] == nil {
		if err := a.carve(cls); err != nil {
			return nil, err
		}
	}
	s := a.lists[cls]
	a.lists[cls] = s.next
	s.next = nil
	s.state = slotLive
	a.stats.LiveBlocks[cls]++
	return s.page.blockPtr(s.index), nil
}

// Alloc returns a block of at least size bytes. If the page source fails,
// the failure is passed to the Reporter, which by default terminates the
// process with status 2. If the Reporter returns, Alloc returns nil.
func (a *Allocator) Alloc(size uint64) unsafe.Pointer {
	p, err := a.TryAlloc(size)
	if err != nil {
		if size > MaxSmallSize {
			a.reporter.Fatal(fatalLargeMsg)
		} else {
			a.reporter.Fatal(fatalSmallMsg)
		}
		return nil
	}
	return p
}

// AllocBytes is Alloc returning a slice view of the block: len is size and
// cap is the usable size. It returns nil when Alloc does.
func (a *Allocator) AllocBytes(size uint64) []byte {
	p := a.Alloc(size)
	if p == nil {
		return nil
	}
	usable := int(a.UsableSize(p))
	return unsafe.Slice((*byte)(p), usable)[:int(size):usable]
}

// Free returns the block containing p to its class free list. p may be nil,
// an address returned by Alloc, or any address inside a small block. Pointers
// the allocator does not recognize are ignored. Free never fails; the Result
// says what happened.
func (a *Allocator) Free(p unsafe.Pointer) Result {
	a.stats.FreeCalls++
	if p == nil {
		a.stats.FreedNil++
		return ResultNil
	}
	addr := uintptr(p)
	pg, hdr, ok := a.lookup(addr)
	if !ok {
		if mem, isLarge := a.large[addr]; isLarge {
			return a.freeLarge(addr, mem)
		}
		a.stats.FreedForeign++
		return ResultForeign
	}

	idx := int(format.BlockStart(format.PageOffset(addr), uintptr(hdr.BlockSize)) / uintptr(hdr.BlockSize))
	s := &pg.slots[idx]
	switch s.state {
	case slotHeader:
		a.stats.FreedForeign++
		return ResultForeign
	case slotFree:
		a.stats.FreedTwice++
		return ResultAlreadyFree
	}

	cls := classOf(hdr.BlockSize)
	s.state = slotFree
	s.next = a.lists[cls]
	a.lists[cls] = s
	a.stats.LiveBlocks[cls]--
	return ResultFreed
}

// FreeBytes frees the block backing b, as returned by AllocBytes.
func (a *Allocator) FreeBytes(b []byte) Result {
	return a.Free(Pointer(b))
}

// Pointer returns the address of the memory backing b, or nil when b has no
// capacity.
func Pointer(b []byte) unsafe.Pointer {
	if cap(b) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b))
}

// UsableSize returns the number of bytes available in the object containing
// p: the class block size for small objects, the mapping length for large
// objects passed by their base address, and 0 for nil or unrecognized
// pointers.
func (a *Allocator) UsableSize(p unsafe.Pointer) uint64 {
	if p == nil {
		return 0
	}
	addr := uintptr(p)
	if _, hdr, ok := a.lookup(addr); ok {
		return hdr.BlockSize
	}
	if mem, ok := a.large[addr]; ok {
		return uint64(len(mem))
	}
	return 0
}

// lookup finds the slab page containing addr and validates its header.
// Free and UsableSize both go through here so they always agree on
// ownership and block size.
func (a *Allocator) lookup(addr uintptr) (*slabPage, format.PageHeader, bool) {
	pg, ok := a.pages[format.PageBase(addr)]
	if !ok {
		return nil, format.PageHeader{}, false
	}
	hdr, err := format.ParsePageHeader(pg.mem)
	if err != nil || hdr.BlockSize != pg.blockSize {
		if !errors.Is(err, format.ErrSignatureMismatch) {
			a.log.Debug("slab: page header disagrees with page record",
				"base", fmt.Sprintf("%#x", pg.base), "err", err)
		}
		return nil, format.PageHeader{}, false
	}
	return pg, hdr, true
}

// Close unmaps every page and large object held by the allocator and resets
// it to empty. Every pointer previously returned becomes invalid.
func (a *Allocator) Close() error {
	var errs []error
	for base, pg := range a.pages {
		if err := a.src.Unmap(pg.mem); err != nil {
			errs = append(errs, err)
		}
		delete(a.pages, base)
	}
	for base, mem := range a.large {
		if err := a.src.Unmap(mem); err != nil {
			errs = append(errs, err)
		}
		delete(a.large, base)
	}
	a.lists = [NumClasses]*slot{}
	a.stats.SlabPages = [NumClasses]int{}
	a.stats.LiveBlocks = [NumClasses]int{}
	a.stats.LargeBytes = 0
	return errors.Join(errs...)
}

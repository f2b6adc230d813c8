package slab

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/slabkit/internal/format"
)

// slotState tracks who owns a block. Only free slots are linked.
type slotState uint8

const (
	slotHeader slotState = iota // block 0, holds the page header
	slotFree                    // on a class free list
	slotLive                    // handed to a caller
)

// slot is the bookkeeping record for one block of a slab page. The free-list
// link lives here, never in the block itself, so caller bytes are opaque to
// the allocator.
type slot struct {
	page  *slabPage
	index int
	state slotState
	next  *slot // valid only while state == slotFree
}

// slabPage is one mapped page partitioned into equal-size blocks.
type slabPage struct {
	mem       []byte
	base      uintptr
	class     int
	blockSize uint64
	slots     []slot
}

func (p *slabPage) blockPtr(i int) unsafe.Pointer {
	return unsafe.Pointer(&p.mem[uint64(i)*p.blockSize])
}

// carve maps one page for class cls, stamps its header and installs blocks
// 1..n-1 as the class free list. The list must be empty.
func (a *Allocator) carve(cls int) error {
	bs := ClassSize(cls)
	mem, err := a.src.Map(format.PageSize)
	if err != nil {
		a.stats.MapFailures++
		return fmt.Errorf("%w: carve %d-byte class: %w", ErrNoMemory, bs, err)
	}
	if len(mem) != format.PageSize || uintptr(unsafe.Pointer(&mem[0]))&format.PageMask != 0 {
		_ = a.src.Unmap(mem)
		a.stats.MapFailures++
		return fmt.Errorf("%w: carve %d-byte class", ErrMisaligned, bs)
	}
	if err := format.PutPageHeader(mem, bs); err != nil {
		_ = a.src.Unmap(mem)
		return fmt.Errorf("carve %d-byte class: %w", bs, err)
	}

	n := int(format.PageSize / bs)
	p := &slabPage{
		mem:       mem,
		base:      uintptr(unsafe.Pointer(&mem[0])),
		class:     cls,
		blockSize: bs,
		slots:     make([]slot, n),
	}
	p.slots[0] = slot{page: p, index: 0, state: slotHeader}
	for i := 1; i < n; i++ {
		s := &p.slots[i]
		s.page, s.index, s.state = p, i, slotFree
		if i < n-1 {
			s.next = &p.slots[i+1]
		}
	}

	a.pages[p.base] = p
	a.lists[cls] = &p.slots[1]
	a.stats.SlabPages[cls]++

	a.log.Debug("slab: carved page",
		"class", cls,
		"block_size", bs,
		"blocks", n-1,
		"base", fmt.Sprintf("%#x", p.base),
	)
	return nil
}

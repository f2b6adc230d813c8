package slab

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/joshuapare/slabkit/internal/format"
)

// allocLarge maps a page-multiple region covering size and records it in
// the large-object table.
func (a *Allocator) allocLarge(size uint64) (unsafe.Pointer, error) {
	n, ok := format.AlignPage(size)
	if !ok || n > math.MaxInt {
		a.stats.MapFailures++
		return nil, fmt.Errorf("%w: %d bytes exceeds the mappable range", ErrNoMemory, size)
	}
	mem, err := a.src.Map(int(n))
	if err != nil {
		a.stats.MapFailures++
		return nil, fmt.Errorf("%w: map %d bytes: %w", ErrNoMemory, n, err)
	}
	p := unsafe.Pointer(&mem[0])
	a.large[uintptr(p)] = mem
	a.stats.LargeMaps++
	a.stats.LargeBytes += n

	a.log.Debug("slab: mapped large object",
		"size", size,
		"mapped", n,
		"base", fmt.Sprintf("%#x", uintptr(p)),
	)
	return p, nil
}

// freeLarge releases a large object when ReclaimLarge is set. Otherwise the
// mapping stays in place and is never reused.
func (a *Allocator) freeLarge(base uintptr, mem []byte) Result {
	if !a.reclaimLarge {
		a.stats.LargeIgnored++
		return ResultLargeIgnored
	}
	if err := a.src.Unmap(mem); err != nil {
		a.log.Warn("slab: unmap large object failed", "base", fmt.Sprintf("%#x", base), "err", err)
		a.stats.LargeIgnored++
		return ResultLargeIgnored
	}
	delete(a.large, base)
	a.stats.LargeReleased++
	a.stats.LargeBytes -= uint64(len(mem))
	return ResultLargeReleased
}

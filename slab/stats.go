package slab

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats holds allocator counters.
type Stats struct {
	AllocCalls int // Alloc/TryAlloc calls, including failures
	FreeCalls  int // Free calls, including no-ops

	SlabPages  [NumClasses]int // pages currently mapped per class
	LiveBlocks [NumClasses]int // blocks currently handed out per class

	LargeMaps     int    // large objects mapped
	LargeLive     int    // large objects still recorded
	LargeBytes    uint64 // bytes held by recorded large objects
	LargeIgnored  int    // Free calls on large objects left mapped
	LargeReleased int    // large objects unmapped by Free

	FreedNil     int // Free(nil)
	FreedForeign int // Free on unrecognized pointers
	FreedTwice   int // Free on blocks already free

	MapFailures int // page source refusals
}

// Stats returns a snapshot of the allocator counters.
func (a *Allocator) Stats() Stats {
	s := a.stats
	s.LargeLive = len(a.large)
	return s
}

// SlabBytes returns the bytes mapped for slab pages.
func (s Stats) SlabBytes() uint64 {
	var n uint64
	for _, pages := range s.SlabPages {
		n += uint64(pages) * PageSize
	}
	return n
}

// LiveSmallBytes returns the block bytes currently handed out from slab pages.
func (s Stats) LiveSmallBytes() uint64 {
	var n uint64
	for i, live := range s.LiveBlocks {
		n += uint64(live) * ClassSize(i)
	}
	return n
}

// PrintStats writes a human-readable report of the allocator counters to w.
func (a *Allocator) PrintStats(w io.Writer) {
	s := a.Stats()
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "=== ALLOCATOR STATISTICS ===\n")
	p.Fprintf(w, "Alloc calls:        %d\n", s.AllocCalls)
	p.Fprintf(w, "Free calls:         %d\n", s.FreeCalls)
	p.Fprintf(w, "Map failures:       %d\n", s.MapFailures)
	p.Fprintf(w, "Slab bytes:         %d\n", s.SlabBytes())
	p.Fprintf(w, "Live small bytes:   %d\n", s.LiveSmallBytes())
	p.Fprintf(w, "Large live:         %d (%d bytes, %d mapped total)\n", s.LargeLive, s.LargeBytes, s.LargeMaps)
	p.Fprintf(w, "Ignored frees:      nil=%d foreign=%d twice=%d large=%d\n",
		s.FreedNil, s.FreedForeign, s.FreedTwice, s.LargeIgnored)
	p.Fprintf(w, "Class  Block  Pages  Live\n")
	for i := range NumClasses {
		p.Fprintf(w, "%5d  %5d  %5d  %d\n", i, ClassSize(i), s.SlabPages[i], s.LiveBlocks[i])
	}
}

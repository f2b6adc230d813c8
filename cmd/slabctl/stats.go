package main

import (
	"fmt"
	"os"
	"strconv"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/slab"
)

var (
	statsFree    bool
	statsReclaim bool
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().BoolVar(&statsFree, "free", false, "Free every object before reporting")
	cmd.Flags().BoolVar(&statsReclaim, "reclaim-large", false, "Unmap large objects on free")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <size>...",
		Short: "Allocate the given sizes and show allocator statistics",
		Long: `The stats command allocates one object per size argument on a fresh
allocator, optionally frees them all, and prints the allocator counters:
slab pages per class, live blocks, large mappings and ignored frees.

Example:
  slabctl stats 16 16 16 3000
  slabctl stats 100 200 5000 --free
  slabctl stats 100 5000 --free --reclaim-large --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	sizes := make([]uint64, len(args))
	for i, arg := range args {
		n, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", arg, err)
		}
		sizes[i] = n
	}

	a := slab.New(&slab.Options{ReclaimLarge: statsReclaim, Logger: logger.L})
	defer a.Close()

	stats, err := collectStats(a, sizes, statsFree)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(stats)
	}
	if !quiet {
		a.PrintStats(os.Stdout)
	}
	return nil
}

// collectStats allocates each size, frees them when free is set, and
// returns the resulting counters.
func collectStats(a *slab.Allocator, sizes []uint64, free bool) (slab.Stats, error) {
	ptrs := make([]unsafe.Pointer, 0, len(sizes))
	for _, n := range sizes {
		p, err := a.TryAlloc(n)
		if err != nil {
			return slab.Stats{}, fmt.Errorf("allocate %d bytes: %w", n, err)
		}
		printVerbose("alloc %6d -> %p (usable %d)\n", n, p, a.UsableSize(p))
		ptrs = append(ptrs, p)
	}
	if free {
		for _, p := range ptrs {
			res := a.Free(p)
			printVerbose("free  %p -> %s\n", p, res)
		}
	}
	return a.Stats(), nil
}

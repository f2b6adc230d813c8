package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/slab"
)

var (
	stressIterations int
	stressSeed       uint64
	stressMaxSize    uint64
	stressMaxLive    int
	stressBudget     uint64
	stressReclaim    bool
	stressStats      bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVarP(&stressIterations, "iterations", "n", 100000, "Number of allocate/free steps")
	cmd.Flags().Uint64Var(&stressSeed, "seed", 1, "Random seed")
	cmd.Flags().Uint64Var(&stressMaxSize, "max-size", slab.MaxSmallSize, "Largest request size in bytes")
	cmd.Flags().IntVar(&stressMaxLive, "max-live", 4096, "Most objects live at once")
	cmd.Flags().Uint64Var(&stressBudget, "budget", 0, "Cap on mapped bytes (0 = unlimited)")
	cmd.Flags().BoolVar(&stressReclaim, "reclaim-large", false, "Unmap large objects on free")
	cmd.Flags().BoolVar(&stressStats, "stats", false, "Print allocator statistics after the run")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run a seeded allocate/free workload and check invariants",
		Long: `The stress command runs a random mix of allocations and frees against a
fresh allocator. Every object is filled with a marker byte; on free the marker
is checked, so overlapping blocks show up as corruption. Alignment and usable
size are checked on every allocation.

Example:
  slabctl stress
  slabctl stress -n 1000000 --seed 42 --max-size 8192 --reclaim-large
  slabctl stress --budget 1048576 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

// stressConfig holds the workload parameters.
type stressConfig struct {
	Iterations   int
	Seed         uint64
	MaxSize      uint64
	MaxLive      int
	Budget       uint64
	ReclaimLarge bool

	// Source overrides the page source. Nil means the OS default.
	Source slab.PageSource
}

// StressReport summarizes a workload run.
type StressReport struct {
	Iterations  int        `json:"iterations"`
	Allocs      int        `json:"allocs"`
	Frees       int        `json:"frees"`
	OutOfMemory int        `json:"out_of_memory"`
	PeakLive    int        `json:"peak_live"`
	Violations  []string   `json:"violations,omitempty"`
	Stats       slab.Stats `json:"stats"`
}

// liveObject is one outstanding allocation in the workload.
type liveObject struct {
	ptr    unsafe.Pointer
	size   uint64
	marker byte
}

func runStress() error {
	cfg := stressConfig{
		Iterations:   stressIterations,
		Seed:         stressSeed,
		MaxSize:      stressMaxSize,
		MaxLive:      stressMaxLive,
		Budget:       stressBudget,
		ReclaimLarge: stressReclaim,
	}
	return runStressConfig(cfg)
}

func runStressConfig(cfg stressConfig) error {
	printVerbose("Running %d steps (seed=%d, max-size=%d)\n", cfg.Iterations, cfg.Seed, cfg.MaxSize)

	a, report, err := stress(cfg)
	if a != nil {
		defer a.Close()
	}
	if err != nil {
		return err
	}

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
	} else {
		printInfo("Steps:       %d\n", report.Iterations)
		printInfo("Allocs:      %d\n", report.Allocs)
		printInfo("Frees:       %d\n", report.Frees)
		printInfo("Out of mem:  %d\n", report.OutOfMemory)
		printInfo("Peak live:   %d\n", report.PeakLive)
		printInfo("Violations:  %d\n", len(report.Violations))
		for _, v := range report.Violations {
			printInfo("  %s\n", v)
		}
		if stressStats && !quiet {
			a.PrintStats(os.Stdout)
		}
	}
	if len(report.Violations) > 0 {
		return fmt.Errorf("stress: %d invariant violations", len(report.Violations))
	}
	return nil
}

// stress runs the workload and returns the allocator it used so callers can
// inspect or close it.
func stress(cfg stressConfig) (*slab.Allocator, StressReport, error) {
	if cfg.Iterations < 0 || cfg.MaxLive <= 0 {
		return nil, StressReport{}, errors.New("stress: iterations must be >= 0 and max-live > 0")
	}
	opts := &slab.Options{
		ReclaimLarge: cfg.ReclaimLarge,
		Logger:       logger.L,
		Source:       cfg.Source,
	}
	if opts.Source == nil {
		opts.Source = slab.DefaultPageSource()
	}
	if cfg.Budget > 0 {
		opts.Source = slab.BudgetedPageSource(opts.Source, cfg.Budget)
	}
	a := slab.New(opts)
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	report := StressReport{Iterations: cfg.Iterations}
	live := make([]liveObject, 0, cfg.MaxLive)
	violate := func(format string, args ...any) {
		report.Violations = append(report.Violations, fmt.Sprintf(format, args...))
	}

	for step := range cfg.Iterations {
		if len(live) > 0 && (len(live) == cfg.MaxLive || rng.IntN(2) == 0) {
			i := rng.IntN(len(live))
			obj := live[i]
			if !markerIntact(obj) {
				violate("step %d: object %p (%d bytes) was overwritten", step, obj.ptr, obj.size)
			}
			if res := a.Free(obj.ptr); !res.Recognized() && res != slab.ResultLargeIgnored {
				violate("step %d: free %p returned %s", step, obj.ptr, res)
			}
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			report.Frees++
			continue
		}

		size := rng.Uint64N(cfg.MaxSize + 1)
		p, err := a.TryAlloc(size)
		if err != nil {
			if !errors.Is(err, slab.ErrNoMemory) {
				return a, report, err
			}
			report.OutOfMemory++
			continue
		}
		report.Allocs++
		checkPlacement(a, p, size, step, violate)

		obj := liveObject{ptr: p, size: size, marker: byte(step%251) + 1}
		b := unsafe.Slice((*byte)(p), size)
		for j := range b {
			b[j] = obj.marker
		}
		live = append(live, obj)
		report.PeakLive = max(report.PeakLive, len(live))
	}

	for _, obj := range live {
		if !markerIntact(obj) {
			violate("final: object %p (%d bytes) was overwritten", obj.ptr, obj.size)
		}
	}
	report.Stats = a.Stats()
	return a, report, nil
}

func checkPlacement(a *slab.Allocator, p unsafe.Pointer, size uint64, step int, violate func(string, ...any)) {
	usable := a.UsableSize(p)
	if usable < size {
		violate("step %d: usable size %d < requested %d", step, usable, size)
	}
	if cls, small := slab.ClassFor(size); small {
		bs := slab.ClassSize(cls)
		if usable != bs {
			violate("step %d: usable size %d != class size %d", step, usable, bs)
		}
		if uintptr(p)%uintptr(bs) != 0 {
			violate("step %d: %p not aligned to %d", step, p, bs)
		}
		return
	}
	if usable%slab.PageSize != 0 || uintptr(p)%slab.PageSize != 0 {
		violate("step %d: large object %p (usable %d) not page aligned", step, p, usable)
	}
}

func markerIntact(obj liveObject) bool {
	b := unsafe.Slice((*byte)(obj.ptr), obj.size)
	for _, v := range b {
		if v != obj.marker {
			return false
		}
	}
	return true
}

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/gcvm/cmd/gcvmctl/logger"
	"github.com/joshuapare/gcvm/internal/rusage"
	"github.com/joshuapare/gcvm/vm"
)

var (
	perfRounds     int
	perfBatch      int
	perfThreshold  int
	perfMaxObjects int
)

func init() {
	cmd := newPerfCmd()
	cmd.Flags().IntVar(&perfRounds, "rounds", 1000, "Number of push/pop rounds")
	cmd.Flags().IntVar(&perfBatch, "batch", 20, "Scalars pushed (then popped) per round")
	cmd.Flags().IntVar(&perfThreshold, "threshold", vm.DefaultInitialThreshold, "Initial collection threshold")
	cmd.Flags().IntVar(&perfMaxObjects, "max-objects", 0, "Heap capacity in objects (0 = unbounded)")
	rootCmd.AddCommand(cmd)
}

func newPerfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perf",
		Short: "Measure collector throughput",
		Long: `The perf command repeatedly pushes a batch of scalars and pops them again,
leaving all of them as garbage, and reports how the collector kept up.

Example:
  gcvmctl perf
  gcvmctl perf --rounds 100000 --batch 64
  gcvmctl perf --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerf()
		},
	}
}

type perfResult struct {
	Rounds      int           `json:"rounds"`
	Batch       int           `json:"batch"`
	Cycles      int           `json:"cycles"`
	AutoCycles  int           `json:"auto_cycles"`
	Allocated   int           `json:"allocated"`
	Reclaimed   int           `json:"reclaimed"`
	PeakLive    int           `json:"peak_live"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	GCTime      time.Duration `json:"gc_time_ns"`
	AllocPerSec float64       `json:"alloc_per_sec"`
	MaxRSS      int64         `json:"max_rss_bytes"`
}

func runPerf() error {
	reporter, err := newReporter()
	if err != nil {
		return err
	}

	var gcTime time.Duration
	opts := vm.DefaultOptions()
	opts.InitialThreshold = perfThreshold
	opts.MaxObjects = perfMaxObjects
	opts.StackCapacity = max(perfBatch, vm.DefaultStackCapacity)
	opts.Logger = logger.L
	opts.OnCollect = func(cs vm.CollectStats) {
		gcTime += cs.Duration
		printVerbose("  %s\n", reporter.Cycle(cs))
	}
	v := vm.New(opts)

	logger.Info("perf start", "rounds", perfRounds, "batch", perfBatch, "threshold", perfThreshold)
	start := time.Now()
	for round := 0; round < perfRounds; round++ {
		for i := 0; i < perfBatch; i++ {
			if _, err := v.AllocateScalar(round); err != nil {
				return err
			}
		}
		for i := 0; i < perfBatch; i++ {
			if _, err := v.Pop(); err != nil {
				return err
			}
		}
	}
	if _, err := v.Destroy(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := v.Stats()
	res := perfResult{
		Rounds:     perfRounds,
		Batch:      perfBatch,
		Cycles:     st.Cycles,
		AutoCycles: st.AutoCycles,
		Allocated:  st.Allocated,
		Reclaimed:  st.Reclaimed,
		PeakLive:   st.PeakLive,
		Elapsed:    elapsed,
		GCTime:     gcTime,
	}
	if secs := elapsed.Seconds(); secs > 0 {
		res.AllocPerSec = float64(st.Allocated) / secs
	}
	usage, err := rusage.Self()
	if err != nil {
		logger.Warn("getrusage failed", "error", err)
	}
	res.MaxRSS = usage.MaxRSS
	logger.Info("perf done", "elapsed", elapsed, "cycles", st.Cycles, "max_rss", usage.MaxRSS)

	if jsonOut {
		return printJSON(res)
	}

	printHeading("Performance of GC.")
	if err := reporter.Summary(stdout(), st); err != nil {
		return err
	}
	printInfo("Elapsed: %s (collecting: %s)\n", elapsed.Round(time.Microsecond), gcTime.Round(time.Microsecond))
	printInfo("Throughput: %s allocations/s\n", reporter.Number(int64(res.AllocPerSec)))
	if res.MaxRSS > 0 {
		printInfo("Peak RSS: %s\n", formatBytes(res.MaxRSS))
	}
	return nil
}

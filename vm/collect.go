package vm

import (
	"fmt"
	"time"
)

// CollectStats reports one collection cycle.
type CollectStats struct {
	Cycle     int           // 1-based cycle number
	Automatic bool          // Triggered by allocation rather than Collect
	Reclaimed int           // Objects reclaimed by this cycle
	Remaining int           // Objects that survived
	Threshold int           // Threshold in effect after the cycle
	Duration  time.Duration // Wall time spent marking and sweeping
}

// String formats the cycle the way the classic toy collector reports it.
func (s CollectStats) String() string {
	return fmt.Sprintf("Collected %d objects, %d left.", s.Reclaimed, s.Remaining)
}

// Collect forces a full collection cycle. On a destroyed VM it does nothing
// and returns zero stats.
func (v *VM) Collect() CollectStats {
	if v.destroyed {
		return CollectStats{}
	}
	return v.collect(false)
}

// collect runs mark then sweep and recomputes the threshold.
func (v *VM) collect(automatic bool) CollectStats {
	start := time.Now()

	v.markAll()
	reclaimed := v.sweep()

	remaining := v.heap.Len()
	v.threshold = 2 * remaining

	v.stats.Cycles++
	if automatic {
		v.stats.AutoCycles++
	}
	v.stats.Reclaimed += reclaimed

	cs := CollectStats{
		Cycle:     v.stats.Cycles,
		Automatic: automatic,
		Reclaimed: reclaimed,
		Remaining: remaining,
		Threshold: v.threshold,
		Duration:  time.Since(start),
	}
	v.stats.Last = cs

	v.opts.Logger.Debug("gc cycle",
		"cycle", cs.Cycle,
		"automatic", automatic,
		"reclaimed", reclaimed,
		"remaining", remaining,
		"threshold", cs.Threshold,
		"duration", cs.Duration)

	if v.opts.OnCollect != nil {
		v.opts.OnCollect(cs)
	}
	return cs
}

// sweep reclaims every unmarked object and clears the mark on survivors.
func (v *VM) sweep() int {
	return v.heap.Sweep()
}

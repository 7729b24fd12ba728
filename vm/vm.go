package vm

import "github.com/joshuapare/gcvm/heap"

// VM is a root stack plus the heap it keeps alive.
type VM struct {
	opts Options

	heap  *heap.Heap
	stack []heap.Ref

	// Live-object count at which the next allocation collects.
	threshold int

	// Scratch stack reused by the mark phase.
	work []heap.Ref

	stats     Stats
	fatal     error
	destroyed bool
}

// Stats holds cumulative collector statistics.
type Stats struct {
	Cycles     int // Collection cycles run
	AutoCycles int // Cycles triggered by allocation
	Allocated  int // Objects allocated over the VM's lifetime
	Reclaimed  int // Objects reclaimed over the VM's lifetime
	Live       int // Objects currently live
	PeakLive   int // Highest live count observed
	Threshold  int // Current collection threshold

	// Last is the most recent cycle, zero if none has run.
	Last CollectStats
}

// New creates a VM with an empty root stack and heap. A nil opts uses
// DefaultOptions.
func New(opts *Options) *VM {
	if opts == nil {
		opts = DefaultOptions()
	}
	o := opts.withDefaults()
	return &VM{
		opts:      o,
		heap:      heap.New(o.MaxObjects),
		stack:     make([]heap.Ref, 0, o.StackCapacity),
		threshold: o.InitialThreshold,
	}
}

// check reports whether the VM can accept work.
func (v *VM) check() error {
	if v.destroyed {
		return ErrDestroyed
	}
	return v.fatal
}

// Heap returns the VM's heap for read-only collaborators such as walkers and
// printers. It is nil after Destroy.
func (v *VM) Heap() *heap.Heap {
	return v.heap
}

// Live returns the number of objects currently in the heap.
func (v *VM) Live() int {
	if v.heap == nil {
		return 0
	}
	return v.heap.Len()
}

// Threshold returns the live count at which the next allocation collects.
func (v *VM) Threshold() int {
	return v.threshold
}

// Stats returns cumulative statistics.
func (v *VM) Stats() Stats {
	st := v.stats
	st.Threshold = v.threshold
	if v.heap != nil {
		st.Live = v.heap.Len()
		st.PeakLive = v.heap.Stats().HighWater
	}
	return st
}

// Destroy empties the root stack, runs a final collection that reclaims
// every object, and releases the heap. The VM is unusable afterwards.
func (v *VM) Destroy() (CollectStats, error) {
	if v.destroyed {
		return CollectStats{}, ErrDestroyed
	}
	clear(v.stack)
	v.stack = v.stack[:0]
	final := v.collect(false)
	peak := v.heap.Stats().HighWater

	v.opts.Logger.Debug("vm destroyed",
		"cycles", v.stats.Cycles,
		"allocated", v.stats.Allocated,
		"reclaimed", v.stats.Reclaimed,
		"peak_live", peak)

	v.stats.PeakLive = peak
	v.heap = nil
	v.stack = nil
	v.work = nil
	v.destroyed = true
	return final, nil
}

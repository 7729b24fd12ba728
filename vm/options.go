package vm

import (
	"io"
	"log/slog"
)

const (
	// DefaultStackCapacity is the root stack size used when Options leaves it unset.
	DefaultStackCapacity = 256

	// DefaultInitialThreshold is the live-object count that triggers the first
	// automatic collection.
	DefaultInitialThreshold = 8
)

// Options configures a VM.
type Options struct {
	// StackCapacity bounds the root stack.
	// Default: 256
	StackCapacity int

	// InitialThreshold is the live-object count at which the first automatic
	// collection runs. Later thresholds are twice the surviving count.
	// Default: 8
	InitialThreshold int

	// MaxObjects bounds the number of live objects. Allocation beyond it,
	// after a collection fails to make room, is ErrOutOfMemory.
	// Default: 0 (unbounded)
	MaxObjects int

	// Logger receives a debug record per collection cycle.
	// Default: discard
	Logger *slog.Logger

	// OnCollect, if set, is called after every collection cycle, automatic
	// or explicit.
	OnCollect func(CollectStats)
}

// DefaultOptions returns the options matching the classic toy VM: a 256-slot
// stack and a first collection at eight objects.
func DefaultOptions() *Options {
	return &Options{
		StackCapacity:    DefaultStackCapacity,
		InitialThreshold: DefaultInitialThreshold,
	}
}

// withDefaults fills zero fields.
func (o Options) withDefaults() Options {
	if o.StackCapacity <= 0 {
		o.StackCapacity = DefaultStackCapacity
	}
	if o.InitialThreshold <= 0 {
		o.InitialThreshold = DefaultInitialThreshold
	}
	if o.MaxObjects < 0 {
		o.MaxObjects = 0
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

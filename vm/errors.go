package vm

import "errors"

var (
	// ErrStackOverflow indicates a push onto a full root stack.
	ErrStackOverflow = errors.New("vm: stack overflow")

	// ErrStackUnderflow indicates a pop (or pair construction) with too few roots.
	ErrStackUnderflow = errors.New("vm: stack underflow")

	// ErrOutOfMemory indicates the heap could not hold another object even
	// after a collection. It is latched: the VM rejects further work until
	// destroyed.
	ErrOutOfMemory = errors.New("vm: out of memory")

	// ErrDestroyed indicates use of a VM after Destroy.
	ErrDestroyed = errors.New("vm: destroyed")
)

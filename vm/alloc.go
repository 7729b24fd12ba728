package vm

import (
	"errors"
	"fmt"

	"github.com/joshuapare/gcvm/heap"
)

// allocate creates an object carrying p, collecting first if the live count
// has reached the threshold. If the heap is full and no cycle has run yet in
// this call, one is forced before giving up with ErrOutOfMemory.
func (v *VM) allocate(p heap.Payload) (heap.Ref, error) {
	collected := false
	if v.heap.Len() >= v.threshold {
		v.collect(true)
		collected = true
	}

	ref, err := v.heap.Alloc(p)
	if errors.Is(err, heap.ErrNoSpace) && !collected {
		v.collect(true)
		ref, err = v.heap.Alloc(p)
	}
	if errors.Is(err, heap.ErrNoSpace) {
		v.fatal = fmt.Errorf("%w: %w", ErrOutOfMemory, err)
		v.opts.Logger.Warn("heap exhausted",
			"live", v.heap.Len(),
			"limit", v.heap.Capacity(),
			"roots", len(v.stack))
		return heap.Nil, v.fatal
	}
	if err != nil {
		return heap.Nil, err
	}

	v.stats.Allocated++
	return ref, nil
}

// AllocateScalar allocates a scalar holding value and pushes it. If the stack
// is full nothing is allocated.
func (v *VM) AllocateScalar(value int) (heap.Ref, error) {
	if err := v.check(); err != nil {
		return heap.Nil, err
	}
	if len(v.stack) == cap(v.stack) {
		return heap.Nil, fmt.Errorf("%w: capacity %d", ErrStackOverflow, cap(v.stack))
	}

	ref, err := v.allocate(heap.Scalar{Value: value})
	if err != nil {
		return heap.Nil, err
	}
	v.stack = append(v.stack, ref)
	return ref, nil
}

// AllocatePair pops the top two roots (tail first, then head), allocates a
// pair of them, and pushes the pair.
//
// The pair is allocated while both operands are still on the stack, so a
// collection triggered by the allocation keeps them alive. On error the
// stack is unchanged.
func (v *VM) AllocatePair() (heap.Ref, error) {
	if err := v.check(); err != nil {
		return heap.Nil, err
	}
	n := len(v.stack)
	if n < 2 {
		return heap.Nil, fmt.Errorf("%w: pair needs 2 roots, have %d", ErrStackUnderflow, n)
	}
	tail := v.stack[n-1]
	head := v.stack[n-2]

	ref, err := v.allocate(heap.Pair{Head: head, Tail: tail})
	if err != nil {
		return heap.Nil, err
	}

	v.stack[n-1] = heap.Nil
	v.stack[n-2] = ref
	v.stack = v.stack[:n-1]
	return ref, nil
}

// SetHead replaces the head of pair with target.
func (v *VM) SetHead(pair, target heap.Ref) error {
	if err := v.check(); err != nil {
		return err
	}
	_, tail, err := v.heap.Pair(pair)
	if err != nil {
		return err
	}
	return v.heap.SetPair(pair, target, tail)
}

// SetTail replaces the tail of pair with target.
func (v *VM) SetTail(pair, target heap.Ref) error {
	if err := v.check(); err != nil {
		return err
	}
	head, _, err := v.heap.Pair(pair)
	if err != nil {
		return err
	}
	return v.heap.SetPair(pair, head, target)
}

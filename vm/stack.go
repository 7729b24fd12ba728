package vm

import (
	"fmt"

	"github.com/joshuapare/gcvm/heap"
)

// Push appends ref to the root stack. ref must name a live object.
func (v *VM) Push(ref heap.Ref) error {
	if err := v.check(); err != nil {
		return err
	}
	if !v.heap.Contains(ref) {
		return fmt.Errorf("push %s: %w", ref, heap.ErrBadRef)
	}
	if len(v.stack) == cap(v.stack) {
		return fmt.Errorf("%w: capacity %d", ErrStackOverflow, cap(v.stack))
	}
	v.stack = append(v.stack, ref)
	return nil
}

// Pop removes and returns the most recently pushed root.
func (v *VM) Pop() (heap.Ref, error) {
	if err := v.check(); err != nil {
		return heap.Nil, err
	}
	n := len(v.stack)
	if n == 0 {
		return heap.Nil, ErrStackUnderflow
	}
	ref := v.stack[n-1]
	v.stack[n-1] = heap.Nil
	v.stack = v.stack[:n-1]
	return ref, nil
}

// Peek returns the root n entries below the top (0 is the top) without
// removing it.
func (v *VM) Peek(n int) (heap.Ref, error) {
	if err := v.check(); err != nil {
		return heap.Nil, err
	}
	if n < 0 || n >= len(v.stack) {
		return heap.Nil, fmt.Errorf("%w: peek %d with depth %d", ErrStackUnderflow, n, len(v.stack))
	}
	return v.stack[len(v.stack)-1-n], nil
}

// Depth returns the number of roots on the stack.
func (v *VM) Depth() int {
	return len(v.stack)
}

// StackCapacity returns the maximum stack depth.
func (v *VM) StackCapacity() int {
	return v.opts.StackCapacity
}

// Roots returns a copy of the root stack, bottom first.
func (v *VM) Roots() []heap.Ref {
	roots := make([]heap.Ref, len(v.stack))
	copy(roots, v.stack)
	return roots
}

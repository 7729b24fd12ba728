// Package heap provides the object arena and heap registry for the gcvm
// collector.
//
// # Overview
//
// Every object the VM allocates lives in a slot of a single growable arena.
// Objects are named by Ref handles: a slot index paired with a generation
// counter. When a slot is reclaimed its generation is bumped, so a Ref held
// past its object's lifetime is rejected with ErrBadRef instead of silently
// aliasing whatever object reuses the slot.
//
// # Objects
//
// An object carries exactly one Payload:
//
//   - Scalar{Value}: an integer, no outgoing edges
//   - Pair{Head, Tail}: two references that define the reachability graph
//
// The payload is a sealed sum type, so reading a value out of a pair (or the
// head of a scalar) is a type error reported as ErrInvalidPayload.
//
// # Registry
//
// In-use slots are chained on an intrusive singly-linked list, newest first.
// The collector enumerates it during sweep. Reclaimed slots are chained on a
// separate intrusive free list and reused before the arena grows.
//
//	h := heap.New(0)
//	a, _ := h.Alloc(heap.Scalar{Value: 1})
//	b, _ := h.Alloc(heap.Scalar{Value: 2})
//	p, _ := h.Alloc(heap.Pair{Head: a, Tail: b})
//
//	h.Mark(p)
//	reclaimed := h.Sweep() // a and b were not marked: reclaimed == 2
//
// Marking is the caller's job; see package vm for the tracing collector that
// drives Mark and Sweep.
//
// # Thread Safety
//
// Heap instances are not thread-safe. Callers must synchronize access
// externally.
package heap

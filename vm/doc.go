// Package vm implements a toy stack VM with a stop-the-world mark-and-sweep
// garbage collector.
//
// # Overview
//
// A VM owns a bounded root stack and a heap of scalar and pair objects (see
// package heap). Every object reachable from the root stack, directly or
// through pair edges, survives a collection; everything else is reclaimed.
//
//	v := vm.New(nil)
//	v.AllocateScalar(1)
//	v.AllocateScalar(2)
//	v.AllocatePair() // pops 2 and 1, pushes (1, 2)
//
//	st := v.Collect()
//	fmt.Println(st) // Collected 0 objects, 3 left.
//
//	v.Destroy()
//
// # Collection Policy
//
// Allocation is the only place a collection runs implicitly. When the live
// object count reaches the threshold, the allocator runs a full cycle before
// creating the new object. After every cycle the threshold becomes twice the
// number of survivors, so a growing working set is collected less often and
// a small one is collected promptly. The first threshold comes from
// Options.InitialThreshold.
//
// AllocatePair builds the new pair while both operands are still on the root
// stack, so a collection triggered by that allocation cannot reclaim them.
//
// # Marking
//
// Marking walks pair edges with an explicit work stack rather than recursion,
// so arbitrarily long pair chains do not grow the goroutine stack. An object
// that is already marked is not revisited, which also makes cyclic graphs
// (built with SetHead/SetTail) terminate.
//
// # Errors
//
// Root stack misuse is reported as ErrStackOverflow or ErrStackUnderflow and
// leaves the VM unchanged. Payload misuse surfaces heap.ErrInvalidPayload and
// heap.ErrBadRef. Exhausting Options.MaxObjects is ErrOutOfMemory and is
// fatal for the instance. Collect itself never fails.
//
// # Thread Safety
//
// A VM is single-threaded and not reentrant. Callers must not share one
// across goroutines without external synchronization.
package vm

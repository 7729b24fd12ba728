// Package walker provides read-only traversal of the object graph.
//
// # Overview
//
// Walkers visit the subgraph reachable from a reference in depth-first
// pre-order, head before tail. They never touch the collector's mark bits:
// visited tracking uses a separate Bitmap keyed by arena slot index, so a
// walk can run between collections (for printing or validation) without
// disturbing them.
//
// Traversal is iterative, so long pair chains do not grow the goroutine
// stack, and shared or cyclic structure is visited once.
//
// # Quick Start
//
//	w := walker.New(v.Heap())
//	err := w.Walk(root, func(obj heap.Object, depth int) error {
//	    fmt.Printf("%*s%s\n", depth*2, "", obj.Kind())
//	    return nil
//	})
//
// Count everything reachable from the VM's roots:
//
//	stats, err := walker.Count(v.Heap(), v.Roots()...)
//	fmt.Println(stats)
//
// Return ErrStopWalk from a visitor to end the walk early without error.
package walker

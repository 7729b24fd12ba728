package vm

import "github.com/joshuapare/gcvm/heap"

// markAll marks every object reachable from the root stack.
func (v *VM) markAll() {
	work := v.work[:0]
	for _, root := range v.stack {
		work = v.mark(root, work)
	}
	v.work = work[:0]
}

// mark marks r and everything reachable from it. work is the explicit DFS
// stack; it is returned empty so the caller can reuse its storage.
//
// Objects are marked when pushed, so each is pushed at most once and cycles
// terminate. Tail is pushed before head to visit heads first.
func (v *VM) mark(r heap.Ref, work []heap.Ref) []heap.Ref {
	if !v.heap.Mark(r) {
		return work
	}
	work = append(work, r)
	for len(work) > 0 {
		n := len(work) - 1
		cur := work[n]
		work = work[:n]

		head, tail, ok := v.heap.Edges(cur)
		if !ok {
			continue
		}
		if v.heap.Mark(tail) {
			work = append(work, tail)
		}
		if v.heap.Mark(head) {
			work = append(work, head)
		}
	}
	return work
}

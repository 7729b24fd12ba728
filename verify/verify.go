package verify

import (
	"fmt"

	"github.com/joshuapare/gcvm/heap"
	"github.com/joshuapare/gcvm/vm"
	"github.com/joshuapare/gcvm/walker"
)

// ValidationError describes a broken invariant.
type ValidationError struct {
	Type    string
	Message string
	Ref     heap.Ref // Offending object, heap.Nil if N/A
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Ref != heap.Nil {
		return fmt.Sprintf("%s at %s: %s", e.Type, e.Ref, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates the invariants that hold at any point between VM
// operations. Returns the first error encountered, or nil if all checks pass.
func AllInvariants(v *vm.VM) error {
	h := v.Heap()
	if h == nil {
		return &ValidationError{Type: "VM", Message: "vm has been destroyed"}
	}
	if err := LiveCount(h); err != nil {
		return err
	}
	if err := MarkBits(h); err != nil {
		return err
	}
	return RootsLive(v)
}

// PostCollect validates AllInvariants plus Reachability. Call it directly
// after a collection.
func PostCollect(v *vm.VM) error {
	if err := AllInvariants(v); err != nil {
		return err
	}
	return Reachability(v)
}

// LiveCount checks that the live-object counter matches the registry.
func LiveCount(h *heap.Heap) error {
	n := 0
	h.ForEach(func(heap.Ref) bool {
		n++
		return true
	})
	if n != h.Len() {
		return &ValidationError{
			Type:    "LiveCount",
			Message: fmt.Sprintf("counter says %d live objects, registry holds %d", h.Len(), n),
			Details: map[string]interface{}{"counter": h.Len(), "registry": n},
		}
	}
	return nil
}

// MarkBits checks that every registered object is unmarked.
func MarkBits(h *heap.Heap) error {
	var bad heap.Ref
	h.ForEach(func(r heap.Ref) bool {
		if h.Marked(r) {
			bad = r
			return false
		}
		return true
	})
	if bad != heap.Nil {
		return &ValidationError{
			Type:    "MarkBits",
			Message: "object left marked outside a collection",
			Ref:     bad,
		}
	}
	return nil
}

// RootsLive checks that every root names a live object.
func RootsLive(v *vm.VM) error {
	h := v.Heap()
	for i, r := range v.Roots() {
		if !h.Contains(r) {
			return &ValidationError{
				Type:    "RootsLive",
				Message: fmt.Sprintf("stack slot %d holds a dead reference", i),
				Ref:     r,
				Details: map[string]interface{}{"slot": i},
			}
		}
	}
	return nil
}

// Reachability checks that the registry holds exactly the objects reachable
// from the roots: nothing reachable was reclaimed (every edge resolves) and
// nothing unreachable survived.
func Reachability(v *vm.VM) error {
	h := v.Heap()
	w := walker.New(h)
	for _, root := range v.Roots() {
		if err := w.Walk(root, func(heap.Object, int) error { return nil }); err != nil {
			return &ValidationError{
				Type:    "Reachability",
				Message: fmt.Sprintf("reachable object missing: %v", err),
				Ref:     root,
			}
		}
	}

	var garbage heap.Ref
	unreachable := 0
	h.ForEach(func(r heap.Ref) bool {
		if !w.Visited(r) {
			if garbage == heap.Nil {
				garbage = r
			}
			unreachable++
		}
		return true
	})
	if unreachable > 0 {
		return &ValidationError{
			Type:    "Reachability",
			Message: fmt.Sprintf("%d unreachable objects survived", unreachable),
			Ref:     garbage,
			Details: map[string]interface{}{"unreachable": unreachable},
		}
	}
	return nil
}

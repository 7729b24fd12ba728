package walker

import (
	"errors"
	"fmt"

	"github.com/joshuapare/gcvm/heap"
)

// initialStackCapacity is the pre-allocated DFS stack depth.
const initialStackCapacity = 64

// ErrStopWalk is a sentinel error that can be returned from visitors to stop
// the walk early without triggering an error condition.
var ErrStopWalk = errors.New("stop walk")

// Visitor is called once per object. depth is the number of pair edges
// between the walk's root and obj.
type Visitor func(obj heap.Object, depth int) error

// stackEntry is a pending object in the iterative DFS.
type stackEntry struct {
	ref   heap.Ref
	depth int
}

// Walker traverses a heap. Visited state persists across Walk calls until
// Reset, so walking several roots with one Walker visits each object once.
type Walker struct {
	h       *heap.Heap
	visited *Bitmap
	stack   []stackEntry
}

// New creates a walker over h.
func New(h *heap.Heap) *Walker {
	return &Walker{
		h:       h,
		visited: NewBitmap(h.Stats().ArenaSlots),
		stack:   make([]stackEntry, 0, initialStackCapacity),
	}
}

// Walk visits every not-yet-visited object reachable from root, head before
// tail. A dangling edge is reported as heap.ErrBadRef.
func (w *Walker) Walk(root heap.Ref, fn Visitor) error {
	if !w.h.Contains(root) {
		return fmt.Errorf("walk root %s: %w", root, heap.ErrBadRef)
	}
	if w.visited.IsSet(root.Index()) {
		return nil
	}

	w.visited.Set(root.Index())
	w.stack = append(w.stack[:0], stackEntry{ref: root})
	for len(w.stack) > 0 {
		n := len(w.stack) - 1
		e := w.stack[n]
		w.stack = w.stack[:n]

		obj, err := w.h.Get(e.ref)
		if err != nil {
			return err
		}
		if err := fn(obj, e.depth); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}

		p, ok := obj.Payload.(heap.Pair)
		if !ok {
			continue
		}
		for _, child := range [2]heap.Ref{p.Tail, p.Head} {
			if !w.h.Contains(child) {
				return fmt.Errorf("edge %s -> %s: %w", e.ref, child, heap.ErrBadRef)
			}
			if w.visited.IsSet(child.Index()) {
				continue
			}
			w.visited.Set(child.Index())
			w.stack = append(w.stack, stackEntry{ref: child, depth: e.depth + 1})
		}
	}
	return nil
}

// Visited reports whether r was visited since the last Reset.
func (w *Walker) Visited(r heap.Ref) bool {
	return w.h.Contains(r) && w.visited.IsSet(r.Index())
}

// Reset forgets visited objects so the walker can be reused.
func (w *Walker) Reset() {
	w.visited.Reset()
	w.stack = w.stack[:0]
}

// Walk is a convenience wrapper that walks root with a fresh Walker.
func Walk(h *heap.Heap, root heap.Ref, fn Visitor) error {
	return New(h).Walk(root, fn)
}

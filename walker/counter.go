package walker

import (
	"fmt"

	"github.com/joshuapare/gcvm/heap"
)

// ReachStats summarizes the objects reachable from a set of roots.
type ReachStats struct {
	Objects  int // Distinct reachable objects
	Scalars  int
	Pairs    int
	MaxDepth int // Longest first-visit path, in pair edges
}

// Count walks every root and tallies the distinct objects reached. Shared
// and cyclic structure is counted once.
func Count(h *heap.Heap, roots ...heap.Ref) (*ReachStats, error) {
	var stats ReachStats
	w := New(h)
	for _, root := range roots {
		err := w.Walk(root, func(obj heap.Object, depth int) error {
			stats.Objects++
			switch obj.Kind() {
			case heap.KindScalar:
				stats.Scalars++
			case heap.KindPair:
				stats.Pairs++
			}
			if depth > stats.MaxDepth {
				stats.MaxDepth = depth
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

// String returns a one-line summary.
func (s *ReachStats) String() string {
	return fmt.Sprintf("%d objects (%d scalars, %d pairs), max depth %d",
		s.Objects, s.Scalars, s.Pairs, s.MaxDepth)
}

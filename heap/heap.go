package heap

import "fmt"

// noSlot terminates the registry and free lists.
const noSlot int32 = -1

// slot is one arena entry. While in use, next links the registry; once
// reclaimed, next links the free list and payload is nil.
type slot struct {
	payload Payload
	next    int32
	gen     uint32
	marked  bool
}

// Stats holds arena counters for testing and instrumentation.
type Stats struct {
	AllocCalls int // Successful Alloc calls
	Frees      int // Slots reclaimed by Sweep
	SlotReuses int // Allocations served from the free list
	HighWater  int // Peak number of live objects
	ArenaSlots int // Slots ever created (in use plus free)
}

// Heap is the object arena plus the heap registry. The live-object count is
// the length of the registry list.
type Heap struct {
	slots []slot

	// Registry of in-use slots, newest first.
	head int32

	// Reclaimed slots available for reuse.
	freeHead int32

	live     int
	capacity int // 0 = unlimited

	stats Stats
}

// New creates an empty heap. A positive capacity bounds the number of live
// objects; Alloc fails with ErrNoSpace beyond it. Zero means unlimited.
func New(capacity int) *Heap {
	if capacity < 0 {
		capacity = 0
	}
	return &Heap{
		head:     noSlot,
		freeHead: noSlot,
		capacity: capacity,
	}
}

// Alloc creates a new unmarked object carrying p and prepends it to the
// registry. Pair operands must name live objects. Nothing is linked into the
// registry unless Alloc succeeds.
func (h *Heap) Alloc(p Payload) (Ref, error) {
	switch v := p.(type) {
	case Scalar:
	case Pair:
		if _, err := h.lookup(v.Head); err != nil {
			return Nil, fmt.Errorf("pair head: %w", err)
		}
		if _, err := h.lookup(v.Tail); err != nil {
			return Nil, fmt.Errorf("pair tail: %w", err)
		}
	default:
		return Nil, fmt.Errorf("%w: unsupported payload %T", ErrInvalidPayload, p)
	}

	if h.capacity > 0 && h.live >= h.capacity {
		return Nil, fmt.Errorf("%w: %d objects live (capacity %d)", ErrNoSpace, h.live, h.capacity)
	}

	var idx int32
	if h.freeHead != noSlot {
		idx = h.freeHead
		h.freeHead = h.slots[idx].next
		h.stats.SlotReuses++
	} else {
		h.slots = append(h.slots, slot{})
		idx = int32(len(h.slots) - 1)
		h.stats.ArenaSlots++
	}

	s := &h.slots[idx]
	s.payload = p
	s.marked = false
	s.next = h.head
	h.head = idx

	h.live++
	h.stats.AllocCalls++
	if h.live > h.stats.HighWater {
		h.stats.HighWater = h.live
	}
	return makeRef(idx, s.gen), nil
}

// lookup resolves r to its slot. The pointer is only valid until the next Alloc.
func (h *Heap) lookup(r Ref) (*slot, error) {
	idx := r.index()
	if r == Nil || idx < 0 || int(idx) >= len(h.slots) {
		return nil, fmt.Errorf("%w: %s", ErrBadRef, r)
	}
	s := &h.slots[idx]
	if s.payload == nil || s.gen != r.generation() {
		return nil, fmt.Errorf("%w: %s", ErrBadRef, r)
	}
	return s, nil
}

// Contains reports whether r names a live object.
func (h *Heap) Contains(r Ref) bool {
	_, err := h.lookup(r)
	return err == nil
}

// Get returns a snapshot of the object named by r.
func (h *Heap) Get(r Ref) (Object, error) {
	s, err := h.lookup(r)
	if err != nil {
		return Object{}, err
	}
	return Object{Ref: r, Payload: s.payload, Marked: s.marked}, nil
}

// Kind returns the kind of the object named by r.
func (h *Heap) Kind(r Ref) (Kind, error) {
	s, err := h.lookup(r)
	if err != nil {
		return 0, err
	}
	return s.payload.Kind(), nil
}

// Value returns the integer carried by a scalar.
func (h *Heap) Value(r Ref) (int, error) {
	s, err := h.lookup(r)
	if err != nil {
		return 0, err
	}
	sc, ok := s.payload.(Scalar)
	if !ok {
		return 0, fmt.Errorf("%w: value of %s %s", ErrInvalidPayload, s.payload.Kind(), r)
	}
	return sc.Value, nil
}

// Pair returns the head and tail of a pair.
func (h *Heap) Pair(r Ref) (head, tail Ref, err error) {
	s, err := h.lookup(r)
	if err != nil {
		return Nil, Nil, err
	}
	p, ok := s.payload.(Pair)
	if !ok {
		return Nil, Nil, fmt.Errorf("%w: head/tail of %s %s", ErrInvalidPayload, s.payload.Kind(), r)
	}
	return p.Head, p.Tail, nil
}

// SetPair rewrites the edges of an existing pair. Both targets must be live.
func (h *Heap) SetPair(r, head, tail Ref) error {
	if _, err := h.lookup(head); err != nil {
		return fmt.Errorf("pair head: %w", err)
	}
	if _, err := h.lookup(tail); err != nil {
		return fmt.Errorf("pair tail: %w", err)
	}
	s, err := h.lookup(r)
	if err != nil {
		return err
	}
	if _, ok := s.payload.(Pair); !ok {
		return fmt.Errorf("%w: set head/tail of %s %s", ErrInvalidPayload, s.payload.Kind(), r)
	}
	s.payload = Pair{Head: head, Tail: tail}
	return nil
}

// Edges returns the outgoing references of r. ok is false for scalars and
// for references that do not name a live object.
func (h *Heap) Edges(r Ref) (head, tail Ref, ok bool) {
	s, err := h.lookup(r)
	if err != nil {
		return Nil, Nil, false
	}
	p, isPair := s.payload.(Pair)
	if !isPair {
		return Nil, Nil, false
	}
	return p.Head, p.Tail, true
}

// Mark sets the mark bit of r and reports whether it was previously clear.
// Bad references are ignored and report false.
func (h *Heap) Mark(r Ref) bool {
	s, err := h.lookup(r)
	if err != nil || s.marked {
		return false
	}
	s.marked = true
	return true
}

// Marked reports whether r is live and currently marked.
func (h *Heap) Marked(r Ref) bool {
	s, err := h.lookup(r)
	return err == nil && s.marked
}

// Sweep makes one pass over the registry: unmarked objects are unlinked and
// their slots reclaimed; marked objects survive with the bit cleared.
// It returns the number of objects reclaimed.
func (h *Heap) Sweep() int {
	reclaimed := 0
	prev := noSlot
	cur := h.head
	for cur != noSlot {
		s := &h.slots[cur]
		next := s.next
		if s.marked {
			s.marked = false
			prev = cur
		} else {
			if prev == noSlot {
				h.head = next
			} else {
				h.slots[prev].next = next
			}
			h.release(cur)
			reclaimed++
		}
		cur = next
	}
	return reclaimed
}

// release returns an unlinked slot to the free list.
func (h *Heap) release(idx int32) {
	s := &h.slots[idx]
	s.payload = nil
	s.marked = false
	s.gen++
	s.next = h.freeHead
	h.freeHead = idx
	h.live--
	h.stats.Frees++
}

// ForEach calls fn for every registered object, newest first, until fn
// returns false.
func (h *Heap) ForEach(fn func(r Ref) bool) {
	for cur := h.head; cur != noSlot; cur = h.slots[cur].next {
		if !fn(makeRef(cur, h.slots[cur].gen)) {
			return
		}
	}
}

// Len returns the number of live objects.
func (h *Heap) Len() int {
	return h.live
}

// Capacity returns the live-object bound, or 0 if unbounded.
func (h *Heap) Capacity() int {
	return h.capacity
}

// Stats returns a copy of the arena counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

package heap

import "fmt"

// Ref is a stable handle to a heap object: the slot index (plus one, so the
// zero Ref is never valid) in the low 32 bits and the slot generation in the
// high 32 bits.
type Ref uint64

// Nil is the zero reference. It never names an object.
const Nil Ref = 0

func makeRef(idx int32, gen uint32) Ref {
	return Ref(uint64(gen)<<32 | uint64(uint32(idx)+1))
}

// index returns the slot index, or -1 for Nil.
func (r Ref) index() int32 {
	return int32(uint32(r)) - 1
}

func (r Ref) generation() uint32 {
	return uint32(r >> 32)
}

// Index returns the arena slot index named by r, or -1 for Nil. Indices are
// dense, so they suit bitmaps and slices keyed by object.
func (r Ref) Index() int {
	return int(r.index())
}

// String formats the reference as #index.generation.
func (r Ref) String() string {
	if r == Nil {
		return "#nil"
	}
	return fmt.Sprintf("#%d.%d", r.index(), r.generation())
}

// Kind identifies which payload an object carries.
type Kind uint8

const (
	KindScalar Kind = 1
	KindPair   Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindPair:
		return "pair"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Payload is the data an object carries. It is implemented only by Scalar
// and Pair.
type Payload interface {
	Kind() Kind
	isPayload()
}

// Scalar is an integer payload with no outgoing edges.
type Scalar struct {
	Value int
}

// Kind returns KindScalar.
func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) isPayload() {}

// Pair holds two references. They do not own their targets; the heap owns
// every object collectively.
type Pair struct {
	Head Ref
	Tail Ref
}

// Kind returns KindPair.
func (Pair) Kind() Kind { return KindPair }
func (Pair) isPayload() {}

// Object is a read-only snapshot of a live heap object.
type Object struct {
	Ref     Ref
	Payload Payload
	Marked  bool
}

// Kind returns the kind of the object's payload.
func (o Object) Kind() Kind {
	return o.Payload.Kind()
}

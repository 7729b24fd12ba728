package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registry collects the registry contents in list order.
func registry(h *Heap) []Ref {
	var refs []Ref
	h.ForEach(func(r Ref) bool {
		refs = append(refs, r)
		return true
	})
	return refs
}

func mustAlloc(t testing.TB, h *Heap, p Payload) Ref {
	t.Helper()
	r, err := h.Alloc(p)
	require.NoError(t, err)
	return r
}

func Test_AllocPrependsToRegistry(t *testing.T) {
	h := New(0)
	a := mustAlloc(t, h, Scalar{Value: 1})
	b := mustAlloc(t, h, Scalar{Value: 2})
	c := mustAlloc(t, h, Pair{Head: a, Tail: b})

	require.Equal(t, []Ref{c, b, a}, registry(h), "registry should be newest first")
	require.Equal(t, 3, h.Len())

	for _, r := range []Ref{a, b, c} {
		require.False(t, h.Marked(r), "new objects start unmarked")
	}
}

func Test_PayloadAccess(t *testing.T) {
	h := New(0)
	a := mustAlloc(t, h, Scalar{Value: 7})
	b := mustAlloc(t, h, Scalar{Value: -3})
	p := mustAlloc(t, h, Pair{Head: a, Tail: b})

	v, err := h.Value(a)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	head, tail, err := h.Pair(p)
	require.NoError(t, err)
	require.Equal(t, a, head)
	require.Equal(t, b, tail)

	kind, err := h.Kind(p)
	require.NoError(t, err)
	require.Equal(t, KindPair, kind)

	_, err = h.Value(p)
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, _, err = h.Pair(a)
	require.ErrorIs(t, err, ErrInvalidPayload)

	err = h.SetPair(a, a, b)
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func Test_AllocRejectsBadOperands(t *testing.T) {
	h := New(0)
	a := mustAlloc(t, h, Scalar{Value: 1})

	_, err := h.Alloc(Pair{Head: a, Tail: Nil})
	require.ErrorIs(t, err, ErrBadRef)
	_, err = h.Alloc(Pair{Head: Ref(999), Tail: a})
	require.ErrorIs(t, err, ErrBadRef)
	_, err = h.Alloc(nil)
	require.ErrorIs(t, err, ErrInvalidPayload)

	require.Equal(t, 1, h.Len(), "failed allocations must not be registered")
	require.Len(t, registry(h), 1)
}

func Test_SweepUnlinksHeadAndInterior(t *testing.T) {
	h := New(0)
	refs := make([]Ref, 6)
	for i := range refs {
		refs[i] = mustAlloc(t, h, Scalar{Value: i})
	}
	// Registry order is refs[5]..refs[0]. Keep refs[4] and refs[1]: the list
	// head (refs[5]) and several interior nodes must be unlinked.
	require.True(t, h.Mark(refs[4]))
	require.True(t, h.Mark(refs[1]))
	require.False(t, h.Mark(refs[1]), "second mark reports already marked")

	reclaimed := h.Sweep()
	require.Equal(t, 4, reclaimed)
	require.Equal(t, 2, h.Len())
	require.Equal(t, []Ref{refs[4], refs[1]}, registry(h))

	for _, r := range registry(h) {
		assert.False(t, h.Marked(r), "survivor %s should be unmarked", r)
	}
	for _, i := range []int{0, 2, 3, 5} {
		assert.False(t, h.Contains(refs[i]), "ref %d should be reclaimed", i)
	}
}

func Test_SweepEverything(t *testing.T) {
	h := New(0)
	for i := 0; i < 10; i++ {
		mustAlloc(t, h, Scalar{Value: i})
	}
	require.Equal(t, 10, h.Sweep())
	require.Equal(t, 0, h.Len())
	require.Empty(t, registry(h))
	require.Equal(t, 0, h.Sweep(), "sweeping an empty heap reclaims nothing")
}

func Test_StaleRefRejectedAfterReuse(t *testing.T) {
	h := New(0)
	old := mustAlloc(t, h, Scalar{Value: 1})
	require.Equal(t, 1, h.Sweep())

	fresh := mustAlloc(t, h, Scalar{Value: 2})
	require.Equal(t, old.index(), fresh.index(), "freed slot should be reused")
	require.NotEqual(t, old, fresh)

	_, err := h.Value(old)
	require.ErrorIs(t, err, ErrBadRef)
	v, err := h.Value(fresh)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	st := h.Stats()
	require.Equal(t, 1, st.SlotReuses)
	require.Equal(t, 1, st.ArenaSlots)
	require.Equal(t, 1, st.Frees)
}

func Test_CapacityBound(t *testing.T) {
	h := New(2)
	mustAlloc(t, h, Scalar{Value: 1})
	mustAlloc(t, h, Scalar{Value: 2})

	_, err := h.Alloc(Scalar{Value: 3})
	require.ErrorIs(t, err, ErrNoSpace)
	require.Equal(t, 2, h.Len())

	h.Sweep()
	_, err = h.Alloc(Scalar{Value: 3})
	require.NoError(t, err)
	require.Equal(t, 2, h.Stats().HighWater)
}

func Test_SetPairAllowsCycles(t *testing.T) {
	h := New(0)
	a := mustAlloc(t, h, Scalar{Value: 1})
	p := mustAlloc(t, h, Pair{Head: a, Tail: a})

	require.NoError(t, h.SetPair(p, p, a))
	head, tail, ok := h.Edges(p)
	require.True(t, ok)
	require.Equal(t, p, head)
	require.Equal(t, a, tail)

	_, _, ok = h.Edges(a)
	require.False(t, ok, "scalars have no edges")
}

func Test_RefString(t *testing.T) {
	require.Equal(t, "#nil", Nil.String())
	require.Equal(t, "#0.0", makeRef(0, 0).String())
	require.Equal(t, "#12.3", makeRef(12, 3).String())
}

func BenchmarkAllocSweep(b *testing.B) {
	h := New(0)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 64; j++ {
			if _, err := h.Alloc(Scalar{Value: j}); err != nil {
				b.Fatal(err)
			}
		}
		h.Sweep()
	}
}

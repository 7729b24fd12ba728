package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/gcvm/heap"
	"github.com/joshuapare/gcvm/vm"
)

func Test_PostCollectHealthyVM(t *testing.T) {
	v := vm.New(nil)
	for i := 0; i < 4; i++ {
		_, err := v.AllocateScalar(i)
		require.NoError(t, err)
	}
	_, err := v.AllocatePair()
	require.NoError(t, err)
	_, err = v.Pop()
	require.NoError(t, err)

	require.NoError(t, AllInvariants(v))
	v.Collect()
	require.NoError(t, PostCollect(v))
}

func Test_ReachabilityDetectsGarbage(t *testing.T) {
	v := vm.New(nil)
	_, err := v.AllocateScalar(1)
	require.NoError(t, err)
	garbage, err := v.Pop()
	require.NoError(t, err)

	// Not yet collected: the popped scalar is still registered.
	err = Reachability(v)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "Reachability", verr.Type)
	require.Equal(t, garbage, verr.Ref)
	require.Equal(t, 1, verr.Details["unreachable"])
	require.Contains(t, verr.Error(), "1 unreachable objects survived")

	v.Collect()
	require.NoError(t, Reachability(v))
}

func Test_MarkBitsDetectsStaleMark(t *testing.T) {
	v := vm.New(nil)
	ref, err := v.AllocateScalar(1)
	require.NoError(t, err)

	require.True(t, v.Heap().Mark(ref))
	err = MarkBits(v.Heap())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, ref, verr.Ref)

	v.Collect()
	require.NoError(t, MarkBits(v.Heap()))
}

func Test_DestroyedVM(t *testing.T) {
	v := vm.New(nil)
	_, err := v.Destroy()
	require.NoError(t, err)
	require.Error(t, AllInvariants(v))
}

func Test_ValidationErrorFormat(t *testing.T) {
	e := &ValidationError{Type: "LiveCount", Message: "off by one"}
	require.Equal(t, "LiveCount: off by one", e.Error())

	h := heap.New(0)
	r, err := h.Alloc(heap.Scalar{Value: 1})
	require.NoError(t, err)
	e = &ValidationError{Type: "MarkBits", Message: "left marked", Ref: r}
	require.Equal(t, "MarkBits at #0.0: left marked", e.Error())
	require.NoError(t, LiveCount(h))
}

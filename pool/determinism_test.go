package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllocationDeterminism verifies that the same alloc/free sequence
// produces identical block refs across runs: first-fit has no hidden state.
func TestAllocationDeterminism(t *testing.T) {
	run := func() []Ref {
		p, err := New(16, 8)
		require.NoError(t, err)

		var got []Ref
		record := func(ref Ref) { got = append(got, ref) }

		r0, _, err := p.Alloc()
		require.NoError(t, err)
		record(r0)
		r1, _, err := p.Alloc()
		require.NoError(t, err)
		record(r1)
		r2, _, err := p.Alloc()
		require.NoError(t, err)
		record(r2)

		require.NoError(t, p.Free(r1))
		require.NoError(t, p.Free(r0))

		// Two frees, two allocs: both must come back lowest-index first.
		r3, _, err := p.Alloc()
		require.NoError(t, err)
		record(r3)
		r4, _, err := p.Alloc()
		require.NoError(t, err)
		record(r4)

		return got
	}

	first := run()
	second := run()
	assert.Equal(t, first, second, "allocation order must be deterministic")

	// First-fit specifically: after freeing slots 1 then 0, the next two
	// allocations are 0 then 1.
	assert.Equal(t, []Ref{0, 1, 2, 0, 1}, first)
}

// TestFreeOrderIndependence verifies that the final free set does not depend
// on the order blocks were freed in.
func TestFreeOrderIndependence(t *testing.T) {
	drain := func(p *Pool) []Ref {
		refs := make([]Ref, 0, p.Cap())
		for {
			ref, _, err := p.Alloc()
			if err != nil {
				return refs
			}
			refs = append(refs, ref)
		}
	}

	p1, err := New(8, 5)
	require.NoError(t, err)
	refs1 := drain(p1)
	for _, r := range refs1 {
		require.NoError(t, p1.Free(r))
	}

	p2, err := New(8, 5)
	require.NoError(t, err)
	refs2 := drain(p2)
	for i := len(refs2) - 1; i >= 0; i-- {
		require.NoError(t, p2.Free(refs2[i]))
	}

	assert.Equal(t, p1.FreeCount(), p2.FreeCount())
	assert.Equal(t, drain(p1), drain(p2),
		"allocation order after refill must match regardless of free order")
}

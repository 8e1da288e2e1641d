package pool

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Fuzz_RandomAllocFree_GuardInvariants performs random alloc/free
// against a reference model and validates pool invariants after every step.
func Test_Fuzz_RandomAllocFree_GuardInvariants(t *testing.T) {
	const (
		blockSize  = 24
		blockCount = 17 // deliberately not a multiple of 8 or 64
	)

	p, err := New(blockSize, blockCount)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42)) // fixed seed for reproducibility
	live := make(map[Ref]byte)          // ref -> fill pattern

	for step := 0; step < 1000; step++ {
		switch rng.Intn(3) {
		case 0: // allocate and stamp a pattern
			ref, buf, allocErr := p.Alloc()
			if len(live) == blockCount {
				require.ErrorIs(t, allocErr, ErrExhausted,
					"step %d: alloc must fail when full", step)
				break
			}
			require.NoError(t, allocErr, "step %d", step)
			_, dup := live[ref]
			require.False(t, dup, "step %d: ref %d already live", step, ref)

			pat := byte(rng.Intn(255) + 1)
			for i := range buf {
				buf[i] = pat
			}
			live[ref] = pat

		case 1: // free a random live block
			for ref := range live {
				require.NoError(t, p.Free(ref), "step %d", step)
				delete(live, ref)
				break
			}

		case 2: // hostile free: out-of-range ref or already-free slot
			bad := Ref(rng.Intn(blockCount * 2))
			err := p.Free(bad)
			if _, isLive := live[bad]; isLive {
				require.NoError(t, err, "step %d", step)
				delete(live, bad)
			} else {
				require.Error(t, err, "step %d: invalid free must be rejected", step)
			}
		}

		validatePoolInvariants(t, p, live, step)
	}
}

// validatePoolInvariants checks the model against the pool: free accounting
// and the contents of every live block.
func validatePoolInvariants(t *testing.T, p *Pool, live map[Ref]byte, step int) {
	t.Helper()

	require.Equal(t, p.Cap()-len(live), p.FreeCount(),
		"step %d: free count diverged from model", step)

	for ref, pat := range live {
		buf, err := p.BlockAt(ref)
		require.NoError(t, err, "step %d: live ref %d", step, ref)
		for i, b := range buf {
			require.Equalf(t, pat, b,
				"step %d: block %d byte %d corrupted", step, ref, i)
		}
	}
}

// Test_Fuzz_StressAllocFree runs rapid drain/refill cycles.
func Test_Fuzz_StressAllocFree(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping stress test in short mode")
	}

	p, err := New(64, 256)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(12345))

	for round := 0; round < 20; round++ {
		refs := make([]Ref, 0, p.Cap())
		for {
			ref, _, allocErr := p.Alloc()
			if allocErr != nil {
				require.ErrorIs(t, allocErr, ErrExhausted)
				break
			}
			refs = append(refs, ref)
		}
		require.Len(t, refs, p.Cap(), "round %d: drain must fill the pool", round)

		rng.Shuffle(len(refs), func(i, j int) { refs[i], refs[j] = refs[j], refs[i] })
		for _, ref := range refs {
			require.NoError(t, p.Free(ref), "round %d", round)
		}
		require.Equal(t, p.Cap(), p.FreeCount(), "round %d", round)
	}
}

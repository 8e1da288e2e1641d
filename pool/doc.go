// Package pool provides a fixed-block memory pool: a pre-sized contiguous
// byte region divided into equal-size blocks, allocated first-fit and freed
// with full validation, without touching the general-purpose heap after
// construction.
//
// # Overview
//
// A Pool owns a storage buffer of blockCount × blockSize bytes and a compact
// occupancy bitmap with one bit per block (bit set = allocated). All four
// core operations work on that single structure:
//
//   - Alloc(): first-fit scan for the lowest-index free block
//   - Free(ref) / FreeBytes(p): validated release back to the free set
//   - FreeCount(): number of free blocks
//   - Reset(): zero storage and occupancy, discarding all allocations
//
// # Usage Example
//
//	p, err := pool.New(32, 4)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := p.Alloc()
//	if err != nil {
//	    return err // pool.ErrExhausted when all blocks are taken
//	}
//
//	copy(buf, payload)
//
//	// Later, return the block to the free set.
//	err = p.Free(ref)
//
// # Allocation Policy
//
// Alloc always selects the lowest-indexed free block (first-fit). The policy
// is deterministic: freeing the lowest-index live block guarantees the next
// Alloc returns that same block. Returned block contents are NOT zeroed;
// callers must treat them as uninitialized.
//
// # Failure Modes
//
// The allocator never panics on misuse and a failed operation never mutates
// pool state. Exhaustion is reported as ErrExhausted. Invalid releases
// (foreign pointer, misaligned pointer, out-of-range index, double free) are
// reported as distinct sentinel errors; callers that want silent-no-op
// semantics can discard them.
//
// # Storage Backing
//
// By default storage lives on the Go heap. WithBuffer lets the caller supply
// the region, and NewOffHeap places it in an anonymous memory mapping outside
// the Go heap (see Close).
//
// # Thread Safety
//
// Pool instances are not thread-safe. Callers must synchronize access
// externally; a single mutex guarding all operations is sufficient.
package pool

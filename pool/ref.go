package pool

// Ref is an opaque handle to a block: the block's slot index within the
// pool. Refs are only meaningful on the pool that issued them.
type Ref uint32

// BlockAt re-derives the byte slice for a currently allocated block. It
// reports ErrOutOfRange for an index past the end of the pool and
// ErrNotAllocated for a free slot, so stale refs cannot observe memory they
// no longer own.
func (p *Pool) BlockAt(ref Ref) ([]byte, error) {
	if uint(ref) >= uint(p.blockCount) {
		return nil, ErrOutOfRange
	}
	if !p.occupied.Test(uint(ref)) {
		return nil, ErrNotAllocated
	}
	return p.slot(int(ref)), nil
}

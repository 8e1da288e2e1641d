package pool

import (
	"math"
	"unsafe"

	"github.com/bits-and-blooms/bitset"
)

// Pool is a fixed-block allocator over a contiguous byte region.
//
// Geometry (block size and block count) is fixed at construction; the pool
// never grows or shrinks. The zero value is not usable - construct with New,
// NewOffHeap, or NewFromSnapshot.
type Pool struct {
	// data is the storage region: blockCount contiguous slots of blockSize
	// bytes each. Slot i occupies data[i*blockSize : (i+1)*blockSize].
	data []byte

	// occupied has one bit per block; bit i set means slot i is allocated.
	// Padding bits beyond blockCount are never set or consulted.
	occupied *bitset.BitSet

	blockSize  int
	blockCount int

	// release unmaps off-heap storage; nil for heap-backed pools.
	release func() error

	stats Stats
}

// Option configures a Pool at construction time.
type Option func(*config)

type config struct {
	buf []byte
}

// WithBuffer supplies the storage region instead of allocating one. The
// buffer length must equal blockSize * blockCount. The pool takes ownership
// of the buffer's contents; callers must not write to it directly while any
// block is live.
func WithBuffer(buf []byte) Option {
	return func(c *config) { c.buf = buf }
}

// New constructs a Pool with blockCount blocks of blockSize bytes each.
// Storage and occupancy start zeroed: every block is free.
func New(blockSize, blockCount int, opts ...Option) (*Pool, error) {
	if blockSize <= 0 {
		return nil, ErrBadBlockSize
	}
	if blockCount <= 0 || int64(blockCount) > math.MaxUint32 {
		return nil, ErrBadBlockCount
	}
	if blockSize > math.MaxInt/blockCount {
		return nil, ErrBadBlockSize
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	size := blockSize * blockCount
	buf := cfg.buf
	if buf == nil {
		buf = make([]byte, size)
	} else if len(buf) != size {
		return nil, ErrBufferSize
	}

	p := &Pool{
		data:       buf,
		occupied:   bitset.New(uint(blockCount)),
		blockSize:  blockSize,
		blockCount: blockCount,
	}
	p.Reset()
	return p, nil
}

// Reset zero-fills the storage region and clears every occupancy bit,
// discarding all prior allocations. It is idempotent and may be called at
// any time to reuse the pool from a clean state.
func (p *Pool) Reset() {
	clear(p.data)
	p.occupied.ClearAll()
	p.stats.Resets++
	p.stats.InUse = 0
}

// Alloc returns the lowest-indexed free block (first-fit), marking it
// allocated. The returned slice has len == cap == BlockSize and aliases the
// pool's storage; its contents are unspecified, not zeroed.
//
// When every block is allocated, Alloc returns ErrExhausted. It never
// blocks and never grows the pool.
func (p *Pool) Alloc() (Ref, []byte, error) {
	p.stats.AllocCalls++

	idx, ok := p.occupied.NextClear(0)
	if !ok || idx >= uint(p.blockCount) {
		p.stats.AllocFailures++
		return 0, nil, ErrExhausted
	}

	p.occupied.Set(idx)
	p.stats.InUse++
	if p.stats.InUse > p.stats.HighWater {
		p.stats.HighWater = p.stats.InUse
	}
	return Ref(idx), p.slot(int(idx)), nil
}

// Free returns the referenced block to the free set. Block contents are left
// untouched. Freeing an already-free block reports ErrNotAllocated; an index
// past the end of the pool reports ErrOutOfRange. A failed Free changes
// nothing.
func (p *Pool) Free(ref Ref) error {
	p.stats.FreeCalls++

	if uint(ref) >= uint(p.blockCount) {
		p.stats.FreeFailures++
		return ErrOutOfRange
	}
	if !p.occupied.Test(uint(ref)) {
		p.stats.FreeFailures++
		return ErrNotAllocated
	}

	p.occupied.Clear(uint(ref))
	p.stats.InUse--
	return nil
}

// FreeBytes releases a block identified by the slice returned from Alloc.
// It is the raw-pointer-compatible entry point: the slice is validated, not
// trusted. Validation requires, in order, that the slice points inside the
// pool's storage (ErrNotInPool), at an exact block boundary (ErrMisaligned),
// at a slot index inside the pool (ErrOutOfRange), and at a block that is
// currently allocated (ErrNotAllocated).
//
// FreeBytes is safe to call with any slice, including memory far outside the
// pool; a failed call changes nothing and never reads or writes through the
// given slice.
func (p *Pool) FreeBytes(b []byte) error {
	ref, err := p.refOf(b)
	if err != nil {
		p.stats.FreeCalls++
		p.stats.FreeFailures++
		return err
	}
	return p.Free(ref)
}

// refOf recovers the block index for a slice into the pool's storage.
func (p *Pool) refOf(b []byte) (Ref, error) {
	if len(b) == 0 || len(p.data) == 0 {
		return 0, ErrNotInPool
	}

	// Address arithmetic only; the slice itself is never dereferenced, so a
	// foreign or dangling slice cannot fault here.
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.data)))
	ptr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if ptr < base || ptr >= base+uintptr(len(p.data)) {
		return 0, ErrNotInPool
	}

	off := ptr - base
	if off%uintptr(p.blockSize) != 0 {
		return 0, ErrMisaligned
	}

	idx := off / uintptr(p.blockSize)
	if idx >= uintptr(p.blockCount) {
		return 0, ErrOutOfRange
	}
	return Ref(idx), nil
}

// FreeCount returns the number of free blocks, scanning the full occupancy
// bitmap. O(blockCount).
func (p *Pool) FreeCount() int {
	return p.blockCount - int(p.occupied.Count())
}

// Cap returns the total number of blocks in the pool.
func (p *Pool) Cap() int { return p.blockCount }

// BlockSize returns the size of each block in bytes.
func (p *Pool) BlockSize() int { return p.blockSize }

// Close releases off-heap storage for pools constructed with NewOffHeap.
// For heap-backed pools it is a no-op. Close is idempotent; the pool must
// not be used after a successful Close.
func (p *Pool) Close() error {
	if p.release == nil {
		return nil
	}
	rel := p.release
	p.release = nil
	p.data = nil
	return rel()
}

// slot returns the full-slice expression for block i, so writes through one
// block can never spill into its neighbor.
func (p *Pool) slot(i int) []byte {
	start := i * p.blockSize
	end := start + p.blockSize
	return p.data[start:end:end]
}

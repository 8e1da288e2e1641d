package pool

import (
	"math"
	"math/bits"

	"github.com/bits-and-blooms/bitset"
)

// Snapshot captures the complete state of a Pool: geometry, occupancy words,
// and a deep copy of the storage region. A Snapshot shares no memory with
// the pool it came from.
type Snapshot struct {
	BlockSize  int
	BlockCount int
	Occupied   []uint64 // occupancy bitmap words, little-endian bit order
	Data       []byte   // storage region copy, BlockCount*BlockSize bytes
}

// Snapshot returns a deep copy of the pool's current state.
func (p *Pool) Snapshot() *Snapshot {
	words := p.occupied.Bytes()
	occ := make([]uint64, len(words))
	copy(occ, words)

	data := make([]byte, len(p.data))
	copy(data, p.data)

	return &Snapshot{
		BlockSize:  p.blockSize,
		BlockCount: p.blockCount,
		Occupied:   occ,
		Data:       data,
	}
}

// NewFromSnapshot reconstructs a heap-backed Pool from a snapshot. The
// snapshot is validated first: geometry must satisfy the same bounds New
// enforces, the data length
// and occupancy word count must match the geometry, and no padding bit
// beyond BlockCount may be set. Invalid input reports ErrBadSnapshot.
func NewFromSnapshot(s *Snapshot) (*Pool, error) {
	if s == nil || s.BlockSize <= 0 || s.BlockCount <= 0 {
		return nil, ErrBadSnapshot
	}
	if int64(s.BlockCount) > math.MaxUint32 || s.BlockSize > math.MaxInt/s.BlockCount {
		return nil, ErrBadSnapshot
	}
	if len(s.Data) != s.BlockSize*s.BlockCount {
		return nil, ErrBadSnapshot
	}
	if len(s.Occupied) != (s.BlockCount+63)/64 {
		return nil, ErrBadSnapshot
	}
	if tail := s.BlockCount % 64; tail != 0 {
		if s.Occupied[len(s.Occupied)-1]>>uint(tail) != 0 {
			return nil, ErrBadSnapshot
		}
	}

	data := make([]byte, len(s.Data))
	copy(data, s.Data)
	occ := make([]uint64, len(s.Occupied))
	copy(occ, s.Occupied)

	var inUse int64
	for _, w := range occ {
		inUse += int64(bits.OnesCount64(w))
	}

	p := &Pool{
		data:       data,
		occupied:   bitset.FromWithLength(uint(s.BlockCount), occ),
		blockSize:  s.BlockSize,
		blockCount: s.BlockCount,
	}
	p.stats.InUse = inUse
	p.stats.HighWater = inUse
	return p, nil
}

package pool

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Snapshot wire format, little-endian:
//
//	[4]byte  magic "PKSN"
//	uint16   version (currently 1)
//	uint32   block size
//	uint32   block count
//	uint32   occupancy word count
//	[]uint64 occupancy words (raw)
//	...      storage region, one zstd frame to EOF
//
// Block contents compress well in practice (freed blocks keep their last
// payload; reset pools are all zeroes), so only the storage region is
// compressed.

var snapshotMagic = [4]byte{'P', 'K', 'S', 'N'}

const snapshotVersion uint16 = 1

type snapshotHeader struct {
	Magic      [4]byte
	Version    uint16
	BlockSize  uint32
	BlockCount uint32
	WordCount  uint32
}

// WriteTo serializes the snapshot. It implements io.WriterTo.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	hdr := snapshotHeader{
		Magic:      snapshotMagic,
		Version:    snapshotVersion,
		BlockSize:  uint32(s.BlockSize),
		BlockCount: uint32(s.BlockCount),
		WordCount:  uint32(len(s.Occupied)),
	}
	if err := binary.Write(cw, binary.LittleEndian, hdr); err != nil {
		return cw.n, fmt.Errorf("pool: write snapshot header: %w", err)
	}
	if err := binary.Write(cw, binary.LittleEndian, s.Occupied); err != nil {
		return cw.n, fmt.Errorf("pool: write occupancy words: %w", err)
	}

	zw, err := zstd.NewWriter(cw)
	if err != nil {
		return cw.n, fmt.Errorf("pool: zstd writer: %w", err)
	}
	if _, err := zw.Write(s.Data); err != nil {
		zw.Close()
		return cw.n, fmt.Errorf("pool: write storage: %w", err)
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("pool: flush storage: %w", err)
	}
	return cw.n, nil
}

// ReadSnapshot deserializes a snapshot written by WriteTo. Malformed or
// truncated input reports an error wrapping ErrBadSnapshot; it never panics.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var hdr snapshotHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", ErrBadSnapshot, err)
	}
	if hdr.Magic != snapshotMagic {
		return nil, fmt.Errorf("%w: bad magic", ErrBadSnapshot)
	}
	if hdr.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, hdr.Version)
	}
	if hdr.BlockSize == 0 || hdr.BlockCount == 0 {
		return nil, fmt.Errorf("%w: zero geometry", ErrBadSnapshot)
	}
	// Bound the storage size before allocating anything from the header.
	if uint64(hdr.BlockSize)*uint64(hdr.BlockCount) > uint64(math.MaxInt) {
		return nil, fmt.Errorf("%w: geometry overflow", ErrBadSnapshot)
	}
	// Words must cover exactly the declared block count.
	wantWords := (uint64(hdr.BlockCount) + 63) / 64
	if uint64(hdr.WordCount) != wantWords {
		return nil, fmt.Errorf("%w: occupancy word count mismatch", ErrBadSnapshot)
	}

	occ := make([]uint64, hdr.WordCount)
	if err := binary.Read(r, binary.LittleEndian, occ); err != nil {
		return nil, fmt.Errorf("%w: short occupancy: %v", ErrBadSnapshot, err)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd reader: %v", ErrBadSnapshot, err)
	}
	defer zr.Close()

	data := make([]byte, uint64(hdr.BlockSize)*uint64(hdr.BlockCount))
	if _, err := io.ReadFull(zr, data); err != nil {
		return nil, fmt.Errorf("%w: short storage: %v", ErrBadSnapshot, err)
	}

	return &Snapshot{
		BlockSize:  int(hdr.BlockSize),
		BlockCount: int(hdr.BlockCount),
		Occupied:   occ,
		Data:       data,
	}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

package pool

import "github.com/poolkit/poolkit/internal/offheap"

// NewOffHeap constructs a Pool whose storage lives in an anonymous memory
// mapping outside the Go heap, so block payloads add no garbage collector
// pressure. Call Close to release the mapping; on platforms without mmap the
// storage silently falls back to the heap and Close is a no-op.
func NewOffHeap(blockSize, blockCount int, opts ...Option) (*Pool, error) {
	if blockSize <= 0 {
		return nil, ErrBadBlockSize
	}
	if blockCount <= 0 {
		return nil, ErrBadBlockCount
	}

	buf, cleanup, err := offheap.Alloc(blockSize * blockCount)
	if err != nil {
		return nil, err
	}

	p, err := New(blockSize, blockCount, append(opts, WithBuffer(buf))...)
	if err != nil {
		_ = cleanup()
		return nil, err
	}
	p.release = cleanup
	return p, nil
}

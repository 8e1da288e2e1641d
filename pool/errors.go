package pool

import "errors"

var (
	// ErrExhausted indicates that every block is allocated; Alloc cannot
	// succeed until a block is freed.
	ErrExhausted = errors.New("pool: exhausted, no free block")

	// ErrOutOfRange indicates a block reference past the end of the pool.
	ErrOutOfRange = errors.New("pool: block reference out of range")

	// ErrNotAllocated indicates a release of a block that is already free
	// (double free).
	ErrNotAllocated = errors.New("pool: block is not allocated")

	// ErrNotInPool indicates a byte slice whose backing memory does not lie
	// inside the pool's storage.
	ErrNotInPool = errors.New("pool: memory not owned by this pool")

	// ErrMisaligned indicates a byte slice that points inside the pool but
	// not at a block boundary.
	ErrMisaligned = errors.New("pool: pointer not aligned to a block boundary")

	// ErrBadBlockSize indicates a non-positive block size.
	ErrBadBlockSize = errors.New("pool: block size must be > 0")

	// ErrBadBlockCount indicates a non-positive or unrepresentable block count.
	ErrBadBlockCount = errors.New("pool: block count must be > 0")

	// ErrBufferSize indicates a caller-supplied buffer whose length does not
	// equal blockSize * blockCount.
	ErrBufferSize = errors.New("pool: buffer length does not match pool geometry")

	// ErrBadSnapshot indicates a snapshot that fails validation on restore.
	ErrBadSnapshot = errors.New("pool: invalid snapshot")
)

//go:build unix

// Package offheap provides byte regions allocated outside the Go heap via
// anonymous private memory mappings, with a plain heap fallback on platforms
// without mmap.
package offheap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc maps size bytes of zeroed, readable and writable memory outside the
// Go heap. It returns the region and a cleanup function that unmaps it;
// cleanup is safe to call exactly once.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("offheap: invalid size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, fmt.Errorf("offheap: mmap %d bytes: %w", size, err)
	}
	cleanup := func() error {
		return unix.Munmap(data)
	}
	return data, cleanup, nil
}

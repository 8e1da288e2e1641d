//go:build !unix

// Package offheap provides byte regions allocated outside the Go heap via
// anonymous private memory mappings, with a plain heap fallback on platforms
// without mmap.
package offheap

import "fmt"

// Alloc falls back to a heap allocation when anonymous mappings are not
// available. The cleanup function is a no-op; the GC reclaims the region.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("offheap: invalid size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}

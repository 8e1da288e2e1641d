package pool

// Stats holds cumulative allocator counters for instrumentation and tests.
// Counters are maintained inline on the single-threaded hot path; reading
// them while another goroutine mutates the pool is a data race, like every
// other Pool operation.
type Stats struct {
	AllocCalls    int64 // total Alloc() calls
	AllocFailures int64 // Alloc() calls that returned ErrExhausted
	FreeCalls     int64 // total Free()/FreeBytes() calls
	FreeFailures  int64 // releases rejected by validation
	Resets        int64 // Reset() calls (New counts as one)
	InUse         int64 // blocks currently allocated
	HighWater     int64 // peak simultaneous allocations since construction
}

// Stats returns a copy of the pool's counters.
func (p *Pool) Stats() Stats {
	return p.stats
}

//go:build unix

package offheap

import "testing"

func TestAllocReadWrite(t *testing.T) {
	data, cleanup, err := Alloc(4096)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(data) != 4096 {
		t.Fatalf("len mismatch: got %d want 4096", len(data))
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zeroed: 0x%x", i, b)
		}
	}
	data[0] = 0xde
	data[len(data)-1] = 0xad
	if data[0] != 0xde || data[len(data)-1] != 0xad {
		t.Fatal("mapping not writable")
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}

func TestAllocInvalidSize(t *testing.T) {
	if _, _, err := Alloc(0); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, _, err := Alloc(-1); err == nil {
		t.Fatal("expected error for negative size")
	}
}

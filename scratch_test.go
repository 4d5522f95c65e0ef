package memscan

import "testing"

func TestGetScratchHeapBelowThreshold(t *testing.T) {
	buf, free, err := getScratch(scratchMmapThreshold - 1)
	if err != nil {
		t.Fatal(err)
	}
	defer free()
	if len(buf) != scratchMmapThreshold-1 {
		t.Fatalf("got %d bytes, want %d", len(buf), scratchMmapThreshold-1)
	}
}

func TestGetScratchMmapAboveThreshold(t *testing.T) {
	size := scratchMmapThreshold * 2
	buf, free, err := getScratch(size)
	if err != nil {
		t.Fatal(err)
	}
	defer free()
	if len(buf) != size {
		t.Fatalf("got %d bytes, want %d", len(buf), size)
	}
	// The buffer must be writable and independent of other allocations.
	buf[0] = 0xFF
	if buf[0] != 0xFF {
		t.Fatalf("scratch buffer did not retain a write")
	}
}

func TestNewScratchBufferRoundTrip(t *testing.T) {
	sb, err := NewScratchBuffer(memPageSize)
	if err != nil {
		t.Fatal(err)
	}
	defer sb.Close()

	b := sb.Bytes()
	if len(b) != memPageSize {
		t.Fatalf("got %d bytes, want %d", len(b), memPageSize)
	}
	b[0] = 0x42
	if sb.Bytes()[0] != 0x42 {
		t.Fatalf("write through Bytes() did not persist")
	}
}

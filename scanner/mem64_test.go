package scanner

import "testing"

func TestMem64TruncatesToEightBytes(t *testing.T) {
	m := NewMem64([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if m.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", m.Len())
	}
}

func TestMem64ShortReadFailsWiderExtraction(t *testing.T) {
	m := NewMem64([]byte{1, 2})
	if _, ok := m.Uint32(false); ok {
		t.Fatal("Uint32 should fail on a 2-byte window")
	}
	if v, ok := m.Uint16(false); !ok || v != 0x0201 {
		t.Fatalf("Uint16 = %#x, ok=%v, want 0x0201/true", v, ok)
	}
}

func TestMem64Float32RoundTrip(t *testing.T) {
	m := NewMem64([]byte{0, 0, 0x80, 0x3F}) // 1.0f little-endian
	f, ok := m.Float32(false)
	if !ok || f != 1.0 {
		t.Fatalf("Float32() = %v, ok=%v, want 1.0/true", f, ok)
	}
}

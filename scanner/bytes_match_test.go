package scanner

import "testing"

func TestMatchBytesAtExact(t *testing.T) {
	uv, err := NewBytesValue([]byte{0xDE, 0xAD, 0xBE, 0xEF}, nil)
	if err != nil {
		t.Fatal(err)
	}
	buf := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}
	size, matched := MatchBytesAt(buf, uv)
	if !matched || size != 4 {
		t.Fatalf("matched=%v size=%d, want true/4", matched, size)
	}

	if _, matched := MatchBytesAt([]byte{0xDE, 0xAD, 0xBE, 0xFF}, uv); matched {
		t.Fatal("expected mismatch on last byte")
	}
}

func TestMatchBytesAtWithMask(t *testing.T) {
	uv, err := NewBytesValue([]byte{0xDE, 0x00, 0xBE, 0xEF}, []byte{0xFF, 0x00, 0xFF, 0xFF})
	if err != nil {
		t.Fatal(err)
	}
	// second byte is masked out, so any value there should match.
	buf := []byte{0xDE, 0x99, 0xBE, 0xEF}
	if _, matched := MatchBytesAt(buf, uv); !matched {
		t.Fatal("masked byte should not block the match")
	}
}

func TestNewBytesValueRejectsMismatchedMaskLength(t *testing.T) {
	if _, err := NewBytesValue([]byte{1, 2, 3}, []byte{1, 2}); err == nil {
		t.Fatal("expected an error for a mask shorter than the pattern")
	}
}

func TestFindBytePattern(t *testing.T) {
	buf := []byte("aaXXbbXXcc")
	offsets := findBytePattern(buf, []byte("XX"), nil)
	if len(offsets) != 2 || offsets[0] != 2 || offsets[1] != 6 {
		t.Fatalf("got %v, want [2 6]", offsets)
	}
}

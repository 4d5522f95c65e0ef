package memscan

import (
	"testing"

	"memscan/scanner"
)

func TestFormatValueIntegers(t *testing.T) {
	cases := []struct {
		dataType scanner.Type
		value    []byte
		want     string
	}{
		{scanner.Int8, []byte{0xFF}, "-1"},
		{scanner.Uint8, []byte{0xFF}, "255"},
		{scanner.Int16, []byte{0xFF, 0xFF}, "-1"},
		{scanner.Uint32, []byte{0x2A, 0x00, 0x00, 0x00}, "42"},
	}
	for _, c := range cases {
		if got := FormatValue(c.value, c.dataType, false); got != c.want {
			t.Errorf("FormatValue(%v, %v) = %q, want %q", c.value, c.dataType, got, c.want)
		}
	}
}

func TestFormatValueReverseEndian(t *testing.T) {
	// Little-endian 1 vs the same bytes read as big-endian.
	le := FormatValue([]byte{0x01, 0x00, 0x00, 0x00}, scanner.Uint32, false)
	be := FormatValue([]byte{0x01, 0x00, 0x00, 0x00}, scanner.Uint32, true)
	if le != "1" {
		t.Fatalf("little-endian FormatValue = %q, want 1", le)
	}
	if be == le {
		t.Fatalf("reverseEndian formatting did not change the result: %q", be)
	}
	if be != "16777216" {
		t.Fatalf("big-endian FormatValue = %q, want 16777216", be)
	}
}

func TestFormatValueTruncated(t *testing.T) {
	if got := FormatValue([]byte{0x01}, scanner.Uint32, false); got != "?" {
		t.Fatalf("FormatValue with a short buffer = %q, want ?", got)
	}
}

func TestFormatValueBytes(t *testing.T) {
	if got := FormatValue([]byte{0xDE, 0xAD}, scanner.Bytes, false); got != "DE AD" {
		t.Fatalf("FormatValue(Bytes) = %q, want %q", got, "DE AD")
	}
}

func TestFormatValueString(t *testing.T) {
	if got := FormatValue([]byte("hi\x00garbage"), scanner.String, false); got != "hi" {
		t.Fatalf("FormatValue(String) = %q, want %q", got, "hi")
	}
}

func TestFormatValueFloat(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x80, 0x3F} // 1.0f little-endian
	if got := FormatValue(buf, scanner.Float32, false); got != "1" {
		t.Fatalf("FormatValue(Float32) = %q, want 1", got)
	}
}

func TestFormatAddress(t *testing.T) {
	if got := FormatAddress(0x1234); got != "0x0000000000001234" {
		t.Fatalf("FormatAddress = %q", got)
	}
}

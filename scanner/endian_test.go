package scanner

import "testing"

func TestByteSwapRoundTrip(t *testing.T) {
	if swap16(swap16(0x1234)) != 0x1234 {
		t.Fatal("swap16 is not its own inverse")
	}
	if swap32(swap32(0x12345678)) != 0x12345678 {
		t.Fatal("swap32 is not its own inverse")
	}
	if swap64(swap64(0x0123456789ABCDEF)) != 0x0123456789ABCDEF {
		t.Fatal("swap64 is not its own inverse")
	}
}

func TestEndianRoundTrip(t *testing.T) {
	if littleEndianToHost16(hostToLittleEndian16(0xBEEF)) != 0xBEEF {
		t.Fatal("little-endian 16-bit round trip broke")
	}
	if bigEndianToHost16(hostToBigEndian16(0xBEEF)) != 0xBEEF {
		t.Fatal("big-endian 16-bit round trip broke")
	}
	if networkEndianToHost16(hostToNetworkEndian16(0xBEEF)) != 0xBEEF {
		t.Fatal("network 16-bit round trip broke")
	}

	if littleEndianToHost32(hostToLittleEndian32(0xDEADBEEF)) != 0xDEADBEEF {
		t.Fatal("little-endian 32-bit round trip broke")
	}
	if bigEndianToHost32(hostToBigEndian32(0xDEADBEEF)) != 0xDEADBEEF {
		t.Fatal("big-endian 32-bit round trip broke")
	}
	if networkEndianToHost32(hostToNetworkEndian32(0xDEADBEEF)) != 0xDEADBEEF {
		t.Fatal("network 32-bit round trip broke")
	}

	const v64 = 0x0123456789ABCDEF
	if littleEndianToHost64(hostToLittleEndian64(v64)) != v64 {
		t.Fatal("little-endian 64-bit round trip broke")
	}
	if bigEndianToHost64(hostToBigEndian64(v64)) != v64 {
		t.Fatal("big-endian 64-bit round trip broke")
	}
	if networkEndianToHost64(hostToNetworkEndian64(v64)) != v64 {
		t.Fatal("network 64-bit round trip broke")
	}
}

func TestNetworkOrderIsBigEndian(t *testing.T) {
	if hostToNetworkEndian16(0xBEEF) != hostToBigEndian16(0xBEEF) {
		t.Fatal("network byte order must match big-endian")
	}
	if hostToNetworkEndian32(0xDEADBEEF) != hostToBigEndian32(0xDEADBEEF) {
		t.Fatal("network byte order must match big-endian")
	}
}

func TestDecodeHonorsReverseFlag(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	if got := decodeU16(b, false); got != 0x0201 {
		t.Fatalf("decodeU16 little-endian = %#x, want 0x0201", got)
	}
	if got := decodeU16(b, true); got != swap16(0x0201) {
		t.Fatalf("decodeU16 reversed = %#x, want %#x", got, swap16(0x0201))
	}

	if got := decodeU32(b, false); got != 0x04030201 {
		t.Fatalf("decodeU32 little-endian = %#x, want 0x04030201", got)
	}
	if got := decodeU32(b, true); got != swap32(0x04030201) {
		t.Fatalf("decodeU32 reversed = %#x, want %#x", got, swap32(0x04030201))
	}

	if got := decodeU64(b, false); got != 0x0807060504030201 {
		t.Fatalf("decodeU64 little-endian = %#x, want 0x0807060504030201", got)
	}
	if got := decodeU64(b, true); got != swap64(0x0807060504030201) {
		t.Fatalf("decodeU64 reversed = %#x, want %#x", got, swap64(0x0807060504030201))
	}
}

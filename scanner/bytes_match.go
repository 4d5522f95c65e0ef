package scanner

// MatchBytesAt reports whether uv's byte pattern (honoring its optional
// equal-length mask, where a 0 mask byte means "don't care" at that offset)
// matches buf starting at offset 0. Byte-pattern and string matches scan at
// every offset, not just Mem64's fixed 8-byte numeric window, so this
// operates directly on the region's read buffer.
func MatchBytesAt(buf []byte, uv *UserValue) (size int, matched bool) {
	pattern := uv.Bytes()
	mask := uv.Mask()
	if len(pattern) == 0 || len(buf) < len(pattern) {
		return 0, false
	}
	if !bytesMatchAt(buf, pattern, mask, 0) {
		return 0, false
	}
	return len(pattern), true
}

// findBytePattern reports every offset in buf where pattern matches, honoring
// an optional equal-length mask. It uses the same per-offset comparison
// (bytesMatchAt) as MatchBytesAt.
func findBytePattern(buf, pattern, mask []byte) []int {
	if len(pattern) == 0 || len(buf) < len(pattern) {
		return nil
	}
	var offsets []int
	for i := 0; i+len(pattern) <= len(buf); i++ {
		if bytesMatchAt(buf, pattern, mask, i) {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

func bytesMatchAt(buf, pattern, mask []byte, at int) bool {
	for j, want := range pattern {
		got := buf[at+j]
		if len(mask) != 0 {
			got &= mask[j]
			want &= mask[j]
		}
		if got != want {
			return false
		}
	}
	return true
}

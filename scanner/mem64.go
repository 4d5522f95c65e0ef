package scanner

import "math"

// Mem64 is a read-only window over up to 8 bytes of target memory plus a
// declared valid length. Matchers only ever see a Mem64, never a pointer
// into a mapped buffer, so a bad read can't corrupt the scanner's own heap.
type Mem64 struct {
	buf [8]byte
	n   int
}

// NewMem64 copies up to 8 bytes of b into a window. Extra bytes are ignored.
func NewMem64(b []byte) Mem64 {
	var m Mem64
	m.n = copy(m.buf[:], b)
	return m
}

func (m Mem64) Len() int {
	return m.n
}

func (m Mem64) Bytes() []byte {
	return m.buf[:m.n]
}

func (m Mem64) Byte(i int) (byte, bool) {
	if i < 0 || i >= m.n {
		return 0, false
	}
	return m.buf[i], true
}

func (m Mem64) Uint8() (uint8, bool) {
	if m.n < 1 {
		return 0, false
	}
	return m.buf[0], true
}

func (m Mem64) Int8() (int8, bool) {
	v, ok := m.Uint8()
	return int8(v), ok
}

func (m Mem64) Uint16(reverse bool) (uint16, bool) {
	if m.n < 2 {
		return 0, false
	}
	return decodeU16(m.buf[:2], reverse), true
}

func (m Mem64) Int16(reverse bool) (int16, bool) {
	v, ok := m.Uint16(reverse)
	return int16(v), ok
}

func (m Mem64) Uint32(reverse bool) (uint32, bool) {
	if m.n < 4 {
		return 0, false
	}
	return decodeU32(m.buf[:4], reverse), true
}

func (m Mem64) Int32(reverse bool) (int32, bool) {
	v, ok := m.Uint32(reverse)
	return int32(v), ok
}

func (m Mem64) Uint64(reverse bool) (uint64, bool) {
	if m.n < 8 {
		return 0, false
	}
	return decodeU64(m.buf[:8], reverse), true
}

func (m Mem64) Int64(reverse bool) (int64, bool) {
	v, ok := m.Uint64(reverse)
	return int64(v), ok
}

func (m Mem64) Float32(reverse bool) (float32, bool) {
	v, ok := m.Uint32(reverse)
	if !ok {
		return 0, false
	}
	return math.Float32frombits(v), true
}

func (m Mem64) Float64(reverse bool) (float64, bool) {
	v, ok := m.Uint64(reverse)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(v), true
}

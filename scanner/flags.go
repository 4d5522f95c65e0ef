package scanner

import "strings"

// MatchFlags tags a tracked cell with every width/shape it currently
// matches. Width flags are independent: a single byte can simultaneously be
// the start of a B8, B16, B32, B64, F32 and F64 match. A cell whose bitset
// is Empty is not a match and is a hole a narrowing scan may skip.
type MatchFlags uint16

const Empty MatchFlags = 0

const (
	B8 MatchFlags = 1 << iota
	B16
	B32
	B64
	F32
	F64
	StringFlag
	ByteArrayFlag
)

var flagNames = []struct {
	flag MatchFlags
	name string
}{
	{B8, "B8"}, {B16, "B16"}, {B32, "B32"}, {B64, "B64"},
	{F32, "F32"}, {F64, "F64"},
	{StringFlag, "STRING"}, {ByteArrayFlag, "BYTE_ARRAY"},
}

func (f MatchFlags) Has(bit MatchFlags) bool {
	return f&bit != 0
}

func (f MatchFlags) Set(bit MatchFlags) MatchFlags {
	return f | bit
}

func (f MatchFlags) IsMatch() bool {
	return f != Empty
}

// Widest returns the widest numeric width flag set, in bytes, or 0 if none.
func (f MatchFlags) Widest() int {
	switch {
	case f.Has(B64) || f.Has(F64):
		return 8
	case f.Has(B32) || f.Has(F32):
		return 4
	case f.Has(B16):
		return 2
	case f.Has(B8):
		return 1
	default:
		return 0
	}
}

func (f MatchFlags) String() string {
	if f == Empty {
		return "EMPTY"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// WidthFlag returns the single width flag corresponding to a byte size, or
// Empty if the size has no numeric-integer counterpart.
func WidthFlag(size int) MatchFlags {
	switch size {
	case 1:
		return B8
	case 2:
		return B16
	case 4:
		return B32
	case 8:
		return B64
	default:
		return Empty
	}
}

package scanner

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Option selects how a floating-point equality match tolerates the target's
// stored representation, mirroring the "rounded / extreme / truncated"
// choices a user typically wants when the target computed the value from
// an integer that was later rounded for display.
type Option uint8

const (
	OptionFloatUnrounded Option = iota
	// OptionFloatRounded: floor(x+0.5) == target
	OptionFloatRounded
	// OptionFloatExtreme: floor(x) == target OR ceil(x) == target
	OptionFloatExtreme
	// OptionFloatTruncated: int(x) == target
	OptionFloatTruncated
)

func (opt Option) String() string {
	switch opt {
	case OptionFloatRounded:
		return "rounded"
	case OptionFloatExtreme:
		return "extreme"
	case OptionFloatTruncated:
		return "truncated"
	default:
		return "unrounded"
	}
}

// UserValue is the tagged value a caller supplies to a scan: a sum of
// scalar/bytes+mask/string payloads plus a flags bitset marking which
// widths the value is valid at, per the aggregated-type width filter in
// the matcher factory. It is passed by reference into matcher invocations
// and is never mutated by the scan engine.
type UserValue struct {
	kind Type

	i, iHigh int64
	u, uHigh uint64
	f, fHigh float64
	hasHigh  bool

	bytes []byte
	mask  []byte

	str string

	flags  MatchFlags
	option Option
}

// Kind reports the data type the value was constructed for.
func (v *UserValue) Kind() Type {
	return v.kind
}

func (v *UserValue) Flags() MatchFlags {
	return v.flags
}

// WithFlags restricts which width flags an aggregated (Any*) match tries.
// A zero value means "no restriction" (try every applicable width).
func (v *UserValue) WithFlags(flags MatchFlags) *UserValue {
	v.flags = flags
	return v
}

func (v *UserValue) Option() Option {
	return v.option
}

func (v *UserValue) WithOption(option Option) *UserValue {
	if option >= OptionFloatUnrounded && option <= OptionFloatTruncated {
		v.option = option
	}
	return v
}

func (v *UserValue) HasOption() bool {
	return v.kind.IsFloat() && v.option > OptionFloatUnrounded && v.option <= OptionFloatTruncated
}

func (v *UserValue) HasHigh() bool {
	return v.hasHigh
}

// Int returns the low (or exact, for non-range predicates) bound as int64.
func (v *UserValue) Int() int64 { return v.i }

// IntHigh returns the canonicalized high bound.
func (v *UserValue) IntHigh() int64 { return v.iHigh }

func (v *UserValue) Uint() uint64       { return v.u }
func (v *UserValue) UintHigh() uint64   { return v.uHigh }
func (v *UserValue) Float() float64     { return v.f }
func (v *UserValue) FloatHigh() float64 { return v.fHigh }

func (v *UserValue) Bytes() []byte { return v.bytes }
func (v *UserValue) Mask() []byte  { return v.mask }
func (v *UserValue) Str() string   { return v.str }

// Size returns the byte width the value occupies in target memory for
// scalar kinds, or the pattern length for Bytes/String.
func (v *UserValue) Size() int {
	if size := v.kind.ByteSize(); size > 0 {
		return size
	}
	switch v.kind {
	case Bytes:
		return len(v.bytes)
	case String:
		return len(v.str)
	default:
		return 0
	}
}

func NewIntValue(kind Type, i int64) *UserValue {
	return &UserValue{kind: kind, i: i, u: uint64(i), f: float64(i)}
}

func NewUintValue(kind Type, u uint64) *UserValue {
	return &UserValue{kind: kind, u: u, i: int64(u), f: float64(u)}
}

func NewFloatValue(kind Type, f float64, opts ...Option) *UserValue {
	v := &UserValue{kind: kind, f: f, i: int64(f), u: uint64(int64(f))}
	if len(opts) > 0 {
		v.WithOption(opts[0])
	}
	return v
}

// NewRangeValue builds a MATCH_RANGE bound pair, canonicalized so low <= high
// (swapped if the caller passed them reversed), per the Region/UserValue
// invariant in the data model.
func NewRangeValue(kind Type, low, high float64) *UserValue {
	if low > high {
		low, high = high, low
	}
	return &UserValue{
		kind: kind, hasHigh: true,
		i: int64(low), iHigh: int64(high),
		u: uint64(int64(low)), uHigh: uint64(int64(high)),
		f: low, fHigh: high,
	}
}

// NewBytesValue builds a byte-pattern value with an optional equal-length
// mask; a nil mask compares every byte exactly.
func NewBytesValue(pattern, mask []byte) (*UserValue, error) {
	if len(mask) != 0 && len(mask) != len(pattern) {
		return nil, fmt.Errorf("scanner: mask length %d does not match pattern length %d", len(mask), len(pattern))
	}
	v := &UserValue{kind: Bytes, bytes: append([]byte(nil), pattern...)}
	if len(mask) != 0 {
		v.mask = append([]byte(nil), mask...)
	}
	return v, nil
}

func NewStringValue(s string) *UserValue {
	return &UserValue{kind: String, str: s, bytes: []byte(s)}
}

// FromHexString parses a whitespace-separated hex byte string ("FF 01 AA")
// into a Bytes UserValue, in the format the CLI accepts for byte patterns.
func FromHexString(s string) (*UserValue, error) {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("scanner: invalid hex string %q", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}
	return NewBytesValue(b, nil)
}

// ParseScalar parses s as kind and returns a UserValue holding it, the way
// the CLI turns typed-in text into a scan value.
func ParseScalar(kind Type, s string) (*UserValue, error) {
	switch kind {
	case Int8, Int16, Int32, Int64:
		i, err := strconv.ParseInt(s, 10, kind.BitSize())
		if err != nil {
			return nil, err
		}
		return NewIntValue(kind, i), nil
	case Uint8, Uint16, Uint32, Uint64:
		u, err := strconv.ParseUint(s, 10, kind.BitSize())
		if err != nil {
			return nil, err
		}
		return NewUintValue(kind, u), nil
	case Float32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, err
		}
		return NewFloatValue(kind, f), nil
	case Float64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return NewFloatValue(kind, f), nil
	case Bytes:
		return FromHexString(s)
	case String:
		return NewStringValue(s), nil
	default:
		return nil, fmt.Errorf("scanner: cannot parse a literal for aggregated type %s", kind)
	}
}

func (v *UserValue) String() string {
	switch v.kind {
	case Bytes:
		return fmt.Sprintf("% 02X", v.bytes)
	case String:
		return v.str
	case Float32, Float64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		if v.hasHigh {
			return fmt.Sprintf("[%d,%d]", v.i, v.iHigh)
		}
		return strconv.FormatInt(v.i, 10)
	}
}

// integerFloatRange32/64 return the [min, max) window this value's rounding
// Option implies (Rounded, Extreme or Truncated). The windows are fixed
// offsets around the value, not scaled by magnitude; the relative-epsilon
// comparison used when no Option is set lives in floatEqual32/64.
func (v *UserValue) integerFloatRange32() (min, max float32) {
	f := float32(v.f)
	switch v.option {
	case OptionFloatRounded:
		r := float32(math.Round(float64(f)))
		return r - 0.5, r + 0.5
	case OptionFloatExtreme:
		return f - 1.0 + float32Epsilon, f + 1.0
	case OptionFloatTruncated:
		r := float32(math.Trunc(float64(f)))
		return r, r + 1.0
	default:
		return f, f
	}
}

func (v *UserValue) integerFloatRange64() (min, max float64) {
	f := v.f
	switch v.option {
	case OptionFloatRounded:
		r := math.Round(f)
		return r - 0.5, r + 0.5
	case OptionFloatExtreme:
		return f - 1.0 + float64Epsilon, f + 1.0
	case OptionFloatTruncated:
		r := math.Trunc(f)
		return r, r + 1.0
	default:
		return f, f
	}
}

func (v *UserValue) isIntegerFloatWithOption() bool {
	if v.option < OptionFloatRounded || v.option > OptionFloatTruncated {
		return false
	}
	switch v.kind {
	case Float32:
		f := float32(v.f)
		return f == float32(int32(f))
	case Float64:
		return v.f == float64(int64(v.f))
	default:
		return false
	}
}

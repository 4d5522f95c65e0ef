package scanner

import "math"

// numeric is the set of Go types a numericMatchCore instantiation can run
// over: every integer width plus both floats, mirroring the C++ template
// parameter of the original numericMatchCore<T>.
type numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// numericMatchCore evaluates matchType for a single decoded value cur,
// optionally comparing against a decoded old value and/or a UserValue.
// It is safe to call with a nil userValue for match types that don't need
// one (MatchAny and the old-value-only predicates).
func numericMatchCore[T numeric](matchType MatchType, cur T, old *T, uv *UserValue) bool {
	switch matchType {
	case MatchAny:
		return true

	case MatchEqualTo:
		return numericEqualsUser(cur, uv)
	case MatchNotEqualTo:
		return !numericEqualsUser(cur, uv)
	case MatchGreaterThan:
		return numericCompareUser(cur, uv) > 0
	case MatchLessThan:
		return numericCompareUser(cur, uv) < 0
	case MatchRange:
		return numericInRange(cur, uv)

	case MatchUpdate:
		return true
	case MatchNotChanged:
		return old != nil && numericEquals(cur, *old)
	case MatchChanged:
		return old != nil && !numericEquals(cur, *old)
	case MatchIncreased:
		return old != nil && numericCompare(cur, *old) > 0
	case MatchDecreased:
		return old != nil && numericCompare(cur, *old) < 0
	case MatchIncreasedBy:
		return old != nil && numericEquals(cur-*old, numericFromUser[T](uv))
	case MatchDecreasedBy:
		return old != nil && numericEquals(*old-cur, numericFromUser[T](uv))

	default:
		return false
	}
}

func numericFromUser[T numeric](uv *UserValue) T {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return T(uv.Float())
	default:
		if isSignedNumeric(zero) {
			return T(uv.Int())
		}
		return T(uv.Uint())
	}
}

func isSignedNumeric[T numeric](zero T) bool {
	switch any(zero).(type) {
	case int8, int16, int32, int64:
		return true
	default:
		return false
	}
}

func numericEquals[T numeric](a, b T) bool {
	switch v := any(a).(type) {
	case float32:
		return floatEqual32(v, any(b).(float32))
	case float64:
		return floatEqual64(v, any(b).(float64))
	default:
		return a == b
	}
}

func numericCompare[T numeric](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func numericEqualsUser[T numeric](cur T, uv *UserValue) bool {
	switch v := any(cur).(type) {
	case float32:
		if uv.HasOption() {
			min, max := uv.integerFloatRange32()
			return v >= min && v < max
		}
		return floatEqual32(v, float32(uv.Float()))
	case float64:
		if uv.HasOption() {
			min, max := uv.integerFloatRange64()
			return v >= min && v < max
		}
		return floatEqual64(v, uv.Float())
	default:
		return numericCompareUser(cur, uv) == 0
	}
}

func numericCompareUser[T numeric](cur T, uv *UserValue) int {
	switch v := any(cur).(type) {
	case float32:
		return compareFloat64(float64(v), uv.Float())
	case float64:
		return compareFloat64(v, uv.Float())
	default:
		if isSignedNumeric(cur) {
			return compareInt64(int64(cur), uv.Int())
		}
		return compareUint64(uint64(cur), uv.Uint())
	}
}

func numericInRange[T numeric](cur T, uv *UserValue) bool {
	switch v := any(cur).(type) {
	case float32:
		f := float64(v)
		return f >= uv.Float() && f <= uv.FloatHigh()
	case float64:
		return v >= uv.Float() && v <= uv.FloatHigh()
	default:
		if isSignedNumeric(cur) {
			i := int64(cur)
			return i >= uv.Int() && i <= uv.IntHigh()
		}
		u := uint64(cur)
		return u >= uv.Uint() && u <= uv.UintHigh()
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// floatEqual32/64 use a relative epsilon rather than exact bit equality, so
// a value the target recomputed via a slightly different instruction order
// still matches. Resolves the Design Notes' float-tolerance open question.
func floatEqual32(a, b float32) bool {
	if a == b {
		return true
	}
	diff := math.Abs(float64(a - b))
	largest := math.Max(math.Abs(float64(a)), math.Abs(float64(b)))
	return diff <= largest*1e-7
}

func floatEqual64(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff <= largest*1e-13
}

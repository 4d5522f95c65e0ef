package scanner

// Type identifies the on-target layout a UserValue is interpreted against.
// All scalar types are memory aligned; Bytes and String are not.
type Type uint8

const (
	Bytes Type = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	String

	// AnyInteger tries every integer width at the same address.
	AnyInteger
	// AnyFloat tries both float widths at the same address.
	AnyFloat
	// AnyNumber tries every integer and float width at the same address.
	AnyNumber
)

var typeName = [...]string{
	"Bytes", "Int8", "Int16", "Int32", "Int64",
	"Uint8", "Uint16", "Uint32", "Uint64",
	"Float32", "Float64", "String",
	"AnyInteger", "AnyFloat", "AnyNumber",
}

func (t Type) String() string {
	if int(t) < len(typeName) {
		return typeName[t]
	}
	return "Unknown"
}

// ByteSize returns the fixed width in bytes, or 0 when the type is
// variable-length (Bytes, String) or aggregated (AnyInteger/AnyFloat/AnyNumber).
func (t Type) ByteSize() int {
	switch t {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	default:
		return 0
	}
}

func (t Type) BitSize() int {
	return t.ByteSize() * 8
}

// Aggregated reports whether t tries multiple widths at a single address.
func (t Type) Aggregated() bool {
	return t == AnyInteger || t == AnyFloat || t == AnyNumber
}

// IsFloat reports whether t is a floating-point scalar type.
func (t Type) IsFloat() bool {
	return t == Float32 || t == Float64
}

// Aligned reports whether memory for t must be accessed at a width-aligned
// offset. Only Bytes and String scan at every byte offset.
func (t Type) Aligned() bool {
	return t != Bytes && t != String
}

// MatchType is the predicate applied by a matcher routine.
type MatchType uint8

const (
	MatchAny MatchType = iota
	MatchEqualTo
	MatchNotEqualTo
	MatchGreaterThan
	MatchLessThan
	MatchRange
	MatchUpdate
	MatchNotChanged
	MatchChanged
	MatchIncreased
	MatchDecreased
	MatchIncreasedBy
	MatchDecreasedBy

	// MatchBytePattern compares against UserValue's byte+mask pattern.
	MatchBytePattern
	// MatchRegex compiles UserValue's string as a regular expression.
	MatchRegex
)

var matchTypeName = [...]string{
	"MATCH_ANY", "MATCH_EQUAL_TO", "MATCH_NOT_EQUAL_TO",
	"MATCH_GREATER_THAN", "MATCH_LESS_THAN", "MATCH_RANGE",
	"MATCH_UPDATE", "MATCH_NOT_CHANGED", "MATCH_CHANGED",
	"MATCH_INCREASED", "MATCH_DECREASED",
	"MATCH_INCREASED_BY", "MATCH_DECREASED_BY",
	"MATCH_BYTE_PATTERN", "MATCH_REGEX",
}

func (m MatchType) String() string {
	if int(m) < len(matchTypeName) {
		return matchTypeName[m]
	}
	return "MATCH_UNKNOWN"
}

// UsesOldValue reports whether the match type needs the cell's previously
// recorded byte, i.e. is only meaningful during a narrowing scan.
func (m MatchType) UsesOldValue() bool {
	switch m {
	case MatchUpdate, MatchNotChanged, MatchChanged,
		MatchIncreased, MatchDecreased,
		MatchIncreasedBy, MatchDecreasedBy:
		return true
	default:
		return false
	}
}

// UsesUserValue reports whether the match type compares against the
// user-supplied value at all.
func (m MatchType) UsesUserValue() bool {
	switch m {
	case MatchAny, MatchUpdate, MatchNotChanged, MatchChanged,
		MatchIncreased, MatchDecreased:
		return false
	default:
		return true
	}
}

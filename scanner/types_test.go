package scanner

import "testing"

func TestTypeByteSize(t *testing.T) {
	cases := map[Type]int{
		Int8: 1, Uint8: 1,
		Int16: 2, Uint16: 2,
		Int32: 4, Uint32: 4, Float32: 4,
		Int64: 8, Uint64: 8, Float64: 8,
		Bytes: 0, String: 0, AnyInteger: 0,
	}
	for typ, want := range cases {
		if got := typ.ByteSize(); got != want {
			t.Errorf("%s.ByteSize() = %d, want %d", typ, got, want)
		}
	}
}

func TestTypeAggregated(t *testing.T) {
	for _, typ := range []Type{AnyInteger, AnyFloat, AnyNumber} {
		if !typ.Aggregated() {
			t.Errorf("%s should be aggregated", typ)
		}
	}
	if Int32.Aggregated() {
		t.Fatal("Int32 is not aggregated")
	}
}

func TestTypeAligned(t *testing.T) {
	if Bytes.Aligned() || String.Aligned() {
		t.Fatal("Bytes and String scan at every offset, not just aligned ones")
	}
	if !Int32.Aligned() {
		t.Fatal("Int32 requires alignment")
	}
}

func TestMatchTypeUsesOldValue(t *testing.T) {
	for _, m := range []MatchType{MatchUpdate, MatchNotChanged, MatchChanged, MatchIncreased, MatchDecreased, MatchIncreasedBy, MatchDecreasedBy} {
		if !m.UsesOldValue() {
			t.Errorf("%s should use the old value", m)
		}
	}
	if MatchEqualTo.UsesOldValue() {
		t.Fatal("MATCH_EQUAL_TO does not need the old value")
	}
}

func TestMatchTypeUsesUserValue(t *testing.T) {
	if MatchAny.UsesUserValue() {
		t.Fatal("MATCH_ANY ignores the user value")
	}
	if !MatchEqualTo.UsesUserValue() {
		t.Fatal("MATCH_EQUAL_TO needs the user value")
	}
}

package scanner

import "testing"

func TestUserValueIntegerFloatRange32(t *testing.T) {
	tests := []struct {
		input   float64
		option  Option
		wantMin float32
		wantMax float32
	}{
		// Rounded: Round(100.2) -> 100 -> [99.5, 100.5)
		{100.2, OptionFloatRounded, 99.5, 100.5},
		// Rounded: Round(100.8) -> 101 -> [100.5, 101.5)
		{100.8, OptionFloatRounded, 100.5, 101.5},
		// Truncated: Trunc(100.9) -> 100 -> [100.0, 101.0)
		{100.9, OptionFloatTruncated, 100.0, 101.0},
		// Extreme: 100.0 -> [99.00001, 101.0)
		{100.0, OptionFloatExtreme, 100.0 - 1.0 + float32Epsilon, 101.0},
	}

	for _, tt := range tests {
		val := NewFloatValue(Float32, tt.input, tt.option)
		min, max := val.integerFloatRange32()
		if min != tt.wantMin || max != tt.wantMax {
			t.Errorf("F32 %s(%v): got [%v, %v], want [%v, %v]",
				tt.option, tt.input, min, max, tt.wantMin, tt.wantMax)
		}
	}
}

func TestUserValueIntegerFloatRange64(t *testing.T) {
	tests := []struct {
		input   float64
		option  Option
		wantMin float64
		wantMax float64
	}{
		{100.2, OptionFloatRounded, 99.5, 100.5},
		{100.8, OptionFloatRounded, 100.5, 101.5},
		{100.9, OptionFloatTruncated, 100.0, 101.0},
		{100.0, OptionFloatExtreme, 100.0 - 1.0 + float64Epsilon, 101.0},
	}

	for _, tt := range tests {
		val := NewFloatValue(Float64, tt.input, tt.option)
		min, max := val.integerFloatRange64()
		if min != tt.wantMin || max != tt.wantMax {
			t.Errorf("F64 %s(%v): got [%v, %v], want [%v, %v]",
				tt.option, tt.input, min, max, tt.wantMin, tt.wantMax)
		}
	}
}

func TestUserValueIsIntegerFloatWithOption(t *testing.T) {
	v := NewFloatValue(Float32, 100.0, OptionFloatRounded)
	if !v.isIntegerFloatWithOption() {
		t.Fatal("100.0 with a rounding option should be treated as a whole number")
	}

	v2 := NewFloatValue(Float32, 100.5, OptionFloatRounded)
	if v2.isIntegerFloatWithOption() {
		t.Fatal("100.5 is not a whole number")
	}

	v3 := NewFloatValue(Float64, 42.0)
	if v3.isIntegerFloatWithOption() {
		t.Fatal("no option set, should not be treated as a rounding window")
	}
}

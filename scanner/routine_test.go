package scanner

import "testing"

func TestMakeNumericRoutineNilSaveFlagsDoesNotPanic(t *testing.T) {
	mem := NewMem64([]byte{42, 0, 0, 0})
	routine := makeNumericRoutine[int32](MatchEqualTo, false)

	n := routine(mem, Mem64{}, NewIntValue(Int32, 42), nil)
	if n != 4 {
		t.Fatalf("got %d, want 4", n)
	}
}

func TestMakeNumericRoutineSetsWidthFlag(t *testing.T) {
	mem := NewMem64([]byte{42, 0})
	var flags MatchFlags
	routine := makeNumericRoutine[uint16](MatchAny, false)

	n := routine(mem, Mem64{}, nil, &flags)
	if n != 2 {
		t.Fatalf("got %d, want 2", n)
	}
	if flags != B16 {
		t.Fatalf("flags = %v, want B16", flags)
	}
}

func TestMakeAnyIntegerRoutineFindsAMatchingWidth(t *testing.T) {
	mem := NewMem64([]byte{0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	routine := makeAnyIntegerRoutine(MatchAny, false)

	n := routine(mem, Mem64{}, nil, nil)
	if n <= 0 {
		t.Fatal("expected at least one integer width to match MATCH_ANY")
	}
}

func TestMakeAnyFloatRoutineMatchesFloat32(t *testing.T) {
	mem := NewMem64([]byte{0, 0, 0x80, 0x3F}) // float32 1.0
	routine := makeAnyFloatRoutine(MatchAny, false)

	n := routine(mem, Mem64{}, nil, nil)
	if n != 4 {
		t.Fatalf("got %d, want 4 (float32)", n)
	}
}

func TestMakeAnyNumberRoutineNilSaveFlagsDoesNotPanic(t *testing.T) {
	mem := NewMem64([]byte{42})
	routine := makeAnyNumberRoutine(MatchAny, false)

	n := routine(mem, Mem64{}, nil, nil)
	if n <= 0 {
		t.Fatal("expected uint8 width to match MATCH_ANY")
	}
}

func TestMakeNumericRoutineHonorsReverseEndian(t *testing.T) {
	mem := NewMem64([]byte{0x00, 0x01}) // big-endian 1, little-endian 256
	routine := makeNumericRoutine[uint16](MatchEqualTo, true)

	n := routine(mem, Mem64{}, NewUintValue(Uint16, 1), nil)
	if n != 2 {
		t.Fatal("reverse-endian decode should read 0x0001 as 1")
	}
}

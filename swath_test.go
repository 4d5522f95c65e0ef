package memscan

import (
	"testing"

	"memscan/scanner"
)

func TestSwathMatchCountAndArrayCount(t *testing.T) {
	matches := &MatchesArray{
		Swaths: []Swath{
			{
				FirstByteInChild: 0x1000,
				Cells: []Cell{
					{Flags: scanner.B8},
					{},
					{Flags: scanner.B8},
				},
			},
			{
				FirstByteInChild: 0x2000,
				Cells:            []Cell{{}, {}},
			},
		},
	}

	if got := matches.Swaths[0].MatchCount(); got != 2 {
		t.Fatalf("swath 0 MatchCount = %d, want 2", got)
	}
	if got := matches.Swaths[1].MatchCount(); got != 0 {
		t.Fatalf("swath 1 MatchCount = %d, want 0", got)
	}
	if got := matches.Count(); got != 2 {
		t.Fatalf("MatchesArray.Count = %d, want 2", got)
	}
}

func TestDropEmptySwaths(t *testing.T) {
	matches := &MatchesArray{
		Swaths: []Swath{
			{FirstByteInChild: 0x1000, Cells: []Cell{{Flags: scanner.B8}}},
			{FirstByteInChild: 0x2000, Cells: []Cell{{}, {}}},
			{FirstByteInChild: 0x3000, Cells: []Cell{{Flags: scanner.B8}}},
		},
	}
	matches.dropEmptySwaths()
	if len(matches.Swaths) != 2 {
		t.Fatalf("got %d surviving swaths, want 2", len(matches.Swaths))
	}
	if matches.Swaths[0].FirstByteInChild != 0x1000 || matches.Swaths[1].FirstByteInChild != 0x3000 {
		t.Fatalf("unexpected surviving swaths: %+v", matches.Swaths)
	}
}

func TestSwathOldWindowReconstructsMultiByteValue(t *testing.T) {
	s := &Swath{
		FirstByteInChild: 0x1000,
		Cells: []Cell{
			{OldByte: 0x01},
			{OldByte: 0x00},
			{OldByte: 0x00},
			{OldByte: 0x00},
		},
	}
	window := s.oldWindow(0)
	got, ok := window.Uint32(false)
	if !ok || got != 1 {
		t.Fatalf("oldWindow(0).Uint32(false) = (%d, %v), want (1, true)", got, ok)
	}
}

func TestSwathOldWindowClampsAtSwathEnd(t *testing.T) {
	s := &Swath{
		FirstByteInChild: 0x1000,
		Cells:            []Cell{{OldByte: 0xAB}, {OldByte: 0xCD}},
	}
	window := s.oldWindow(1)
	if len(window.Bytes()) != 1 || window.Bytes()[0] != 0xCD {
		t.Fatalf("oldWindow(1) = %v, want a single 0xCD byte", window.Bytes())
	}
}

func TestSwathEnd(t *testing.T) {
	s := &Swath{FirstByteInChild: 0x1000, Cells: make([]Cell, 16)}
	if got := s.End(); got != 0x1010 {
		t.Fatalf("Swath.End() = %#x, want 0x1010", got)
	}
}

// Copyright (C) 2025 kayon <kayon.hu@gmail.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package memscan

import "memscan/scanner"

// Cell is one tracked target byte: its previously recorded value plus the
// match flags currently set on it. A cell whose Flags is Empty is a hole a
// later narrowing scan skips.
type Cell struct {
	OldByte byte
	Flags   scanner.MatchFlags
}

func (c Cell) IsMatch() bool {
	return c.Flags.IsMatch()
}

// Swath is a contiguous run of tracked addresses, addressed by offset from
// FirstByteInChild. Swaths in a MatchesArray are ordered by
// FirstByteInChild and never overlap.
type Swath struct {
	FirstByteInChild uint64
	Cells            []Cell
}

func (s *Swath) End() uint64 {
	return s.FirstByteInChild + uint64(len(s.Cells))
}

// MatchCount reports the number of non-empty cells in the swath.
func (s *Swath) MatchCount() int {
	n := 0
	for _, c := range s.Cells {
		if c.IsMatch() {
			n++
		}
	}
	return n
}

// oldWindow reconstructs up to 8 bytes of the previously recorded value
// starting at cell offset i, for matchers whose width is greater than 1.
// Resolves the "update every covered cell" reading of the MATCH_UPDATE open
// question: since every covered cell's OldByte is refreshed together, the
// cells adjacent to i hold the correct trailing bytes of a multi-byte old
// value.
func (s *Swath) oldWindow(i int) scanner.Mem64 {
	end := i + 8
	if end > len(s.Cells) {
		end = len(s.Cells)
	}
	buf := make([]byte, 0, 8)
	for _, c := range s.Cells[i:end] {
		buf = append(buf, c.OldByte)
	}
	return scanner.NewMem64(buf)
}

// MatchesArray is the ordered sequence of swaths for a Scanner: created
// empty, replaced wholesale by each first scan, narrowed in place by each
// narrowing scan, and consumed by the collector.
type MatchesArray struct {
	Swaths []Swath
}

// Count returns Σ swaths.cells.count(Flags != Empty).
func (a *MatchesArray) Count() int {
	n := 0
	for i := range a.Swaths {
		n += a.Swaths[i].MatchCount()
	}
	return n
}

// dropEmptySwaths removes swaths left with zero non-empty cells after a
// narrowing pass. Adjacent surviving swaths are not re-merged.
func (a *MatchesArray) dropEmptySwaths() {
	kept := a.Swaths[:0]
	for _, s := range a.Swaths {
		if s.MatchCount() > 0 {
			kept = append(kept, s)
		}
	}
	a.Swaths = kept
}

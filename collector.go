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

import (
	"github.com/RoaringBitmap/roaring"

	"memscan/scanner"
)

// Entry is one collected match: its position in the left-to-right
// enumeration of surviving cells across all swaths, its address, the raw
// bytes recorded for it (width is the widest match flag set on the cell),
// and, when requested, the region it falls in.
type Entry struct {
	Index   int
	Address uint64
	Value   []byte
	Region  *Region
}

// Collect walks a Scanner's current matches and renders up to Limit entries
// (0 means unlimited). When an EXPORT_TIME RegionFilter is set, cells whose
// owning region it disallows are skipped before counting and indexing: both
// Entry.Index and the returned total reflect only the surviving cells, not
// the raw matches array, so a caller can show "N of M" (or "entry K of M")
// against the same filtered population it is browsing.
//
// The EXPORT_TIME skip-set is built once per call as a roaring bitmap keyed
// by region index in pid's current map order: cheap to test per-swath-cell
// and cheap to rebuild, since export happens far less often than narrowing.
func Collect(s *Scanner, opts CollectOptions) ([]Entry, int, error) {
	s.mu.Lock()
	matches := s.matches
	regions := s.regions
	s.mu.Unlock()

	var skip *roaring.Bitmap
	if opts.RegionFilter != nil && opts.RegionFilter.Mode == FilterExportTime {
		skip = buildExportSkipSet(regions, opts.RegionFilter)
	}

	var entries []Entry

	total := 0
	for si := range matches.Swaths {
		swath := &matches.Swaths[si]
		for i := range swath.Cells {
			if !swath.Cells[i].IsMatch() {
				continue
			}
			addr := swath.FirstByteInChild + uint64(i)

			var region *Region
			if regions != nil {
				region = findOwningRegion(regions, addr)
			}
			if skip != nil && region != nil {
				if idx, ok := regionIndex(regions, region); ok && skip.Contains(uint32(idx)) {
					continue
				}
			}

			index := total
			total++

			if opts.Limit > 0 && len(entries) >= opts.Limit {
				continue
			}

			entry := Entry{Index: index, Address: addr}
			if opts.CollectRegion {
				entry.Region = region
			}
			entry.Value = collectValue(swath, i, cellWidth(swath.Cells[i].Flags, opts.DataType), opts.ReverseEndian)
			entries = append(entries, entry)
		}
	}

	return entries, total, nil
}

// cellWidth reports the byte width to collect for one matched cell, per spec
// §4.8: "value is the raw bytes whose width is the widest flag on the cell."
// An aggregated DataType (AnyInteger, AnyFloat, AnyNumber) has no fixed
// ByteSize of its own, so the actual per-cell match width, recorded in
// Flags, is the only source of truth; entryWidth's fixed-DataType width is
// used only for non-numeric matches (String/Bytes), whose Flags carry no
// width bit to read.
func cellWidth(flags scanner.MatchFlags, dataType scanner.Type) int {
	if w := flags.Widest(); w > 0 {
		return w
	}
	return entryWidth(dataType)
}

func entryWidth(dataType scanner.Type) int {
	if size := dataType.ByteSize(); size > 0 {
		return size
	}
	return 1
}

// collectValue reads width bytes of OldByte starting at cell i, clamped to
// the swath's extent; callers needing the current live value should re-read
// via ProcMem instead, since the swath only records the last observed byte.
func collectValue(swath *Swath, i, width int, reverse bool) []byte {
	end := i + width
	if end > len(swath.Cells) {
		end = len(swath.Cells)
	}
	buf := make([]byte, 0, width)
	for _, c := range swath.Cells[i:end] {
		buf = append(buf, c.OldByte)
	}
	if reverse {
		for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
			buf[l], buf[r] = buf[r], buf[l]
		}
	}
	return buf
}

func findOwningRegion(regions Regions, addr uint64) *Region {
	for i := range regions {
		if addr >= regions[i].Start && addr < regions[i].End {
			return &regions[i]
		}
	}
	return nil
}

func regionIndex(regions Regions, region *Region) (int, bool) {
	for i := range regions {
		if &regions[i] == region {
			return i, true
		}
	}
	return 0, false
}

// buildExportSkipSet marks every region index whose RegionType the filter
// disallows.
func buildExportSkipSet(regions Regions, filter *RegionFilter) *roaring.Bitmap {
	bm := roaring.New()
	for i := range regions {
		if !filter.allows(regions[i].Type) {
			bm.Add(uint32(i))
		}
	}
	return bm
}

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
	"io"

	"memscan/scanner"
)

// liveCell locates one surviving match by its position in the matches
// array, alongside the target address it narrows against.
type liveCell struct {
	swathIdx int
	cellIdx  int
	addr     uint64
}

// runSequentialNarrowScan re-evaluates every currently-tracked cell against
// fresh target memory. Addresses are grouped into VirtualRegions the same
// way the original scanmem-style narrowing pass batches scattered results
// into a handful of process_vm_readv-sized reads instead of one syscall per
// address; a cell whose new flags come back empty is cleared, otherwise the
// flags replace the old, and OldByte is refreshed only for MATCH_UPDATE,
// across every cell the matched width covers (§9 open question (a)).
func runSequentialNarrowScan(pid int, matches *MatchesArray, opts ScanOptions, uv *scanner.UserValue, cancel <-chan struct{}) (ScanStats, error) {
	var stats ScanStats

	routine, matchVariable, err := buildMatcher(opts, uv)
	if err != nil {
		return stats, err
	}

	win := windowSize(opts.DataType, uv)

	var cells []liveCell
	for si := range matches.Swaths {
		swath := &matches.Swaths[si]
		for ci := range swath.Cells {
			if swath.Cells[ci].IsMatch() {
				cells = append(cells, liveCell{swathIdx: si, cellIdx: ci, addr: swath.FirstByteInChild + uint64(ci)})
			}
		}
	}
	if len(cells) == 0 {
		return stats, nil
	}

	addrs := make([]uint64, len(cells))
	for i, c := range cells {
		addrs[i] = c.addr
	}
	vregions := BuildVirtualRegions(addrs, uint64(win))

	bufs := make([][]byte, len(vregions))
	for i, vr := range vregions {
		if isCancelled(cancel) {
			return stats, ErrCancelled
		}
		buf, err := readVirtualRegion(pid, vr, cancel)
		if err != nil && err != ErrCancelled {
			bufs[i] = nil
			continue
		}
		if err == ErrCancelled {
			return stats, err
		}
		bufs[i] = buf
		stats.BytesScanned += uint64(len(buf))
	}

	ri := 0
	for _, c := range cells {
		for ri < len(vregions) && vregions[ri].IsFinished() {
			ri++
		}
		if ri >= len(vregions) || !vregions[ri].Match(c.addr) {
			clearCell(matches, c)
			continue
		}

		buf := bufs[ri]
		swath := &matches.Swaths[c.swathIdx]
		if buf == nil || c.addr < vregions[ri].Start {
			clearCell(matches, c)
			continue
		}
		off := int(c.addr - vregions[ri].Start)
		if off >= len(buf) {
			clearCell(matches, c)
			continue
		}

		var flags scanner.MatchFlags
		var matched, width int
		if matchVariable != nil {
			// Same reasoning as the first-scan buffer: give the matcher
			// every byte the VirtualRegion read back, not a window capped
			// at the fixed-width padding used to build the region. width
			// tracks the matcher's own reported length, not a guessed cap.
			m, ok := matchVariable(buf[off:])
			if ok {
				matched = m
				width = m
				flags = variableMatchFlag(opts.DataType)
			}
		} else {
			end := off + win
			if end > len(buf) {
				end = len(buf)
			}
			window := scanner.NewMem64(buf[off:end])
			old := swath.oldWindow(c.cellIdx)
			matched = routine(window, old, uv, &flags)
			width = end - off
		}

		if matched == 0 {
			clearCell(matches, c)
			continue
		}

		swath.Cells[c.cellIdx].Flags = flags
		if opts.MatchType == scanner.MatchUpdate {
			for b := c.cellIdx; b < len(swath.Cells) && b-c.cellIdx < width; b++ {
				swath.Cells[b].OldByte = buf[off+(b-c.cellIdx)]
			}
		}
	}

	matches.dropEmptySwaths()
	stats.RegionsVisited = len(vregions)
	stats.Matches = matches.Count()
	return stats, nil
}

func clearCell(matches *MatchesArray, c liveCell) {
	matches.Swaths[c.swathIdx].Cells[c.cellIdx] = Cell{}
}

// readVirtualRegion reads a VirtualRegion's whole span through the same
// process_vm_readv-backed RegionReader the first-scan engine uses, so a
// narrowing pass over widely scattered matches costs one syscall per merged
// span rather than one per address.
func readVirtualRegion(pid int, vr *VirtualRegion, cancel <-chan struct{}) ([]byte, error) {
	pipe := vr.Pipe(pid)
	defer pipe.Close()

	buf := make([]byte, 0, vr.Size)
	chunk, freeChunk, err := getScratch(int(minUint64(vr.Size, scanBufferSize)))
	if err != nil {
		return nil, err
	}
	defer freeChunk()

	for {
		if isCancelled(cancel) {
			return nil, ErrCancelled
		}
		n, err := pipe.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			if len(buf) > 0 {
				break
			}
			return nil, err
		}
	}
	return buf, nil
}

func minUint64(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

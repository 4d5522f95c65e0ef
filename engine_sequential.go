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
	"errors"
	"io"

	"memscan/scanner"
)

// selectRegions filters and quantizes the parsed region list for a scan:
// RegionScanLevel and an optional SCAN_TIME RegionFilter narrow which
// regions are visited, and the surviving list is passed through
// RegionsOptimize so adjacent small mappings are read as one chunk and any
// oversized mapping is split into regionLargeSize-bounded pieces, the same
// merge/split pass the maps-reading design applies before a scan touches
// memory. Type/Path/Perms on a merged or split-out region are no longer
// meaningful past this point; callers needing that metadata (the
// collector) work from the unfiltered, unoptimized region list instead.
func selectRegions(regions Regions, level RegionScanLevel, filter *RegionFilter) Regions {
	var out Regions
	for _, r := range regions {
		if !levelAllows(level, r.Type) {
			continue
		}
		if filter != nil && filter.Mode == FilterScanTime && !filter.allows(r.Type) {
			continue
		}
		out = append(out, r)
	}
	return RegionsOptimize(out)
}

// windowSize returns the number of bytes a fixed-width matcher for dataType
// needs starting from a candidate offset, and the padding VirtualRegion
// batching reserves past a tracked address during narrowing. Variable-width
// matchers (String, Bytes) are not bounded by this: they see every byte
// remaining in the read buffer and report their own match length, since a
// MATCH_REGEX open-ended quantifier or MATCH_ANY can span far more than the
// pattern's own byte length.
func windowSize(dataType scanner.Type, uv *scanner.UserValue) int {
	if size := dataType.ByteSize(); size > 0 {
		return size
	}
	if uv != nil {
		if n := uv.Size(); n > 0 {
			return n
		}
	}
	return 8
}

// runSequentialFirstScan performs the first scan described in §4.5: for
// each selected region, candidate addresses are visited in strictly
// increasing order at Step increments; each region's bytes are read in
// BlockSize chunks (polling cancel once per block) into one contiguous
// buffer, and each candidate offset is evaluated against the buffer.
func runSequentialFirstScan(pid int, regions Regions, opts ScanOptions, uv *scanner.UserValue, cancel <-chan struct{}) (*MatchesArray, ScanStats, error) {
	selected := selectRegions(regions, opts.RegionLevel, opts.RegionFilter)
	return scanRegionsForFirstScan(pid, selected, opts, uv, cancel)
}

// scanRegionsForFirstScan runs the first-scan algorithm over an already
// selected, already-ordered region list. It is shared by the sequential
// engine (one call over every selected region) and the parallel engine
// (one call per worker's partition), so both produce byte-identical swaths
// for the same region slice.
func scanRegionsForFirstScan(pid int, selected Regions, opts ScanOptions, uv *scanner.UserValue, cancel <-chan struct{}) (*MatchesArray, ScanStats, error) {
	result := &MatchesArray{}
	var stats ScanStats

	routine, matchBytesOrString, err := buildMatcher(opts, uv)
	if err != nil {
		return nil, stats, err
	}

	for _, region := range selected {
		if isCancelled(cancel) {
			return nil, stats, ErrCancelled
		}

		buf, err := readWholeRegion(pid, region, opts.blockSize(), cancel)
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return nil, stats, err
			}
			// A region that fails to read is skipped; the scan continues.
			continue
		}
		if len(buf) == 0 {
			continue
		}

		swath := scanRegionBuffer(region.Start, buf, opts, uv, routine, matchBytesOrString)
		if len(swath.Cells) > 0 {
			result.Swaths = append(result.Swaths, swath)
			stats.Matches += swath.MatchCount()
		}
		stats.RegionsVisited++
		stats.BytesScanned += uint64(len(buf))
	}

	return result, stats, nil
}

// scanRegionBuffer evaluates every candidate offset in buf and returns the
// resulting swath. Per spec §4.5, FirstByteInChild is set the first time the
// region contributes a match, not to the region's own start address: a
// region-start-anchored swath would pad Cells with unpopulated holes from
// region-start through the first real match, ballooning memory for a single
// late match in a large region and leaving OldByte-0 holes that corrupt
// Swath.oldWindow's multi-byte reconstruction on narrowing.
func scanRegionBuffer(base uint64, buf []byte, opts ScanOptions, uv *scanner.UserValue, routine scanner.Routine, matchVariable func([]byte) (int, bool)) Swath {
	var swath Swath
	started := false
	step := opts.step()

	for offset := uint64(0); offset < uint64(len(buf)); offset += step {
		var flags scanner.MatchFlags
		var matched int

		if matchVariable != nil {
			// Hand the matcher every byte left in the region rather than a
			// fixed-size slice: MatchBytesAt/MatchStringAt only ever look at
			// as much of it as their pattern or match needs, so this is the
			// only way an open-ended MATCH_REGEX quantifier or MATCH_ANY
			// gets its true, untruncated match length.
			n, ok := matchVariable(buf[offset:])
			if ok {
				matched = n
				flags = variableMatchFlag(opts.DataType)
			}
		} else {
			end := offset + 8
			if end > uint64(len(buf)) {
				end = uint64(len(buf))
			}
			window := scanner.NewMem64(buf[offset:end])
			matched = routine(window, scanner.Mem64{}, uv, &flags)
		}

		if matched > 0 {
			if !started {
				swath.FirstByteInChild = base + offset
				started = true
			}
			idx := int(base + offset - swath.FirstByteInChild)
			for len(swath.Cells) <= idx {
				swath.Cells = append(swath.Cells, Cell{})
			}
			swath.Cells[idx] = Cell{OldByte: buf[offset], Flags: flags}
		}
	}

	return swath
}

func variableMatchFlag(dataType scanner.Type) scanner.MatchFlags {
	if dataType == scanner.String {
		return scanner.StringFlag
	}
	return scanner.ByteArrayFlag
}

// buildMatcher returns either a fixed-width Routine (scalar/aggregated
// numeric types) or a variable-width matcher function (Bytes/String), never
// both.
func buildMatcher(opts ScanOptions, uv *scanner.UserValue) (scanner.Routine, func([]byte) (int, bool), error) {
	switch opts.DataType {
	case scanner.Bytes:
		return nil, func(buf []byte) (int, bool) {
			return scanner.MatchBytesAt(buf, uv)
		}, nil
	case scanner.String:
		return nil, func(buf []byte) (int, bool) {
			return scanner.MatchStringAt(buf, opts.MatchType, uv)
		}, nil
	default:
		routine, err := scanner.NewRoutine(opts.DataType, opts.MatchType, opts.ReverseEndianness)
		if err != nil {
			return nil, nil, err
		}
		return routine, nil, nil
	}
}

func readWholeRegion(pid int, region Region, blockSize int, cancel <-chan struct{}) ([]byte, error) {
	pipe := region.Pipe(pid)
	defer pipe.Close()

	buf := make([]byte, 0, region.Size)
	chunk, freeChunk, err := getScratch(blockSize)
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
				// Partial region read: keep what was scanned successfully.
				break
			}
			return nil, err
		}
	}
	return buf, nil
}

func isCancelled(cancel <-chan struct{}) bool {
	if cancel == nil {
		return false
	}
	select {
	case <-cancel:
		return true
	default:
		return false
	}
}

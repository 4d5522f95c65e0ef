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

const (
	defaultBlockSize = 64 * 1024
	defaultStep      = 1
)

// ScanOptions configures a first or narrowing scan.
type ScanOptions struct {
	DataType          scanner.Type
	MatchType         scanner.MatchType
	ReverseEndianness bool

	// Step is the address increment between candidate offsets. Default 1;
	// callers typically pass 4 or 8 for aligned numeric scans.
	Step uint32

	// BlockSize is the read chunk size the engine issues per call so a
	// fresh read is not made per candidate address. Default 64 KiB.
	BlockSize uint32

	RegionLevel  RegionScanLevel
	RegionFilter *RegionFilter

	// Workers, when > 1, runs a first scan on the parallel engine
	// partitioned across this many worker tasks. Zero or 1 uses the
	// sequential engine. Narrowing scans always run sequentially.
	Workers int
}

func (o ScanOptions) step() uint64 {
	if o.Step == 0 {
		return defaultStep
	}
	return uint64(o.Step)
}

func (o ScanOptions) blockSize() int {
	if o.BlockSize == 0 {
		return defaultBlockSize
	}
	return int(o.BlockSize)
}

// ScanStats reports the outcome of a completed scan.
type ScanStats struct {
	RegionsVisited int
	BytesScanned   uint64
	Matches        int
}

// CollectOptions configures the match collector.
type CollectOptions struct {
	Limit         int
	CollectRegion bool
	RegionFilter  *RegionFilter
	DataType      scanner.Type
	ReverseEndian bool
}

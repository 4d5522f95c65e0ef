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

import "github.com/bits-and-blooms/bitset"

// RegionType is the semantic label the classifier attaches to a Region.
type RegionType uint8

const (
	RegionUnknown RegionType = iota
	RegionEXE
	RegionCODE
	RegionHEAP
	RegionSTACK
	RegionBSS
	RegionMappedFile
	RegionMiscRW
	RegionMiscRO

	regionTypeCount
)

var regionTypeName = [...]string{
	"UNKNOWN", "EXE", "CODE", "HEAP", "STACK", "BSS",
	"MAPPED_FILE", "MISC_RW", "MISC_RO",
}

func (t RegionType) String() string {
	if int(t) < len(regionTypeName) {
		return regionTypeName[t]
	}
	return "UNKNOWN"
}

// classifyRegion applies the classification rules from the maps parser
// design in order: main-image executable/data, heap/stack pseudo-mappings,
// then permission+path combinations, falling back to UNKNOWN.
func classifyRegion(exePath string, path string, perms Permissions) RegionType {
	switch {
	case path == exePath && exePath != "":
		if perms.Exec() {
			return RegionEXE
		}
		return RegionCODE
	case path == "[heap]":
		return RegionHEAP
	case isStackPath(path):
		return RegionSTACK
	case path == "[bss]":
		return RegionBSS
	case perms.Read() && perms.Exec() && path != "":
		return RegionCODE
	case perms.Read() && !perms.Write() && path != "":
		return RegionMappedFile
	case perms.Read() && perms.Write() && path == "":
		return RegionMiscRW
	case perms.Read() && !perms.Write():
		return RegionMiscRO
	default:
		return RegionUnknown
	}
}

func isStackPath(path string) bool {
	if path == "[stack]" {
		return true
	}
	if len(path) > len("[stack:") && path[:len("[stack:")] == "[stack:" && path[len(path)-1] == ']' {
		return true
	}
	return false
}

// RegionScanLevel selects which regions a scan visits.
type RegionScanLevel uint8

const (
	HeapStackOnly RegionScanLevel = iota
	AllRW
	AllRegions
)

// RegionFilterMode selects when a RegionFilter's Allowed set is applied.
type RegionFilterMode uint8

const (
	FilterDisabled RegionFilterMode = iota
	FilterScanTime
	FilterExportTime
)

// RegionFilter additionally intersects a scan or export with an explicit
// allowed RegionType set, using a fixed-size bitset since RegionType has a
// small closed ordinal range.
type RegionFilter struct {
	Mode    RegionFilterMode
	Allowed *bitset.BitSet
}

func NewRegionFilter(mode RegionFilterMode, types ...RegionType) *RegionFilter {
	bs := bitset.New(uint(regionTypeCount))
	for _, t := range types {
		bs.Set(uint(t))
	}
	return &RegionFilter{Mode: mode, Allowed: bs}
}

func (f *RegionFilter) allows(t RegionType) bool {
	if f == nil || f.Mode == FilterDisabled || f.Allowed == nil {
		return true
	}
	return f.Allowed.Test(uint(t))
}

// levelAllows reports whether the RegionScanLevel alone permits visiting a
// region of type t (independent of any additional RegionFilter).
func levelAllows(level RegionScanLevel, t RegionType) bool {
	switch level {
	case HeapStackOnly:
		return t == RegionHEAP || t == RegionSTACK
	case AllRW:
		return t == RegionHEAP || t == RegionSTACK || t == RegionBSS || t == RegionMiscRW
	default:
		return true
	}
}

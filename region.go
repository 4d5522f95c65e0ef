package memscan

import (
	"fmt"
	"io"
)

const (
	memPageSize    = 1 << 12
	scanBufferSize = memPageSize << 4

	regionLargeSize = memPageSize << 9
	regionSmallSize = scanBufferSize

	defRegionsCaps = 1 << 11
)

// Region is an interval [Start, End) of target addresses, plus everything
// the maps parser recovered about the mapping it came from.
type Region struct {
	Start uint64
	End   uint64
	Size  uint64

	Path        string
	Perms       Permissions
	Offset      uint64
	Dev         string
	Inode       uint64
	LoadAddr    uint64
	Type        RegionType
}

func (region Region) String() string {
	return fmt.Sprintf("%08X-%08X %s %8d %s", region.Start, region.End, region.Perms, region.Size, region.Path)
}

// Pipe opens a ReadSeekCloser over the region's address range in the target.
func (region Region) Pipe(pid int) io.ReadSeekCloser {
	return getRegionReader(pid, region.Start, region.End)
}

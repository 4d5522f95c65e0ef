package memscan

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"memscan/utils"
)

// Maps parses a target's kernel-exported memory-map file
// (/proc/<pid>/maps on Linux).
type Maps struct {
	file    *os.File
	exePath string
}

func (m *Maps) Close() error {
	return m.file.Close()
}

// Parse reads every line of the map file, classifies each region, and
// computes loadAddr per backing filename as the minimum Start among regions
// sharing that filename. It never returns a partial list silently: a read
// failure mid-scan is reported instead of the regions parsed so far.
func (m *Maps) Parse() (Regions, error) {
	if _, err := m.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: seeking maps file: %v", ErrIO, err)
	}

	regions := make(Regions, 0, defRegionsCaps)
	loadAddrs := make(map[string]uint64, 64)

	scanner := bufio.NewScanner(m.file)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		region, ok := parseMapsRow(scanner.Bytes())
		if !ok {
			continue
		}
		region.Type = classifyRegion(m.exePath, region.Path, region.Perms)
		if region.Path != "" {
			if cur, ok := loadAddrs[region.Path]; !ok || region.Start < cur {
				loadAddrs[region.Path] = region.Start
			}
		}
		regions = append(regions, region)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading maps file: %v", ErrIO, err)
	}

	for i := range regions {
		if regions[i].Path != "" {
			regions[i].LoadAddr = loadAddrs[regions[i].Path]
		}
	}

	return regions, nil
}

// openMaps opens the target's map file and resolves its main executable
// path (used by the classifier to distinguish EXE/CODE regions from other
// mappings of the same file).
func openMaps(pid int) (*Maps, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: opening maps for pid %d: %v", ErrPermission, pid, err)
		}
		return nil, fmt.Errorf("%w: opening maps for pid %d: %v", ErrIO, pid, err)
	}
	exePath, _ := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid))
	return &Maps{file: f, exePath: exePath}, nil
}

// parseMapsRow parses one line of the form
// "start-end prot offset dev inode [path]". Addresses are hexadecimal
// without a prefix; prot is exactly 4 characters of r/w/x and p/s.
func parseMapsRow(raw []byte) (Region, bool) {
	fields := bytes.Fields(raw)
	if len(fields) < 5 {
		return Region{}, false
	}

	addrRange := fields[0]
	dashIdx := bytes.IndexByte(addrRange, '-')
	if dashIdx < 0 {
		return Region{}, false
	}
	start, err := strconv.ParseUint(utils.BytesToString(addrRange[:dashIdx]), 16, 64)
	if err != nil {
		return Region{}, false
	}
	end, err := strconv.ParseUint(utils.BytesToString(addrRange[dashIdx+1:]), 16, 64)
	if err != nil {
		return Region{}, false
	}

	prot := fields[1]
	if len(prot) != 4 {
		return Region{}, false
	}
	perms := ParsePermissions(prot)

	offset, _ := strconv.ParseUint(utils.BytesToString(fields[2]), 16, 64)
	dev := string(fields[3])
	inode, _ := strconv.ParseUint(utils.BytesToString(fields[4]), 10, 64)

	var path string
	if len(fields) >= 6 {
		path = string(bytes.Join(fields[5:], []byte(" ")))
	}

	return Region{
		Start:  start,
		End:    end,
		Size:   end - start,
		Path:   path,
		Perms:  perms,
		Offset: offset,
		Dev:    dev,
		Inode:  inode,
	}, true
}

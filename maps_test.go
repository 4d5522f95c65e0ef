package memscan

import (
	"os"
	"testing"
)

func writeTempMaps(t *testing.T, contents string) *Maps {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "maps")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(contents); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	return &Maps{file: f, exePath: "/usr/bin/myprog"}
}

// Scenario 1 from the testable-properties list: five lines including one
// EXE region and one HEAP region, all three /usr/bin/myprog mappings
// sharing a common loadAddr.
func TestMapsParseScenario1(t *testing.T) {
	const raw = `00400000-0040c000 r-xp 00000000 08:01 131 /usr/bin/myprog
0060c000-0060d000 r--p 0000c000 08:01 131 /usr/bin/myprog
0060d000-0060e000 rw-p 0000d000 08:01 131 /usr/bin/myprog
00e0c000-00e2d000 rw-p 00000000 00:00 0 [heap]
7ffd00000000-7ffd00021000 rw-p 00000000 00:00 0 [stack]
`
	m := writeTempMaps(t, raw)
	defer m.Close()

	regions, err := m.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 5 {
		t.Fatalf("got %d regions, want 5", len(regions))
	}

	var exeCount, heapCount int
	var loadAddrs []uint64
	for _, r := range regions {
		switch r.Type {
		case RegionEXE:
			exeCount++
		case RegionHEAP:
			heapCount++
		}
		if r.Path == "/usr/bin/myprog" {
			loadAddrs = append(loadAddrs, r.LoadAddr)
		}
	}
	if exeCount != 1 {
		t.Fatalf("got %d EXE regions, want 1", exeCount)
	}
	if heapCount != 1 {
		t.Fatalf("got %d HEAP regions, want 1", heapCount)
	}
	if len(loadAddrs) != 3 {
		t.Fatalf("got %d /usr/bin/myprog regions, want 3", len(loadAddrs))
	}
	for _, la := range loadAddrs {
		if la != loadAddrs[0] {
			t.Fatalf("loadAddr mismatch across regions of the same file: %v", loadAddrs)
		}
	}
	if loadAddrs[0] != 0x00400000 {
		t.Fatalf("loadAddr = %#x, want 0x400000", loadAddrs[0])
	}
}

func TestMapsParseStackRegion(t *testing.T) {
	const raw = `7ffd00000000-7ffd00021000 rw-p 00000000 00:00 0 [stack]
`
	m := writeTempMaps(t, raw)
	defer m.Close()

	regions, err := m.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 1 || regions[0].Type != RegionSTACK {
		t.Fatalf("got %+v, want a single STACK region", regions)
	}
}

func TestMapsParseTolerateBlankLines(t *testing.T) {
	const raw = "00400000-0040c000 r-xp 00000000 08:01 131 /usr/bin/myprog\n\n\n"
	m := writeTempMaps(t, raw)
	defer m.Close()

	regions, err := m.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
}

func TestOpenMapsNotFound(t *testing.T) {
	// pid unlikely to exist.
	_, err := openMaps(1 << 30)
	if err == nil {
		t.Fatal("expected an error for a nonexistent pid")
	}
}

func TestRegionsOptimizePreservesTotalSize(t *testing.T) {
	regions := []Region{
		{Start: 0x1000, End: 0x2000, Size: 0x1000},
		{Start: 0x2000, End: 0x3000, Size: 0x1000},
		{Start: 0x3000, End: regionLargeSize * 3, Size: regionLargeSize*3 - 0x3000},
	}
	optimized := RegionsOptimize(regions)

	var totalOri, totalOpt uint64
	for _, r := range regions {
		totalOri += r.Size
	}
	for _, r := range optimized {
		totalOpt += r.Size
	}
	if totalOri != totalOpt {
		t.Fatalf("byte count mismatch: original %d, optimized %d", totalOri, totalOpt)
	}
}

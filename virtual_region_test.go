package memscan

import "testing"

func TestBuildVirtualRegionsSingleRegionForNearbyAddresses(t *testing.T) {
	addrs := []uint64{0x1000, 0x1004, 0x1008}
	regions := BuildVirtualRegions(addrs, 4)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	if regions[0].Start > addrs[0] || regions[0].End < addrs[len(addrs)-1]+4 {
		t.Fatalf("region %+v does not cover all addresses", regions[0])
	}
}

func TestBuildVirtualRegionsSplitsFarApartAddresses(t *testing.T) {
	addrs := []uint64{0x1000, 0x1000 + regionLargeSize*2}
	regions := BuildVirtualRegions(addrs, 4)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2 for far-apart addresses", len(regions))
	}
}

func TestVirtualRegionMatchInOrder(t *testing.T) {
	regions := BuildVirtualRegions([]uint64{0x1000, 0x1010, 0x1020}, 4)
	vr := regions[0]

	if !vr.Match(0x1000) {
		t.Fatal("expected Match(0x1000) to succeed")
	}
	if vr.Match(0x1010) == false {
		t.Fatal("expected Match(0x1010) to succeed after 0x1000")
	}
	if vr.IsFinished() {
		t.Fatal("expected the region to not be finished with one address left")
	}
	if !vr.Match(0x1020) {
		t.Fatal("expected Match(0x1020) to succeed")
	}
	if !vr.IsFinished() {
		t.Fatal("expected the region to be finished after matching every address")
	}
}

func TestVirtualRegionMatchRejectsUnknownAddress(t *testing.T) {
	regions := BuildVirtualRegions([]uint64{0x1000, 0x1010}, 4)
	vr := regions[0]
	if vr.Match(0x2000) {
		t.Fatal("expected Match on an address never registered to fail")
	}
}

func TestBuildVirtualRegionsEmpty(t *testing.T) {
	if regions := BuildVirtualRegions(nil, 4); regions != nil {
		t.Fatalf("BuildVirtualRegions(nil) = %+v, want nil", regions)
	}
}

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
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"memscan/scanner"
)

// runParallelFirstScan partitions the selected region list statically and
// deterministically across workers, then concatenates the per-worker
// results in original region order. Each worker runs the exact algorithm
// scanRegionsForFirstScan uses for the sequential engine, and observes no
// other worker's state, so the result is byte-for-byte identical to the
// sequential run for the same inputs.
func runParallelFirstScan(pid int, regions Regions, opts ScanOptions, uv *scanner.UserValue, cancel <-chan struct{}) (*MatchesArray, ScanStats, error) {
	selected := selectRegions(regions, opts.RegionLevel, opts.RegionFilter)
	if len(selected) == 0 {
		return &MatchesArray{}, ScanStats{}, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(selected) {
		workers = len(selected)
	}

	partitions := partitionRegions(selected, workers)

	type partial struct {
		matches *MatchesArray
		stats   ScanStats
		err     error
	}
	results := make([]partial, len(partitions))

	sem := semaphore.NewWeighted(int64(workers))
	ctx := context.Background()
	var wg sync.WaitGroup

	for i, part := range partitions {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int, part Regions) {
			defer wg.Done()
			defer sem.Release(1)

			m, s, err := scanRegionsForFirstScan(pid, part, opts, uv, cancel)
			results[i] = partial{matches: m, stats: s, err: err}
		}(i, part)
	}
	wg.Wait()

	merged := &MatchesArray{}
	var stats ScanStats
	for _, r := range results {
		if r.err != nil {
			return nil, stats, r.err
		}
		if r.matches != nil {
			merged.Swaths = append(merged.Swaths, r.matches.Swaths...)
		}
		stats.RegionsVisited += r.stats.RegionsVisited
		stats.BytesScanned += r.stats.BytesScanned
		stats.Matches += r.stats.Matches
	}

	return merged, stats, nil
}

// partitionRegions splits an ordered region list into up to n contiguous,
// non-overlapping slices. Contiguity preserves the region order guarantee:
// concatenating the workers' results in partition order reproduces the
// original map-file order.
func partitionRegions(regions Regions, n int) []Regions {
	if n <= 1 || len(regions) <= 1 {
		return []Regions{regions}
	}

	base := len(regions) / n
	rem := len(regions) % n

	parts := make([]Regions, 0, n)
	start := 0
	for i := 0; i < n && start < len(regions); i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		end := start + size
		parts = append(parts, regions[start:end])
		start = end
	}
	return parts
}

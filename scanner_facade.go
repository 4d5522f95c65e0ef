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
	"fmt"
	"sync"

	"memscan/scanner"
)

// ScannerState is one of the three states of the Scanner façade's state
// machine: FRESH, HAS_MATCHES, FAULTED.
type ScannerState uint8

const (
	StateFresh ScannerState = iota
	StateHasMatches
	StateFaulted
)

func (s ScannerState) String() string {
	switch s {
	case StateHasMatches:
		return "HAS_MATCHES"
	case StateFaulted:
		return "FAULTED"
	default:
		return "FRESH"
	}
}

// Scanner owns a target pid's process-memory handle (opened lazily), its
// region classifier state, and the accumulated matches array. It is not
// safe for concurrent use by multiple goroutines without external
// synchronization beyond the internal mutex that protects state
// transitions from racing against a concurrent scan and a Reset.
type Scanner struct {
	pid int

	mu      sync.Mutex
	state   ScannerState
	matches *MatchesArray
	mem     *ProcMem
	regions Regions
}

// NewScanner constructs a Scanner for pid. The memory handle and region
// list are opened lazily on first use.
func NewScanner(pid int) (*Scanner, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("%w: invalid pid %d", ErrUsage, pid)
	}
	return &Scanner{pid: pid, state: StateFresh, matches: &MatchesArray{}}, nil
}

func (s *Scanner) State() ScannerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// MatchCount returns Σ swaths.cells.count(Flags != Empty).
func (s *Scanner) MatchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches.Count()
}

// Matches exposes the current matches array for the collector. Callers must
// not mutate the returned value.
func (s *Scanner) Matches() *MatchesArray {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.matches
}

func (s *Scanner) ensureRegions() error {
	m, err := openMaps(s.pid)
	if err != nil {
		return err
	}
	defer m.Close()
	regions, err := m.Parse()
	if err != nil {
		return err
	}
	s.regions = regions
	return nil
}

func (s *Scanner) ensureMem() error {
	if s.mem != nil {
		return nil
	}
	mem, err := OpenProcMem(s.pid, true)
	if err != nil {
		return err
	}
	s.mem = mem
	return nil
}

// FirstScan installs a fresh matches array from raw memory, replacing any
// prior matches array whatever the current state (FRESH or HAS_MATCHES).
func (s *Scanner) FirstScan(opts ScanOptions, uv *scanner.UserValue, cancel <-chan struct{}) (ScanStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateFaulted {
		return ScanStats{}, ErrFaulted
	}

	if err := s.ensureRegions(); err != nil {
		return ScanStats{}, s.fault(err)
	}

	var (
		matches *MatchesArray
		stats   ScanStats
		err     error
	)
	if opts.Workers > 1 {
		matches, stats, err = runParallelFirstScan(s.pid, s.regions, opts, uv, cancel)
	} else {
		matches, stats, err = runSequentialFirstScan(s.pid, s.regions, opts, uv, cancel)
	}
	if err != nil {
		return stats, s.fault(err)
	}

	s.matches = matches
	s.state = StateHasMatches
	return stats, nil
}

// NarrowScan refines the existing matches array in place. Calling it before
// any FirstScan is a Usage error and leaves state unchanged (FRESH stays
// FRESH).
func (s *Scanner) NarrowScan(opts ScanOptions, uv *scanner.UserValue, cancel <-chan struct{}) (ScanStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateFaulted {
		return ScanStats{}, ErrFaulted
	}
	if s.state == StateFresh {
		return ScanStats{}, fmt.Errorf("%w: %w", ErrUsage, ErrNoPriorScan)
	}

	stats, err := runSequentialNarrowScan(s.pid, s.matches, opts, uv, cancel)
	if err != nil {
		return stats, s.fault(err)
	}

	s.state = StateHasMatches
	return stats, nil
}

// Write writes bytes to addr in the target and returns the number of bytes
// written.
func (s *Scanner) Write(addr uint64, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pid <= 0 {
		return 0, fmt.Errorf("%w: invalid pid %d", ErrUsage, s.pid)
	}
	if err := s.ensureMem(); err != nil {
		return 0, err
	}
	return s.mem.Write(addr, data)
}

// Reset drops the matches array and returns the Scanner to FRESH, the only
// transition available from FAULTED.
func (s *Scanner) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = &MatchesArray{}
	s.state = StateFresh
}

// Close releases the memory handle. Safe to call multiple times.
func (s *Scanner) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mem != nil {
		err := s.mem.Close()
		s.mem = nil
		return err
	}
	return nil
}

// fault transitions the Scanner to FAULTED, preserving matches, and returns
// the triggering error unchanged (except Cancelled, which never faults the
// Scanner: a cancelled scan simply surfaces no partial result).
func (s *Scanner) fault(err error) error {
	if err == ErrCancelled {
		return err
	}
	s.state = StateFaulted
	return err
}

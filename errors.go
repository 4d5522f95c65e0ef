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

import "errors"

// Sentinel errors identifying the error taxonomy; wrap with fmt.Errorf("%w",
// ...) to attach context and unwrap with errors.Is.
var (
	// ErrUsage covers caller mistakes: narrowing before a first scan, an
	// invalid pid, a malformed UserValue.
	ErrUsage = errors.New("memscan: usage error")

	// ErrPermission covers maps/memory handles that cannot be opened
	// without elevated privilege or a relaxed ptrace_scope.
	ErrPermission = errors.New("memscan: permission denied")

	// ErrNotFound covers a target pid that does not exist or has exited.
	ErrNotFound = errors.New("memscan: process not found")

	// ErrIO covers truncated reads, unreadable regions (recovered locally),
	// and unwritable target addresses (fatal for that write).
	ErrIO = errors.New("memscan: I/O error")

	// ErrCancelled reports a tripped cancellation token.
	ErrCancelled = errors.New("memscan: scan cancelled")

	// ErrInternal marks an invariant violation. Never expected in normal
	// operation; a scan that hits it transitions the Scanner to FAULTED.
	ErrInternal = errors.New("memscan: internal error")

	// ErrNoPriorScan is the Usage error raised by narrowScan on a FRESH
	// Scanner (state machine event "FRESH, narrowing-scan").
	ErrNoPriorScan = errors.New("memscan: no prior scan to narrow")

	// ErrFaulted is returned by any scan attempted while the Scanner is in
	// the FAULTED state.
	ErrFaulted = errors.New("memscan: scanner is faulted, call Reset")
)

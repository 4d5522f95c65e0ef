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
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// ProcMem is a byte-addressable handle over a target's address space,
// opened per pid. It backs the Scanner façade's positional write path; both
// first-scan and narrowing reads go through RegionReader's process_vm_readv
// batching instead.
type ProcMem struct {
	pid      int
	file     *os.File
	writable bool
}

// OpenProcMem opens /proc/<pid>/mem read-only, or read-write if writable is
// requested. The returned handle must be closed by the caller on every exit
// path, including cancellation and fault.
func OpenProcMem(pid int, writable bool) (*ProcMem, error) {
	if pid <= 0 {
		return nil, fmt.Errorf("%w: invalid pid %d", ErrUsage, pid)
	}
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}
	f, err := os.OpenFile(fmt.Sprintf("/proc/%d/mem", pid), flag, 0)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: opening mem for pid %d: %v", ErrPermission, pid, err)
		default:
			return nil, fmt.Errorf("%w: opening mem for pid %d: %v", ErrIO, pid, err)
		}
	}
	return &ProcMem{pid: pid, file: f, writable: writable}, nil
}

func (m *ProcMem) Close() error {
	if m == nil || m.file == nil {
		return nil
	}
	return m.file.Close()
}

// Clone opens an independent handle to the same target with the same
// access mode; the caller owns and closes it. The parallel engine's workers
// do not use it: they read through RegionReader.
func (m *ProcMem) Clone() (*ProcMem, error) {
	return OpenProcMem(m.pid, m.writable)
}

// Read reads len(buf) bytes at target virtual address addr. Short reads are
// reported truthfully rather than padded; EINTR-equivalent errors are
// retried once internally before being surfaced.
func (m *ProcMem) Read(addr uint64, buf []byte) (int, error) {
	n, err := m.pread(buf, int64(addr))
	if err != nil {
		return n, classifyIOError(err, addr)
	}
	return n, nil
}

// Write writes buf to target virtual address addr. Atomicity is whatever
// the kernel provides at the page granularity; no multi-page transactional
// claim is made.
func (m *ProcMem) Write(addr uint64, buf []byte) (int, error) {
	if !m.writable {
		return 0, fmt.Errorf("%w: memory handle for pid %d was not opened for writing", ErrUsage, m.pid)
	}
	n, err := m.pwrite(buf, int64(addr))
	if err != nil {
		return n, classifyIOError(err, addr)
	}
	return n, nil
}

func (m *ProcMem) pread(buf []byte, off int64) (int, error) {
	for attempt := 0; ; attempt++ {
		n, err := m.file.ReadAt(buf, off)
		if errors.Is(err, unix.EINTR) && attempt == 0 {
			time.Sleep(time.Microsecond)
			continue
		}
		return n, err
	}
}

func (m *ProcMem) pwrite(buf []byte, off int64) (int, error) {
	for attempt := 0; ; attempt++ {
		n, err := m.file.WriteAt(buf, off)
		if errors.Is(err, unix.EINTR) && attempt == 0 {
			time.Sleep(time.Microsecond)
			continue
		}
		return n, err
	}
}

func classifyIOError(err error, addr uint64) error {
	switch {
	case os.IsPermission(err):
		return fmt.Errorf("%w: at %#x: %v", ErrPermission, addr, err)
	case err == unix.EIO, err == unix.EFAULT:
		return fmt.Errorf("%w: at %#x: %v", ErrIO, addr, err)
	default:
		return fmt.Errorf("%w: at %#x: %v", ErrIO, addr, err)
	}
}

// ReadUint32/ReadInt32/ReadUint64/ReadInt64 and WriteUint32/WriteInt32 are
// typed little-endian convenience overloads performing one read or write of
// the natural width of the type.
func (m *ProcMem) ReadUint32(addr uint64) (uint32, error) {
	var buf [4]byte
	if _, err := m.Read(addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (m *ProcMem) ReadInt32(addr uint64) (int32, error) {
	v, err := m.ReadUint32(addr)
	return int32(v), err
}

func (m *ProcMem) ReadUint64(addr uint64) (uint64, error) {
	var buf [8]byte
	if _, err := m.Read(addr, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (m *ProcMem) ReadInt64(addr uint64) (int64, error) {
	v, err := m.ReadUint64(addr)
	return int64(v), err
}

func (m *ProcMem) WriteUint32(addr uint64, v uint32) (int, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return m.Write(addr, buf[:])
}

func (m *ProcMem) WriteInt32(addr uint64, v int32) (int, error) {
	return m.WriteUint32(addr, uint32(v))
}

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
	"os"

	"github.com/edsrzf/mmap-go"
)

// scratchMmapThreshold is the block size at or above which a region read gets its
// scratch buffer from an mmap.Map page instead of the heap, keeping large
// block reads off the GC's scanned-object accounting the same way teacher's
// MmapUint64 keeps address results off it.
const scratchMmapThreshold = 4 * memPageSize

// ScratchBuffer is a byte buffer backed by an anonymous-equivalent mmap
// region: a temp file unlinked immediately after opening, so the mapping
// behaves like anonymous memory on tmpfs while still going through
// mmap-go's file-backed API.
type ScratchBuffer struct {
	m mmap.MMap
}

// NewScratchBuffer allocates a zeroed, page-rounded scratch buffer of at
// least size bytes.
func NewScratchBuffer(size int) (*ScratchBuffer, error) {
	f, err := os.CreateTemp("", "memscan-scratch-*")
	if err != nil {
		return nil, err
	}
	// Unlinking immediately makes the backing store disappear from the
	// filesystem namespace; the mapping keeps the inode (and its pages)
	// alive until unmapped, so this behaves like anonymous memory.
	defer os.Remove(f.Name())
	defer f.Close()

	if err := f.Truncate(int64(size)); err != nil {
		return nil, err
	}

	m, err := mmap.MapRegion(f, size, mmap.RDWR, 0, 0)
	if err != nil {
		return nil, err
	}
	return &ScratchBuffer{m: m}, nil
}

func (s *ScratchBuffer) Bytes() []byte {
	return s.m
}

func (s *ScratchBuffer) Close() error {
	return s.m.Unmap()
}

// getScratch returns a byte slice of exactly size bytes: heap-allocated for
// sizes below scratchMmapThreshold, mmap-backed at or above it (falling back
// to the heap if the mapping cannot be created). The returned closer
// must be called exactly once the buffer is no longer needed; it is a no-op
// for heap-allocated buffers.
func getScratch(size int) ([]byte, func(), error) {
	if size < scratchMmapThreshold {
		return make([]byte, size), func() {}, nil
	}
	buf, err := NewScratchBuffer(size)
	if err != nil {
		return make([]byte, size), func() {}, nil
	}
	return buf.Bytes(), func() { buf.Close() }, nil
}

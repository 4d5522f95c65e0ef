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
	"fmt"
	"math"
	"strings"

	"memscan/scanner"
)

// FormatValue renders a fixed-width value read from target memory as the
// human-readable string a scan listing shows. Bytes render as space-joined
// hex pairs; String renders as-is up to the first NUL. ReverseEndian
// interprets the bytes as big-endian before formatting.
func FormatValue(value []byte, dataType scanner.Type, reverseEndian bool) string {
	switch dataType {
	case scanner.Bytes:
		return formatHex(value)
	case scanner.String:
		return formatString(value)
	}

	order := byteOrderFor(reverseEndian)

	switch dataType {
	case scanner.Int8:
		if len(value) < 1 {
			return "?"
		}
		return fmt.Sprintf("%d", int8(value[0]))
	case scanner.Uint8:
		if len(value) < 1 {
			return "?"
		}
		return fmt.Sprintf("%d", value[0])
	case scanner.Int16:
		if len(value) < 2 {
			return "?"
		}
		return fmt.Sprintf("%d", int16(order.Uint16(value)))
	case scanner.Uint16:
		if len(value) < 2 {
			return "?"
		}
		return fmt.Sprintf("%d", order.Uint16(value))
	case scanner.Int32:
		if len(value) < 4 {
			return "?"
		}
		return fmt.Sprintf("%d", int32(order.Uint32(value)))
	case scanner.Uint32:
		if len(value) < 4 {
			return "?"
		}
		return fmt.Sprintf("%d", order.Uint32(value))
	case scanner.Int64:
		if len(value) < 8 {
			return "?"
		}
		return fmt.Sprintf("%d", int64(order.Uint64(value)))
	case scanner.Uint64:
		if len(value) < 8 {
			return "?"
		}
		return fmt.Sprintf("%d", order.Uint64(value))
	case scanner.Float32:
		if len(value) < 4 {
			return "?"
		}
		return fmt.Sprintf("%g", math.Float32frombits(order.Uint32(value)))
	case scanner.Float64:
		if len(value) < 8 {
			return "?"
		}
		return fmt.Sprintf("%g", math.Float64frombits(order.Uint64(value)))
	default:
		return formatHex(value)
	}
}

func byteOrderFor(reverseEndian bool) binary.ByteOrder {
	if reverseEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func formatHex(value []byte) string {
	parts := make([]string, len(value))
	for i, b := range value {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func formatString(value []byte) string {
	if i := indexByte(value, 0); i >= 0 {
		value = value[:i]
	}
	return string(value)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// FormatAddress renders a target address the way the CLI's listing column
// shows it.
func FormatAddress(addr uint64) string {
	return fmt.Sprintf("%#016x", addr)
}

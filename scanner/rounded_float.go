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

package scanner

// float32Epsilon/float64Epsilon bound the open end of the Extreme rounding
// window in UserValue.integerFloatRange32/64, so a target value exactly at
// the previous whole number is excluded rather than matched twice.
const (
	float32Epsilon = 1e-5
	float64Epsilon = 1e-9
)

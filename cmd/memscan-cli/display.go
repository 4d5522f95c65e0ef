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

package main

import (
	"fmt"

	"github.com/fatih/color"

	"memscan/target"
)

// displayProcesses prints a column-aligned process listing, used by the
// -l/--list and -f/--find flags; kept small since the console's promptui
// flow is the primary interactive path.
func displayProcesses(processes []*target.Process) {
	var paddingPID, paddingPPID, paddingComm int
	for _, p := range processes {
		if n := len(fmt.Sprint(p.PID)); n > paddingPID {
			paddingPID = n
		}
		if n := len(fmt.Sprint(p.PPID)); n > paddingPPID {
			paddingPPID = n
		}
		if n := len(p.Comm); n > paddingComm {
			paddingComm = n
		}
	}

	for _, p := range processes {
		fmt.Printf("%s %*d %s %s %q\n",
			color.CyanString("%*d", paddingPID, p.PID),
			paddingPPID, p.PPID,
			color.YellowString(p.State.String()),
			color.GreenString("%-*s", paddingComm, p.Comm),
			p.Command,
		)
	}
}

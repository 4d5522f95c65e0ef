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
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"memscan/target"
)

const version = "0.1.0"

var (
	flagPID         int
	flagDebug       bool
	flagVersion     bool
	flagAllProcess  bool
	flagFindProcess string
)

func init() {
	pflag.IntVarP(&flagPID, "pid", "p", 0, "target process id")
	pflag.BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
	pflag.BoolVar(&flagVersion, "version", false, "print version and exit")
	pflag.BoolVarP(&flagAllProcess, "list", "l", false, "list every process and exit")
	pflag.StringVarP(&flagFindProcess, "find", "f", "", "list processes whose command matches a substring and exit")
	pflag.Parse()
}

// Exit codes: 0 graceful, 1 fatal error, 2 usage error.
func main() {
	os.Exit(run())
}

func run() int {
	if flagVersion {
		fmt.Println("memscan-cli", version)
		return 0
	}

	if flagAllProcess || flagFindProcess != "" {
		processes, err := target.List()
		if err != nil {
			fatalError(err)
			return 1
		}
		if flagFindProcess != "" {
			processes = target.Filter(processes, flagFindProcess)
		}
		displayProcesses(processes)
		return 0
	}

	pid := flagPID
	if pid == 0 && pflag.NArg() > 0 {
		var err error
		pid, err = parsePositionalPID(pflag.Arg(0))
		if err != nil {
			usageError(err)
			return 2
		}
	}
	if pid <= 0 {
		usageError(fmt.Errorf("a target pid is required: -p/--pid <pid> or a positional pid"))
		return 2
	}

	console, err := newConsole(pid, flagDebug)
	if err != nil {
		fatalError(err)
		return 1
	}
	defer console.Close()

	if err := console.Run(); err != nil {
		fatalError(err)
		return 1
	}
	return 0
}

func parsePositionalPID(s string) (int, error) {
	var pid int
	if _, err := fmt.Sscanf(s, "%d", &pid); err != nil {
		return 0, fmt.Errorf("invalid pid %q", s)
	}
	return pid, nil
}

func usageError(err error) {
	printCategory("error", err)
}

func fatalError(err error) {
	printCategory("error", err)
}

// printCategory renders a category-word message the way §7 specifies:
// colored when a TTY is attached, plain otherwise. fatih/color already
// disables color codes when os.Stderr isn't a terminal, so no separate TTY
// check is needed here.
func printCategory(category string, err error) {
	msg := fmt.Sprintf("%s: %v", category, err)
	switch category {
	case "info":
		color.New(color.FgCyan).Fprintln(os.Stderr, msg)
	case "warn":
		color.New(color.FgYellow).Fprintln(os.Stderr, msg)
	default:
		color.New(color.FgRed).Fprintln(os.Stderr, msg)
	}
}

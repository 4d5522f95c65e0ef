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
	"math"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"

	"memscan"
	"memscan/scanner"
	"memscan/target"
)

const (
	stepSelectType = iota
	stepEnterValue
	stepEnterChangeValue
	stepFirstScan
	stepMenu
	stepNarrowScan
	stepExit
)

var (
	colorLabel     = color.New(color.FgYellow)
	colorHighlight = color.New(color.FgGreen)
)

// console drives memscan.Scanner through a promptui-based REPL, mirroring
// teacher's step-machine console shape but against the pid-targeted core API
// instead of a Steam-Deck game picker.
type console struct {
	step        int
	selectIndex int

	pid   int
	proc  *target.Process
	sc    *memscan.Scanner
	value *scanner.UserValue
	kind  scanner.Type

	rounds   int
	lastStat memscan.ScanStats
	debug    bool
}

func newConsole(pid int, debug bool) (*console, error) {
	proc, err := target.New(pid)
	if err != nil {
		return nil, fmt.Errorf("target pid %d: %w", pid, err)
	}
	sc, err := memscan.NewScanner(pid)
	if err != nil {
		return nil, err
	}
	return &console{pid: pid, proc: proc, sc: sc, step: stepSelectType, selectIndex: -1, debug: debug}, nil
}

func (c *console) Close() error {
	return c.sc.Close()
}

func (c *console) Run() error {
	for {
		switch c.step {
		case stepSelectType:
			if err := c.selectValueType(); err != nil {
				return handlePromptErr(err)
			}
		case stepEnterValue, stepEnterChangeValue:
			if err := c.enterValue(); err != nil {
				return handlePromptErr(err)
			}
		case stepFirstScan:
			c.firstScan()
		case stepNarrowScan:
			c.narrowScan()
		case stepMenu:
			if err := c.menu(); err != nil {
				return handlePromptErr(err)
			}
		default:
			return nil
		}
	}
}

func handlePromptErr(err error) error {
	if err == promptui.ErrInterrupt || err == promptui.ErrEOF {
		return nil
	}
	return err
}

func (c *console) label() string {
	switch c.step {
	case stepSelectType:
		return fmt.Sprintf("%s [PID %d, %s]", colorLabel.Sprint("<VALUE TYPE>"), c.pid, colorHighlight.Sprint(c.proc.Comm))
	case stepEnterValue:
		if c.rounds == 0 {
			return colorLabel.Sprint("<FIRST SCAN VALUE>")
		}
		return colorLabel.Sprint("<NARROW SCAN VALUE>")
	case stepEnterChangeValue:
		if c.selectIndex > -1 {
			return colorLabel.Sprint("<WRITE VALUE>")
		}
		return colorLabel.Sprint("<WRITE VALUE (all matches)>")
	case stepMenu:
		return fmt.Sprintf("Scan #%d, %d match(es) [%v]", c.rounds, c.sc.MatchCount(), c.lastStat)
	default:
		return ""
	}
}

func (c *console) selectValueType() error {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ . | red }}",
		Inactive: "  {{ . }}",
		Selected: "Scan Type > {{ . | red }}",
	}

	items := []scanner.Type{
		scanner.Bytes, scanner.String,
		scanner.Int8, scanner.Int16, scanner.Int32, scanner.Int64,
		scanner.Uint8, scanner.Uint16, scanner.Uint32, scanner.Uint64,
		scanner.Float32, scanner.Float64,
		scanner.AnyInteger, scanner.AnyFloat, scanner.AnyNumber,
	}

	prompt := promptui.Select{
		Label:     c.label(),
		Items:     items,
		Templates: templates,
		Size:      len(items),
	}
	prompt.HideHelp = true

	i, _, err := prompt.Run()
	if err != nil {
		return err
	}
	c.kind = items[i]
	c.step = stepEnterValue
	return nil
}

func (c *console) enterValue() error {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . | green }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . }} ",
	}

	validate := func(input string) error {
		_, err := scanner.ParseScalar(c.kind, input)
		if err != nil {
			return &inputError{typ: c.kind}
		}
		return nil
	}

	prompt := promptui.Prompt{
		Label:     c.label(),
		Templates: templates,
		Validate:  validate,
	}

	raw, err := prompt.Run()
	if err != nil {
		return err
	}
	uv, err := scanner.ParseScalar(c.kind, raw)
	if err != nil {
		return err
	}
	c.value = uv

	fmt.Printf("[1A[2K\r%s > %s\n", "Value", color.RedString(raw))

	switch c.step {
	case stepEnterChangeValue:
		c.writeValue()
		c.step = stepMenu
	default:
		if c.rounds == 0 {
			c.step = stepFirstScan
		} else {
			c.step = stepNarrowScan
		}
	}
	return nil
}

func (c *console) firstScan() {
	opts := memscan.ScanOptions{DataType: c.kind, MatchType: matchTypeFor(c.kind)}
	stats, err := c.sc.FirstScan(opts, c.value, nil)
	if err != nil {
		color.Red("error: %v", err)
	}
	c.lastStat = stats
	c.rounds++
	c.step = stepMenu
}

func (c *console) narrowScan() {
	opts := memscan.ScanOptions{DataType: c.kind, MatchType: matchTypeFor(c.kind)}
	stats, err := c.sc.NarrowScan(opts, c.value, nil)
	if err != nil {
		color.Red("error: %v", err)
	}
	c.lastStat = stats
	c.rounds++
	c.step = stepMenu
}

func matchTypeFor(kind scanner.Type) scanner.MatchType {
	if kind == scanner.String {
		return scanner.MatchEqualTo
	}
	return scanner.MatchEqualTo
}

func (c *console) menu() error {
	c.selectIndex = -1

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ . | red }}",
		Inactive: "  {{ . }}",
	}

	count := c.sc.MatchCount()

	var items []string
	var displayed []memscan.Entry
	if count > 0 && count <= 10 {
		entries, _, err := memscan.Collect(c.sc, memscan.CollectOptions{DataType: c.kind})
		if err == nil {
			displayed = entries
			for i, e := range entries {
				items = append(items, fmt.Sprintf("%2d. [%s] %s", i, memscan.FormatAddress(e.Address), memscan.FormatValue(e.Value, c.kind, false)))
			}
		}
	}

	narrowIdx := len(items)
	items = append(items, "Narrow Scan")
	newScanIdx := len(items)
	items = append(items, "New Scan")
	changeAllIdx := -1
	if count > 0 {
		changeAllIdx = len(items)
		items = append(items, "Write to all matches")
	}
	exitIdx := len(items)
	items = append(items, "Exit")

	prompt := promptui.Select{
		Label:     c.label(),
		Items:     items,
		Templates: templates,
		Size:      len(items) + 2,
	}
	prompt.HideHelp = true

	i, _, err := prompt.Run()
	if err != nil {
		return err
	}

	switch {
	case i == narrowIdx:
		c.step = stepEnterValue
	case i == newScanIdx:
		c.sc.Reset()
		c.rounds = 0
		c.step = stepSelectType
	case i == changeAllIdx:
		c.step = stepEnterChangeValue
	case i == exitIdx:
		c.step = stepExit
	default:
		if displayed != nil && i < len(displayed) {
			c.selectIndex = i
		}
		c.step = stepEnterChangeValue
	}
	return nil
}

func (c *console) writeValue() {
	entries, _, err := memscan.Collect(c.sc, memscan.CollectOptions{DataType: c.kind, Limit: 0})
	if err != nil {
		color.Red("error: %v", err)
		return
	}

	var targets []memscan.Entry
	if c.selectIndex > -1 && c.selectIndex < len(entries) {
		targets = entries[c.selectIndex : c.selectIndex+1]
	} else {
		targets = entries
	}

	for _, e := range targets {
		buf := encodeUserValue(c.value, c.kind)
		if _, err := c.sc.Write(e.Address, buf); err != nil {
			color.Red("error: writing %s: %v", memscan.FormatAddress(e.Address), err)
		}
	}
}

func encodeUserValue(uv *scanner.UserValue, kind scanner.Type) []byte {
	size := kind.ByteSize()
	if size == 0 {
		size = uv.Size()
	}
	buf := make([]byte, size)
	switch kind {
	case scanner.Bytes:
		copy(buf, uv.Bytes())
	case scanner.String:
		copy(buf, uv.Str())
	default:
		u := uv.Uint()
		for i := 0; i < size; i++ {
			buf[i] = byte(u >> (8 * i))
		}
	}
	return buf
}

type inputError struct {
	typ scanner.Type
}

func (e *inputError) Error() string {
	var help string
	switch e.typ {
	case scanner.Int8:
		help = fmt.Sprintf("Int8: %d to %d", math.MinInt8, math.MaxInt8)
	case scanner.Int16:
		help = fmt.Sprintf("Int16: %d to %d", math.MinInt16, math.MaxInt16)
	case scanner.Int32:
		help = fmt.Sprintf("Int32: %d to %d", math.MinInt32, math.MaxInt32)
	case scanner.Int64:
		help = fmt.Sprintf("Int64: %d to %d", math.MinInt64, math.MaxInt64)
	case scanner.Uint8, scanner.Uint16, scanner.Uint32, scanner.Uint64:
		help = "unsigned integer"
	case scanner.Float32:
		help = fmt.Sprintf("Float32: max %g", math.MaxFloat32)
	case scanner.Float64:
		help = fmt.Sprintf("Float64: max %g", math.MaxFloat64)
	case scanner.Bytes:
		help = `Bytes: a hex string, e.g. "FF 01"`
	default:
		help = "value does not parse for this type"
	}
	return fmt.Sprintf("invalid input: %s", help)
}

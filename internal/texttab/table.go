// Copyright 2026 The benchplot Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables with aligned columns.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Many of its methods return the Table so callers can easily chain
// them to build up many cells at once.
type Table struct {
	rows [][]textCell
}

type textCell struct {
	value      string
	leftMargin string
	alignment  align
}

type CellOption func(c *textCell)

func LeftMargin(x string) CellOption {
	return func(c *textCell) {
		c.leftMargin = x
	}
}

var (
	Left  CellOption = func(c *textCell) { c.alignment = alignLeft }
	Right CellOption = func(c *textCell) { c.alignment = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row. Cells after the
// first in a row default to a one-space left margin.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	row := &t.rows[len(t.rows)-1]
	c := textCell{value: value}
	if len(*row) > 0 {
		c.leftMargin = " "
	}
	for _, o := range opts {
		o(&c)
	}
	*row = append(*row, c)
	return t
}

// Format lays out table t and writes it to w. Each column is as wide
// as its widest cell, and its margin is the widest margin of its
// cells. Trailing spaces are not printed.
func (t *Table) Format(w io.Writer) error {
	var widths, margins []int
	for _, row := range t.rows {
		for col, cell := range row {
			if col == len(widths) {
				widths = append(widths, 0)
				margins = append(margins, 0)
			}
			widths[col] = max(widths[col], utf8.RuneCountInString(cell.value))
			margins[col] = max(margins[col], utf8.RuneCountInString(cell.leftMargin))
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		for col, cell := range row {
			fmt.Fprintf(&line, "%*s%s", margins[col], cell.leftMargin, cell.alignment.pad(cell.value, widths[col]))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

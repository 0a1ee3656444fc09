// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: frame/frame.go
// Summary: Immutable snapshots of the visible terminal state.
// Usage: Built by the producer on the session loop and handed to the renderer through a Mailbox.

package frame

import (
	"strings"

	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/selection"
)

// Frame is a read-only copy of the visible grid. Nothing mutates a Frame
// after Snapshot returns it.
type Frame struct {
	Generation uint64
	Cols, Rows int
	Cells      [][]parser.Cell
	Cursor     parser.Cursor

	Title        string
	ReverseVideo bool
	AltScreen    bool

	Selection    selection.Region
	HasSelection bool
}

// Snapshot deep-copies the visible state of v. sel may be nil.
func Snapshot(v *parser.VTerm, sel *selection.Engine, generation uint64) *Frame {
	cols, rows := v.Size()
	g := v.Grid()
	cells := make([][]parser.Cell, rows)
	backing := make([]parser.Cell, rows*cols)
	for r := range rows {
		row := backing[r*cols : (r+1)*cols : (r+1)*cols]
		copy(row, g.Line(r).Cells)
		cells[r] = row
	}
	f := &Frame{
		Generation:   generation,
		Cols:         cols,
		Rows:         rows,
		Cells:        cells,
		Cursor:       v.Cursor(),
		Title:        v.Title(),
		ReverseVideo: v.Modes().ReverseVideo,
		AltScreen:    v.AltScreen(),
	}
	if sel != nil {
		f.Selection, f.HasSelection = sel.Region()
	}
	return f
}

// Cell returns the cell at (row, col), or a blank cell when out of range.
func (f *Frame) Cell(row, col int) parser.Cell {
	if row < 0 || row >= f.Rows || col < 0 || col >= f.Cols {
		return parser.BlankCell
	}
	return f.Cells[row][col]
}

// Selected reports whether (row, col) is highlighted.
func (f *Frame) Selected(row, col int) bool {
	return f.HasSelection && f.Selection.Contains(row, col)
}

// RowText returns the row's characters with trailing blanks trimmed.
func (f *Frame) RowText(row int) string {
	if row < 0 || row >= f.Rows {
		return ""
	}
	var sb strings.Builder
	for _, c := range f.Cells[row] {
		if c.Continuation {
			continue
		}
		if c.Rune == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// String renders all rows separated by newlines.
func (f *Frame) String() string {
	lines := make([]string, f.Rows)
	for r := range lines {
		lines[r] = f.RowText(r)
	}
	return strings.Join(lines, "\n")
}

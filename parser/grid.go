// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/grid.go
// Summary: Fixed-size cell matrix with region scrolling and optional scrollback.
// Usage: VTerm keeps one Grid per screen (primary and alternate).
// Notes: Grid knows nothing about the cursor; callers pass coordinates.

package parser

// Line is one grid row.
type Line struct {
	Cells []Cell
	// Wrapped is true when the row was soft-wrapped into the next one.
	Wrapped bool
}

// Grid is a rows x cols cell matrix.
type Grid struct {
	cols, rows int
	lines      []Line
	history    *History
}

// NewGrid allocates a grid filled with blank cells. scrollback is the history
// capacity; zero disables it.
func NewGrid(cols, rows, scrollback int) *Grid {
	g := &Grid{cols: cols, rows: rows, history: NewHistory(scrollback)}
	g.lines = make([]Line, rows)
	for i := range g.lines {
		g.lines[i] = newLine(cols, BlankCell)
	}
	return g
}

func newLine(cols int, blank Cell) Line {
	cells := make([]Cell, cols)
	for i := range cells {
		cells[i] = blank
	}
	return Line{Cells: cells}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// History returns the scrollback ring.
func (g *Grid) History() *History { return g.history }

// Cell returns the cell at (row, col) or a blank cell when out of range.
func (g *Grid) Cell(row, col int) Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return BlankCell
	}
	return g.lines[row].Cells[col]
}

// Line returns a pointer to a visible row for in-place mutation.
func (g *Grid) Line(row int) *Line {
	return &g.lines[row]
}

// SetCell stores c at (row, col). Out-of-range writes are dropped.
func (g *Grid) SetCell(row, col int, c Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.lines[row].Cells[col] = c
}

// ClearRange blanks columns [from, to) of row.
func (g *Grid) ClearRange(row, from, to int, blank Cell) {
	if row < 0 || row >= g.rows {
		return
	}
	from, to = clamp(from, 0, g.cols), clamp(to, 0, g.cols)
	cells := g.lines[row].Cells
	for i := from; i < to; i++ {
		cells[i] = blank
	}
	g.fixWide(row)
}

// ClearRows blanks rows [from, to).
func (g *Grid) ClearRows(from, to int, blank Cell) {
	from, to = clamp(from, 0, g.rows), clamp(to, 0, g.rows)
	for r := from; r < to; r++ {
		g.ClearRange(r, 0, g.cols, blank)
		g.lines[r].Wrapped = false
	}
}

// Fill sets every cell to c. Used by RIS and DECALN.
func (g *Grid) Fill(c Cell) {
	for r := range g.lines {
		for i := range g.lines[r].Cells {
			g.lines[r].Cells[i] = c
		}
		g.lines[r].Wrapped = false
	}
}

// ScrollUp moves rows top..bottom (inclusive) up by n. Rows leaving the top
// go to scrollback when toHistory is set; rows entering at the bottom are
// blank.
func (g *Grid) ScrollUp(top, bottom, n int, blank Cell, toHistory bool) {
	if !g.validRegion(top, bottom) || n <= 0 {
		return
	}
	height := bottom - top + 1
	if n > height {
		n = height
	}
	for i := 0; i < n; i++ {
		if toHistory {
			g.history.Push(g.lines[top+i])
		}
	}
	copy(g.lines[top:bottom+1], g.lines[top+n:bottom+1])
	for r := bottom - n + 1; r <= bottom; r++ {
		g.lines[r] = newLine(g.cols, blank)
	}
}

// ScrollDown moves rows top..bottom (inclusive) down by n, inserting blank
// rows at top.
func (g *Grid) ScrollDown(top, bottom, n int, blank Cell) {
	if !g.validRegion(top, bottom) || n <= 0 {
		return
	}
	height := bottom - top + 1
	if n > height {
		n = height
	}
	copy(g.lines[top+n:bottom+1], g.lines[top:bottom+1-n])
	for r := top; r < top+n; r++ {
		g.lines[r] = newLine(g.cols, blank)
	}
}

// InsertBlanks shifts the cells at and after col right by n within row.
// Cells pushed past the right edge are lost.
func (g *Grid) InsertBlanks(row, col, n int, blank Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols || n <= 0 {
		return
	}
	cells := g.lines[row].Cells
	if n > g.cols-col {
		n = g.cols - col
	}
	copy(cells[col+n:], cells[col:g.cols-n])
	for i := col; i < col+n; i++ {
		cells[i] = blank
	}
	g.fixWide(row)
}

// DeleteCells removes n cells at col, shifting the rest of the row left and
// filling the right edge with blanks.
func (g *Grid) DeleteCells(row, col, n int, blank Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols || n <= 0 {
		return
	}
	cells := g.lines[row].Cells
	if n > g.cols-col {
		n = g.cols - col
	}
	copy(cells[col:], cells[col+n:])
	for i := g.cols - n; i < g.cols; i++ {
		cells[i] = blank
	}
	g.fixWide(row)
}

// Resize reallocates the grid keeping the top-left content that fits.
// Scrollback lines keep their original width.
func (g *Grid) Resize(cols, rows int) {
	lines := make([]Line, rows)
	for r := range lines {
		lines[r] = newLine(cols, BlankCell)
		if r < g.rows {
			copy(lines[r].Cells, g.lines[r].Cells)
			lines[r].Wrapped = g.lines[r].Wrapped && cols >= g.cols
		}
	}
	g.cols, g.rows, g.lines = cols, rows, lines
	for r := range g.lines {
		g.fixWide(r)
	}
}

// fixWide blanks halves of wide characters that lost their partner, which
// happens when shifts or clears cut through a wide character.
func (g *Grid) fixWide(row int) {
	cells := g.lines[row].Cells
	for i := range cells {
		switch {
		case cells[i].Continuation && (i == 0 || !cells[i-1].Wide):
			cells[i] = blankLike(cells[i])
		case cells[i].Wide && (i+1 >= len(cells) || !cells[i+1].Continuation):
			cells[i] = blankLike(cells[i])
		}
	}
}

func blankLike(c Cell) Cell {
	return Cell{Rune: ' ', FG: DefaultFG, BG: c.BG}
}

func (g *Grid) validRegion(top, bottom int) bool {
	return top >= 0 && bottom < g.rows && top <= bottom
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

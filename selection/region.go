// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/region.go
// Summary: Normalized selection regions, snapping and hit testing.

package selection

// Region is a normalized selection. EndCol is exclusive. In linear mode the
// region runs from (StartRow, StartCol) to (EndRow, EndCol) in reading
// order; in rectangular mode it covers columns [StartCol, EndCol) of every
// row in [StartRow, EndRow].
type Region struct {
	StartRow, StartCol int
	EndRow, EndCol     int
	Rect               bool
}

// Contains reports whether the cell at (row, col) is selected.
func (r Region) Contains(row, col int) bool {
	if row < r.StartRow || row > r.EndRow {
		return false
	}
	if r.Rect {
		return col >= r.StartCol && col < r.EndCol
	}
	if row == r.StartRow && col < r.StartCol {
		return false
	}
	if row == r.EndRow && col >= r.EndCol {
		return false
	}
	return true
}

// Region returns the snapped, normalized selection. ok is false when there
// is no selection or it covers no cells.
func (e *Engine) Region() (Region, bool) {
	if e.state == StateIdle {
		return Region{}, false
	}
	cols, _ := e.src.Size()
	a, b := e.anchor, e.active
	r := Region{Rect: e.rect}

	if e.rect {
		r.StartRow, r.EndRow = min(a.Row, b.Row), max(a.Row, b.Row)
		switch e.snap {
		case SnapChar:
			r.StartCol, r.EndCol = min(a.Edge, b.Edge), max(a.Edge, b.Edge)
		case SnapWord:
			left, right := a, b
			if b.Col < a.Col {
				left, right = b, a
			}
			r.StartCol, _ = e.wordBounds(left.Row, left.Col)
			_, r.EndCol = e.wordBounds(right.Row, right.Col)
		case SnapLine:
			r.StartCol, r.EndCol = 0, cols
		}
		return r, r.StartCol < r.EndCol
	}

	switch e.snap {
	case SnapChar:
		if b.Row < a.Row || (b.Row == a.Row && b.Edge < a.Edge) {
			a, b = b, a
		}
		r.StartRow, r.StartCol, r.EndRow, r.EndCol = a.Row, a.Edge, b.Row, b.Edge
	case SnapWord:
		if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
			a, b = b, a
		}
		r.StartRow, r.EndRow = a.Row, b.Row
		r.StartCol, _ = e.wordBounds(a.Row, a.Col)
		_, r.EndCol = e.wordBounds(b.Row, b.Col)
	case SnapLine:
		r.StartRow, r.EndRow = min(a.Row, b.Row), max(a.Row, b.Row)
		r.StartCol, r.EndCol = 0, cols
	}
	empty := r.StartRow == r.EndRow && r.StartCol >= r.EndCol
	return r, !empty
}

// Contains reports whether (row, col) is highlighted.
func (e *Engine) Contains(row, col int) bool {
	r, ok := e.Region()
	return ok && r.Contains(row, col)
}

// wordBounds returns the half-open column span of the word at (row, col).
// A non-word character forms a span of its own.
func (e *Engine) wordBounds(row, col int) (start, end int) {
	cols, _ := e.src.Size()
	col = e.leadCol(row, col)
	if !isWordChar(e.runeAt(row, col)) {
		end = col + 1
		if e.src.CellAt(row, col).Wide {
			end++
		}
		return col, min(end, cols)
	}
	start = col
	for start > 0 && isWordChar(e.runeAt(row, e.leadCol(row, start-1))) {
		start = e.leadCol(row, start-1)
	}
	end = col + 1
	for end < cols && isWordChar(e.runeAt(row, end)) {
		end++
	}
	return start, end
}

// leadCol maps a continuation cell to the column of its wide character.
func (e *Engine) leadCol(row, col int) int {
	if col > 0 && e.src.CellAt(row, col).Continuation {
		return col - 1
	}
	return col
}

// runeAt returns the rune shown at (row, col); continuation cells report
// their lead character.
func (e *Engine) runeAt(row, col int) rune {
	c := e.src.CellAt(row, e.leadCol(row, col))
	if c.Rune == 0 {
		return ' '
	}
	return c.Rune
}

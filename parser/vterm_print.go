// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_print.go
// Summary: Printing code points at the cursor with autowrap, insert mode and wide characters.
// Usage: Part of VTerm terminal emulator.

package parser

// Print writes r at the cursor. Zero-width code points are dropped.
// Ambiguous-width code points take one cell whatever the host locale.
func (v *VTerm) Print(r rune) {
	r = v.translate(r)
	w := v.width.RuneWidth(r)
	if w == 0 {
		return
	}
	if w > 2 {
		w = 2
	}
	if w == 2 && v.cols < 2 {
		r, w = '�', 1
	}
	g := v.Grid()

	if v.pendingWrap {
		v.pendingWrap = false
		if v.modes.AutoWrap {
			v.wrapLine()
		}
	}
	if w == 2 && v.cursor.Col == v.cols-1 {
		if v.modes.AutoWrap {
			g.ClearRange(v.cursor.Row, v.cursor.Col, v.cols, v.eraseCell())
			v.wrapLine()
		} else {
			v.cursor.Col = v.cols - 2
		}
	}

	row, col := v.cursor.Row, v.cursor.Col
	if v.modes.Insert {
		g.InsertBlanks(row, col, w, v.eraseCell())
	}
	v.clearWideAt(row, col)
	if w == 2 {
		v.clearWideAt(row, col+1)
	}
	g.SetCell(row, col, Cell{Rune: r, FG: v.pen.FG, BG: v.pen.BG, Attr: v.pen.Attr, Wide: w == 2})
	if w == 2 {
		g.SetCell(row, col+1, Cell{FG: v.pen.FG, BG: v.pen.BG, Attr: v.pen.Attr, Continuation: true})
	}
	v.lastPrinted = r

	if col+w >= v.cols {
		v.cursor.Col = v.cols - 1
		v.pendingWrap = v.modes.AutoWrap
	} else {
		v.cursor.Col = col + w
	}
	v.MarkDirty()
}

// wrapLine marks the current row as soft-wrapped and moves to the start of
// the next one, scrolling if needed.
func (v *VTerm) wrapLine() {
	v.Grid().Line(v.cursor.Row).Wrapped = true
	v.cursor.Col = 0
	v.index()
}

// clearWideAt blanks the partner half of a wide character about to be
// overwritten at (row, col).
func (v *VTerm) clearWideAt(row, col int) {
	g := v.Grid()
	c := g.Cell(row, col)
	switch {
	case c.Continuation && col > 0:
		g.SetCell(row, col-1, v.eraseCell())
	case c.Wide && col+1 < v.cols:
		g.SetCell(row, col+1, v.eraseCell())
	}
}

// RepeatLast implements REP.
func (v *VTerm) RepeatLast(n int) {
	if v.lastPrinted == 0 {
		return
	}
	r := v.lastPrinted
	saved := v.charsets[v.gl]
	v.charsets[v.gl] = charsetASCII
	for i := 0; i < n; i++ {
		v.Print(r)
	}
	v.charsets[v.gl] = saved
}

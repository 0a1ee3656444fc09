// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_resize.go
// Summary: Grid reallocation on window size changes.
// Usage: Part of VTerm terminal emulator.

package parser

// Resize reallocates both grids to cols x rows keeping top-left content. The
// cursor is clamped, not reflowed, and the scroll region resets to the full
// screen. Returns false when the size did not change.
func (v *VTerm) Resize(cols, rows int) bool {
	cols, rows = max(cols, 1), max(rows, 1)
	if cols == v.cols && rows == v.rows {
		return false
	}
	oldCols := v.cols
	for _, g := range v.screens {
		g.Resize(cols, rows)
	}
	v.cols, v.rows = cols, rows
	v.marginTop, v.marginBottom = 0, rows-1
	v.resetTabStops(oldCols)
	v.cursor.Row = clamp(v.cursor.Row, 0, rows-1)
	v.cursor.Col = clamp(v.cursor.Col, 0, cols-1)
	v.pendingWrap = false
	for i := range v.saved {
		v.saved[i].row = clamp(v.saved[i].row, 0, rows-1)
		v.saved[i].col = clamp(v.saved[i].col, 0, cols-1)
	}
	v.MarkDirty()
	return true
}

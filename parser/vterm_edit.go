// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_edit.go
// Summary: Insert/delete characters and lines.
// Usage: Part of VTerm terminal emulator.

package parser

// InsertCharacters implements ICH.
func (v *VTerm) InsertCharacters(n int) {
	v.Grid().InsertBlanks(v.cursor.Row, v.cursor.Col, n, v.eraseCell())
	v.pendingWrap = false
	v.MarkDirty()
}

// DeleteCharacters implements DCH.
func (v *VTerm) DeleteCharacters(n int) {
	v.Grid().DeleteCells(v.cursor.Row, v.cursor.Col, n, v.eraseCell())
	v.pendingWrap = false
	v.MarkDirty()
}

// InsertLines implements IL. Only effective inside the scroll region; the
// cursor returns to column 0.
func (v *VTerm) InsertLines(n int) {
	if v.cursor.Row < v.marginTop || v.cursor.Row > v.marginBottom {
		return
	}
	v.Grid().ScrollDown(v.cursor.Row, v.marginBottom, n, v.eraseCell())
	v.cursor.Col = 0
	v.pendingWrap = false
	v.MarkDirty()
}

// DeleteLines implements DL. Only effective inside the scroll region; the
// cursor returns to column 0.
func (v *VTerm) DeleteLines(n int) {
	if v.cursor.Row < v.marginTop || v.cursor.Row > v.marginBottom {
		return
	}
	v.Grid().ScrollUp(v.cursor.Row, v.marginBottom, n, v.eraseCell(), false)
	v.cursor.Col = 0
	v.pendingWrap = false
	v.MarkDirty()
}

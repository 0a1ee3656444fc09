// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_scroll.go
// Summary: Line feed, reverse index, region scrolling and DECSTBM.
// Usage: Part of VTerm terminal emulator.

package parser

// LineFeed handles LF, VT and FF. With LNM set it also returns the carriage.
func (v *VTerm) LineFeed() {
	v.index()
	if v.modes.LineFeedNL {
		v.cursor.Col = 0
	}
}

// NextLine implements NEL.
func (v *VTerm) NextLine() {
	v.index()
	v.cursor.Col = 0
}

// index moves down one row, scrolling the region when at the bottom margin.
func (v *VTerm) index() {
	v.pendingWrap = false
	switch {
	case v.cursor.Row == v.marginBottom:
		v.ScrollUp(1)
	case v.cursor.Row < v.rows-1:
		v.cursor.Row++
	}
	v.MarkDirty()
}

// ReverseIndex implements RI: moves up one row, scrolling the region down
// when at the top margin.
func (v *VTerm) ReverseIndex() {
	v.pendingWrap = false
	switch {
	case v.cursor.Row == v.marginTop:
		v.ScrollDown(1)
	case v.cursor.Row > 0:
		v.cursor.Row--
	}
	v.MarkDirty()
}

// ScrollUp scrolls the region up by n. Rows leaving the top of the primary
// screen are kept in scrollback when the region starts at row 0.
func (v *VTerm) ScrollUp(n int) {
	toHistory := v.active == ScreenPrimary && v.marginTop == 0
	v.Grid().ScrollUp(v.marginTop, v.marginBottom, n, v.eraseCell(), toHistory)
	v.MarkDirty()
}

// ScrollDown scrolls the region down by n.
func (v *VTerm) ScrollDown(n int) {
	v.Grid().ScrollDown(v.marginTop, v.marginBottom, n, v.eraseCell())
	v.MarkDirty()
}

// SetMargins implements DECSTBM with 1-based inclusive bounds. Zero selects
// the default. A region with top >= bottom is ignored.
func (v *VTerm) SetMargins(top, bottom int) {
	if top <= 0 {
		top = 1
	}
	if bottom <= 0 || bottom > v.rows {
		bottom = v.rows
	}
	if top >= bottom {
		debugLog.Printf("Parser: ignoring scroll region %d;%d", top, bottom)
		return
	}
	v.marginTop, v.marginBottom = top-1, bottom-1
	v.homeCursor()
}

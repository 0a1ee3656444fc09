// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/testharness_test.go
// Summary: Test harness for VTerm control sequence testing.
// Usage: Used by test files to send sequences and verify grid state.

package parser

import (
	"fmt"
	"strings"
	"testing"
)

// TestHarness bundles a VTerm and its Parser.
type TestHarness struct {
	vterm  *VTerm
	parser *Parser
}

// NewTestHarness creates a new test harness with specified terminal size.
func NewTestHarness(width, height int, opts ...Option) *TestHarness {
	vterm := NewVTerm(width, height, opts...)
	return &TestHarness{vterm: vterm, parser: NewParser(vterm)}
}

// SendSeq feeds a string to the parser as raw bytes.
// Example: h.SendSeq("\x1b[5A") sends "cursor up 5"
func (h *TestHarness) SendSeq(seq string) {
	h.parser.Feed([]byte(seq))
}

// GetCell returns the visible cell at column x, row y.
func (h *TestHarness) GetCell(x, y int) Cell {
	return h.vterm.CellAt(y, x)
}

// GetCursor returns the current cursor position (0-based).
func (h *TestHarness) GetCursor() (x, y int) {
	c := h.vterm.Cursor()
	return c.Col, c.Row
}

// GetSize returns the terminal size.
func (h *TestHarness) GetSize() (width, height int) {
	return h.vterm.Size()
}

// AssertRune verifies that a cell contains the expected rune (ignores style).
func (h *TestHarness) AssertRune(t *testing.T, x, y int, expectedRune rune) {
	t.Helper()
	actual := h.GetCell(x, y)
	if actual.Rune != expectedRune {
		t.Errorf("Cell[%d,%d] rune: expected %q, got %q", x, y, expectedRune, actual.Rune)
	}
}

// AssertText verifies a sequence of cells matches expected text.
func (h *TestHarness) AssertText(t *testing.T, x, y int, expectedText string) {
	t.Helper()
	for i, expectedRune := range []rune(expectedText) {
		h.AssertRune(t, x+i, y, expectedRune)
	}
}

// AssertCursor verifies the cursor is at the expected position.
func (h *TestHarness) AssertCursor(t *testing.T, expectedX, expectedY int) {
	t.Helper()
	actualX, actualY := h.GetCursor()
	if actualX != expectedX || actualY != expectedY {
		t.Errorf("Cursor position: expected (%d,%d), got (%d,%d)\n%s",
			expectedX, expectedY, actualX, actualY, h.Dump())
	}
}

// AssertScrollRegion verifies the scrolling region matches expected values.
func (h *TestHarness) AssertScrollRegion(t *testing.T, expectedTop, expectedBottom int) {
	t.Helper()
	actualTop, actualBottom := h.vterm.Margins()
	if actualTop != expectedTop || actualBottom != expectedBottom {
		t.Errorf("Scroll region: expected [%d,%d], got [%d,%d]",
			expectedTop, expectedBottom, actualTop, actualBottom)
	}
}

// AssertBlank verifies that a cell is blank.
func (h *TestHarness) AssertBlank(t *testing.T, x, y int) {
	t.Helper()
	if actual := h.GetCell(x, y); !actual.IsBlank() {
		t.Errorf("Cell[%d,%d] should be blank, got %q", x, y, actual.Rune)
	}
}

// AssertLineBlank verifies an entire line is blank.
func (h *TestHarness) AssertLineBlank(t *testing.T, y int) {
	t.Helper()
	width, _ := h.GetSize()
	for x := 0; x < width; x++ {
		h.AssertBlank(t, x, y)
	}
}

// Dump returns a visual representation of the grid with the cursor marked.
func (h *TestHarness) Dump() string {
	width, height := h.GetSize()
	cursorX, cursorY := h.GetCursor()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Terminal %dx%d (cursor at %d,%d)\n", width, height, cursorX, cursorY)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := h.GetCell(x, y)
			switch {
			case x == cursorX && y == cursorY:
				sb.WriteString("[")
			case cell.Rune == 0:
				sb.WriteString(" ")
			default:
				sb.WriteRune(cell.Rune)
			}
		}
		fmt.Fprintf(&sb, " |%d\n", y)
	}
	return sb.String()
}

// FillWithPattern resets the terminal and fills every row with pattern.
func (h *TestHarness) FillWithPattern(pattern string) {
	width, height := h.GetSize()
	h.SendSeq("\x1bc")
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			h.vterm.Print(rune(pattern[(y*width+x)%len(pattern)]))
		}
	}
	h.SendSeq("\x1b[H")
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package selection

import (
	"testing"
	"time"

	"github.com/framegrace/texelterm/parser"
)

const (
	cellW = 10
	cellH = 20
)

func newEngine(cols, rows int, content string) (*Engine, *parser.VTerm) {
	v := parser.NewVTerm(cols, rows)
	parser.NewParser(v).Feed([]byte(content))
	return NewEngine(v, Geometry{CellWidth: cellW, CellHeight: cellH}), v
}

// at returns pixel coordinates on the left boundary of (row, col).
func at(row, col int) (int, int) { return col * cellW, row*cellH + cellH/2 }

// mid returns pixel coordinates at the center of (row, col).
func mid(row, col int) (int, int) { return col*cellW + cellW/2, row*cellH + cellH/2 }

func selectText(t *testing.T, e *Engine, from, to [2]int) string {
	t.Helper()
	x, y := at(from[0], from[1])
	e.Start(x, y, false)
	x, y = at(to[0], to[1])
	e.Update(x, y)
	text, ok := e.Finish()
	if !ok {
		t.Fatalf("expected a non-empty selection from %v to %v", from, to)
	}
	return text
}

func TestSnapCyclingWithClickDetector(t *testing.T) {
	e, _ := newEngine(20, 3, "hello world")
	cd := NewClickDetector(DefaultMultiClickTimeout)
	base := time.Unix(1000, 0)
	want := []Snap{SnapChar, SnapWord, SnapLine, SnapChar}
	x, y := mid(0, 2)
	for i, snap := range want {
		p := e.PointAt(x, y)
		click := cd.DetectClickAt(1, p.Row, p.Col, base.Add(time.Duration(i)*100*time.Millisecond))
		e.Start(x, y, click > SingleClick)
		if e.Snap() != snap {
			t.Errorf("press %d: snap = %v, want %v", i+1, e.Snap(), snap)
		}
		e.Finish()
	}
}

func TestLinearSelectionDirections(t *testing.T) {
	e, _ := newEngine(20, 3, "hello world")
	if got := selectText(t, e, [2]int{0, 0}, [2]int{0, 5}); got != "hello" {
		t.Errorf("forward = %q", got)
	}
	if got := selectText(t, e, [2]int{0, 11}, [2]int{0, 6}); got != "world" {
		t.Errorf("backward = %q", got)
	}
}

func TestLinearSelectionAcrossRows(t *testing.T) {
	e, _ := newEngine(10, 3, "abc\r\ndef")
	if got := selectText(t, e, [2]int{0, 1}, [2]int{1, 2}); got != "bc\nde" {
		t.Errorf("got %q", got)
	}
	if got := selectText(t, e, [2]int{1, 2}, [2]int{0, 1}); got != "bc\nde" {
		t.Errorf("reverse got %q", got)
	}
}

func TestLinearSelectionJoinsSoftWraps(t *testing.T) {
	e, _ := newEngine(5, 3, "abcdefgh")
	if got := selectText(t, e, [2]int{0, 0}, [2]int{1, 3}); got != "abcdefgh" {
		t.Errorf("got %q", got)
	}
}

func TestWordAndLineSnap(t *testing.T) {
	e, _ := newEngine(20, 3, "foo bar-baz qux\r\n  line one")
	x, y := mid(0, 5)
	e.Start(x, y, false)
	e.Start(x, y, true)
	text, ok := e.Finish()
	if !ok || text != "bar-baz" {
		t.Errorf("word snap = %q, %v", text, ok)
	}

	x, y = mid(1, 4)
	e.Start(x, y, true)
	if e.Snap() != SnapLine {
		t.Fatalf("snap = %v", e.Snap())
	}
	text, _ = e.Finish()
	if text != "  line one" {
		t.Errorf("line snap = %q", text)
	}
}

func TestWordSnapExtendsAcrossWords(t *testing.T) {
	e, _ := newEngine(20, 2, "one two three")
	x, y := mid(0, 5)
	e.Start(x, y, false)
	e.Start(x, y, true)
	x, y = mid(0, 9)
	e.Update(x, y)
	if text, _ := e.Finish(); text != "two three" {
		t.Errorf("got %q", text)
	}
}

func TestRectangularSelection(t *testing.T) {
	e, _ := newEngine(10, 3, "abcdef\r\nghijkl\r\nmnopqr")
	if !e.ToggleRectangular() {
		t.Fatal("toggle should enable rectangular mode")
	}
	if got := selectText(t, e, [2]int{2, 3}, [2]int{0, 1}); got != "bc\nhi\nno" {
		t.Errorf("got %q", got)
	}
	if e.ToggleRectangular() {
		t.Fatal("second toggle should disable rectangular mode")
	}
	if got, _ := e.Finish(); got != "bcdef\nghijkl\nmno" {
		t.Errorf("linear re-extraction = %q", got)
	}
}

func TestClickWithoutMotionIsEmpty(t *testing.T) {
	e, _ := newEngine(10, 2, "abc")
	x, y := mid(0, 1)
	e.Start(x, y, false)
	if e.State() != StateSelecting {
		t.Fatalf("state = %v", e.State())
	}
	if _, ok := e.Finish(); ok {
		t.Error("a click without motion must not produce a selection")
	}
	if e.State() != StateIdle {
		t.Errorf("state = %v, want idle", e.State())
	}
}

func TestExtendKeepsAnchor(t *testing.T) {
	e, _ := newEngine(10, 2, "abcdefg")
	selectText(t, e, [2]int{0, 0}, [2]int{0, 3})
	x, y := at(0, 5)
	e.Extend(x, y, false)
	if e.State() != StateSelecting {
		t.Fatalf("state = %v", e.State())
	}
	text, ok := e.Finish()
	if !ok || text != "abcde" {
		t.Errorf("got %q, %v", text, ok)
	}
	if e.Anchor().Edge != 0 {
		t.Errorf("anchor moved to %+v", e.Anchor())
	}
}

func TestUpdateIgnoredUnlessSelecting(t *testing.T) {
	e, _ := newEngine(10, 2, "abcdefg")
	x, y := at(0, 4)
	if e.Update(x, y) {
		t.Error("update while idle must be ignored")
	}
	selectText(t, e, [2]int{0, 0}, [2]int{0, 2})
	if e.Update(x, y) {
		t.Error("update after finish must be ignored")
	}
	if text := e.Text(); text != "ab" {
		t.Errorf("text = %q", text)
	}
}

func TestClearResetsHighlight(t *testing.T) {
	e, _ := newEngine(10, 2, "abcdefg")
	selectText(t, e, [2]int{0, 0}, [2]int{0, 3})
	if !e.Contains(0, 1) {
		t.Fatal("cell should be highlighted")
	}
	if !e.Clear() {
		t.Error("clear should report a removed highlight")
	}
	if e.Contains(0, 1) || e.State() != StateIdle {
		t.Error("selection should be gone")
	}
	if e.Clear() {
		t.Error("second clear has nothing to remove")
	}
}

func TestWideCharacterExtraction(t *testing.T) {
	e, _ := newEngine(10, 2, "a中b")
	if got := selectText(t, e, [2]int{0, 2}, [2]int{0, 4}); got != "中b" {
		t.Errorf("got %q", got)
	}
}

func TestPointClamping(t *testing.T) {
	e, _ := newEngine(10, 2, "")
	e.SetGeometry(Geometry{CellWidth: cellW, CellHeight: cellH, Border: 4})
	p := e.PointAt(-50, 9999)
	if p.Row != 1 || p.Col != 0 || p.Edge != 0 {
		t.Errorf("point = %+v", p)
	}
	p = e.PointAt(4+10*cellW+3, 4)
	if p.Col != 9 || p.Edge != 10 {
		t.Errorf("point = %+v", p)
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{StartRow: 1, StartCol: 3, EndRow: 2, EndCol: 2}
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 5, false}, {1, 2, false}, {1, 3, true}, {1, 9, true},
		{2, 0, true}, {2, 1, true}, {2, 2, false}, {3, 0, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.row, c.col); got != c.want {
			t.Errorf("Contains(%d,%d) = %v", c.row, c.col, got)
		}
	}
	r.Rect = true
	if r.Contains(2, 0) || r.Contains(1, 3) {
		t.Error("rect region must bound columns on every row")
	}
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/selection.go
// Summary: Pointer-driven selection state machine with snap-to and rectangular mode.
// Usage: The session feeds it pixel coordinates from pointer events and
// exports the text returned by Finish to the clipboard.

package selection

import (
	"fmt"

	"github.com/framegrace/texelterm/parser"
)

// State is the selection lifecycle stage.
type State int

const (
	// StateIdle means no selection exists.
	StateIdle State = iota
	// StateSelecting means the button is held and the active end follows the pointer.
	StateSelecting
	// StateFinished means the selection is complete and still highlighted.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateFinished:
		return "finished"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Snap is the selection granularity.
type Snap int

const (
	SnapChar Snap = iota
	SnapWord
	SnapLine
)

func (s Snap) String() string {
	switch s {
	case SnapChar:
		return "char"
	case SnapWord:
		return "word"
	case SnapLine:
		return "line"
	}
	return fmt.Sprintf("Snap(%d)", int(s))
}

func (s Snap) next() Snap { return (s + 1) % 3 }

// Source is the read side of the grid the selection covers.
type Source interface {
	Size() (cols, rows int)
	CellAt(row, col int) parser.Cell
	RowWrapped(row int) bool
}

// Geometry converts pixel coordinates to cells.
type Geometry struct {
	CellWidth  int
	CellHeight int
	Border     int
}

// Point is a pointer position in grid terms.
type Point struct {
	Row, Col int
	// Edge is the column boundary nearest to the pointer, 0..cols. Character
	// selections run between edges so a click without motion selects nothing.
	Edge int
}

// Engine tracks one selection over a Source.
type Engine struct {
	src    Source
	geom   Geometry
	state  State
	snap   Snap
	rect   bool
	anchor Point
	active Point
}

// NewEngine creates an idle engine.
func NewEngine(src Source, geom Geometry) *Engine {
	e := &Engine{src: src}
	e.SetGeometry(geom)
	return e
}

// SetGeometry updates the pixel-to-cell conversion. Zero cell sizes become 1.
func (e *Engine) SetGeometry(g Geometry) {
	g.CellWidth = max(g.CellWidth, 1)
	g.CellHeight = max(g.CellHeight, 1)
	e.geom = g
}

// PointAt converts pixel coordinates to a clamped grid point.
func (e *Engine) PointAt(x, y int) Point {
	cols, rows := e.src.Size()
	g := e.geom
	px, py := x-g.Border, y-g.Border
	return Point{
		Row:  clamp(floorDiv(py, g.CellHeight), 0, rows-1),
		Col:  clamp(floorDiv(px, g.CellWidth), 0, cols-1),
		Edge: clamp(floorDiv(px+g.CellWidth/2, g.CellWidth), 0, cols),
	}
}

// Start begins a selection at pixel (x, y). With cycleSnapTo the granularity
// advances char → word → line → char; otherwise it resets to char.
func (e *Engine) Start(x, y int, cycleSnapTo bool) {
	if cycleSnapTo {
		e.snap = e.snap.next()
	} else {
		e.snap = SnapChar
	}
	p := e.PointAt(x, y)
	e.anchor, e.active = p, p
	e.state = StateSelecting
}

// Extend moves the active end to (x, y) keeping the anchor, and resumes
// selecting. cycleSnapTo advances the granularity as in Start. Without an
// existing selection it starts a new one.
func (e *Engine) Extend(x, y int, cycleSnapTo bool) {
	if e.state == StateIdle {
		e.Start(x, y, false)
		return
	}
	if cycleSnapTo {
		e.snap = e.snap.next()
	}
	e.active = e.PointAt(x, y)
	e.state = StateSelecting
}

// Update follows pointer motion while selecting. Reports whether the
// highlighted region may have changed.
func (e *Engine) Update(x, y int) bool {
	if e.state != StateSelecting {
		return false
	}
	p := e.PointAt(x, y)
	if p == e.active {
		return false
	}
	e.active = p
	return true
}

// Finish completes the selection and returns its text. ok is false when the
// selection is empty, in which case the engine returns to idle.
func (e *Engine) Finish() (text string, ok bool) {
	if e.state == StateIdle {
		return "", false
	}
	if _, nonEmpty := e.Region(); !nonEmpty {
		e.Clear()
		return "", false
	}
	e.state = StateFinished
	return e.Text(), true
}

// Clear drops the selection. Reports whether anything was highlighted.
func (e *Engine) Clear() bool {
	_, had := e.Region()
	e.state = StateIdle
	e.anchor, e.active = Point{}, Point{}
	return had
}

// ToggleRectangular flips between linear and rectangular extraction and
// returns the new setting. Anchor and active ends are untouched.
func (e *Engine) ToggleRectangular() bool {
	e.rect = !e.rect
	return e.rect
}

// State returns the lifecycle stage.
func (e *Engine) State() State { return e.state }

// Snap returns the current granularity.
func (e *Engine) Snap() Snap { return e.snap }

// Rectangular reports whether rectangular mode is on.
func (e *Engine) Rectangular() bool { return e.rect }

// Anchor and Active return the raw endpoints.
func (e *Engine) Anchor() Point { return e.anchor }
func (e *Engine) Active() Point { return e.active }

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
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

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/history.go
// Summary: Bounded scrollback ring holding rows scrolled off the primary grid.

package parser

// History is a fixed-capacity ring of lines. When full, pushing a line
// evicts the oldest one.
type History struct {
	buf   []Line
	start int
	n     int
}

// NewHistory returns a ring that keeps at most capacity lines. A capacity of
// zero disables scrollback.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{buf: make([]Line, capacity)}
}

// Cap returns the maximum number of lines kept.
func (h *History) Cap() int { return len(h.buf) }

// Len returns the number of lines currently held.
func (h *History) Len() int { return h.n }

// Push appends a line, evicting the oldest when the ring is full.
func (h *History) Push(l Line) {
	if len(h.buf) == 0 {
		return
	}
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = l
		h.n++
		return
	}
	h.buf[h.start] = l
	h.start = (h.start + 1) % len(h.buf)
}

// Line returns the i-th line, 0 being the oldest. Out of range returns an
// empty line.
func (h *History) Line(i int) Line {
	if i < 0 || i >= h.n {
		return Line{}
	}
	return h.buf[(h.start+i)%len(h.buf)]
}

// Clear drops every line.
func (h *History) Clear() {
	for i := range h.buf {
		h.buf[i] = Line{}
	}
	h.start, h.n = 0, 0
}

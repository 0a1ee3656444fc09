// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/click_detector.go
// Summary: Multi-click detection keyed by button, cell and time window.

package selection

import "time"

// ClickType represents the type of click detected.
type ClickType int

const (
	SingleClick ClickType = 1
	DoubleClick ClickType = 2
	TripleClick ClickType = 3
)

// DefaultMultiClickTimeout is the maximum time between releasing a button
// and pressing it again for multi-click detection.
const DefaultMultiClickTimeout = 250 * time.Millisecond

// ClickDetector tracks button, cell and release timing to detect multi-clicks.
type ClickDetector struct {
	timeout    time.Duration
	lastTime   time.Time
	lastButton int
	lastRow    int
	lastCol    int
	clickCount int
	released   bool
}

// NewClickDetector creates a detector. A non-positive timeout selects
// DefaultMultiClickTimeout.
func NewClickDetector(timeout time.Duration) *ClickDetector {
	if timeout <= 0 {
		timeout = DefaultMultiClickTimeout
	}
	return &ClickDetector{timeout: timeout}
}

// DetectClick classifies a press happening now.
func (c *ClickDetector) DetectClick(button, row, col int) ClickType {
	return c.DetectClickAt(button, row, col, time.Now())
}

// DetectClickAt classifies a press at time at. A press of the same button on
// the same cell within the timeout of that button's last release counts up;
// before any release the previous press time is used. The count cycles
// 1 → 2 → 3 → 1.
func (c *ClickDetector) DetectClickAt(button, row, col int, at time.Time) ClickType {
	same := c.clickCount > 0 &&
		button == c.lastButton && row == c.lastRow && col == c.lastCol &&
		at.Sub(c.lastTime) < c.timeout

	if same {
		c.clickCount++
		if c.clickCount > 3 {
			c.clickCount = 1
		}
	} else {
		c.clickCount = 1
	}

	c.lastTime = at
	c.lastButton = button
	c.lastRow = row
	c.lastCol = col
	c.released = false
	return ClickType(c.clickCount)
}

// Release records that button went up at time at. The next press is timed
// from here. Releases of another button end the click run.
func (c *ClickDetector) Release(button int, at time.Time) {
	if button != c.lastButton {
		c.clickCount = 0
		return
	}
	c.lastTime = at
	c.released = true
}

// Reset clears the click history, so the next press is a single click.
func (c *ClickDetector) Reset() {
	*c = ClickDetector{timeout: c.timeout}
}

// ClickCount returns the current click count (0 before any press).
func (c *ClickDetector) ClickCount() int { return c.clickCount }

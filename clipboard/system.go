// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clipboard/system.go
// Summary: Host clipboard transport backed by github.com/atotto/clipboard.

package clipboard

import (
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// Selection names the host clipboard to use.
type Selection string

const (
	SelectionClipboard Selection = "clipboard"
	SelectionPrimary   Selection = "primary"
)

// ParseSelection maps a config value to a Selection. Unknown values fall
// back to the regular clipboard.
func ParseSelection(s string) Selection {
	if Selection(s) == SelectionPrimary {
		return SelectionPrimary
	}
	return SelectionClipboard
}

// System talks to the host clipboard. The atotto package keeps its target
// in a package variable, so calls are serialized.
type System struct {
	mu  sync.Mutex
	sel Selection
}

// NewSystem creates a transport for the given selection.
func NewSystem(sel Selection) *System {
	return &System{sel: sel}
}

// Supported reports whether a clipboard utility was found on this host.
func (s *System) Supported() bool { return !clipboard.Unsupported }

// Publish writes text to the host clipboard.
func (s *System) Publish(_ time.Time, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	usePrimary(s.sel == SelectionPrimary)
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write %s: %w", s.sel, err)
	}
	return nil
}

// Request reads the host clipboard on a separate goroutine.
func (s *System) Request(_ time.Time, cb func(string, error)) {
	go func() {
		s.mu.Lock()
		usePrimary(s.sel == SelectionPrimary)
		text, err := clipboard.ReadAll()
		s.mu.Unlock()
		if err != nil {
			err = fmt.Errorf("read %s: %w", s.sel, err)
		}
		cb(text, err)
	}()
}

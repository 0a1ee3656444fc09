// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/modifier.go
// Summary: Keyboard modifier bitmask.

package protocol

import "strings"

// Modifier is a set of keyboard modifiers. The bit values match the xterm
// modifier parameter, which is 1 + the mask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0
	// ModShift indicates the Shift key.
	ModShift Modifier = 1
	// ModAlt indicates the Alt (Meta) key.
	ModAlt Modifier = 2
	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 4
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// Param returns the CSI modifier parameter, 0 when no modifier is active.
func (m Modifier) Param() int {
	m &= ModShift | ModAlt | ModCtrl
	if m == ModNone {
		return 0
	}
	return 1 + int(m)
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

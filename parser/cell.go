// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/cell.go
// Summary: Cell, color and attribute types shared by the grid and frames.
// Usage: Produced by VTerm, copied into frames, read by renderers.

package parser

import "strings"

// Attribute is a bitset of SGR rendition flags.
type Attribute uint16

const (
	AttrBold Attribute = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikethrough
	AttrInvisible
)

var attrNames = []struct {
	attr Attribute
	name string
}{
	{AttrBold, "bold"},
	{AttrFaint, "faint"},
	{AttrItalic, "italic"},
	{AttrUnderline, "underline"},
	{AttrBlink, "blink"},
	{AttrReverse, "reverse"},
	{AttrStrikethrough, "strikethrough"},
	{AttrInvisible, "invisible"},
}

// String returns a human-readable representation of the attribute flags.
func (a Attribute) String() string {
	if a == 0 {
		return "none"
	}
	var parts []string
	for _, n := range attrNames {
		if a&n.attr != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// ColorMode defines the type of color stored.
type ColorMode uint8

const (
	ColorModeDefault  ColorMode = iota // Default terminal color
	ColorModeStandard                  // The 16 ANSI colors (0-7 normal, 8-15 bright)
	ColorMode256                       // 256-color palette
	ColorModeRGB                       // 24-bit "true" color
)

// Color represents a color in one of the supported modes.
type Color struct {
	Mode    ColorMode
	Value   uint8 // Palette index for Standard and 256 modes
	R, G, B uint8 // Components for RGB mode
}

// DefaultFG and DefaultBG select the renderer's configured colors.
var (
	DefaultFG = Color{Mode: ColorModeDefault}
	DefaultBG = Color{Mode: ColorModeDefault}
)

// Cell represents a single character cell on the screen.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
	Attr Attribute
	// Wide marks the first column of a two-column character.
	Wide bool
	// Continuation marks the second column of a wide character. Its Rune is 0.
	Continuation bool
}

// BlankCell is the default-constructed content of every grid position.
var BlankCell = Cell{Rune: ' '}

// IsBlank reports whether the cell shows nothing but its background.
func (c Cell) IsBlank() bool {
	return !c.Continuation && (c.Rune == ' ' || c.Rune == 0)
}

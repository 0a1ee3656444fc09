// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/palette.go
// Summary: Maps parser cells to tcell styles through an xterm 256 color palette.

package devshell

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelterm/parser"
)

const (
	paletteFG = 256
	paletteBG = 257
)

// Palette holds the 256 indexed colors plus the default foreground and
// background. It is safe for concurrent use.
type Palette struct {
	mu           sync.RWMutex
	colors       [258]tcell.Color
	boldAsBright bool
}

// NewPalette builds the standard xterm palette with the given defaults.
func NewPalette(fg, bg colorful.Color, boldAsBright bool) *Palette {
	p := &Palette{boldAsBright: boldAsBright}
	p.colors = newDefaultPalette()
	p.colors[paletteFG] = toTCell(fg)
	p.colors[paletteBG] = toTCell(bg)
	return p
}

// DefaultPalette is white on black with bold-as-bright.
func DefaultPalette() *Palette {
	return NewPalette(colorful.Color{R: 1, G: 1, B: 1}, colorful.Color{}, true)
}

// Update replaces the default colors and the bold-as-bright setting.
func (p *Palette) Update(fg, bg colorful.Color, boldAsBright bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.colors[paletteFG] = toTCell(fg)
	p.colors[paletteBG] = toTCell(bg)
	p.boldAsBright = boldAsBright
}

func toTCell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Color resolves c. def selects the default slot (256 foreground, 257
// background) for ColorModeDefault.
func (p *Palette) Color(c parser.Color, def int) tcell.Color {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.color(c, def)
}

func (p *Palette) color(c parser.Color, def int) tcell.Color {
	switch c.Mode {
	case parser.ColorModeDefault:
		return p.colors[def]
	case parser.ColorModeStandard, parser.ColorMode256:
		return p.colors[c.Value]
	case parser.ColorModeRGB:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	default:
		return tcell.ColorDefault
	}
}

// Style returns the tcell style for cell. reverseVideo is DECSCNM; selected
// cells are drawn inverted.
func (p *Palette) Style(cell parser.Cell, reverseVideo, selected bool) tcell.Style {
	p.mu.RLock()
	defer p.mu.RUnlock()
	fgColor := cell.FG
	if p.boldAsBright && cell.Attr&parser.AttrBold != 0 &&
		fgColor.Mode == parser.ColorModeStandard && fgColor.Value < 8 {
		fgColor.Value += 8
	}
	fg := p.color(fgColor, paletteFG)
	bg := p.color(cell.BG, paletteBG)
	if cell.Attr&parser.AttrReverse != 0 {
		fg, bg = bg, fg
	}
	if reverseVideo {
		fg, bg = bg, fg
	}
	if selected {
		fg, bg = bg, fg
	}
	if cell.Attr&parser.AttrInvisible != 0 {
		fg = bg
	}

	return tcell.StyleDefault.
		Foreground(fg).
		Background(bg).
		Bold(cell.Attr&parser.AttrBold != 0).
		Dim(cell.Attr&parser.AttrFaint != 0).
		Italic(cell.Attr&parser.AttrItalic != 0).
		Underline(cell.Attr&parser.AttrUnderline != 0).
		Blink(cell.Attr&parser.AttrBlink != 0).
		StrikeThrough(cell.Attr&parser.AttrStrikethrough != 0)
}

// Background returns the color painted outside the grid.
func (p *Palette) Background(reverseVideo bool) tcell.Color {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if reverseVideo {
		return p.colors[paletteFG]
	}
	return p.colors[paletteBG]
}

func newDefaultPalette() [258]tcell.Color {
	var p [258]tcell.Color
	p[0] = tcell.NewRGBColor(0, 0, 0)        // Black
	p[1] = tcell.NewRGBColor(205, 0, 0)      // Red
	p[2] = tcell.NewRGBColor(0, 205, 0)      // Green
	p[3] = tcell.NewRGBColor(205, 205, 0)    // Yellow
	p[4] = tcell.NewRGBColor(0, 0, 238)      // Blue
	p[5] = tcell.NewRGBColor(205, 0, 205)    // Magenta
	p[6] = tcell.NewRGBColor(0, 205, 205)    // Cyan
	p[7] = tcell.NewRGBColor(229, 229, 229)  // White
	p[8] = tcell.NewRGBColor(127, 127, 127)  // Bright black
	p[9] = tcell.NewRGBColor(255, 0, 0)      // Bright red
	p[10] = tcell.NewRGBColor(0, 255, 0)     // Bright green
	p[11] = tcell.NewRGBColor(255, 255, 0)   // Bright yellow
	p[12] = tcell.NewRGBColor(92, 92, 255)   // Bright blue
	p[13] = tcell.NewRGBColor(255, 0, 255)   // Bright magenta
	p[14] = tcell.NewRGBColor(0, 255, 255)   // Bright cyan
	p[15] = tcell.NewRGBColor(255, 255, 255) // Bright white

	// 6x6x6 color cube
	levels := []int32{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = tcell.NewRGBColor(levels[r], levels[g], levels[b])
				i++
			}
		}
	}

	// Grayscale ramp
	for j := 0; j < 24; j++ {
		gray := int32(8 + j*10)
		p[i] = tcell.NewRGBColor(gray, gray, gray)
		i++
	}

	p[paletteFG] = p[15]
	p[paletteBG] = p[0]
	return p
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_sgr.go
// Summary: SGR (Select Graphic Rendition) - text attributes and colors.
// Usage: Part of VTerm terminal emulator.

package parser

// handleSGR processes SGR parameters. Extended colors accept both the
// semicolon form (38;5;n, 38;2;r;g;b) and the colon form (38:5:n,
// 38:2::r:g:b). Malformed extended runs are consumed without effect.
func (v *VTerm) handleSGR(c *CSI) {
	params := c.Params
	if len(params) == 0 {
		v.ResetAttributes()
		return
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			v.ResetAttributes()
		case p == 1:
			v.SetAttribute(AttrBold)
		case p == 2:
			v.SetAttribute(AttrFaint)
		case p == 3:
			v.SetAttribute(AttrItalic)
		case p == 4:
			v.SetAttribute(AttrUnderline)
		case p == 5 || p == 6:
			v.SetAttribute(AttrBlink)
		case p == 7:
			v.SetAttribute(AttrReverse)
		case p == 8:
			v.SetAttribute(AttrInvisible)
		case p == 9:
			v.SetAttribute(AttrStrikethrough)
		case p == 21 || p == 22:
			v.ClearAttribute(AttrBold | AttrFaint)
		case p == 23:
			v.ClearAttribute(AttrItalic)
		case p == 24:
			v.ClearAttribute(AttrUnderline)
		case p == 25:
			v.ClearAttribute(AttrBlink)
		case p == 27:
			v.ClearAttribute(AttrReverse)
		case p == 28:
			v.ClearAttribute(AttrInvisible)
		case p == 29:
			v.ClearAttribute(AttrStrikethrough)
		case p >= 30 && p <= 37:
			v.pen.FG = Color{Mode: ColorModeStandard, Value: uint8(p - 30)}
		case p == 39:
			v.pen.FG = DefaultFG
		case p >= 40 && p <= 47:
			v.pen.BG = Color{Mode: ColorModeStandard, Value: uint8(p - 40)}
		case p == 49:
			v.pen.BG = DefaultBG
		case p >= 90 && p <= 97:
			v.pen.FG = Color{Mode: ColorModeStandard, Value: uint8(p - 90 + 8)}
		case p >= 100 && p <= 107:
			v.pen.BG = Color{Mode: ColorModeStandard, Value: uint8(p - 100 + 8)}
		case p == 38 || p == 48 || p == 58:
			color, next, ok := extendedColor(c, i)
			if ok {
				switch p {
				case 38:
					v.pen.FG = color
				case 48:
					v.pen.BG = color
				}
			} else {
				debugLog.Printf("Parser: malformed extended color in SGR %v", params)
			}
			i = next - 1
		default:
			debugLog.Printf("Parser: unhandled SGR %d", p)
		}
	}
}

// extendedColor decodes the selector starting at params[i] (38, 48 or 58)
// and returns the index of the first parameter after the run.
func extendedColor(c *CSI, i int) (Color, int, bool) {
	params := c.Params
	if i+1 < len(params) && c.Sub[i+1] {
		end := i + 1
		for end < len(params) && c.Sub[end] {
			end++
		}
		group := params[i+1 : end]
		switch group[0] {
		case 5:
			if len(group) >= 2 {
				return paletteColor(group[1], end)
			}
		case 2:
			switch {
			case len(group) >= 5: // 2:colorspace:r:g:b
				return rgbColor(group[2], group[3], group[4], end)
			case len(group) == 4:
				return rgbColor(group[1], group[2], group[3], end)
			}
		}
		return Color{}, end, false
	}

	if i+1 >= len(params) {
		return Color{}, len(params), false
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			return paletteColor(params[i+2], i+3)
		}
	case 2:
		if i+4 < len(params) {
			return rgbColor(params[i+2], params[i+3], params[i+4], i+5)
		}
	default:
		return Color{}, i + 2, false
	}
	return Color{}, len(params), false
}

func paletteColor(idx, next int) (Color, int, bool) {
	if idx > 255 {
		return Color{}, next, false
	}
	return Color{Mode: ColorMode256, Value: uint8(idx)}, next, true
}

func rgbColor(r, g, b, next int) (Color, int, bool) {
	if r > 255 || g > 255 || b > 255 {
		return Color{}, next, false
	}
	return Color{Mode: ColorModeRGB, R: uint8(r), G: uint8(g), B: uint8(b)}, next, true
}

// SetAttribute sets a text attribute.
func (v *VTerm) SetAttribute(a Attribute) { v.pen.Attr |= a }

// ClearAttribute clears a text attribute.
func (v *VTerm) ClearAttribute(a Attribute) { v.pen.Attr &^= a }

// ResetAttributes resets all text attributes and colors to defaults.
func (v *VTerm) ResetAttributes() {
	v.pen = Pen{FG: DefaultFG, BG: DefaultBG}
}

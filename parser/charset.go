// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/charset.go
// Summary: G0/G1 character set designation and DEC special graphics.

package parser

type charset uint8

const (
	charsetASCII charset = iota
	charsetDECSpecial
	charsetUK
)

// decSpecial maps 0x5f..0x7e to line-drawing glyphs.
var decSpecial = [...]rune{
	' ', '◆', '▒', '␉', '␌', '␍', '␊', '°', '±', '␤', '␋', '┘', '┐', '┌', '└', '┼',
	'⎺', '⎻', '─', '⎼', '⎽', '├', '┤', '┴', '┬', '│', '≤', '≥', 'π', '≠', '£', '·',
}

func (v *VTerm) designateCharset(slot int, final byte) {
	switch final {
	case '0':
		v.charsets[slot] = charsetDECSpecial
	case 'A':
		v.charsets[slot] = charsetUK
	default:
		v.charsets[slot] = charsetASCII
	}
}

func (v *VTerm) translate(r rune) rune {
	switch v.charsets[v.gl] {
	case charsetDECSpecial:
		if r >= 0x5f && r <= 0x7e {
			return decSpecial[r-0x5f]
		}
	case charsetUK:
		if r == '#' {
			return '£'
		}
	}
	return r
}

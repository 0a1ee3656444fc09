// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/extract.go
// Summary: Plain-text extraction of the selected cells.

package selection

import (
	"strings"
	"unicode"
)

// Text returns the selected text. Linear selections join soft-wrapped rows
// without a newline; rectangular selections join every row slice with one.
// Trailing blanks of each row are dropped.
func (e *Engine) Text() string {
	r, ok := e.Region()
	if !ok {
		return ""
	}
	cols, _ := e.src.Size()
	var sb strings.Builder
	for row := r.StartRow; row <= r.EndRow; row++ {
		from, to := r.StartCol, r.EndCol
		if !r.Rect {
			if row != r.StartRow {
				from = 0
			}
			if row != r.EndRow {
				to = cols
			}
		}
		line := e.rowText(row, from, to)
		soft := !r.Rect && row != r.EndRow && to == cols && e.src.RowWrapped(row)
		if !soft {
			line = strings.TrimRight(line, " ")
		}
		sb.WriteString(line)
		if row != r.EndRow && !soft {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (e *Engine) rowText(row, from, to int) string {
	var sb strings.Builder
	for col := e.leadCol(row, from); col < to; col++ {
		c := e.src.CellAt(row, col)
		switch {
		case c.Continuation:
		case c.Rune == 0:
			sb.WriteByte(' ')
		default:
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}

func isWordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '_' || r == '-' ||
		(r > 0x7f && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/paste.go
// Summary: Paste encoding with optional bracketed-paste markers.

package protocol

import "strings"

const (
	pasteStart = "\x1b[200~"
	pasteEnd   = "\x1b[201~"
)

var newlines = strings.NewReplacer("\r\n", "\r", "\n", "\r")

// EncodePaste converts line feeds to carriage returns and, in bracketed
// mode, wraps the text in start/end markers after removing any embedded end
// marker.
func EncodePaste(text string, bracketed bool) []byte {
	text = newlines.Replace(text)
	if !bracketed {
		return []byte(text)
	}
	text = strings.ReplaceAll(text, pasteEnd, "")
	return []byte(pasteStart + text + pasteEnd)
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/codec.go
// Summary: Codec writes encoded input to the PTY and reports accepted byte counts.
// Usage: Owned by the session; the caller retries the unaccepted tail of a short write.

package protocol

import (
	"io"

	"github.com/framegrace/texelterm/parser"
)

// Codec encodes input events against the current terminal modes and writes
// them to the child.
type Codec struct {
	w io.Writer
}

// NewCodec creates a codec writing to w.
func NewCodec(w io.Writer) *Codec {
	return &Codec{w: w}
}

// KeyModeFrom extracts the key-relevant modes.
func KeyModeFrom(m parser.Modes) KeyMode {
	return KeyMode{AppCursor: m.AppCursorKeys, AppKeypad: m.AppKeypad}
}

// WriteKey encodes and writes a key press. Returns the number of bytes the
// PTY accepted.
func (c *Codec) WriteKey(k Key, mods Modifier, m parser.Modes) (int, error) {
	return c.WriteText(EncodeKey(k, mods, KeyModeFrom(m)))
}

// WriteRune encodes and writes a typed character.
func (c *Codec) WriteRune(r rune, mods Modifier) (int, error) {
	return c.WriteText(EncodeRune(r, mods))
}

// WriteText writes b verbatim. A short write returns the accepted count
// together with the writer's error.
func (c *Codec) WriteText(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return c.w.Write(b)
}

// WriteMouse writes a mouse report when the mode asks for it. Reports whether
// the event was consumed by reporting.
func (c *Codec) WriteMouse(ev MouseEvent, m parser.Modes) (bool, error) {
	b := EncodeMouse(ev, m.Mouse, m.MouseSGR)
	if b == nil {
		return false, nil
	}
	_, err := c.WriteText(b)
	return true, err
}

// WritePaste writes pasted text honoring bracketed paste mode.
func (c *Codec) WritePaste(text string, m parser.Modes) (int, error) {
	return c.WriteText(EncodePaste(text, m.BracketedPaste))
}

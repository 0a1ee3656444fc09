// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/events.go
// Summary: Input events delivered to the session loop with Post.

package session

import (
	"time"

	"github.com/framegrace/texelterm/protocol"
)

// Event is an input for the session loop.
type Event interface {
	event()
}

// KeyEvent is a press of a non-text key.
type KeyEvent struct {
	Key  protocol.Key
	Mods protocol.Modifier
}

// TextEvent carries typed or composed characters.
type TextEvent struct {
	Text string
	Mods protocol.Modifier
}

// MouseEvent is a pointer event in window pixels.
type MouseEvent struct {
	Button protocol.MouseButton
	Action protocol.MouseAction
	X, Y   int
	Mods   protocol.Modifier
	// Time is used for multi-click detection; zero means now.
	Time time.Time
}

// ResizeEvent reports the new drawable size in pixels.
type ResizeEvent struct {
	Width, Height int
}

// FocusEvent reports window focus changes.
type FocusEvent struct {
	Focused bool
}

// PasteEvent is text pasted by the host window system.
type PasteEvent struct {
	Text string
}

// ClipboardClearEvent reports that another client took clipboard ownership.
type ClipboardClearEvent struct{}

// ClipboardDataEvent delivers clipboard content pushed by the host; it is
// pasted into the child.
type ClipboardDataEvent struct {
	Text string
}

type syncFlushEvent struct{}

type clipboardPurpose int

const (
	purposePaste clipboardPurpose = iota
	purposeOSC52
)

type clipboardReplyEvent struct {
	purpose clipboardPurpose
	text    string
	err     error
}

func (KeyEvent) event()            {}
func (TextEvent) event()           {}
func (MouseEvent) event()          {}
func (ResizeEvent) event()         {}
func (FocusEvent) event()          {}
func (PasteEvent) event()          {}
func (ClipboardClearEvent) event() {}
func (ClipboardDataEvent) event()  {}
func (syncFlushEvent) event()      {}
func (clipboardReplyEvent) event() {}

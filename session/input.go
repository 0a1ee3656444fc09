// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/input.go
// Summary: Keyboard, mouse, paste and selection handling on the session loop.

package session

import (
	"log"
	"unicode/utf8"

	"github.com/framegrace/texelterm/clipboard"
	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/protocol"
	"github.com/framegrace/texelterm/selection"
)

// wheelLines is the number of cursor keys sent per wheel step in alt scroll mode.
const wheelLines = 3

// WriteKey encodes a key press for the child and returns the number of
// bytes the PTY accepted. Session bindings (Shift+Insert paste) consume the
// key and return 0.
func (s *Session) WriteKey(k protocol.Key, mods protocol.Modifier) (int, error) {
	if s.keyBinding(k, mods) {
		return 0, nil
	}
	return s.codec.WriteKey(k, mods, s.vterm.Modes())
}

// WriteText writes UTF-8 text verbatim and returns the accepted byte count.
func (s *Session) WriteText(b []byte) (int, error) {
	return s.codec.WriteText(b)
}

func (s *Session) keyBinding(k protocol.Key, mods protocol.Modifier) bool {
	if (k == protocol.KeyInsert || k == protocol.KeyKPInsert) && mods == protocol.ModShift {
		s.requestPaste()
		return true
	}
	return false
}

func (s *Session) handleKey(ev KeyEvent) {
	if s.keyBinding(ev.Key, ev.Mods) {
		return
	}
	s.send(protocol.EncodeKey(ev.Key, ev.Mods, protocol.KeyModeFrom(s.vterm.Modes())))
}

func (s *Session) handleText(ev TextEvent) {
	if ev.Text == " " && s.sel.State() == selection.StateSelecting {
		s.ToggleRectangularMode()
		return
	}
	if ev.Mods&(protocol.ModCtrl|protocol.ModAlt) == 0 {
		s.send([]byte(ev.Text))
		return
	}
	for _, r := range ev.Text {
		if r == utf8.RuneError {
			continue
		}
		s.send(protocol.EncodeRune(r, ev.Mods))
	}
}

// Focus reports a focus change to the child when mode 1004 is on.
func (s *Session) Focus(focused bool) {
	if s.vterm.Modes().FocusReporting {
		s.send(protocol.EncodeFocus(focused))
	}
}

// Paste writes text as a paste, bracketed when the child asked for it.
func (s *Session) Paste(text string) {
	if text == "" {
		return
	}
	s.send(protocol.EncodePaste(text, s.vterm.Modes().BracketedPaste))
}

func (s *Session) handleMouse(ev MouseEvent) {
	if ev.Time.IsZero() {
		ev.Time = s.now()
	}
	p := s.sel.PointAt(ev.X, ev.Y)
	modes := s.vterm.Modes()

	if modes.Mouse != parser.MouseOff && !ev.Mods.Has(protocol.ModShift) {
		report := protocol.MouseEvent{Button: ev.Button, Action: ev.Action, Row: p.Row, Col: p.Col, Mods: ev.Mods}
		if b := protocol.EncodeMouse(report, modes.Mouse, modes.MouseSGR); b != nil {
			s.send(b)
		}
		return
	}

	switch ev.Action {
	case protocol.MousePress:
		switch ev.Button {
		case protocol.Button1:
			click := s.clicks.DetectClickAt(int(ev.Button), p.Row, p.Col, ev.Time)
			s.SelectStart(ev.X, ev.Y, click != selection.SingleClick)
		case protocol.Button3:
			click := s.clicks.DetectClickAt(int(ev.Button), p.Row, p.Col, ev.Time)
			s.SelectExtend(ev.X, ev.Y, click != selection.SingleClick)
		case protocol.Button2:
			s.requestPaste()
		case protocol.WheelUp:
			s.wheel(protocol.KeyUp)
		case protocol.WheelDown:
			s.wheel(protocol.KeyDown)
		}
	case protocol.MouseMotion:
		s.SelectUpdate(ev.X, ev.Y)
	case protocol.MouseRelease:
		s.clicks.Release(int(ev.Button), ev.Time)
		if ev.Button == protocol.Button1 || ev.Button == protocol.Button3 {
			s.SelectFinish()
		}
	}
}

func (s *Session) wheel(k protocol.Key) {
	modes := s.vterm.Modes()
	if !s.vterm.AltScreen() || !modes.AltScroll {
		return
	}
	seq := protocol.EncodeKey(k, protocol.ModNone, protocol.KeyModeFrom(modes))
	for range wheelLines {
		s.send(seq)
	}
}

// SelectStart begins a selection at pixel (x, y). cycleSnapTo advances the
// snap granularity for repeated clicks.
func (s *Session) SelectStart(x, y int, cycleSnapTo bool) {
	s.sel.Start(x, y, cycleSnapTo)
	s.publish(true)
}

// SelectExtend moves the active end of the selection to (x, y).
// cycleSnapTo advances the snap granularity as in SelectStart.
func (s *Session) SelectExtend(x, y int, cycleSnapTo bool) {
	s.sel.Extend(x, y, cycleSnapTo)
	s.publish(true)
}

// SelectUpdate follows pointer motion during a drag.
func (s *Session) SelectUpdate(x, y int) {
	if s.sel.Update(x, y) {
		s.publish(true)
	}
}

// SelectFinish ends the drag and publishes the selected text to the
// clipboard. Reports whether a non-empty selection exists.
func (s *Session) SelectFinish() bool {
	if s.sel.State() != selection.StateSelecting {
		return s.sel.State() == selection.StateFinished
	}
	text, ok := s.sel.Finish()
	if ok {
		if err := s.clip.Publish(s.now(), text); err != nil {
			log.Printf("Session: clipboard publish failed: %v", err)
		}
	}
	s.publish(true)
	s.releaseHeld()
	return ok
}

// SelectClear drops the selection and its highlight.
func (s *Session) SelectClear() {
	if s.sel.Clear() {
		s.publish(true)
	}
	s.releaseHeld()
}

// ToggleRectangularMode switches between linear and rectangular selection.
func (s *Session) ToggleRectangularMode() bool {
	rect := s.sel.ToggleRectangular()
	if _, ok := s.sel.Region(); ok {
		s.publish(true)
	}
	return rect
}

func (s *Session) requestPaste() {
	s.requestClipboard(purposePaste)
}

// requestClipboard asks the transport for its content; the answer comes
// back to the loop as an event, bounded by the clipboard timeout.
func (s *Session) requestClipboard(purpose clipboardPurpose) {
	clipboard.RequestWithTimeout(s.clip, s.now(), s.clipboardTimeout, func(text string, err error) {
		s.tryPost(clipboardReplyEvent{purpose: purpose, text: text, err: err})
	})
}

func (s *Session) handleClipboardReply(ev clipboardReplyEvent) {
	if ev.err != nil {
		log.Printf("Session: clipboard request failed: %v", ev.err)
		ev.text = ""
	}
	switch ev.purpose {
	case purposePaste:
		s.Paste(ev.text)
	case purposeOSC52:
		s.send(protocol.EncodeOSC52Response([]byte(ev.text)))
	}
}

// handle dispatches one loop event.
func (s *Session) handle(ev Event) {
	switch ev := ev.(type) {
	case KeyEvent:
		s.handleKey(ev)
	case TextEvent:
		s.handleText(ev)
	case MouseEvent:
		s.handleMouse(ev)
	case ResizeEvent:
		s.Resize(ev.Width, ev.Height)
	case FocusEvent:
		s.Focus(ev.Focused)
	case PasteEvent:
		s.Paste(ev.Text)
	case ClipboardDataEvent:
		s.Paste(ev.Text)
	case ClipboardClearEvent:
		s.SelectClear()
	case clipboardReplyEvent:
		s.handleClipboardReply(ev)
	case syncFlushEvent:
		s.producer.Publish(s.vterm, s.sel, false)
	}
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/mouse.go
// Summary: Mouse report encoding for X10, normal, button-motion and any-motion modes.

package protocol

import (
	"fmt"

	"github.com/framegrace/texelterm/parser"
)

// MouseButton identifies the button of a pointer event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	Button1
	Button2
	Button3
	WheelUp
	WheelDown
)

// MouseAction is the kind of pointer event.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

// MouseEvent is a pointer event in 0-based cell coordinates. For motion
// events Button is the held button, or ButtonNone.
type MouseEvent struct {
	Button MouseButton
	Action MouseAction
	Row    int
	Col    int
	Mods   Modifier
}

// maxLegacyCoord is the largest 1-based coordinate the legacy encoding can carry.
const maxLegacyCoord = 255 - 32

// EncodeMouse returns the report for ev under the given mode, or nil when the
// mode does not report it.
func EncodeMouse(ev MouseEvent, mode parser.MouseMode, sgr bool) []byte {
	if !reports(ev, mode) {
		return nil
	}
	code, ok := buttonCode(ev.Button)
	if !ok {
		return nil
	}
	wheel := ev.Button == WheelUp || ev.Button == WheelDown
	if ev.Action == MouseRelease && !sgr {
		code = 3
	}
	if ev.Action == MouseMotion {
		code += 32
	}
	if mode != parser.MouseX10 {
		if ev.Mods.Has(ModShift) {
			code += 4
		}
		if ev.Mods.Has(ModAlt) {
			code += 8
		}
		if ev.Mods.Has(ModCtrl) {
			code += 16
		}
	}
	col, row := ev.Col+1, ev.Row+1

	if sgr {
		final := 'M'
		if ev.Action == MouseRelease {
			final = 'm'
		}
		return fmt.Appendf(nil, "\x1b[<%d;%d;%d%c", code, col, row, final)
	}
	if wheel && ev.Action == MouseRelease {
		return nil
	}
	if col > maxLegacyCoord || row > maxLegacyCoord {
		return nil
	}
	return []byte{0x1b, '[', 'M', byte(32 + code), byte(32 + col), byte(32 + row)}
}

func reports(ev MouseEvent, mode parser.MouseMode) bool {
	switch mode {
	case parser.MouseX10:
		return ev.Action == MousePress && ev.Button >= Button1 && ev.Button <= Button3
	case parser.MouseNormal:
		return ev.Action != MouseMotion
	case parser.MouseButtonMotion:
		return ev.Action != MouseMotion || ev.Button != ButtonNone
	case parser.MouseAnyMotion:
		return true
	}
	return false
}

func buttonCode(b MouseButton) (int, bool) {
	switch b {
	case Button1:
		return 0, true
	case Button2:
		return 1, true
	case Button3:
		return 2, true
	case ButtonNone:
		return 3, true
	case WheelUp:
		return 64, true
	case WheelDown:
		return 65, true
	}
	return 0, false
}

// EncodeFocus returns the focus report for mode 1004.
func EncodeFocus(focused bool) []byte {
	if focused {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}

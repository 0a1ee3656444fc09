// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/devshell/keymap.go
// Summary: Translates tcell input events into session events.

package devshell

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelterm/protocol"
	"github.com/framegrace/texelterm/session"
)

var specialKeys = map[tcell.Key]protocol.Key{
	tcell.KeyEnter:      protocol.KeyReturn,
	tcell.KeyBackspace:  protocol.KeyBackspace,
	tcell.KeyBackspace2: protocol.KeyBackspace,
	tcell.KeyTab:        protocol.KeyTab,
	tcell.KeyBacktab:    protocol.KeyTab,
	tcell.KeyEscape:     protocol.KeyEscape,
	tcell.KeyInsert:     protocol.KeyInsert,
	tcell.KeyDelete:     protocol.KeyDelete,
	tcell.KeyHome:       protocol.KeyHome,
	tcell.KeyEnd:        protocol.KeyEnd,
	tcell.KeyUp:         protocol.KeyUp,
	tcell.KeyDown:       protocol.KeyDown,
	tcell.KeyRight:      protocol.KeyRight,
	tcell.KeyLeft:       protocol.KeyLeft,
	tcell.KeyPgUp:       protocol.KeyPageUp,
	tcell.KeyPgDn:       protocol.KeyPageDown,
	tcell.KeyF1:         protocol.KeyF1,
	tcell.KeyF2:         protocol.KeyF2,
	tcell.KeyF3:         protocol.KeyF3,
	tcell.KeyF4:         protocol.KeyF4,
	tcell.KeyF5:         protocol.KeyF5,
	tcell.KeyF6:         protocol.KeyF6,
	tcell.KeyF7:         protocol.KeyF7,
	tcell.KeyF8:         protocol.KeyF8,
	tcell.KeyF9:         protocol.KeyF9,
	tcell.KeyF10:        protocol.KeyF10,
	tcell.KeyF11:        protocol.KeyF11,
	tcell.KeyF12:        protocol.KeyF12,
	tcell.KeyF13:        protocol.KeyF13,
	tcell.KeyF14:        protocol.KeyF14,
	tcell.KeyF15:        protocol.KeyF15,
	tcell.KeyF16:        protocol.KeyF16,
	tcell.KeyF17:        protocol.KeyF17,
	tcell.KeyF18:        protocol.KeyF18,
	tcell.KeyF19:        protocol.KeyF19,
	tcell.KeyF20:        protocol.KeyF20,
}

// controlRunes covers the C0 keys tcell reports without a letter.
var controlRunes = map[tcell.Key]rune{
	tcell.KeyCtrlSpace:      ' ',
	tcell.KeyCtrlBackslash:  '\\',
	tcell.KeyCtrlRightSq:    ']',
	tcell.KeyCtrlCarat:      '^',
	tcell.KeyCtrlUnderscore: '_',
}

func modifiers(m tcell.ModMask) protocol.Modifier {
	var mods protocol.Modifier
	if m&tcell.ModShift != 0 {
		mods |= protocol.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= protocol.ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods |= protocol.ModAlt
	}
	return mods
}

// keyEvent maps a tcell key press. ok is false for keys with no encoding.
func keyEvent(ev *tcell.EventKey) (session.Event, bool) {
	mods := modifiers(ev.Modifiers())
	key := ev.Key()

	if key == tcell.KeyRune {
		return session.TextEvent{Text: string(ev.Rune()), Mods: mods}, true
	}
	if k, ok := specialKeys[key]; ok {
		if key == tcell.KeyBacktab {
			mods |= protocol.ModShift
		}
		return session.KeyEvent{Key: k, Mods: mods}, true
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		r := rune('a' + (key - tcell.KeyCtrlA))
		return session.TextEvent{Text: string(r), Mods: mods | protocol.ModCtrl}, true
	}
	if r, ok := controlRunes[key]; ok {
		return session.TextEvent{Text: string(r), Mods: mods | protocol.ModCtrl}, true
	}
	return nil, false
}

// mouseTracker turns tcell's button state reports into press, release and
// motion events.
type mouseTracker struct {
	held tcell.ButtonMask
}

// buttonOrder pairs tcell buttons with X11 numbering; tcell's secondary
// button is the right one.
var buttonOrder = []struct {
	mask   tcell.ButtonMask
	button protocol.MouseButton
}{
	{tcell.Button1, protocol.Button1},
	{tcell.Button3, protocol.Button2},
	{tcell.Button2, protocol.Button3},
}

func (t *mouseTracker) events(ev *tcell.EventMouse) []session.Event {
	x, y := ev.Position()
	mods := modifiers(ev.Modifiers())
	buttons := ev.Buttons()
	mk := func(b protocol.MouseButton, a protocol.MouseAction) session.Event {
		return session.MouseEvent{Button: b, Action: a, X: x, Y: y, Mods: mods, Time: ev.When()}
	}

	var out []session.Event
	if buttons&tcell.WheelUp != 0 {
		out = append(out, mk(protocol.WheelUp, protocol.MousePress))
	}
	if buttons&tcell.WheelDown != 0 {
		out = append(out, mk(protocol.WheelDown, protocol.MousePress))
	}

	pressed := buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	changed := false
	for _, b := range buttonOrder {
		was, is := t.held&b.mask != 0, pressed&b.mask != 0
		switch {
		case is && !was:
			out = append(out, mk(b.button, protocol.MousePress))
			changed = true
		case was && !is:
			out = append(out, mk(b.button, protocol.MouseRelease))
			changed = true
		}
	}
	if !changed && len(out) == 0 {
		held := protocol.ButtonNone
		for _, b := range buttonOrder {
			if pressed&b.mask != 0 {
				held = b.button
				break
			}
		}
		out = append(out, mk(held, protocol.MouseMotion))
	}
	t.held = pressed
	return out
}

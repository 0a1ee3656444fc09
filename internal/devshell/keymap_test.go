// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package devshell

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/framegrace/texelterm/parser"
	"github.com/framegrace/texelterm/protocol"
	"github.com/framegrace/texelterm/session"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want session.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), session.TextEvent{Text: "q"}},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModAlt), session.TextEvent{Text: "q", Mods: protocol.ModAlt}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), session.KeyEvent{Key: protocol.KeyReturn}},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), session.KeyEvent{Key: protocol.KeyTab, Mods: protocol.ModShift}},
		{"ctrl up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl), session.KeyEvent{Key: protocol.KeyUp, Mods: protocol.ModCtrl}},
		{"f12", tcell.NewEventKey(tcell.KeyF12, 0, tcell.ModNone), session.KeyEvent{Key: protocol.KeyF12}},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), session.KeyEvent{Key: protocol.KeyBackspace}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keyEvent(tt.ev)
			if !ok || got != tt.want {
				t.Fatalf("keyEvent = %#v, %v; want %#v", got, ok, tt.want)
			}
		})
	}
}

func TestMouseTracker(t *testing.T) {
	var m mouseTracker
	step := func(x int, buttons tcell.ButtonMask) []session.Event {
		return m.events(tcell.NewEventMouse(x, 2, buttons, tcell.ModNone))
	}
	check := func(got []session.Event, want ...protocol.MouseAction) []session.MouseEvent {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("got %d events, want %d: %#v", len(got), len(want), got)
		}
		out := make([]session.MouseEvent, len(got))
		for i, ev := range got {
			me := ev.(session.MouseEvent)
			if me.Action != want[i] {
				t.Fatalf("event %d action %v, want %v", i, me.Action, want[i])
			}
			out[i] = me
		}
		return out
	}

	if ev := check(step(1, tcell.Button1), protocol.MousePress); ev[0].Button != protocol.Button1 || ev[0].X != 1 || ev[0].Y != 2 {
		t.Errorf("press = %+v", ev[0])
	}
	if ev := check(step(3, tcell.Button1), protocol.MouseMotion); ev[0].Button != protocol.Button1 {
		t.Errorf("drag = %+v", ev[0])
	}
	if ev := check(step(3, tcell.ButtonNone), protocol.MouseRelease); ev[0].Button != protocol.Button1 {
		t.Errorf("release = %+v", ev[0])
	}
	if ev := check(step(4, tcell.ButtonNone), protocol.MouseMotion); ev[0].Button != protocol.ButtonNone {
		t.Errorf("hover = %+v", ev[0])
	}
	if ev := check(step(4, tcell.Button2), protocol.MousePress); ev[0].Button != protocol.Button3 {
		t.Errorf("secondary button maps to %v, want Button3", ev[0].Button)
	}
	check(step(4, tcell.ButtonNone), protocol.MouseRelease)
	if ev := check(step(4, tcell.WheelUp), protocol.MousePress); ev[0].Button != protocol.WheelUp {
		t.Errorf("wheel = %+v", ev[0])
	}
}

func TestPaletteStyle(t *testing.T) {
	p := NewPalette(colorful.Color{R: 1, G: 1, B: 1}, colorful.Color{}, true)
	white, black := tcell.NewRGBColor(255, 255, 255), tcell.NewRGBColor(0, 0, 0)

	fg, bg, _ := p.Style(parser.BlankCell, false, false).Decompose()
	if fg != white || bg != black {
		t.Errorf("default = %v on %v", fg, bg)
	}
	fg, bg, _ = p.Style(parser.BlankCell, true, false).Decompose()
	if fg != black || bg != white {
		t.Errorf("reverse video = %v on %v", fg, bg)
	}
	fg, bg, _ = p.Style(parser.BlankCell, true, true).Decompose()
	if fg != white || bg != black {
		t.Errorf("selection under reverse video = %v on %v", fg, bg)
	}

	red := parser.Cell{Rune: 'x', FG: parser.Color{Mode: parser.ColorModeStandard, Value: 1}, Attr: parser.AttrBold}
	if fg, _, _ := p.Style(red, false, false).Decompose(); fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("bold red = %v, want bright red", fg)
	}
	plain := NewPalette(colorful.Color{R: 1, G: 1, B: 1}, colorful.Color{}, false)
	if fg, _, _ := plain.Style(red, false, false).Decompose(); fg != tcell.NewRGBColor(205, 0, 0) {
		t.Errorf("bold red without boldAsBright = %v", fg)
	}

	rgb := parser.Cell{Rune: 'x', BG: parser.Color{Mode: parser.ColorModeRGB, R: 1, G: 2, B: 3}}
	if _, bg, _ := p.Style(rgb, false, false).Decompose(); bg != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("rgb bg = %v", bg)
	}
	cube := parser.Cell{Rune: 'x', FG: parser.Color{Mode: parser.ColorMode256, Value: 196}}
	if fg, _, _ := p.Style(cube, false, false).Decompose(); fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("256 color 196 = %v", fg)
	}
}

func TestPaletteUpdate(t *testing.T) {
	p := DefaultPalette()
	p.Update(colorful.Color{R: 1}, colorful.Color{B: 1}, false)
	fg, bg, _ := p.Style(parser.BlankCell, false, false).Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 0, 255) {
		t.Errorf("updated defaults = %v on %v", fg, bg)
	}
	if p.Background(true) != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("reverse background = %v", p.Background(true))
	}
}

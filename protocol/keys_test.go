// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import "testing"

func TestEncodeKey(t *testing.T) {
	normal := KeyMode{}
	app := KeyMode{AppCursor: true, AppKeypad: true}
	tests := []struct {
		name string
		key  Key
		mods Modifier
		mode KeyMode
		want string
	}{
		{"up", KeyUp, ModNone, normal, "\x1b[A"},
		{"up app cursor", KeyUp, ModNone, app, "\x1bOA"},
		{"shift up", KeyUp, ModShift, normal, "\x1b[1;2A"},
		{"alt up", KeyUp, ModAlt, app, "\x1b[1;3A"},
		{"ctrl left", KeyLeft, ModCtrl, normal, "\x1b[1;5D"},
		{"ctrl shift right", KeyRight, ModCtrl | ModShift, normal, "\x1b[1;6C"},
		{"ctrl alt shift home", KeyHome, ModCtrl | ModAlt | ModShift, normal, "\x1b[1;8H"},
		{"end", KeyEnd, ModNone, normal, "\x1b[F"},
		{"delete", KeyDelete, ModNone, normal, "\x1b[3~"},
		{"ctrl delete", KeyDelete, ModCtrl, normal, "\x1b[3;5~"},
		{"page down", KeyPageDown, ModNone, app, "\x1b[6~"},
		{"f1", KeyF1, ModNone, normal, "\x1bOP"},
		{"shift f1", KeyF1, ModShift, normal, "\x1b[1;2P"},
		{"f5", KeyF5, ModNone, normal, "\x1b[15~"},
		{"f12 alt", KeyF12, ModAlt, normal, "\x1b[24;3~"},
		{"f20", KeyF20, ModNone, normal, "\x1b[34~"},
		{"return", KeyReturn, ModNone, normal, "\r"},
		{"alt return", KeyReturn, ModAlt, normal, "\x1b\r"},
		{"backspace", KeyBackspace, ModNone, normal, "\x7f"},
		{"ctrl backspace", KeyBackspace, ModCtrl, normal, "\x08"},
		{"tab", KeyTab, ModNone, normal, "\t"},
		{"shift tab", KeyTab, ModShift, normal, "\x1b[Z"},
		{"escape", KeyEscape, ModNone, normal, "\x1b"},
		{"kp 5 numeric", KeyKP5, ModNone, normal, "5"},
		{"kp 5 app", KeyKP5, ModNone, app, "\x1bOu"},
		{"kp 5 shift ignored", KeyKP5, ModShift, app, "\x1bOu"},
		{"kp enter numeric", KeyKPEnter, ModNone, normal, "\r"},
		{"kp enter app", KeyKPEnter, ModNone, app, "\x1bOM"},
		{"kp plus app", KeyKPPlus, ModNone, app, "\x1bOk"},
		{"kp f1", KeyKPF1, ModNone, normal, "\x1bOP"},
		{"kp up", KeyKPUp, ModNone, app, "\x1bOA"},
		{"kp begin", KeyKPBegin, ModNone, normal, "\x1b[E"},
		{"kp delete", KeyKPDelete, ModNone, normal, "\x1b[3~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(EncodeKey(tt.key, tt.mods, tt.mode)); got != tt.want {
				t.Errorf("EncodeKey(%v, %v) = %q, want %q", tt.key, tt.mods, got, tt.want)
			}
		})
	}
}

func TestModifierParam(t *testing.T) {
	for mods, want := range map[Modifier]int{
		ModNone:                     0,
		ModShift:                    2,
		ModAlt:                      3,
		ModShift | ModAlt:           4,
		ModCtrl:                     5,
		ModCtrl | ModShift:          6,
		ModCtrl | ModAlt:            7,
		ModCtrl | ModAlt | ModShift: 8,
	} {
		if got := mods.Param(); got != want {
			t.Errorf("%v.Param() = %d, want %d", mods, got, want)
		}
	}
}

func TestEncodeRune(t *testing.T) {
	tests := []struct {
		r    rune
		mods Modifier
		want string
	}{
		{'a', ModNone, "a"},
		{'é', ModNone, "é"},
		{'c', ModCtrl, "\x03"},
		{'C', ModCtrl, "\x03"},
		{'[', ModCtrl, "\x1b"},
		{' ', ModCtrl, "\x00"},
		{'?', ModCtrl, "\x7f"},
		{'x', ModAlt, "\x1bx"},
		{'a', ModCtrl | ModAlt, "\x1b\x01"},
		{'é', ModCtrl, "é"},
	}
	for _, tt := range tests {
		if got := string(EncodeRune(tt.r, tt.mods)); got != tt.want {
			t.Errorf("EncodeRune(%q, %v) = %q, want %q", tt.r, tt.mods, got, tt.want)
		}
	}
}

func TestEncodeKeyUnknown(t *testing.T) {
	if b := EncodeKey(KeyNone, ModNone, KeyMode{}); b != nil {
		t.Errorf("KeyNone should encode to nil, got %q", b)
	}
	if b := EncodeKey(Key(9999), ModNone, KeyMode{}); b != nil {
		t.Errorf("out of range key should encode to nil, got %q", b)
	}
}

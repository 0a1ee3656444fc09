// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/keys.go
// Summary: Logical keys and their xterm byte encodings.
// Usage: The session encodes key events with EncodeKey and writes the result to the PTY.

package protocol

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Key identifies a non-text key.
type Key int

const (
	KeyNone Key = iota
	KeyReturn
	KeyBackspace
	KeyTab
	KeyEscape
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPF1
	KeyKPF2
	KeyKPF3
	KeyKPF4
	KeyKPUp
	KeyKPDown
	KeyKPRight
	KeyKPLeft
	KeyKPPageUp
	KeyKPPageDown
	KeyKPInsert
	KeyKPDelete
	KeyKPBegin
	KeyKPHome
	KeyKPEnd
	KeyKPPlus
	KeyKPMinus
	KeyKPStar
	KeyKPSlash
	KeyKPComma
	KeyKPDot
	KeyKPEqual
	KeyKPSpace
	KeyKPTab
	KeyKPEnter
	keyCount
)

// KeyMode carries the terminal modes that change key encodings.
type KeyMode struct {
	AppCursor bool
	AppKeypad bool
}

type keyForm int

const (
	formCursor  keyForm = iota + 1 // CSI x / SS3 x in app cursor mode
	formSS3                        // SS3 x, CSI 1;m x with modifiers
	formTilde                      // CSI n ~
	formKeypad                     // literal in numeric mode, SS3 x in app keypad mode
	formSpecial
)

type keyEncoding struct {
	form    keyForm
	final   byte   // cursor, SS3 and keypad application final
	number  int    // tilde code
	literal string // numeric keypad text
}

var keyTable [keyCount]keyEncoding

func init() {
	cursor := func(k Key, final byte) { keyTable[k] = keyEncoding{form: formCursor, final: final} }
	tilde := func(k Key, n int) { keyTable[k] = keyEncoding{form: formTilde, number: n} }
	ss3 := func(k Key, final byte) { keyTable[k] = keyEncoding{form: formSS3, final: final} }
	keypad := func(k Key, final byte, literal string) {
		keyTable[k] = keyEncoding{form: formKeypad, final: final, literal: literal}
	}

	for _, k := range []Key{KeyReturn, KeyBackspace, KeyTab, KeyEscape} {
		keyTable[k] = keyEncoding{form: formSpecial}
	}
	cursor(KeyUp, 'A')
	cursor(KeyDown, 'B')
	cursor(KeyRight, 'C')
	cursor(KeyLeft, 'D')
	cursor(KeyHome, 'H')
	cursor(KeyEnd, 'F')
	cursor(KeyKPUp, 'A')
	cursor(KeyKPDown, 'B')
	cursor(KeyKPRight, 'C')
	cursor(KeyKPLeft, 'D')
	cursor(KeyKPHome, 'H')
	cursor(KeyKPEnd, 'F')
	cursor(KeyKPBegin, 'E')

	tilde(KeyInsert, 2)
	tilde(KeyDelete, 3)
	tilde(KeyPageUp, 5)
	tilde(KeyPageDown, 6)
	tilde(KeyKPInsert, 2)
	tilde(KeyKPDelete, 3)
	tilde(KeyKPPageUp, 5)
	tilde(KeyKPPageDown, 6)
	for i, n := range []int{15, 17, 18, 19, 20, 21, 23, 24, 25, 26, 28, 29, 31, 32, 33, 34} {
		tilde(KeyF5+Key(i), n)
	}

	for i, final := range []byte("PQRS") {
		ss3(KeyF1+Key(i), final)
		ss3(KeyKPF1+Key(i), final)
	}

	for i := 0; i <= 9; i++ {
		keypad(KeyKP0+Key(i), byte('p'+i), strconv.Itoa(i))
	}
	keypad(KeyKPPlus, 'k', "+")
	keypad(KeyKPMinus, 'm', "-")
	keypad(KeyKPStar, 'j', "*")
	keypad(KeyKPSlash, 'o', "/")
	keypad(KeyKPComma, 'l', ",")
	keypad(KeyKPDot, 'n', ".")
	keypad(KeyKPEqual, 'X', "=")
	keypad(KeyKPSpace, ' ', " ")
	keypad(KeyKPTab, 'I', "\t")
	keypad(KeyKPEnter, 'M', "\r")
}

func (k Key) String() string {
	switch {
	case k >= KeyF1 && k <= KeyF20:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	case k >= KeyKP0 && k <= KeyKP9:
		return fmt.Sprintf("KP_%d", int(k-KeyKP0))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

var keyNames = map[Key]string{
	KeyNone: "None", KeyReturn: "Return", KeyBackspace: "Backspace", KeyTab: "Tab",
	KeyEscape: "Escape", KeyInsert: "Insert", KeyDelete: "Delete", KeyHome: "Home",
	KeyEnd: "End", KeyUp: "Up", KeyDown: "Down", KeyRight: "Right", KeyLeft: "Left",
	KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyKPF1: "KP_F1", KeyKPF2: "KP_F2", KeyKPF3: "KP_F3", KeyKPF4: "KP_F4",
	KeyKPUp: "KP_Up", KeyKPDown: "KP_Down", KeyKPRight: "KP_Right", KeyKPLeft: "KP_Left",
	KeyKPPageUp: "KP_PageUp", KeyKPPageDown: "KP_PageDown", KeyKPInsert: "KP_Insert",
	KeyKPDelete: "KP_Delete", KeyKPBegin: "KP_Begin", KeyKPHome: "KP_Home", KeyKPEnd: "KP_End",
	KeyKPPlus: "KP_Plus", KeyKPMinus: "KP_Minus", KeyKPStar: "KP_Star", KeyKPSlash: "KP_Slash",
	KeyKPComma: "KP_Comma", KeyKPDot: "KP_Dot", KeyKPEqual: "KP_Equal", KeyKPSpace: "KP_Space",
	KeyKPTab: "KP_Tab", KeyKPEnter: "KP_Enter",
}

// EncodeKey returns the bytes a key press sends to the child. Unknown keys
// encode to nil.
func EncodeKey(k Key, mods Modifier, mode KeyMode) []byte {
	if k <= KeyNone || k >= keyCount {
		return nil
	}
	if (k >= KeyKP0 && k <= KeyKP9) || k == KeyKPDot {
		mods = mods.Without(ModShift)
	}
	enc := keyTable[k]
	param := mods.Param()

	switch enc.form {
	case formSpecial:
		return encodeSpecial(k, mods)
	case formCursor:
		if param == 0 {
			if mode.AppCursor {
				return []byte{0x1b, 'O', enc.final}
			}
			return []byte{0x1b, '[', enc.final}
		}
		return fmt.Appendf(nil, "\x1b[1;%d%c", param, enc.final)
	case formSS3:
		if param == 0 {
			return []byte{0x1b, 'O', enc.final}
		}
		return fmt.Appendf(nil, "\x1b[1;%d%c", param, enc.final)
	case formTilde:
		if param == 0 {
			return fmt.Appendf(nil, "\x1b[%d~", enc.number)
		}
		return fmt.Appendf(nil, "\x1b[%d;%d~", enc.number, param)
	case formKeypad:
		if !mode.AppKeypad {
			return withAlt([]byte(enc.literal), mods)
		}
		if param == 0 {
			return []byte{0x1b, 'O', enc.final}
		}
		return fmt.Appendf(nil, "\x1b[1;%d%c", param, enc.final)
	}
	return nil
}

func encodeSpecial(k Key, mods Modifier) []byte {
	switch k {
	case KeyReturn:
		return withAlt([]byte{'\r'}, mods)
	case KeyBackspace:
		if mods.Has(ModCtrl) {
			return withAlt([]byte{0x08}, mods)
		}
		return withAlt([]byte{0x7f}, mods)
	case KeyTab:
		if mods.Has(ModShift) {
			return []byte("\x1b[Z")
		}
		return withAlt([]byte{'\t'}, mods)
	case KeyEscape:
		return withAlt([]byte{0x1b}, mods)
	}
	return nil
}

// EncodeRune returns the bytes for a printable character typed with mods.
// Control maps ASCII letters and symbols to C0 codes; Alt prefixes ESC.
func EncodeRune(r rune, mods Modifier) []byte {
	if mods.Has(ModCtrl) {
		if c, ok := controlCode(r); ok {
			return withAlt([]byte{c}, mods)
		}
	}
	return withAlt(utf8.AppendRune(nil, r), mods)
}

func controlCode(r rune) (byte, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r - 'a' + 1), true
	case r >= '@' && r <= '_':
		return byte(r - '@'), true
	case r == ' ' || r == '2':
		return 0, true
	case r >= '3' && r <= '7':
		return byte(r - '3' + 0x1b), true
	case r == '8' || r == '?':
		return 0x7f, true
	case r == '/':
		return 0x1f, true
	case r == '~':
		return 0x1e, true
	}
	return 0, false
}

func withAlt(b []byte, mods Modifier) []byte {
	if mods.Has(ModAlt) {
		return append([]byte{0x1b}, b...)
	}
	return b
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/parser.go
// Summary: Byte-level VT state machine feeding a VTerm.
// Usage: Feed PTY output chunks; state carries across chunk boundaries.
// Notes: Never fails. Malformed input is dropped and parsing resumes in ground.

package parser

import (
	"strconv"
	"unicode/utf8"
)

// State is a node of the escape sequence state machine.
type State int

const (
	StateGround State = iota
	StateEscape
	StateEscapeIntermediate
	StateCSIEntry
	StateCSIParam
	StateCSIIntermediate
	StateCSIIgnore
	StateOSCString
	StateDCSString
	StateIgnoreString // SOS, PM and APC
)

const (
	// MaxParams bounds the CSI parameter list.
	MaxParams = 16
	// MaxParamValue caps each CSI parameter to four digits.
	MaxParamValue = 9999
	// DefaultMaxStringLength bounds OSC and DCS payloads.
	DefaultMaxStringLength = 64 * 1024

	maxIntermediates = 2
)

// Parser decodes a byte stream and applies each completed action to a VTerm.
type Parser struct {
	vterm *VTerm
	state State

	params       [MaxParams]int
	sub          [MaxParams]bool
	nParams      int
	private      byte
	intermediate [maxIntermediates]byte
	nInter       int

	str         []byte
	strOverflow bool
	strEsc      bool
	maxString   int

	utf8Buf  [utf8.UTFMax]byte
	utf8Len  int
	utf8Need int
}

// NewParser creates a parser bound to v.
func NewParser(v *VTerm) *Parser {
	return &Parser{vterm: v, maxString: DefaultMaxStringLength}
}

// SetMaxStringLength changes the OSC/DCS payload bound.
func (p *Parser) SetMaxStringLength(n int) {
	if n > 0 {
		p.maxString = n
	}
}

// State returns the current state machine node.
func (p *Parser) State() State { return p.state }

// Feed parses a chunk. Sequences split across chunks resume on the next call.
func (p *Parser) Feed(data []byte) {
	for _, b := range data {
		p.Parse(b)
	}
}

// Parse advances the state machine by one byte.
func (p *Parser) Parse(b byte) {
	// CAN and SUB abort everything, including strings.
	if b == 0x18 || b == 0x1a {
		p.flushUTF8()
		p.state = StateGround
		return
	}

	switch p.state {
	case StateGround:
		p.ground(b)
	case StateEscape:
		p.escape(b)
	case StateEscapeIntermediate:
		p.escapeIntermediate(b)
	case StateCSIEntry, StateCSIParam, StateCSIIntermediate, StateCSIIgnore:
		p.csi(b)
	case StateOSCString, StateDCSString, StateIgnoreString:
		p.stringByte(b)
	}
}

func (p *Parser) ground(b byte) {
	if p.utf8Need > 0 {
		if b&0xc0 == 0x80 {
			p.utf8Buf[p.utf8Len] = b
			p.utf8Len++
			if p.utf8Len == p.utf8Need {
				r, _ := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
				p.utf8Need, p.utf8Len = 0, 0
				p.vterm.Print(r) // RuneError for overlongs and surrogates
			}
			return
		}
		p.flushUTF8()
	}

	switch {
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.vterm.executeC0(b)
	case b == 0x7f:
	case b < 0x80:
		p.vterm.Print(rune(b))
	case b >= 0xc2 && b <= 0xdf:
		p.startUTF8(b, 2)
	case b >= 0xe0 && b <= 0xef:
		p.startUTF8(b, 3)
	case b >= 0xf0 && b <= 0xf4:
		p.startUTF8(b, 4)
	default:
		p.vterm.Print(utf8.RuneError)
	}
}

func (p *Parser) startUTF8(b byte, n int) {
	p.utf8Buf[0] = b
	p.utf8Len = 1
	p.utf8Need = n
}

// flushUTF8 replaces an interrupted multi-byte sequence with a single
// replacement character.
func (p *Parser) flushUTF8() {
	if p.utf8Need == 0 {
		return
	}
	p.utf8Need, p.utf8Len = 0, 0
	p.vterm.Print(utf8.RuneError)
}

func (p *Parser) enterEscape() {
	p.state = StateEscape
	p.nInter = 0
}

func (p *Parser) escape(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.vterm.executeC0(b)
	case b <= 0x2f:
		p.collectIntermediate(b)
		p.state = StateEscapeIntermediate
	case b == '[':
		p.clearCSI()
		p.state = StateCSIEntry
	case b == ']':
		p.startString(StateOSCString)
	case b == 'P':
		p.startString(StateDCSString)
	case b == 'X' || b == '^' || b == '_':
		p.startString(StateIgnoreString)
	case b < 0x7f:
		p.state = StateGround
		p.vterm.dispatchEscape(0, b)
	case b == 0x7f:
	default:
		p.state = StateGround
	}
}

func (p *Parser) escapeIntermediate(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape()
	case b < 0x20:
		p.vterm.executeC0(b)
	case b <= 0x2f:
		p.collectIntermediate(b)
	case b < 0x7f:
		p.state = StateGround
		if p.nInter <= maxIntermediates {
			p.vterm.dispatchEscape(p.intermediate[0], b)
		}
	case b == 0x7f:
	default:
		p.state = StateGround
	}
}

func (p *Parser) collectIntermediate(b byte) {
	if p.nInter < maxIntermediates {
		p.intermediate[p.nInter] = b
	}
	p.nInter++
}

func (p *Parser) clearCSI() {
	p.nParams = 0
	p.private = 0
	p.nInter = 0
	p.intermediate = [maxIntermediates]byte{}
	p.sub = [MaxParams]bool{}
}

func (p *Parser) csi(b byte) {
	switch {
	case b == 0x1b:
		p.enterEscape()
		return
	case b < 0x20:
		p.vterm.executeC0(b)
		return
	case b == 0x7f:
		return
	case b >= 0x80:
		p.state = StateCSIIgnore
		return
	case b >= 0x40:
		ignore := p.state == StateCSIIgnore
		p.state = StateGround
		if !ignore {
			p.dispatchCSI(b)
		}
		return
	}
	if p.state == StateCSIIgnore {
		return
	}

	switch {
	case b >= '0' && b <= '9':
		if p.state == StateCSIIntermediate {
			p.state = StateCSIIgnore
			return
		}
		p.state = StateCSIParam
		if p.nParams == 0 {
			p.params[0] = 0
			p.nParams = 1
		}
		v := p.params[p.nParams-1]*10 + int(b-'0')
		p.params[p.nParams-1] = min(v, MaxParamValue)
	case b == ';' || b == ':':
		if p.state == StateCSIIntermediate {
			p.state = StateCSIIgnore
			return
		}
		p.state = StateCSIParam
		if p.nParams == 0 {
			p.params[0] = 0
			p.nParams = 1
		}
		if p.nParams == MaxParams {
			debugLog.Printf("Parser: CSI parameter list exceeds %d entries, dropping", MaxParams)
			p.state = StateCSIIgnore
			return
		}
		p.params[p.nParams] = 0
		p.sub[p.nParams] = b == ':'
		p.nParams++
	case b >= '<' && b <= '?':
		if p.state != StateCSIEntry {
			p.state = StateCSIIgnore
			return
		}
		p.private = b
		p.state = StateCSIParam
	default: // 0x20-0x2f
		p.collectIntermediate(b)
		if p.nInter > maxIntermediates {
			p.state = StateCSIIgnore
			return
		}
		p.state = StateCSIIntermediate
	}
}

func (p *Parser) dispatchCSI(final byte) {
	c := CSI{
		Final:   final,
		Private: p.private,
		Params:  append([]int(nil), p.params[:p.nParams]...),
		Sub:     append([]bool(nil), p.sub[:p.nParams]...),
	}
	if p.nInter > 0 {
		c.Intermediate = p.intermediate[p.nInter-1]
	}
	p.vterm.dispatchCSI(&c)
}

func (p *Parser) startString(s State) {
	p.state = s
	p.str = p.str[:0]
	p.strOverflow = false
	p.strEsc = false
}

func (p *Parser) stringByte(b byte) {
	if p.strEsc {
		p.strEsc = false
		if b == '\\' {
			p.finishString()
			p.state = StateGround
			return
		}
		// ESC followed by anything else ends the string and starts a new sequence.
		p.finishString()
		p.enterEscape()
		p.escape(b)
		return
	}
	switch {
	case b == 0x1b:
		p.strEsc = true
	case b == 0x07 && p.state == StateOSCString:
		p.finishString()
		p.state = StateGround
	case b < 0x20:
		// Other controls inside strings are ignored.
	case p.state == StateIgnoreString:
	case len(p.str) >= p.maxString:
		p.strOverflow = true
	default:
		p.str = append(p.str, b)
	}
}

func (p *Parser) finishString() {
	if p.strOverflow {
		debugLog.Printf("Parser: discarding string longer than %d bytes", p.maxString)
		return
	}
	switch p.state {
	case StateOSCString:
		p.dispatchOSC()
	case StateDCSString:
		p.vterm.dispatchDCS(append([]byte(nil), p.str...))
	}
}

// dispatchOSC splits "<command>;<payload>" and hands it to the VTerm.
// Non-numeric commands are dropped.
func (p *Parser) dispatchOSC() {
	s := string(p.str)
	cmdText, payload := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == ';' {
			cmdText, payload = s[:i], s[i+1:]
			break
		}
	}
	cmd, err := strconv.Atoi(cmdText)
	if err != nil || cmd < 0 {
		debugLog.Printf("Parser: unhandled OSC %q", s)
		return
	}
	p.vterm.dispatchOSC(cmd, payload)
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/dispatch.go
// Summary: Dispatch tables mapping control bytes, escape finals and CSI finals to VTerm actions.
// Usage: Populated once at init; the Parser looks actions up by key.
// Notes: Unknown keys are dropped and logged at debug level.

package parser

// CSI is a complete control sequence.
type CSI struct {
	Final        byte
	Private      byte // '<', '=', '>' or '?'; 0 when absent
	Intermediate byte // last intermediate byte; 0 when absent
	Params       []int
	// Sub[i] is true when Params[i] was introduced by ':'.
	Sub []bool
}

// Param returns the i-th parameter or def when omitted or zero.
func (c *CSI) Param(i, def int) int {
	if i >= len(c.Params) || c.Params[i] == 0 {
		return def
	}
	return c.Params[i]
}

// RawParam returns the i-th parameter, 0 when omitted.
func (c *CSI) RawParam(i int) int {
	if i >= len(c.Params) {
		return 0
	}
	return c.Params[i]
}

type csiKey struct {
	private, intermediate, final byte
}

type escKey struct {
	intermediate, final byte
}

var (
	c0Handlers  [0x20]func(*VTerm)
	escHandlers = map[escKey]func(*VTerm){}
	csiHandlers = map[csiKey]func(*VTerm, *CSI){}
	oscHandlers = map[int]func(*VTerm, string){}
)

func init() {
	c0Handlers[0x07] = func(v *VTerm) {
		if v.OnBell != nil {
			v.OnBell()
		}
	}
	c0Handlers[0x08] = (*VTerm).Backspace
	c0Handlers[0x09] = func(v *VTerm) { v.Tab(1) }
	c0Handlers[0x0a] = (*VTerm).LineFeed
	c0Handlers[0x0b] = (*VTerm).LineFeed
	c0Handlers[0x0c] = (*VTerm).LineFeed
	c0Handlers[0x0d] = (*VTerm).CarriageReturn
	c0Handlers[0x0e] = func(v *VTerm) { v.gl = 1 }
	c0Handlers[0x0f] = func(v *VTerm) { v.gl = 0 }

	escHandlers[escKey{0, '7'}] = (*VTerm).SaveCursor
	escHandlers[escKey{0, '8'}] = (*VTerm).RestoreCursor
	escHandlers[escKey{0, 'D'}] = (*VTerm).index
	escHandlers[escKey{0, 'E'}] = (*VTerm).NextLine
	escHandlers[escKey{0, 'H'}] = (*VTerm).SetTabStop
	escHandlers[escKey{0, 'M'}] = (*VTerm).ReverseIndex
	escHandlers[escKey{0, 'c'}] = (*VTerm).Reset
	escHandlers[escKey{0, '='}] = func(v *VTerm) { v.modes.AppKeypad = true }
	escHandlers[escKey{0, '>'}] = func(v *VTerm) { v.modes.AppKeypad = false }
	escHandlers[escKey{0, '\\'}] = func(*VTerm) {} // stray ST
	escHandlers[escKey{'#', '8'}] = (*VTerm).AlignmentTest
	for _, final := range []byte{'0', 'A', 'B', '1', '2', '<', '4', '5', 'C', 'R', 'Q', 'K', 'Y', 'E', '6', 'Z', 'H', '7', '='} {
		f := final
		escHandlers[escKey{'(', f}] = func(v *VTerm) { v.designateCharset(0, f) }
		escHandlers[escKey{')', f}] = func(v *VTerm) { v.designateCharset(1, f) }
	}
	escHandlers[escKey{'%', 'G'}] = func(*VTerm) {}
	escHandlers[escKey{'%', '@'}] = func(*VTerm) {}

	plain := func(final byte, fn func(*VTerm, *CSI)) { csiHandlers[csiKey{0, 0, final}] = fn }
	plain('@', func(v *VTerm, c *CSI) { v.InsertCharacters(c.Param(0, 1)) })
	plain('A', func(v *VTerm, c *CSI) { v.MoveCursorUp(c.Param(0, 1)) })
	plain('B', func(v *VTerm, c *CSI) { v.MoveCursorDown(c.Param(0, 1)) })
	plain('C', func(v *VTerm, c *CSI) { v.MoveCursorForward(c.Param(0, 1)) })
	plain('D', func(v *VTerm, c *CSI) { v.MoveCursorBackward(c.Param(0, 1)) })
	plain('E', func(v *VTerm, c *CSI) { v.MoveCursorDown(c.Param(0, 1)); v.CarriageReturn() })
	plain('F', func(v *VTerm, c *CSI) { v.MoveCursorUp(c.Param(0, 1)); v.CarriageReturn() })
	plain('G', func(v *VTerm, c *CSI) { v.SetCursorCol(c.Param(0, 1) - 1) })
	plain('H', func(v *VTerm, c *CSI) { v.SetCursorPos(c.Param(0, 1)-1, c.Param(1, 1)-1) })
	plain('I', func(v *VTerm, c *CSI) { v.Tab(c.Param(0, 1)) })
	plain('J', func(v *VTerm, c *CSI) { v.EraseInDisplay(c.RawParam(0)) })
	plain('K', func(v *VTerm, c *CSI) { v.EraseInLine(c.RawParam(0)) })
	plain('L', func(v *VTerm, c *CSI) { v.InsertLines(c.Param(0, 1)) })
	plain('M', func(v *VTerm, c *CSI) { v.DeleteLines(c.Param(0, 1)) })
	plain('P', func(v *VTerm, c *CSI) { v.DeleteCharacters(c.Param(0, 1)) })
	plain('S', func(v *VTerm, c *CSI) { v.ScrollUp(c.Param(0, 1)) })
	plain('T', func(v *VTerm, c *CSI) { v.ScrollDown(c.Param(0, 1)) })
	plain('X', func(v *VTerm, c *CSI) { v.EraseCharacters(c.Param(0, 1)) })
	plain('Z', func(v *VTerm, c *CSI) { v.BackTab(c.Param(0, 1)) })
	plain('`', csiHandlers[csiKey{0, 0, 'G'}])
	plain('a', func(v *VTerm, c *CSI) { v.MoveCursorForward(c.Param(0, 1)) })
	plain('b', func(v *VTerm, c *CSI) { v.RepeatLast(c.Param(0, 1)) })
	plain('c', func(v *VTerm, c *CSI) {
		if c.RawParam(0) == 0 {
			v.PrimaryDeviceAttributes()
		}
	})
	plain('d', func(v *VTerm, c *CSI) { v.SetCursorRow(c.Param(0, 1) - 1) })
	plain('e', func(v *VTerm, c *CSI) { v.MoveCursorDown(c.Param(0, 1)) })
	plain('f', csiHandlers[csiKey{0, 0, 'H'}])
	plain('g', func(v *VTerm, c *CSI) { v.ClearTabStops(c.RawParam(0)) })
	plain('h', func(v *VTerm, c *CSI) { forEachParam(c, func(m int) { v.setANSIMode(m, true) }) })
	plain('l', func(v *VTerm, c *CSI) { forEachParam(c, func(m int) { v.setANSIMode(m, false) }) })
	plain('m', (*VTerm).handleSGR)
	plain('n', func(v *VTerm, c *CSI) { v.DeviceStatusReport(c.RawParam(0)) })
	plain('r', func(v *VTerm, c *CSI) { v.SetMargins(c.RawParam(0), c.RawParam(1)) })
	plain('s', func(v *VTerm, _ *CSI) { v.SaveCursor() })
	plain('u', func(v *VTerm, _ *CSI) { v.RestoreCursor() })
	plain('t', func(*VTerm, *CSI) {}) // window manipulation is not supported

	csiHandlers[csiKey{'?', 0, 'h'}] = func(v *VTerm, c *CSI) { forEachParam(c, func(m int) { v.setPrivateMode(m, true) }) }
	csiHandlers[csiKey{'?', 0, 'l'}] = func(v *VTerm, c *CSI) { forEachParam(c, func(m int) { v.setPrivateMode(m, false) }) }
	csiHandlers[csiKey{'?', 0, 'J'}] = csiHandlers[csiKey{0, 0, 'J'}]
	csiHandlers[csiKey{'?', 0, 'K'}] = csiHandlers[csiKey{0, 0, 'K'}]
	csiHandlers[csiKey{'?', 0, 'n'}] = func(v *VTerm, c *CSI) { v.PrivateDeviceStatusReport(c.RawParam(0)) }
	csiHandlers[csiKey{'?', '$', 'p'}] = func(v *VTerm, c *CSI) { v.ReportPrivateMode(c.RawParam(0)) }
	csiHandlers[csiKey{0, '$', 'p'}] = func(v *VTerm, c *CSI) { v.ReportANSIMode(c.RawParam(0)) }
	csiHandlers[csiKey{'>', 0, 'c'}] = func(v *VTerm, _ *CSI) { v.SecondaryDeviceAttributes() }
	csiHandlers[csiKey{0, '!', 'p'}] = func(v *VTerm, _ *CSI) { v.SoftReset() }
	csiHandlers[csiKey{0, ' ', 'q'}] = func(v *VTerm, c *CSI) { v.SetCursorStyle(c.RawParam(0)) }

	oscHandlers[0] = func(v *VTerm, s string) { v.setTitle(s); v.iconName = s }
	oscHandlers[1] = func(v *VTerm, s string) { v.iconName = s }
	oscHandlers[2] = (*VTerm).setTitle
}

// forEachParam calls fn for every parameter, defaulting to a single 0.
func forEachParam(c *CSI, fn func(int)) {
	if len(c.Params) == 0 {
		fn(0)
		return
	}
	for _, p := range c.Params {
		fn(p)
	}
}

// executeC0 runs a C0 control. Unassigned controls are ignored.
func (v *VTerm) executeC0(b byte) {
	if fn := c0Handlers[b]; fn != nil {
		fn(v)
	}
}

func (v *VTerm) dispatchEscape(intermediate, final byte) {
	if fn, ok := escHandlers[escKey{intermediate, final}]; ok {
		fn(v)
		return
	}
	debugLog.Printf("Parser: unhandled ESC sequence: %q %q", intermediate, final)
}

func (v *VTerm) dispatchCSI(c *CSI) {
	if fn, ok := csiHandlers[csiKey{c.Private, c.Intermediate, c.Final}]; ok {
		fn(v, c)
		return
	}
	debugLog.Printf("Parser: unhandled CSI %q %q %v %q", c.Private, c.Intermediate, c.Params, c.Final)
}

// dispatchOSC applies internal handling and forwards the string to OnOSC.
func (v *VTerm) dispatchOSC(command int, payload string) {
	if fn, ok := oscHandlers[command]; ok {
		fn(v, payload)
	}
	if v.OnOSC != nil {
		v.OnOSC(command, payload)
	}
}

func (v *VTerm) dispatchDCS(data []byte) {
	if v.OnDCS != nil {
		v.OnDCS(data)
		return
	}
	debugLog.Printf("Parser: ignoring DCS string of %d bytes", len(data))
}

func (v *VTerm) setTitle(title string) {
	if v.title == title {
		return
	}
	v.title = title
	v.MarkDirty()
	if v.TitleChanged != nil {
		v.TitleChanged(title)
	}
}

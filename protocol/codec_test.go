// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/framegrace/texelterm/parser"
)

// shortWriter accepts at most limit bytes per call.
type shortWriter struct {
	buf   bytes.Buffer
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		w.buf.Write(p[:w.limit])
		return w.limit, io.ErrShortWrite
	}
	return w.buf.Write(p)
}

func TestCodecReportsShortWrites(t *testing.T) {
	w := &shortWriter{limit: 3}
	c := NewCodec(w)
	data := []byte("héllo")
	n, err := c.WriteText(data)
	if n != 3 || !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("n = %d, err = %v", n, err)
	}
	for n < len(data) {
		m, _ := c.WriteText(data[n:])
		n += m
	}
	if w.buf.String() != "héllo" {
		t.Errorf("written %q", w.buf.String())
	}
}

func TestCodecUsesModes(t *testing.T) {
	var buf bytes.Buffer
	c := NewCodec(&buf)
	modes := parser.Modes{AppCursorKeys: true, BracketedPaste: true, Mouse: parser.MouseNormal, MouseSGR: true}

	if n, err := c.WriteKey(KeyUp, ModNone, modes); n != 3 || err != nil {
		t.Fatalf("WriteKey = %d, %v", n, err)
	}
	if _, err := c.WritePaste("a\nb", modes); err != nil {
		t.Fatal(err)
	}
	consumed, err := c.WriteMouse(MouseEvent{Button: Button2, Action: MousePress}, modes)
	if !consumed || err != nil {
		t.Fatalf("WriteMouse = %v, %v", consumed, err)
	}
	want := "\x1bOA" + "\x1b[200~a\rb\x1b[201~" + "\x1b[<1;1;1M"
	if buf.String() != want {
		t.Errorf("written %q, want %q", buf.String(), want)
	}

	modes.Mouse = parser.MouseOff
	if consumed, _ := c.WriteMouse(MouseEvent{Button: Button1}, modes); consumed {
		t.Error("mouse events must not be consumed when reporting is off")
	}
}

func TestEncodePaste(t *testing.T) {
	if got := string(EncodePaste("one\r\ntwo\nthree", false)); got != "one\rtwo\rthree" {
		t.Errorf("plain paste = %q", got)
	}
	if got := string(EncodePaste("x\x1b[201~y", true)); got != "\x1b[200~xy\x1b[201~" {
		t.Errorf("bracketed paste = %q", got)
	}
}

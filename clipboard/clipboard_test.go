// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"errors"
	"testing"
	"time"
)

type result struct {
	text string
	err  error
}

func TestRequestWithTimeoutAnswers(t *testing.T) {
	m := NewMemory()
	_ = m.Publish(time.Now(), "hello")

	got := make(chan result, 2)
	RequestWithTimeout(m, time.Now(), time.Second, func(text string, err error) {
		got <- result{text, err}
	})
	r := <-got
	if r.err != nil || r.text != "hello" {
		t.Fatalf("got %+v", r)
	}
}

func TestRequestWithTimeoutExpires(t *testing.T) {
	m := NewMemory()
	_ = m.Publish(time.Now(), "hello")
	m.SetUnresponsive(true)

	got := make(chan result, 2)
	start := time.Now()
	RequestWithTimeout(m, time.Now(), 20*time.Millisecond, func(text string, err error) {
		got <- result{text, err}
	})
	r := <-got
	if !errors.Is(r.err, ErrTimeout) || r.text != "" {
		t.Fatalf("got %+v", r)
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("timed out early")
	}
	select {
	case extra := <-got:
		t.Fatalf("callback ran twice: %+v", extra)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestParseSelection(t *testing.T) {
	if ParseSelection("primary") != SelectionPrimary {
		t.Error("primary not recognized")
	}
	for _, s := range []string{"clipboard", "", "bogus"} {
		if ParseSelection(s) != SelectionClipboard {
			t.Errorf("ParseSelection(%q) should default to clipboard", s)
		}
	}
}

func TestMemoryPublish(t *testing.T) {
	m := NewMemory()
	_ = m.Publish(time.Now(), "a")
	_ = m.Publish(time.Now(), "b")
	if m.Text() != "b" || m.Publishes() != 2 {
		t.Errorf("text = %q, publishes = %d", m.Text(), m.Publishes())
	}
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakePTY connects a session to the test: the test writes child output with
// Emit and reads what the session sent with WaitFor.
type fakePTY struct {
	outR *io.PipeReader
	outW *io.PipeWriter
	inR  *io.PipeReader
	inW  *io.PipeWriter

	mu   sync.Mutex
	sent bytes.Buffer
}

func newFakePTY(t *testing.T) *fakePTY {
	t.Helper()
	f := &fakePTY{}
	f.outR, f.outW = io.Pipe()
	f.inR, f.inW = io.Pipe()
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := f.inR.Read(buf)
			f.mu.Lock()
			f.sent.Write(buf[:n])
			f.mu.Unlock()
			if err != nil {
				return
			}
		}
	}()
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func (f *fakePTY) Read(p []byte) (int, error)  { return f.outR.Read(p) }
func (f *fakePTY) Write(p []byte) (int, error) { return f.inW.Write(p) }

func (f *fakePTY) Close() error {
	f.outR.Close()
	f.inW.Close()
	return nil
}

// Emit plays child output.
func (f *fakePTY) Emit(t *testing.T, s string) {
	t.Helper()
	if _, err := f.outW.Write([]byte(s)); err != nil {
		t.Fatalf("emit: %v", err)
	}
}

// Hangup simulates the child exiting.
func (f *fakePTY) Hangup() { f.outW.Close() }

// Sent returns everything the session wrote so far.
func (f *fakePTY) Sent() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent.String()
}

// WaitFor waits until the session has written want.
func (f *fakePTY) WaitFor(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(f.Sent(), want) {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q; sent %q", want, f.Sent())
}

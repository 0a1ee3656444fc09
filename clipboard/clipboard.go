// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clipboard/clipboard.go
// Summary: Clipboard transport interface and bounded-wait requests.
// Usage: The session publishes finished selections and answers OSC 52 queries through a Transport.

package clipboard

import (
	"errors"
	"sync"
	"time"
)

// ErrTimeout is delivered when a clipboard request got no answer in time.
var ErrTimeout = errors.New("clipboard: request timed out")

// DefaultTimeout bounds how long a request may wait for the owner.
const DefaultTimeout = 2 * time.Second

// Transport moves text to and from the host clipboard. Request must not
// block; cb may run on any goroutine, at most once.
type Transport interface {
	Publish(ts time.Time, text string) error
	Request(ts time.Time, cb func(text string, err error))
}

// RequestWithTimeout asks t for its content and guarantees cb runs exactly
// once: with the content, with the transport's error, or with ErrTimeout
// and an empty string after timeout.
func RequestWithTimeout(t Transport, ts time.Time, timeout time.Duration, cb func(text string, err error)) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	var once sync.Once
	timer := time.AfterFunc(timeout, func() {
		once.Do(func() { cb("", ErrTimeout) })
	})
	t.Request(ts, func(text string, err error) {
		once.Do(func() {
			timer.Stop()
			cb(text, err)
		})
	})
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: frame/mailbox.go
// Summary: Single-slot mailbox between the session loop and the renderer.
// Usage: Publish never blocks; a pending frame is replaced by a newer one.

package frame

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrClosed is returned by Take once the mailbox is closed and drained.
var ErrClosed = errors.New("frame: mailbox closed")

// Mailbox holds at most one pending Frame.
type Mailbox struct {
	mu       sync.Mutex
	pending  *Frame
	lastGen  uint64
	closed   bool
	notify   chan struct{}
	done     chan struct{}
	replaced atomic.Uint64
}

// NewMailbox returns an empty open mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Publish stores f as the pending frame, replacing any frame the consumer
// has not taken yet. Frames older than the last published generation and
// publishes after Close are rejected.
func (m *Mailbox) Publish(f *Frame) bool {
	if f == nil {
		return false
	}
	m.mu.Lock()
	if m.closed || f.Generation < m.lastGen {
		m.mu.Unlock()
		return false
	}
	if m.pending != nil {
		m.replaced.Add(1)
	}
	m.pending = f
	m.lastGen = f.Generation
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
	return true
}

// TryTake returns the pending frame without waiting.
func (m *Mailbox) TryTake() (*Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := m.pending
	m.pending = nil
	return f, f != nil
}

// Take waits for a frame. After Close it still returns the last pending
// frame, then ErrClosed.
func (m *Mailbox) Take(ctx context.Context) (*Frame, error) {
	for {
		m.mu.Lock()
		f, closed := m.pending, m.closed
		m.pending = nil
		m.mu.Unlock()
		if f != nil {
			return f, nil
		}
		if closed {
			return nil, ErrClosed
		}
		select {
		case <-m.notify:
		case <-m.done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close stops accepting frames and wakes any waiting consumer.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.done)
}

// Closed reports whether Close was called.
func (m *Mailbox) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Replaced counts frames superseded before the consumer took them.
func (m *Mailbox) Replaced() uint64 { return m.replaced.Load() }

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/loop.go
// Summary: Run multiplexes PTY output and posted events on one goroutine.

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const (
	readBufferSize = 64 * 1024
	// maxBatch bounds how many ready chunks are parsed before a frame is published.
	maxBatch = 16
)

type readResult struct {
	data []byte
	err  error
}

// Run processes PTY output and posted events until the PTY ends or ctx is
// cancelled. PTY end is reported as ErrSessionEnded.
func (s *Session) Run(ctx context.Context) error {
	if s.pty == nil {
		return ErrNoPTY
	}
	defer s.stop()

	reads := make(chan readResult, maxBatch)
	go s.readPTY(reads)

	s.publish(true)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case r := <-reads:
			if err := s.consume(r, reads); err != nil {
				return err
			}
		case ev := <-s.events:
			s.handle(ev)
		}
	}
}

// consume parses r and any further chunks that are already waiting, then
// publishes once for the whole batch.
func (s *Session) consume(r readResult, reads <-chan readResult) error {
	var parsed bool
	for i := 0; ; i++ {
		if r.err != nil {
			s.publish(true)
			if errors.Is(r.err, io.EOF) {
				return ErrSessionEnded
			}
			return fmt.Errorf("%w: %w", ErrSessionEnded, r.err)
		}
		if s.ingest(r.data) {
			parsed = true
		}
		if i+1 >= maxBatch {
			break
		}
		select {
		case r = <-reads:
			continue
		default:
		}
		break
	}
	if parsed {
		s.publish(false)
	}
	return nil
}

func (s *Session) readPTY(reads chan<- readResult) {
	for {
		buf := make([]byte, readBufferSize)
		n, err := s.pty.Read(buf)
		if n > 0 {
			select {
			case reads <- readResult{data: buf[:n]}:
			case <-s.done:
				return
			}
		}
		if err != nil {
			debugLog.Printf("Session: pty read ended: %v", err)
			select {
			case reads <- readResult{err: err}:
			case <-s.done:
			}
			return
		}
	}
}

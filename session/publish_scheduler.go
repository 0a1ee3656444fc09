// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/publish_scheduler.go
// Summary: Fallback timer for frames deferred by synchronized output (mode 2026).

package session

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSyncTimeout bounds how long synchronized output may hold back a frame.
const DefaultSyncTimeout = 150 * time.Millisecond

type publishScheduler struct {
	fallbackDelay time.Duration
	fire          func()

	mu    sync.Mutex
	timer *time.Timer

	fallbackCount atomic.Uint64
}

func newPublishScheduler(delay time.Duration, fire func()) *publishScheduler {
	if delay <= 0 {
		delay = DefaultSyncTimeout
	}
	return &publishScheduler{fallbackDelay: delay, fire: fire}
}

// RequestPublish arms the fallback timer unless it is already running. The
// timer is not pushed back by later requests, so a deferred frame is at most
// fallbackDelay old.
func (s *publishScheduler) RequestPublish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		return
	}
	s.timer = time.AfterFunc(s.fallbackDelay, s.triggerFallback)
}

func (s *publishScheduler) triggerFallback() {
	s.fallbackCount.Add(1)
	s.mu.Lock()
	s.timer = nil
	s.mu.Unlock()
	s.fire()
}

// NotifyRefresh cancels a pending fallback after a regular publish.
func (s *publishScheduler) NotifyRefresh() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
}

// Pending reports whether a fallback is armed.
func (s *publishScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *publishScheduler) FallbackCount() uint64 {
	return s.fallbackCount.Load()
}

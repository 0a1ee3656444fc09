// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clipboard/memory.go
// Summary: In-process clipboard transport for tests and headless sessions.

package clipboard

import (
	"sync"
	"time"
)

// Memory keeps clipboard text in memory.
type Memory struct {
	mu    sync.Mutex
	text  string
	owner time.Time
	mute  bool
	pubs  int
}

// NewMemory creates an empty in-memory clipboard.
func NewMemory() *Memory { return &Memory{} }

// Publish stores text.
func (m *Memory) Publish(ts time.Time, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text, m.owner = text, ts
	m.pubs++
	return nil
}

// Request answers asynchronously with the stored text, unless muted.
func (m *Memory) Request(_ time.Time, cb func(string, error)) {
	m.mu.Lock()
	text, mute := m.text, m.mute
	m.mu.Unlock()
	if mute {
		return
	}
	go cb(text, nil)
}

// SetUnresponsive makes Request drop callbacks, like an owner that never
// answers.
func (m *Memory) SetUnresponsive(mute bool) {
	m.mu.Lock()
	m.mute = mute
	m.mu.Unlock()
}

// Text returns the stored text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Publishes counts Publish calls.
func (m *Memory) Publishes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pubs
}

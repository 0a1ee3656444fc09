// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/osc.go
// Summary: OSC routing, including OSC 52 clipboard exchange with the child.

package session

import (
	"log"

	"github.com/framegrace/texelterm/protocol"
)

func (s *Session) onOSC(command int, payload string) {
	if command == protocol.OSC52 {
		s.handleOSC52(payload)
	}
	if s.oscHandler != nil {
		s.oscHandler(command, payload)
	}
}

// handleOSC52 installs clipboard content set by the child, or answers a
// query with the current content. Malformed payloads are logged and ignored.
func (s *Session) handleOSC52(payload string) {
	req, err := protocol.ParseOSC52(payload)
	if err != nil {
		log.Printf("Session: ignoring OSC 52: %v", err)
		return
	}
	if req.Query {
		debugLog.Printf("Session: OSC 52 query for %q", req.Selection)
		s.requestClipboard(purposeOSC52)
		return
	}
	if err := s.clip.Publish(s.now(), string(req.Data)); err != nil {
		log.Printf("Session: OSC 52 set failed: %v", err)
	}
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: protocol/osc52.go
// Summary: OSC 52 clipboard payload decoding and response encoding.

package protocol

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// OSC52 is the OSC command number for clipboard access.
const OSC52 = 52

// ErrMalformedOSC52 is returned for payloads without the ';' separator or
// with invalid base64.
var ErrMalformedOSC52 = errors.New("malformed OSC 52 payload")

// ClipboardRequest is a decoded OSC 52 payload.
type ClipboardRequest struct {
	// Selection holds the selection letters (c, p, s, 0-7); may be empty.
	Selection string
	// Query is true for a "?" payload asking for the current content.
	Query bool
	// Data is the decoded content for set requests.
	Data []byte
}

// ParseOSC52 decodes "<selection letters>;<base64 or ?>".
func ParseOSC52(payload string) (ClipboardRequest, error) {
	sel, data, ok := strings.Cut(payload, ";")
	if !ok {
		return ClipboardRequest{}, fmt.Errorf("%w: missing ';'", ErrMalformedOSC52)
	}
	if data == "?" {
		return ClipboardRequest{Selection: sel, Query: true}, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		var rawErr error
		decoded, rawErr = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
		if rawErr != nil {
			return ClipboardRequest{}, fmt.Errorf("%w: %v", ErrMalformedOSC52, err)
		}
	}
	return ClipboardRequest{Selection: sel, Data: decoded}, nil
}

// EncodeOSC52Response wraps content as the reply to a query:
// ESC ] 52 ; ; <base64> ESC \
func EncodeOSC52Response(content []byte) []byte {
	out := make([]byte, 0, 8+base64.StdEncoding.EncodedLen(len(content)))
	out = append(out, "\x1b]52;;"...)
	out = base64.StdEncoding.AppendEncode(out, content)
	return append(out, "\x1b\\"...)
}

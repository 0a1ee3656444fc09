// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_dirty.go
// Summary: Change tracking consumed by the frame producer.

package parser

// MarkDirty records a visible change.
func (v *VTerm) MarkDirty() { v.version++ }

// Version increases every time visible state changes. The frame producer
// snapshots when it differs from the last published value.
func (v *VTerm) Version() uint64 { return v.version }

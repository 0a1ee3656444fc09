// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: selection/click_detector_test.go
// Summary: Tests for ClickDetector multi-click detection.

package selection

import (
	"testing"
	"time"
)

// TestClickDetector_CycleAfterTriple tests that presses cycle back to single after triple.
func TestClickDetector_CycleAfterTriple(t *testing.T) {
	cd := NewClickDetector(250 * time.Millisecond)
	now := time.Unix(0, 0)
	want := []ClickType{SingleClick, DoubleClick, TripleClick, SingleClick, DoubleClick}
	for i, w := range want {
		now = now.Add(50 * time.Millisecond)
		if ct := cd.DetectClickAt(1, 5, 10, now); ct != w {
			t.Errorf("click %d: expected %v, got %v", i+1, w, ct)
		}
	}
}

// TestClickDetector_Timeout tests that a slow second press is a single click.
func TestClickDetector_Timeout(t *testing.T) {
	cd := NewClickDetector(250 * time.Millisecond)
	now := time.Unix(0, 0)
	cd.DetectClickAt(1, 5, 10, now)
	if ct := cd.DetectClickAt(1, 5, 10, now.Add(300*time.Millisecond)); ct != SingleClick {
		t.Errorf("expected SingleClick after timeout, got %v", ct)
	}
}

// TestClickDetector_DifferentButtonOrCell tests that the key includes button and cell.
func TestClickDetector_DifferentButtonOrCell(t *testing.T) {
	cd := NewClickDetector(0)
	now := time.Unix(0, 0)
	cd.DetectClickAt(1, 5, 10, now)
	if ct := cd.DetectClickAt(3, 5, 10, now); ct != SingleClick {
		t.Errorf("different button: expected SingleClick, got %v", ct)
	}
	if ct := cd.DetectClickAt(3, 5, 11, now); ct != SingleClick {
		t.Errorf("different cell: expected SingleClick, got %v", ct)
	}
}

// TestClickDetector_Reset tests that Reset forgets history.
func TestClickDetector_Reset(t *testing.T) {
	cd := NewClickDetector(time.Second)
	now := time.Unix(0, 0)
	cd.DetectClickAt(1, 0, 0, now)
	cd.Reset()
	if cd.ClickCount() != 0 {
		t.Errorf("count after reset = %d", cd.ClickCount())
	}
	if ct := cd.DetectClickAt(1, 0, 0, now); ct != SingleClick {
		t.Errorf("expected SingleClick after reset, got %v", ct)
	}
}

// TestClickDetector_TimedFromRelease tests that the window starts at the
// release, so a long hold before a quick re-press still counts up.
func TestClickDetector_TimedFromRelease(t *testing.T) {
	tests := []struct {
		name    string
		hold    time.Duration
		gap     time.Duration
		release int
		want    ClickType
	}{
		{"quick click", 50 * time.Millisecond, 100 * time.Millisecond, 1, DoubleClick},
		{"long hold then quick press", time.Second, 100 * time.Millisecond, 1, DoubleClick},
		{"slow re-press", 50 * time.Millisecond, 300 * time.Millisecond, 1, SingleClick},
		{"other button released", 50 * time.Millisecond, 100 * time.Millisecond, 3, SingleClick},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := NewClickDetector(250 * time.Millisecond)
			now := time.Unix(0, 0)
			cd.DetectClickAt(1, 2, 2, now)
			now = now.Add(tt.hold)
			cd.Release(tt.release, now)
			if ct := cd.DetectClickAt(1, 2, 2, now.Add(tt.gap)); ct != tt.want {
				t.Errorf("expected %v, got %v", tt.want, ct)
			}
		})
	}
}

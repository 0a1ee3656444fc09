// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Section names and built-in option values.

package config

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Sections of the system document.
const sectionLogging = "logging"

// Sections of the terminal document.
const (
	sectionWindow = "window"
	sectionFont   = "font"
	sectionColors = "colors"
	sectionInput  = "input"
	sectionEngine = "engine"
	sectionShell  = "shell"
)

// DefaultOptions returns the built-in option values.
func DefaultOptions() Options {
	return Options{
		Window: WindowOptions{Cols: 80, Rows: 24, Border: 2, Title: "texelterm"},
		Font:   FontOptions{Name: "9x18", Size: 16, Path: "/usr/share/fonts"},
		Colors: ColorOptions{
			FG:           colorful.Color{R: 1, G: 1, B: 1},
			BG:           colorful.Color{},
			BoldAsBright: true,
		},
		Input: InputOptions{
			Selection:        "primary",
			MultiClick:       250 * time.Millisecond,
			ClipboardTimeout: 2 * time.Second,
		},
		Engine: EngineOptions{
			Scrollback:      1000,
			SyncTimeout:     150 * time.Millisecond,
			MaxStringLength: 64 * 1024,
			CellWidth:       9,
			CellHeight:      18,
		},
	}
}

func applySystemDefaults(cfg Config) {
	for name, sec := range DefaultOptions().systemSections() {
		cfg.RegisterDefaults(name, sec)
	}
}

func applyTerminalDefaults(cfg Config) {
	for name, sec := range DefaultOptions().terminalSections() {
		cfg.RegisterDefaults(name, sec)
	}
}

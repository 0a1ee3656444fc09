// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Locations of the texelterm config files and logs.

package config

import (
	"os"
	"path/filepath"
)

const (
	systemConfigName   = "config.json"
	terminalConfigName = "terminal.json"
)

// Dir returns the texelterm config directory under the user config dir.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelterm"), nil
}

func inDir(name string) func() (string, error) {
	return func() (string, error) {
		dir, err := Dir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, name), nil
	}
}

var (
	// SystemConfigPath returns the file holding the logging section.
	SystemConfigPath = inDir(systemConfigName)
	// TerminalConfigPath returns the file holding the terminal options.
	TerminalConfigPath = inDir(terminalConfigName)
	// LogDir returns the directory the binaries write their log files to.
	LogDir = inDir("logs")
)

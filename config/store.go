// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Reading and writing config documents on disk.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// loadDocument reads the file named by path and fills in defaults. The
// returned config is usable even when an error is reported.
func loadDocument(path func() (string, error), defaults func(Config)) (Config, error) {
	p, err := path()
	if err != nil {
		cfg := make(Config)
		defaults(cfg)
		return cfg, err
	}
	return loadFile(p, defaults)
}

// loadFile reads path and fills in defaults. A missing file is created with
// the defaults so users have something to edit; an existing one is never
// rewritten here, even when empty or unreadable.
func loadFile(path string, defaults func(Config)) (Config, error) {
	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read config %s: %v", path, readErr)
		cfg = nil
	}
	if cfg == nil {
		cfg = make(Config)
	}
	fresh := !exists
	defaults(cfg)

	if fresh {
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write default config %s: %v", path, err)
			if readErr == nil {
				readErr = err
			}
		}
	} else if readErr == nil {
		log.Printf("Config: Loaded config from %s", path)
	}
	return cfg, readErr
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, true, nil
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

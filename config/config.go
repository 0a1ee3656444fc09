// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Process-wide store for the system and terminal config documents.
// Usage: LoadOptions reads typed options from the store; Reload re-reads the
// files after they change; SaveOptions writes options back.

package config

import (
	"errors"
	"log"
	"sync"
)

var (
	mu       sync.RWMutex
	once     sync.Once
	system   Config
	terminal Config
)

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	if err := loadLocked(); err != nil {
		log.Printf("Config: using defaults where files could not be read: %v", err)
	}
}

// loadLocked reads both documents. A document that fails to read keeps its
// previous contents when there are any, so a half-written file seen during
// a reload does not reset the terminal to defaults.
func loadLocked() error {
	sys, sysErr := loadDocument(SystemConfigPath, applySystemDefaults)
	if sysErr == nil || system == nil {
		system = sys
	}
	term, termErr := loadDocument(TerminalConfigPath, applyTerminalDefaults)
	if termErr == nil || terminal == nil {
		terminal = term
	}
	return errors.Join(sysErr, termErr)
}

// System returns a copy of the system document (logging).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return Clone(system)
}

// Terminal returns a copy of the terminal document.
func Terminal() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return Clone(terminal)
}

// Reload re-reads both documents from disk.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	return loadLocked()
}

// SaveOptions stores o into both documents and writes them to disk. Keys
// that Options does not know about are preserved.
func SaveOptions(o Options) error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()

	mergeSections(system, o.systemSections())
	mergeSections(terminal, o.terminalSections())

	var errs []error
	if path, err := SystemConfigPath(); err != nil {
		errs = append(errs, err)
	} else if err := writeConfig(path, system); err != nil {
		errs = append(errs, err)
	}
	if path, err := TerminalConfigPath(); err != nil {
		errs = append(errs, err)
	} else if err := writeConfig(path, terminal); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func mergeSections(doc Config, sections map[string]Section) {
	for name, sec := range sections {
		doc.RegisterDefaults(name, nil)
		dst := doc.Section(name)
		for k, v := range sec {
			dst[k] = v
		}
	}
}

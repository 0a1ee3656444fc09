// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/watch.go
// Summary: Reloads the config store when its files change on disk.

package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors produce on save.
const watchDebounce = 100 * time.Millisecond

// Watcher reloads the store on change and notifies a listener.
type Watcher struct {
	fsw      *fsnotify.Watcher
	paths    map[string]bool
	onChange func(Options)
	done     chan struct{}
	wg       sync.WaitGroup
}

// Watch starts watching the system and terminal config files. onChange
// receives the reloaded options on the watcher goroutine. The directory is
// watched so editors that replace the file are seen.
func Watch(onChange func(Options)) (*Watcher, error) {
	sysPath, err := SystemConfigPath()
	if err != nil {
		return nil, err
	}
	termPath, err := TerminalConfigPath()
	if err != nil {
		return nil, err
	}
	// Loading creates the directory and files when they are missing.
	Terminal()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watch: %w", err)
	}
	dir := filepath.Dir(termPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("config watch %s: %w", dir, err)
	}
	w := &Watcher{
		fsw:      fsw,
		paths:    map[string]bool{filepath.Clean(sysPath): true, filepath.Clean(termPath): true},
		onChange: onChange,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	var debounce <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.paths[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce = time.After(watchDebounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Config: watch error: %v", err)
		case <-debounce:
			debounce = nil
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	if err := Reload(); err != nil {
		log.Printf("Config: reload failed, keeping previous values: %v", err)
	}
	opts, err := LoadOptions()
	if err != nil {
		log.Printf("Config: reloaded with errors: %v", err)
	}
	if w.onChange != nil {
		w.onChange(opts)
	}
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := resetStore(t)

	changes := make(chan Options, 4)
	w, err := Watch(func(o Options) { changes <- o })
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := writeConfig(filepath.Join(dir, "terminal.json"), Config{
		sectionColors: map[string]interface{}{"rv": true, "fg": "ff0000"},
	}); err != nil {
		t.Fatal(err)
	}

	select {
	case o := <-changes:
		if !o.Colors.Reverse || o.Colors.FG.Hex() != "#ff0000" {
			t.Errorf("reloaded options = %+v", o.Colors)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after terminal file write")
	}

	if err := writeConfig(filepath.Join(dir, "config.json"), Config{
		sectionLogging: map[string]interface{}{"verbose": true},
	}); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(3 * time.Second)
	for {
		select {
		case o := <-changes:
			if o.Logging.Verbose {
				return
			}
		case <-deadline:
			t.Fatal("no reload after system file write")
		}
	}
}

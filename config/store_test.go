// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetStore(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", root)
	once = sync.Once{}
	system = nil
	terminal = nil
	return filepath.Join(root, "texelterm")
}

func readDisk(t *testing.T, path string) Config {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	return disk
}

func TestDefaultsWrittenOnFirstLoad(t *testing.T) {
	dir := resetStore(t)

	if Terminal().GetString(sectionWindow, "geometry", "") != "80x24" {
		t.Fatalf("expected default geometry")
	}
	if got := readDisk(t, filepath.Join(dir, "config.json")); got.Section(sectionLogging) == nil {
		t.Errorf("system file missing logging section: %v", got)
	}
	disk := readDisk(t, filepath.Join(dir, "terminal.json"))
	for _, name := range []string{sectionWindow, sectionFont, sectionColors, sectionInput, sectionEngine, sectionShell} {
		if disk.Section(name) == nil {
			t.Errorf("terminal file missing %q section", name)
		}
	}
	if got := disk.GetInt(sectionEngine, "syncTimeoutMs", 0); got != 150 {
		t.Errorf("syncTimeoutMs on disk = %d", got)
	}
}

func TestStoredValuesKeptOverDefaults(t *testing.T) {
	dir := resetStore(t)
	if err := writeConfig(filepath.Join(dir, "terminal.json"), Config{
		sectionWindow: map[string]interface{}{"geometry": "132x43"},
	}); err != nil {
		t.Fatal(err)
	}

	term := Terminal()
	if got := term.GetString(sectionWindow, "geometry", ""); got != "132x43" {
		t.Fatalf("geometry = %q", got)
	}
	if got := term.GetString(sectionColors, "bg", ""); got != "000000" {
		t.Fatalf("missing keys should get defaults, bg = %q", got)
	}
	if disk := readDisk(t, filepath.Join(dir, "terminal.json")); disk.Section(sectionColors) != nil {
		t.Errorf("an existing file must not be rewritten with defaults")
	}
}

func TestTerminalReturnsCopy(t *testing.T) {
	resetStore(t)
	Terminal().Section(sectionWindow)["title"] = "changed"
	if got := Terminal().GetString(sectionWindow, "title", ""); got != "texelterm" {
		t.Fatalf("store changed through a returned copy: %q", got)
	}
}

func TestReloadPicksUpEdits(t *testing.T) {
	dir := resetStore(t)
	Terminal()
	if err := writeConfig(filepath.Join(dir, "terminal.json"), Config{
		sectionWindow: map[string]interface{}{"title": "edited"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := writeConfig(filepath.Join(dir, "config.json"), Config{
		sectionLogging: map[string]interface{}{"verbose": true},
	}); err != nil {
		t.Fatal(err)
	}
	if err := Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := Terminal().GetString(sectionWindow, "title", ""); got != "edited" {
		t.Errorf("title = %q", got)
	}
	if !System().GetBool(sectionLogging, "verbose", false) {
		t.Errorf("system document not reloaded")
	}
}

func TestReloadKeepsPreviousOnCorruptFile(t *testing.T) {
	dir := resetStore(t)
	path := filepath.Join(dir, "terminal.json")
	if err := writeConfig(path, Config{sectionWindow: map[string]interface{}{"title": "good"}}); err != nil {
		t.Fatal(err)
	}
	Terminal()
	if err := os.WriteFile(path, []byte("{half"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Reload(); err == nil {
		t.Fatal("expected a read error")
	}
	if got := Terminal().GetString(sectionWindow, "title", ""); got != "good" {
		t.Errorf("title = %q, want previous value", got)
	}
}

func TestCorruptConfigFallsBackToDefaults(t *testing.T) {
	dir := resetStore(t)
	path := filepath.Join(dir, "terminal.json")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if Terminal().GetString(sectionWindow, "geometry", "") != "80x24" {
		t.Fatalf("expected defaults after a read error")
	}
	if data, _ := os.ReadFile(path); string(data) != "{not json" {
		t.Fatalf("a corrupt file must not be overwritten")
	}
}

func TestSaveOptionsRoundTrip(t *testing.T) {
	dir := resetStore(t)
	path := filepath.Join(dir, "terminal.json")
	if err := writeConfig(path, Config{
		sectionWindow: map[string]interface{}{"note": "kept"},
	}); err != nil {
		t.Fatal(err)
	}

	o := DefaultOptions()
	o.Window.Cols, o.Window.Rows = 100, 30
	o.Engine.SyncTimeout = 40 * time.Millisecond
	o.Engine.MaxStringLength = 4096
	o.Shell.Command = "/bin/zsh -l"
	o.Logging.Verbose = true
	if err := SaveOptions(o); err != nil {
		t.Fatalf("SaveOptions: %v", err)
	}

	disk := readDisk(t, path)
	if disk.GetString(sectionWindow, "note", "") != "kept" {
		t.Errorf("unknown key dropped on save")
	}
	resetStoreKeepDir(t)
	got, err := LoadOptions()
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if got != o {
		t.Errorf("round trip = %+v, want %+v", got, o)
	}
}

// resetStoreKeepDir forgets the cached documents without changing the
// config directory.
func resetStoreKeepDir(t *testing.T) {
	t.Helper()
	once = sync.Once{}
	system = nil
	terminal = nil
}

func TestClone(t *testing.T) {
	src := Config{
		"a": map[string]interface{}{"list": []interface{}{"x", map[string]interface{}{"k": 1.0}}},
		"b": Section{"v": true},
	}
	dst := Clone(src)
	dst.Section("a")["list"].([]interface{})[1].(map[string]interface{})["k"] = 2.0
	dst.Section("b")["v"] = false
	if src.Section("a")["list"].([]interface{})[1].(map[string]interface{})["k"] != 1.0 {
		t.Error("nested map shared with the clone")
	}
	if src.GetBool("b", "v", false) != true {
		t.Error("section shared with the clone")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestTypedGetters(t *testing.T) {
	c := Config{"s": map[string]interface{}{
		"int":      4.0,
		"frac":     1.5,
		"intStr":   "7",
		"bool":     "true",
		"ms":       250.0,
		"dur":      "2s",
		"negative": -5.0,
		"badDur":   "soon",
	}}
	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"int", c.GetInt("s", "int", 0), 4},
		{"fraction rejected", c.GetInt("s", "frac", 9), 9},
		{"int string", c.GetInt("s", "intStr", 0), 7},
		{"bool string", c.GetBool("s", "bool", false), true},
		{"missing section", c.GetString("nope", "x", "def"), "def"},
		{"millis", c.GetDuration("s", "ms", 0), 250 * time.Millisecond},
		{"duration string", c.GetDuration("s", "dur", 0), 2 * time.Second},
		{"negative duration", c.GetDuration("s", "negative", time.Second), time.Second},
		{"bad duration", c.GetDuration("s", "badDur", time.Second), time.Second},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

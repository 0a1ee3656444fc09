// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Config documents and typed lookups over their sections.
// Notes: Values decoded from JSON arrive as float64 or string; the getters
// accept both so hand-edited files like {"border": "4"} still load.

package config

import (
	"encoding/json"
	"strconv"
	"time"
)

// Config is one JSON document: section name to Section.
type Config map[string]interface{}

// Section stores the key/value pairs of one section.
type Section map[string]interface{}

// Section returns the named section or nil if missing. The result shares
// storage with c.
func (c Config) Section(name string) Section {
	switch v := c[name].(type) {
	case Section:
		return v
	case map[string]interface{}:
		return Section(v)
	}
	return nil
}

// RegisterDefaults fills the keys missing from the named section.
func (c Config) RegisterDefaults(name string, defaults Section) {
	if c == nil {
		return
	}
	sec := c.Section(name)
	if sec == nil {
		sec = make(Section, len(defaults))
		c[name] = sec
	}
	for key, value := range defaults {
		if _, ok := sec[key]; !ok {
			sec[key] = value
		}
	}
}

func (c Config) lookup(section, key string) (interface{}, bool) {
	sec := c.Section(section)
	if sec == nil {
		return nil, false
	}
	v, ok := sec[key]
	return v, ok
}

// GetString returns a string value or def.
func (c Config) GetString(section, key, def string) string {
	if v, ok := c.lookup(section, key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// GetInt returns an integer value or def. Fractional numbers are rejected.
func (c Config) GetInt(section, key string, def int) int {
	v, ok := c.lookup(section, key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// GetBool returns a boolean value or def.
func (c Config) GetBool(section, key string, def bool) bool {
	v, ok := c.lookup(section, key)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return def
}

// GetDuration returns a duration stored either as milliseconds or as a
// Go duration string ("150ms", "2s"). Negative values yield def.
func (c Config) GetDuration(section, key string, def time.Duration) time.Duration {
	v, ok := c.lookup(section, key)
	if !ok {
		return def
	}
	var d time.Duration
	switch n := v.(type) {
	case string:
		parsed, err := time.ParseDuration(n)
		if err != nil {
			return def
		}
		d = parsed
	default:
		ms := c.GetInt(section, key, -1)
		if ms < 0 {
			return def
		}
		d = time.Duration(ms) * time.Millisecond
	}
	if d < 0 {
		return def
	}
	return d
}

func millis(d time.Duration) int { return int(d / time.Millisecond) }

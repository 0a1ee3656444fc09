// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Deep copies of config documents handed out by the store.

package config

// Clone returns a deep copy of cfg. Nested sections and lists are copied,
// so callers may edit the result without touching the store.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	return Config(cloneMap(cfg))
}

func cloneMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Section:
		return Section(cloneMap(t))
	case Config:
		return Config(cloneMap(t))
	case map[string]interface{}:
		return cloneMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

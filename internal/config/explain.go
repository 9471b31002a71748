package config

import (
	"fmt"
	"sort"
)

// Keys lists every path accepted by Explain.
func Keys() []string {
	keys := make([]string, 0, len(lookups))
	for k := range lookups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var lookups = map[string]func(*Config) any{
	"display":                func(c *Config) any { return c.Display },
	"log_level":              func(c *Config) any { return c.LogLevel },
	"log_file":               func(c *Config) any { return c.LogFile },
	"shortcuts_file":         func(c *Config) any { return c.ShortcutsFile },
	"watch_shortcuts":        func(c *Config) any { return c.WatchShortcuts },
	"almost_maximize_gutter": func(c *Config) any { return c.AlmostMaximizeGutter },
	"hotkey_queue":           func(c *Config) any { return c.HotkeyQueue },
}

// Explain returns the effective value at path and where it came from.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	get, ok := lookups[path]
	if !ok {
		return nil, Source{}, fmt.Errorf("unknown config path %q", path)
	}
	value := get(res.Config)

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

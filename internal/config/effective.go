package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw overrides on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
		if cfg.LogLevel == "warning" {
			cfg.LogLevel = "warn"
		}
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}
	if raw.ShortcutsFile != nil {
		cfg.ShortcutsFile = *raw.ShortcutsFile
	}
	if raw.WatchShortcuts != nil {
		cfg.WatchShortcuts = *raw.WatchShortcuts
	}
	if raw.AlmostMaximizeGutter != nil {
		cfg.AlmostMaximizeGutter = *raw.AlmostMaximizeGutter
	}
	if raw.HotkeyQueue != nil {
		cfg.HotkeyQueue = *raw.HotkeyQueue
	}

	return cfg
}

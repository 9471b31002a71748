package config

// RawConfig mirrors Config with optional fields so unset keys keep their
// defaults and included files can be layered.
type RawConfig struct {
	Include any `yaml:"include"`

	Display              *string `yaml:"display"`
	LogLevel             *string `yaml:"log_level"`
	LogFile              *string `yaml:"log_file"`
	ShortcutsFile        *string `yaml:"shortcuts_file"`
	WatchShortcuts       *bool   `yaml:"watch_shortcuts"`
	AlmostMaximizeGutter *int    `yaml:"almost_maximize_gutter"`
	HotkeyQueue          *int    `yaml:"hotkey_queue"`
}

// merge returns r with every field set in over applied on top.
func (r RawConfig) merge(over RawConfig) RawConfig {
	out := r
	if over.Display != nil {
		out.Display = over.Display
	}
	if over.LogLevel != nil {
		out.LogLevel = over.LogLevel
	}
	if over.LogFile != nil {
		out.LogFile = over.LogFile
	}
	if over.ShortcutsFile != nil {
		out.ShortcutsFile = over.ShortcutsFile
	}
	if over.WatchShortcuts != nil {
		out.WatchShortcuts = over.WatchShortcuts
	}
	if over.AlmostMaximizeGutter != nil {
		out.AlmostMaximizeGutter = over.AlmostMaximizeGutter
	}
	if over.HotkeyQueue != nil {
		out.HotkeyQueue = over.HotkeyQueue
	}
	out.Include = nil
	return out
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel             = "info"
	DefaultAlmostMaximizeGutter = 32
	DefaultHotkeyQueue          = 32

	maxGutter      = 512
	maxHotkeyQueue = 4096
)

// Config is the effective daemon configuration.
type Config struct {
	// Display overrides $DISPLAY for the X11 connection.
	Display string `yaml:"display,omitempty"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`

	// ShortcutsFile is the binding document; empty selects the XDG default.
	ShortcutsFile  string `yaml:"shortcuts_file,omitempty"`
	WatchShortcuts bool   `yaml:"watch_shortcuts"`

	// AlmostMaximizeGutter is the gutter, in pixels at 96 DPI, used by the
	// almostMaximizeWindow binding.
	AlmostMaximizeGutter int `yaml:"almost_maximize_gutter"`

	// HotkeyQueue is the capacity of the hotkey event channel.
	HotkeyQueue int `yaml:"hotkey_queue"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:             DefaultLogLevel,
		WatchShortcuts:       true,
		AlmostMaximizeGutter: DefaultAlmostMaximizeGutter,
		HotkeyQueue:          DefaultHotkeyQueue,
	}
}

// Save writes the configuration to path, or to the default location when
// path is empty.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.AlmostMaximizeGutter < 0 || c.AlmostMaximizeGutter > maxGutter {
		return &ValidationError{Path: "almost_maximize_gutter", Err: fmt.Errorf("almost_maximize_gutter must be between 0 and %d", maxGutter)}
	}
	if c.HotkeyQueue < 1 || c.HotkeyQueue > maxHotkeyQueue {
		return &ValidationError{Path: "hotkey_queue", Err: fmt.Errorf("hotkey_queue must be between 1 and %d", maxHotkeyQueue)}
	}
	if c.ShortcutsFile != "" && strings.TrimSpace(c.ShortcutsFile) == "" {
		return &ValidationError{Path: "shortcuts_file", Err: fmt.Errorf("shortcuts_file must not be blank")}
	}
	if c.ShortcutsFile != "" && !filepath.IsAbs(expandHome(c.ShortcutsFile)) {
		return &ValidationError{Path: "shortcuts_file", Err: fmt.Errorf("shortcuts_file must be an absolute path or start with ~/")}
	}
	return nil
}

// ShortcutsPath returns the configured binding document path with ~
// expanded, or "" for the default.
func (c *Config) ShortcutsPath() string {
	if c == nil {
		return ""
	}
	return expandHome(c.ShortcutsFile)
}

// LogPath returns the configured log file with ~ expanded, or "" for the
// default.
func (c *Config) LogPath() string {
	if c == nil {
		return ""
	}
	return expandHome(c.LogFile)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

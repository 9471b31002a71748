package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.AlmostMaximizeGutter != 32 {
		t.Fatalf("expected default gutter 32, got %d", cfg.AlmostMaximizeGutter)
	}
	if !cfg.WatchShortcuts {
		t.Fatalf("expected watch_shortcuts to default to true")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != DefaultLogLevel {
		t.Fatalf("expected log_level %q, got %q", DefaultLogLevel, res.Config.LogLevel)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files loaded, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.HotkeyQueue != DefaultHotkeyQueue {
		t.Fatalf("expected hotkey_queue %d, got %d", DefaultHotkeyQueue, res.Config.HotkeyQueue)
	}
}

func TestLoadFromPath_OverridesAndExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"display: \":1\"",
		"almost_maximize_gutter: 48",
		"watch_shortcuts: false",
		"log_level: warning",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Display != ":1" {
		t.Fatalf("expected display :1, got %q", res.Config.Display)
	}
	if res.Config.AlmostMaximizeGutter != 48 {
		t.Fatalf("expected gutter 48, got %d", res.Config.AlmostMaximizeGutter)
	}
	if res.Config.WatchShortcuts {
		t.Fatalf("expected watch_shortcuts false")
	}
	if res.Config.LogLevel != "warn" {
		t.Fatalf("expected warning to normalize to warn, got %q", res.Config.LogLevel)
	}

	val, src, err := Explain(res, "almost_maximize_gutter")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 48 {
		t.Fatalf("expected 48, got %v", val)
	}
	if src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("expected file source at line 2, got %+v", src)
	}

	_, src, err = Explain(res, "hotkey_queue")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}

	if _, _, err := Explain(res, "gap_size"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "log_level: info\nalmost_maximize_gutter: 9000\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Path != "almost_maximize_gutter" {
		t.Fatalf("expected path almost_maximize_gutter, got %q", verr.Path)
	}
	if !strings.Contains(err.Error(), path+":2:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(configD, "10-base.yaml"), "almost_maximize_gutter: 5\nhotkey_queue: 8\n")
	writeFile(t, filepath.Join(configD, "20-override.yaml"), "almost_maximize_gutter: 6\n")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"include:",
		"  - config.d",
		"almost_maximize_gutter: 7",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.AlmostMaximizeGutter != 7 {
		t.Fatalf("expected gutter 7, got %d", res.Config.AlmostMaximizeGutter)
	}
	if res.Config.HotkeyQueue != 8 {
		t.Fatalf("expected hotkey_queue 8 from include, got %d", res.Config.HotkeyQueue)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, b, "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"negative gutter", func(c *Config) { c.AlmostMaximizeGutter = -1 }, "almost_maximize_gutter"},
		{"zero queue", func(c *Config) { c.HotkeyQueue = 0 }, "hotkey_queue"},
		{"relative shortcuts file", func(c *Config) { c.ShortcutsFile = "shortcuts.json" }, "shortcuts_file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, verr.Path)
			}
		})
	}
}

func TestShortcutsPathExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg := DefaultConfig()
	cfg.ShortcutsFile = "~/galaxy/keys.json"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got, want := cfg.ShortcutsPath(), filepath.Join(home, "galaxy", "keys.json"); got != want {
		t.Fatalf("ShortcutsPath() = %q, want %q", got, want)
	}
}

func TestInit_WritesDefaultsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galaxy", "config.yaml")

	written, err := Init(path, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if written != path {
		t.Fatalf("expected %q, got %q", path, written)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if *res.Config != *DefaultConfig() {
		t.Fatalf("expected defaults round trip, got %+v", res.Config)
	}

	if _, err := Init(path, false); !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist on second init, got %v", err)
	}
	if _, err := Init(path, true); err != nil {
		t.Fatalf("forced init: %v", err)
	}
}

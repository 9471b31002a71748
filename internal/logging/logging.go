package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu      sync.Mutex
	Logger  = zerolog.Nop()
	logFile *os.File
)

// Options configures Init.
type Options struct {
	Level string
	// File is the log destination; empty selects DefaultPath.
	File string
	// Console mirrors output to stderr, pretty-printed when it is a terminal.
	Console bool
}

// timestampHook adds the timestamp at the end of each event.
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// DefaultPath returns $XDG_STATE_HOME/galaxy/galaxy.log.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "galaxy", "galaxy.log")
}

// ParseLevel maps a config log level to zerolog.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// Init replaces the global Logger.
func Init(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	path := opts.File
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	var out io.Writer = f
	if opts.Console {
		var console io.Writer = os.Stderr
		if term.IsTerminal(int(os.Stderr.Fd())) {
			console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		}
		out = zerolog.MultiLevelWriter(f, console)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	zerolog.MessageFieldName = "msg"
	Logger = New(out, level)
	return nil
}

// New builds a logger writing to w with the package's field layout.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).Hook(timestampHook{})
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	Logger = zerolog.Nop()
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return Logger.With().Str("component", name).Logger()
}

func Debug() *zerolog.Event {
	return Logger.Debug()
}

func Info() *zerolog.Event {
	return Logger.Info()
}

func Warn() *zerolog.Event {
	return Logger.Warn()
}

func Error() *zerolog.Event {
	return Logger.Error()
}

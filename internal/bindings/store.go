package bindings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const fileName = "shortcuts.json"

// DefaultPath returns $XDG_CONFIG_HOME/galaxy/shortcuts.json.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "galaxy", fileName)
}

// FileStore persists a binding Set as JSON.
type FileStore struct {
	path string
	log  zerolog.Logger

	mu   sync.Mutex
	last []byte // content of the most recent Save
}

// NewFileStore creates a store for path; an empty path selects DefaultPath.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path, log: log}
}

// Path returns the document location.
func (s *FileStore) Path() string { return s.path }

// Read parses the document. It returns os.ErrNotExist when the file is
// missing.
func (s *FileStore) Read() (Set, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Load reads the document, falling back to Defaults when it is missing or
// corrupt. It never returns an error for those two cases, so it is only
// suitable at startup; reloads use Read.
func (s *FileStore) Load() (Set, error) {
	set, err := s.Read()
	switch {
	case err == nil:
		s.log.Debug().Str("path", s.path).Int("count", len(set)).Msg("loaded shortcuts")
		return set, nil
	case errors.Is(err, os.ErrNotExist):
		s.log.Info().Str("path", s.path).Msg("no shortcuts file, using defaults")
		return Defaults(), nil
	default:
		s.log.Warn().Err(err).Str("path", s.path).Msg("unreadable shortcuts file, using defaults")
		return Defaults(), nil
	}
}

// Decode accepts both the flat document and the {"shortcuts": ...} wrapper.
func Decode(data []byte) (Set, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts: %w", err)
	}

	// A lone "shortcuts" key holding a map of bindings is the wrapped form; a
	// binding whose id happens to be "shortcuts" fails this decode.
	if inner, ok := raw["shortcuts"]; ok && len(raw) == 1 {
		var nested Set
		if err := json.Unmarshal(inner, &nested); err == nil && nested != nil {
			return validate(nested)
		}
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts: %w", err)
	}
	return validate(set)
}

func validate(set Set) (Set, error) {
	if set == nil {
		return nil, fmt.Errorf("shortcuts document is empty")
	}
	for id, b := range set {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("shortcut with empty id")
		}
		if strings.TrimSpace(b.Shortcut) == "" {
			return nil, fmt.Errorf("shortcut %q has no defaultShortcut", id)
		}
	}
	return set, nil
}

// Save writes the flat document atomically.
func (s *FileStore) Save(set Set) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create shortcuts directory: %w", err)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode shortcuts: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+fileName+".*")
	if err != nil {
		return fmt.Errorf("failed to write shortcuts: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write shortcuts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write shortcuts: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write shortcuts: %w", err)
	}

	s.mu.Lock()
	s.last = data
	s.mu.Unlock()

	s.log.Debug().Str("path", s.path).Int("count", len(set)).Msg("saved shortcuts")
	return nil
}

// unchangedSinceSave reports whether the document still holds exactly what
// the last Save wrote.
func (s *FileStore) unchangedSinceSave() bool {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last == nil {
		return false
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	return bytes.Equal(data, last)
}

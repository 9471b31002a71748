// Package palette offers window actions through an external dmenu-style
// launcher so they can be run without remembering the shortcut.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the launcher closes without a selection.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row in the launcher.
type Item struct {
	Label    string
	Action   string
	Gutter   int
	Icon     string
	Meta     string // extra search keywords (rofi only)
	IsHeader bool
}

// Backend shows items and returns the one the user picked.
type Backend interface {
	Show(prompt string, items []Item) (Item, error)
	Name() string
}

// backends lists supported launchers in detection order.
var backends = []string{"rofi", "dmenu"}

// DetectBackend returns the first launcher found in PATH.
func DetectBackend() (string, error) {
	for _, name := range backends {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no palette backend found in PATH (looked for: %s)", strings.Join(backends, ", "))
}

// NewBackend creates a backend by name; "" and "auto" detect one.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend()
		if err != nil {
			return nil, err
		}
		name = detected
	}

	switch name {
	case "rofi":
		if _, err := exec.LookPath("rofi"); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", name)
		}
		return newRofi(), nil
	case "dmenu":
		if _, err := exec.LookPath("dmenu"); err != nil {
			return nil, fmt.Errorf("palette backend %q not found in PATH", name)
		}
		return newDmenu(), nil
	default:
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(backends, ", "))
	}
}

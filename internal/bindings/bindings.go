// Package bindings reads and writes the shortcut binding document and
// watches it for external edits.
package bindings

import (
	"maps"
	"slices"

	"github.com/1broseidon/galaxy/internal/tiling"
)

// Binding associates a logical action id with a key combination.
type Binding struct {
	Name     string `json:"name"`
	Shortcut string `json:"defaultShortcut"`
}

// Set is a binding document keyed by id.
type Set map[string]Binding

// Defaults returns the bindings used when no document exists or it cannot
// be parsed.
func Defaults() Set {
	return Set{
		tiling.BindingMoveMonitorLeft: {
			Name:     "Move to Left Monitor",
			Shortcut: "Shift+Control+Alt+ArrowLeft",
		},
		tiling.BindingMoveMonitorRight: {
			Name:     "Move to Right Monitor",
			Shortcut: "Shift+Control+Alt+ArrowRight",
		},
		tiling.BindingMaximizeWindow: {
			Name:     "Maximize Window",
			Shortcut: "Control+Alt+Enter",
		},
		tiling.BindingAlmostMaximizeWindow: {
			Name:     "Almost Maximize Window",
			Shortcut: "Shift+Control+Alt+Enter",
		},
	}
}

// IDs returns the binding ids in ascending order.
func (s Set) IDs() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns a copy of the set.
func (s Set) Clone() Set {
	return maps.Clone(s)
}

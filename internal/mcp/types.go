package mcp

import (
	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/ipc"
	"github.com/1broseidon/galaxy/internal/registry"
)

type ListMonitorsInput struct{}

type ListMonitorsOutput struct {
	Monitors []geometry.Monitor `json:"monitors"`
}

type ListActionsInput struct{}

type ListActionsOutput struct {
	Actions []ipc.ActionInfo `json:"actions"`
}

// RunActionInput is the input for the run_action tool.
type RunActionInput struct {
	Action string `json:"action" jsonschema:"Action name from list_actions, e.g. left-half"`
	Gutter int    `json:"gutter,omitempty" jsonschema:"Gutter in pixels at 96 DPI; only used by maximize"`
}

// RunActionOutput reports where the window went.
type RunActionOutput struct {
	Action  string             `json:"action"`
	Window  uint32             `json:"window"`
	Before  geometry.Rect      `json:"before"`
	After   geometry.Placement `json:"after"`
	Monitor int                `json:"monitor"`
	Applied bool               `json:"applied"`
}

type ListShortcutsInput struct{}

type ListShortcutsOutput struct {
	Shortcuts []registry.Entry `json:"shortcuts"`
}

// UpdateShortcutInput is the input for the update_shortcut tool.
type UpdateShortcutInput struct {
	ID       string `json:"id" jsonschema:"Binding id from list_shortcuts, e.g. maximizeWindow"`
	Shortcut string `json:"shortcut" jsonschema:"New shortcut such as Control+Alt+M; modifiers and key are case-insensitive"`
}

type UpdateShortcutOutput struct {
	Shortcut registry.Entry `json:"shortcut"`
}

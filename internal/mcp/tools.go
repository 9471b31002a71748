package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/tiling"
)

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	monitors, err := s.daemon.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	return nil, ListMonitorsOutput{Monitors: monitors}, nil
}

func (s *Server) handleListActions(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListActionsInput) (*mcpsdk.CallToolResult, ListActionsOutput, error) {
	actions, err := s.daemon.ListActions()
	if err != nil {
		return nil, ListActionsOutput{}, err
	}
	return nil, ListActionsOutput{Actions: actions}, nil
}

func (s *Server) handleRunAction(_ context.Context, _ *mcpsdk.CallToolRequest, args RunActionInput) (*mcpsdk.CallToolResult, RunActionOutput, error) {
	name := strings.TrimSpace(args.Action)
	if name == "" {
		return nil, RunActionOutput{}, fmt.Errorf("action is required")
	}
	// Reject unknown names before a round trip to the daemon.
	if _, err := tiling.ParseAction(name, args.Gutter); err != nil {
		return nil, RunActionOutput{}, err
	}

	res, err := s.daemon.RunAction(name, args.Gutter)
	if err != nil {
		if errors.Is(err, tiling.ErrNoActiveWindow) {
			return nil, RunActionOutput{}, fmt.Errorf("no window is focused; focus a window and retry")
		}
		return nil, RunActionOutput{}, err
	}
	s.log.Info().Str("action", name).Str("placement", res.Placement.String()).Msg("MCP run_action")

	return nil, RunActionOutput{
		Action:  res.Name,
		Window:  uint32(res.Window),
		Before:  res.Before,
		After:   res.Placement,
		Monitor: res.Target,
		Applied: res.Applied,
	}, nil
}

func (s *Server) handleListShortcuts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListShortcutsInput) (*mcpsdk.CallToolResult, ListShortcutsOutput, error) {
	entries, err := s.daemon.ListShortcuts()
	if err != nil {
		return nil, ListShortcutsOutput{}, err
	}
	return nil, ListShortcutsOutput{Shortcuts: entries}, nil
}

func (s *Server) handleUpdateShortcut(_ context.Context, _ *mcpsdk.CallToolRequest, args UpdateShortcutInput) (*mcpsdk.CallToolResult, UpdateShortcutOutput, error) {
	if strings.TrimSpace(args.ID) == "" {
		return nil, UpdateShortcutOutput{}, fmt.Errorf("id is required")
	}

	entry, err := s.daemon.UpdateShortcut(args.ID, args.Shortcut)
	switch {
	case err == nil:
	case errors.Is(err, registry.ErrNotFound):
		return nil, UpdateShortcutOutput{}, fmt.Errorf("unknown binding id %q; call list_shortcuts for valid ids", args.ID)
	case errors.Is(err, registry.ErrInvalidFormat):
		return nil, UpdateShortcutOutput{}, fmt.Errorf("%q is not a valid shortcut: use modifiers joined with + followed by one key, e.g. Control+Alt+M", args.Shortcut)
	default:
		return nil, UpdateShortcutOutput{}, err
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: fmt.Sprintf("%s is now bound to %s", entry.ID, entry.Shortcut)},
		},
	}, UpdateShortcutOutput{Shortcut: *entry}, nil
}

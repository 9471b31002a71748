package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/ipc"
	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/tiling"
)

type fakeDaemon struct {
	runs    []string
	updates []string
	runErr  error
}

func (f *fakeDaemon) GetMonitors() ([]geometry.Monitor, error) {
	return []geometry.Monitor{{Name: "eDP-1", Bounds: geometry.RectFromSize(0, 0, 2560, 1600)}}, nil
}

func (f *fakeDaemon) ListActions() ([]ipc.ActionInfo, error) {
	return ipc.ListActions().Actions, nil
}

func (f *fakeDaemon) RunAction(action string, gutter int) (*tiling.Result, error) {
	if f.runErr != nil {
		return nil, f.runErr
	}
	f.runs = append(f.runs, fmt.Sprintf("%s/%d", action, gutter))
	return &tiling.Result{Name: action, Window: 9, Target: 1, Applied: true, Placement: geometry.Placement{Width: 1280, Height: 1600}}, nil
}

func (f *fakeDaemon) ListShortcuts() ([]registry.Entry, error) {
	return []registry.Entry{{ID: "maximizeWindow", Shortcut: "Control+Alt+Enter", Active: true}}, nil
}

func (f *fakeDaemon) UpdateShortcut(id, shortcut string) (*registry.Entry, error) {
	switch {
	case id == "nope":
		return nil, &ipc.RemoteError{Code: ipc.CodeNotFound, Message: "not found"}
	case strings.HasSuffix(shortcut, "+"):
		return nil, &ipc.RemoteError{Code: ipc.CodeInvalidFormat, Message: "missing key"}
	}
	f.updates = append(f.updates, id+"="+shortcut)
	return &registry.Entry{ID: id, Shortcut: shortcut, Active: true}, nil
}

func TestRunAction(t *testing.T) {
	d := &fakeDaemon{}
	s := NewServer(d, zerolog.Nop())

	_, out, err := s.handleRunAction(context.Background(), nil, RunActionInput{Action: "maximize", Gutter: 16})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.Applied || out.Window != 9 || out.Monitor != 1 || out.After.Width != 1280 {
		t.Fatalf("unexpected output %+v", out)
	}
	if len(d.runs) != 1 || d.runs[0] != "maximize/16" {
		t.Fatalf("unexpected daemon calls %v", d.runs)
	}
}

func TestRunAction_RejectsUnknownLocally(t *testing.T) {
	d := &fakeDaemon{}
	s := NewServer(d, zerolog.Nop())

	if _, _, err := s.handleRunAction(context.Background(), nil, RunActionInput{Action: "sideways"}); err == nil {
		t.Fatalf("expected error for unknown action")
	}
	if _, _, err := s.handleRunAction(context.Background(), nil, RunActionInput{}); err == nil {
		t.Fatalf("expected error for empty action")
	}
	if len(d.runs) != 0 {
		t.Fatalf("daemon should not be called, got %v", d.runs)
	}
}

func TestRunAction_NoActiveWindow(t *testing.T) {
	d := &fakeDaemon{runErr: &ipc.RemoteError{Code: ipc.CodeNoActiveWindow, Message: "no active window"}}
	s := NewServer(d, zerolog.Nop())

	_, _, err := s.handleRunAction(context.Background(), nil, RunActionInput{Action: "center"})
	if err == nil || !strings.Contains(err.Error(), "focus a window") {
		t.Fatalf("expected focus hint, got %v", err)
	}
}

func TestUpdateShortcut(t *testing.T) {
	d := &fakeDaemon{}
	s := NewServer(d, zerolog.Nop())

	res, out, err := s.handleUpdateShortcut(context.Background(), nil, UpdateShortcutInput{ID: "maximizeWindow", Shortcut: "Control+Alt+M"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if out.Shortcut.Shortcut != "Control+Alt+M" {
		t.Fatalf("unexpected output %+v", out)
	}
	if res == nil || len(res.Content) != 1 {
		t.Fatalf("expected a text summary, got %+v", res)
	}

	_, _, err = s.handleUpdateShortcut(context.Background(), nil, UpdateShortcutInput{ID: "nope", Shortcut: "Control+K"})
	if err == nil || !strings.Contains(err.Error(), "list_shortcuts") {
		t.Fatalf("expected unknown id hint, got %v", err)
	}

	_, _, err = s.handleUpdateShortcut(context.Background(), nil, UpdateShortcutInput{ID: "maximizeWindow", Shortcut: "Control+"})
	if err == nil || !strings.Contains(err.Error(), "not a valid shortcut") {
		t.Fatalf("expected format hint, got %v", err)
	}

	if _, _, err := s.handleUpdateShortcut(context.Background(), nil, UpdateShortcutInput{}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestListTools(t *testing.T) {
	s := NewServer(&fakeDaemon{}, zerolog.Nop())

	_, monitors, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil || len(monitors.Monitors) != 1 {
		t.Fatalf("list_monitors: %+v, %v", monitors, err)
	}
	_, actions, err := s.handleListActions(context.Background(), nil, ListActionsInput{})
	if err != nil || len(actions.Actions) != len(tiling.Kinds()) {
		t.Fatalf("list_actions: %d, %v", len(actions.Actions), err)
	}
	_, shortcuts, err := s.handleListShortcuts(context.Background(), nil, ListShortcutsInput{})
	if err != nil || len(shortcuts.Shortcuts) != 1 {
		t.Fatalf("list_shortcuts: %+v, %v", shortcuts, err)
	}
}

func TestRemoteErrorsMatchSentinels(t *testing.T) {
	err := error(&ipc.RemoteError{Code: ipc.CodeNotFound})
	if !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected RemoteError to match ErrNotFound")
	}
}

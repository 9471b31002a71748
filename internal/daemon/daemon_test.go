package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/galaxy/internal/bindings"
	"github.com/1broseidon/galaxy/internal/config"
	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/ipc"
	"github.com/1broseidon/galaxy/internal/platform"
	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/shortcut"
	"github.com/1broseidon/galaxy/internal/tiling"
	"github.com/rs/zerolog"
)

type fakeBackend struct {
	mu    sync.Mutex
	rect  geometry.Rect
	moves []geometry.Placement
}

func (b *fakeBackend) Monitors() ([]geometry.Monitor, error) {
	return []geometry.Monitor{{
		Name:   "DP-1",
		Bounds: geometry.RectFromSize(0, 0, 1920, 1080),
		Work:   geometry.RectFromSize(0, 0, 1920, 1040),
	}}, nil
}

func (b *fakeBackend) ActiveWindow() (platform.WindowID, error) { return 7, nil }

func (b *fakeBackend) WindowRect(platform.WindowID) (geometry.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rect, nil
}

func (b *fakeBackend) ExtendedFrameRect(id platform.WindowID) (geometry.Rect, error) {
	return b.WindowRect(id)
}

func (b *fakeBackend) WindowDPI(platform.WindowID) (int, error) { return 96, nil }

func (b *fakeBackend) MoveResize(_ platform.WindowID, p geometry.Placement) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.moves = append(b.moves, p)
	b.rect = p.Rect()
	return nil
}

func (b *fakeBackend) lastMove() (geometry.Placement, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.moves) == 0 {
		return geometry.Placement{}, 0
	}
	return b.moves[len(b.moves)-1], len(b.moves)
}

type fakeGrabber struct {
	mu     sync.Mutex
	live   map[string]bool
	events chan shortcut.Event
}

func newFakeGrabber() *fakeGrabber {
	return &fakeGrabber{live: map[string]bool{}, events: make(chan shortcut.Event, 8)}
}

func (g *fakeGrabber) Register(c shortcut.Combo) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.live[c.String()] = true
	return nil
}

func (g *fakeGrabber) Unregister(c shortcut.Combo) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.live[c.String()] {
		return fmt.Errorf("%s not registered", c)
	}
	delete(g.live, c.String())
	return nil
}

func (g *fakeGrabber) Events() <-chan shortcut.Event { return g.events }

func (g *fakeGrabber) isLive(s string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.live[s]
}

func startDaemon(t *testing.T) (*fakeBackend, *fakeGrabber, *ipc.Client, string) {
	t.Helper()
	dir := t.TempDir()
	backend := &fakeBackend{rect: geometry.RectFromSize(100, 100, 800, 600)}
	grabber := newFakeGrabber()
	storePath := filepath.Join(dir, "shortcuts.json")
	socket := filepath.Join(dir, "g.sock")

	cfg := config.DefaultConfig()
	cfg.WatchShortcuts = false

	d, err := New(Options{
		Config:     cfg,
		Backend:    backend,
		Grabber:    grabber,
		Store:      bindings.NewFileStore(storePath, zerolog.Nop()),
		SocketPath: socket,
		Log:        zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("run: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Errorf("daemon did not stop")
		}
	})

	client := ipc.NewClientAt(socket)
	deadline := time.Now().Add(5 * time.Second)
	for client.Ping() != nil {
		if time.Now().After(deadline) {
			t.Fatalf("daemon never answered")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return backend, grabber, client, storePath
}

func TestDaemon_RegistersDefaultsAndDispatchesHotkeys(t *testing.T) {
	backend, grabber, client, _ := startDaemon(t)

	if !grabber.isLive("control+alt+enter") {
		t.Fatalf("expected maximizeWindow default to be grabbed")
	}

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Shortcuts != 4 || status.ActiveShortcuts != 4 || status.Monitors != 1 {
		t.Fatalf("unexpected status %+v", status)
	}

	// Presses are ignored; the release fires the action.
	combo := shortcut.MustParse("Control+Alt+Enter")
	grabber.events <- shortcut.Event{Shortcut: combo, State: shortcut.Pressed}
	grabber.events <- shortcut.Event{Shortcut: combo, State: shortcut.Released}

	deadline := time.Now().Add(5 * time.Second)
	for {
		p, n := backend.lastMove()
		if n > 0 {
			if n != 1 || p != (geometry.Placement{Width: 1920, Height: 1040}) {
				t.Fatalf("unexpected placement %v after %d moves", p, n)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("hotkey never moved the window")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDaemon_RunActionOverIPC(t *testing.T) {
	backend, _, client, _ := startDaemon(t)

	res, err := client.RunAction("right-half", 0)
	if err != nil {
		t.Fatalf("run action: %v", err)
	}
	want := geometry.Placement{Width: 960, Height: 1040, X: 960, Y: 0}
	if res.Placement != want {
		t.Fatalf("placement = %v, want %v", res.Placement, want)
	}
	if p, _ := backend.lastMove(); p != want {
		t.Fatalf("backend saw %v, want %v", p, want)
	}
}

func TestDaemon_UpdateShortcutPersistsAndRebinds(t *testing.T) {
	_, grabber, client, storePath := startDaemon(t)

	entry, err := client.UpdateShortcut(tiling.BindingMaximizeWindow, "ctrl+alt+m")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if entry.Shortcut != "ctrl+alt+m" || !entry.Active {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if grabber.isLive("control+alt+enter") || !grabber.isLive("control+alt+m") {
		t.Fatalf("expected grab to move to control+alt+m")
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	set, err := bindings.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if set[tiling.BindingMaximizeWindow].Shortcut != "ctrl+alt+m" {
		t.Fatalf("expected persisted shortcut, got %+v", set[tiling.BindingMaximizeWindow])
	}

	_, err = client.UpdateShortcut("nope", "ctrl+k")
	if !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = client.UpdateShortcut(tiling.BindingMaximizeWindow, "shift+ctrl+alt+left")
	if !errors.Is(err, registry.ErrDuplicateShortcut) {
		t.Fatalf("expected ErrDuplicateShortcut, got %v", err)
	}
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error")
	}
}

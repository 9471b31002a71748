package tiling

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/platform"
)

var (
	// ErrOSQuery wraps every failure of the window-system backend.
	ErrOSQuery = errors.New("window system query failed")
	// ErrNoMonitors is returned when the backend reports no monitors.
	ErrNoMonitors = errors.New("no monitors")
	// ErrNoActiveWindow is returned when nothing has focus.
	ErrNoActiveWindow = errors.New("no active window")
)

// Result describes one applied action.
type Result struct {
	Action    Action             `json:"-"`
	Name      string             `json:"action"`
	Window    platform.WindowID  `json:"window"`
	Before    geometry.Rect      `json:"before"`
	Placement geometry.Placement `json:"placement"`
	Current   int                `json:"current_monitor"`
	Target    int                `json:"target_monitor"`
	Applied   bool               `json:"applied"`
}

// Engine applies actions to the focused window. Monitors are re-queried on
// every call and at most one action runs at a time.
type Engine struct {
	backend platform.Backend
	log     zerolog.Logger

	mu sync.Mutex
}

// NewEngine creates an engine over a window-system backend.
func NewEngine(backend platform.Backend, log zerolog.Logger) *Engine {
	return &Engine{backend: backend, log: log}
}

// Apply runs an action against the currently focused window.
func (e *Engine) Apply(ctx context.Context, a Action) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	res := Result{Action: a, Name: a.Kind.String()}

	monitors, err := e.backend.Monitors()
	if err != nil {
		return res, fmt.Errorf("%w: monitors: %w", ErrOSQuery, err)
	}
	if len(monitors) == 0 {
		return res, fmt.Errorf("%w: %w", ErrOSQuery, ErrNoMonitors)
	}

	win, err := e.backend.ActiveWindow()
	if err != nil {
		return res, fmt.Errorf("%w: active window: %w", ErrOSQuery, err)
	}
	if win == 0 {
		return res, fmt.Errorf("%w: %w", ErrOSQuery, ErrNoActiveWindow)
	}
	res.Window = win

	nominal, err := e.backend.WindowRect(win)
	if err != nil {
		return res, fmt.Errorf("%w: window rect: %w", ErrOSQuery, err)
	}
	res.Before = nominal

	snap := geometry.SnapshotOf(nominal)
	current := geometry.MonitorAt(monitors, snap.CenterX, snap.CenterY)
	target := TargetMonitor(a.Kind, current, monitors)
	res.Current, res.Target = current, target

	actx := Context{
		Current:  current,
		Target:   target,
		Monitors: monitors,
		Window:   snap,
	}

	placement, err := Compute(a, actx, e.frameQuery(win, nominal))
	if err != nil {
		if errors.Is(err, ErrInvalidContext) {
			return res, err
		}
		return res, fmt.Errorf("%w: %w", ErrOSQuery, err)
	}
	res.Placement = placement

	if a.Kind == None {
		e.log.Debug().Uint32("window", uint32(win)).Msg("no-op action")
		return res, nil
	}

	if err := e.backend.MoveResize(win, placement); err != nil {
		return res, fmt.Errorf("%w: move/resize: %w", ErrOSQuery, err)
	}
	res.Applied = true

	e.log.Info().
		Str("action", a.String()).
		Uint32("window", uint32(win)).
		Int("monitor", current).
		Int("target", target).
		Str("placement", placement.String()).
		Msg("window placed")

	return res, nil
}

func (e *Engine) frameQuery(win platform.WindowID, nominal geometry.Rect) FrameQuery {
	return func() (FrameMetrics, error) {
		dpi, err := e.backend.WindowDPI(win)
		if err != nil {
			return FrameMetrics{}, fmt.Errorf("window dpi: %w", err)
		}
		extended, err := e.backend.ExtendedFrameRect(win)
		if err != nil {
			return FrameMetrics{}, fmt.Errorf("extended frame bounds: %w", err)
		}
		return FrameMetrics{DPI: dpi, Insets: geometry.InsetsBetween(nominal, extended)}, nil
	}
}

// Monitors returns a fresh monitor snapshot from the backend.
func (e *Engine) Monitors() ([]geometry.Monitor, error) {
	monitors, err := e.backend.Monitors()
	if err != nil {
		return nil, fmt.Errorf("%w: monitors: %w", ErrOSQuery, err)
	}
	return monitors, nil
}

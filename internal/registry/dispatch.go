package registry

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/1broseidon/galaxy/internal/shortcut"
	"github.com/1broseidon/galaxy/internal/tiling"
)

// Applier runs a window action.
type Applier interface {
	Apply(ctx context.Context, a tiling.Action) (tiling.Result, error)
}

// Dispatcher drains hotkey events on a single goroutine and runs the bound
// action on key release. Presses are ignored so a held key fires once.
type Dispatcher struct {
	registry     *Registry
	engine       Applier
	almostGutter int
	log          zerolog.Logger
}

// NewDispatcher creates a dispatcher. almostGutter is the gutter used by the
// almostMaximizeWindow binding.
func NewDispatcher(reg *Registry, engine Applier, almostGutter int, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry:     reg,
		engine:       engine,
		almostGutter: almostGutter,
		log:          log,
	}
}

// Run consumes events until ctx is cancelled or events is closed.
func (d *Dispatcher) Run(ctx context.Context, events <-chan shortcut.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := d.Handle(ctx, ev); err != nil {
				d.log.Warn().Err(err).Str("shortcut", ev.Shortcut.String()).Msg("action failed")
			}
		}
	}
}

// Handle processes one event and reports the binding id it triggered, if
// any. A panic inside the action is recovered and returned as an error.
func (d *Dispatcher) Handle(ctx context.Context, ev shortcut.Event) (id string, err error) {
	normalized := ev.Shortcut.String()
	d.log.Debug().Str("shortcut", normalized).Str("state", ev.State.String()).Msg("hotkey event")

	if ev.State != shortcut.Released {
		return "", nil
	}

	id, _, ok := d.registry.Lookup(normalized)
	if !ok {
		d.log.Debug().Str("shortcut", normalized).Msg("no binding for shortcut")
		return "", nil
	}

	action, ok := tiling.ActionForBinding(id, d.almostGutter)
	if !ok {
		d.log.Warn().Str("id", id).Msg("binding has no action")
		return id, nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Str("id", id).Msg("panic in action")
			err = fmt.Errorf("panic running %s: %v", action, rec)
		}
	}()

	d.log.Info().Str("id", id).Str("action", action.String()).Msg("triggering action")
	if _, err := d.engine.Apply(ctx, action); err != nil {
		return id, fmt.Errorf("%s: %w", id, err)
	}
	return id, nil
}

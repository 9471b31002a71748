package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
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

// Grabber registers global hotkeys and reports their events.
type Grabber interface {
	registry.Hotkeys
	Events() <-chan shortcut.Event
}

// Options wires a Daemon.
type Options struct {
	Config     *config.Config
	Backend    platform.Backend
	Grabber    Grabber
	Store      *bindings.FileStore
	SocketPath string
	Log        zerolog.Logger
}

// Daemon owns the registry, the action engine and the IPC server for one
// session.
type Daemon struct {
	cfg     *config.Config
	backend platform.Backend
	grabber Grabber
	store   *bindings.FileStore
	log     zerolog.Logger

	engine     *tiling.Engine
	registry   *registry.Registry
	dispatcher *registry.Dispatcher
	server     *ipc.Server
	started    time.Time
}

var _ ipc.Service = (*Daemon)(nil)

// New loads the binding document and builds every component. Nothing is
// grabbed or listened on until Run.
func New(opts Options) (*Daemon, error) {
	if opts.Config == nil || opts.Backend == nil || opts.Grabber == nil || opts.Store == nil {
		return nil, errors.New("daemon: config, backend, grabber and store are required")
	}

	set, err := opts.Store.Load()
	if err != nil {
		return nil, fmt.Errorf("load shortcuts: %w", err)
	}

	d := &Daemon{
		cfg:     opts.Config,
		backend: opts.Backend,
		grabber: opts.Grabber,
		store:   opts.Store,
		log:     opts.Log,
	}
	d.engine = tiling.NewEngine(opts.Backend, opts.Log.With().Str("component", "engine").Logger())
	d.registry = registry.New(set, opts.Grabber, opts.Store, opts.Log.With().Str("component", "registry").Logger())
	d.dispatcher = registry.NewDispatcher(d.registry, d.engine, opts.Config.AlmostMaximizeGutter, opts.Log.With().Str("component", "dispatch").Logger())
	d.server = ipc.NewServer(opts.SocketPath, d, opts.Log.With().Str("component", "ipc").Logger())
	return d, nil
}

// Run registers every shortcut, serves IPC and dispatches hotkeys until ctx
// is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	d.started = time.Now()

	report, err := d.registry.RegisterAll()
	if err != nil {
		if !errors.Is(err, registry.ErrNoBindingsRegistered) {
			return err
		}
		// Shortcuts can still be fixed over IPC.
		d.log.Error().Err(err).Msg("no shortcuts registered")
	}
	d.log.Info().
		Int("registered", len(report.Registered)).
		Int("skipped", len(report.Skipped)).
		Int("failed", len(report.Failed)).
		Msg("shortcuts registered")
	defer d.registry.UnregisterAll()

	if err := d.server.Start(); err != nil {
		return err
	}
	defer d.server.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		d.dispatcher.Run(ctx, d.grabber.Events())
	}()

	if d.cfg.WatchShortcuts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := d.store.Watch(ctx, func() {
				if _, err := d.ReloadShortcuts(); err != nil {
					d.log.Error().Err(err).Msg("shortcut reload failed")
				}
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				d.log.Warn().Err(err).Msg("shortcut file watcher stopped")
			}
		}()
	}

	d.log.Info().Str("socket", d.server.SocketPath()).Msg("galaxy daemon started")
	<-ctx.Done()
	d.log.Info().Msg("shutting down galaxy daemon")
	cancel()
	wg.Wait()
	return nil
}

func (d *Daemon) Status() ipc.StatusData {
	entries := d.registry.Entries()
	active := 0
	for _, e := range entries {
		if e.Active {
			active++
		}
	}
	monitors := 0
	if ms, err := d.backend.Monitors(); err == nil {
		monitors = len(ms)
	}
	return ipc.StatusData{
		PID:             os.Getpid(),
		UptimeSeconds:   int64(time.Since(d.started).Seconds()),
		Shortcuts:       len(entries),
		ActiveShortcuts: active,
		Monitors:        monitors,
		ShortcutsFile:   d.store.Path(),
		DaemonRunning:   true,
	}
}

func (d *Daemon) Monitors() ([]geometry.Monitor, error) {
	return d.engine.Monitors()
}

func (d *Daemon) RunAction(ctx context.Context, a tiling.Action) (tiling.Result, error) {
	return d.engine.Apply(ctx, a)
}

func (d *Daemon) Shortcuts() []registry.Entry {
	return d.registry.Entries()
}

func (d *Daemon) UpdateShortcut(id, raw string) (registry.Entry, error) {
	if err := d.registry.Update(id, raw); err != nil {
		return registry.Entry{}, err
	}
	for _, e := range d.registry.Entries() {
		if e.ID == id {
			return e, nil
		}
	}
	return registry.Entry{}, fmt.Errorf("%w: %q", registry.ErrNotFound, id)
}

func (d *Daemon) ReloadShortcuts() (registry.ReloadReport, error) {
	report, err := d.registry.Reload()
	if err != nil {
		return report, err
	}
	d.log.Info().
		Strs("added", report.Added).
		Strs("removed", report.Removed).
		Strs("changed", report.Changed).
		Int("failed", len(report.Failed)).
		Msg("shortcuts reloaded")
	return report, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/galaxy/internal/bindings"
	"github.com/1broseidon/galaxy/internal/daemon"
	"github.com/1broseidon/galaxy/internal/hotkeys"
	"github.com/1broseidon/galaxy/internal/logging"
	"github.com/1broseidon/galaxy/internal/platform"
	"github.com/1broseidon/galaxy/internal/runtimepath"
)

var daemonForeground bool

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Grab shortcuts and serve IPC until interrupted",
	Long: `Connects to the X server, grabs every configured shortcut and serves the
IPC socket. SIGHUP reloads the shortcut document; SIGINT and SIGTERM stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd.Context())
	},
}

func init() {
	daemonCmd.Flags().BoolVar(&daemonForeground, "foreground", false, "Mirror logs to stderr")
}

func runDaemon(parent context.Context) error {
	res, err := loadConfig()
	if err != nil {
		return err
	}
	cfg := res.Config

	if err := logging.Init(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogPath(),
		Console: daemonForeground,
	}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Close()
	log := logging.Component("daemon")

	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		return fmt.Errorf("connect to display: %w", err)
	}
	defer backend.Disconnect()
	conn := backend.Connection()

	sock := socketPath
	if sock == "" {
		if sock, err = runtimepath.SocketPath(); err != nil {
			return err
		}
	}

	store := bindings.NewFileStore(cfg.ShortcutsPath(), logging.Component("bindings"))
	d, err := daemon.New(daemon.Options{
		Config:     cfg,
		Backend:    backend,
		Grabber:    hotkeys.NewGrabber(conn, cfg.HotkeyQueue, logging.Component("hotkeys")),
		Store:      store,
		SocketPath: sock,
		Log:        log,
	})
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				log.Info().Msg("received SIGHUP, reloading shortcuts")
				if _, err := d.ReloadShortcuts(); err != nil {
					log.Error().Err(err).Msg("reload failed")
				}
			}
		}
	}()

	go func() {
		<-ctx.Done()
		conn.Quit()
	}()
	go conn.EventLoop()

	log.Info().
		Str("socket", sock).
		Str("shortcuts", store.Path()).
		Str("config", resolvedConfigPath()).
		Msg("starting galaxy daemon")

	err = d.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("daemon stopped")
		return err
	}
	log.Info().Msg("galaxy daemon stopped")
	return nil
}

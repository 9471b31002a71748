package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/galaxy/internal/logging"
	"github.com/1broseidon/galaxy/internal/mcp"
	"github.com/1broseidon/galaxy/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and rebind shortcuts interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(newClient())
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Long: `Starts the MCP server on stdio. Designed to be invoked by MCP clients;
every tool forwards to the running daemon.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadConfig()
		if err != nil {
			return err
		}
		// stdout carries the protocol; logs only go to the file.
		if err := logging.Init(logging.Options{
			Level: res.Config.LogLevel,
			File:  res.Config.LogPath(),
		}); err != nil {
			return err
		}
		defer logging.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return mcp.NewServer(newClient(), logging.Component("mcp")).Run(ctx)
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}

package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/ipc"
	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/tiling"
)

const (
	ServerName    = "galaxy"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client the tools call.
type Daemon interface {
	GetMonitors() ([]geometry.Monitor, error)
	ListActions() ([]ipc.ActionInfo, error)
	RunAction(action string, gutter int) (*tiling.Result, error)
	ListShortcuts() ([]registry.Entry, error)
	UpdateShortcut(id, shortcut string) (*registry.Entry, error)
}

var _ Daemon = (*ipc.Client)(nil)

// Server exposes the running daemon to MCP clients over stdio.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
	log       zerolog.Logger
}

// NewServer creates an MCP server that forwards every tool to daemon.
func NewServer(daemon Daemon, log zerolog.Logger) *Server {
	s := &Server{
		daemon: daemon,
		log:    log,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List connected monitors with their full bounds and work area (the area not covered by panels or docks), in desktop coordinates.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_actions",
		Description: "List the window actions run_action accepts. Only maximize takes a gutter.",
	}, s.handleListActions)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "run_action",
		Description: "Move or resize the currently focused window, e.g. left-half, top-right, center-third, move-left or maximize with a gutter in pixels at 96 DPI.",
	}, s.handleRunAction)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_shortcuts",
		Description: "List every configured global shortcut with its binding id, normalized form and whether it is currently registered.",
	}, s.handleListShortcuts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "update_shortcut",
		Description: "Rebind a shortcut by id, e.g. maximizeWindow to Control+Alt+M. The previous binding stays active if the new one cannot be registered.",
	}, s.handleUpdateShortcut)
}

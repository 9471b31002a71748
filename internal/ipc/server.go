package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/tiling"
	"github.com/rs/zerolog"
)

const requestTimeout = 5 * time.Second

// Service is what the daemon exposes over the socket.
type Service interface {
	Status() StatusData
	Monitors() ([]geometry.Monitor, error)
	RunAction(ctx context.Context, a tiling.Action) (tiling.Result, error)
	Shortcuts() []registry.Entry
	UpdateShortcut(id, shortcut string) (registry.Entry, error)
	ReloadShortcuts() (registry.ReloadReport, error)
}

// ErrDaemonRunning is returned by Start when another daemon owns the socket.
var ErrDaemonRunning = errors.New("another daemon is already listening")

// Server handles IPC requests from clients
type Server struct {
	socketPath string
	svc        Service
	log        zerolog.Logger

	listener     net.Listener
	wg           sync.WaitGroup
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a server for svc on socketPath.
func NewServer(socketPath string, svc Service, log zerolog.Logger) *Server {
	return &Server{
		socketPath: socketPath,
		svc:        svc,
		log:        log,
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0700); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	// A live socket means another daemon; a dead one is stale.
	if conn, err := net.DialTimeout("unix", s.socketPath, 250*time.Millisecond); err == nil {
		conn.Close()
		return fmt.Errorf("%w on %s", ErrDaemonRunning, s.socketPath)
	}
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info().Str("socket", s.socketPath).Msg("IPC server listening")

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			stopping := s.shuttingDown
			s.shutdownMu.Unlock()
			if stopping || errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn().Err(err).Msg("IPC accept error")
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * requestTimeout))

	reader := bufio.NewReader(conn)

	// One JSON request per line.
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Warn().Err(err).Msg("IPC read error")
		return
	}

	var resp *Response
	req, err := ParseRequest(data)
	if err != nil {
		resp = NewErrorResponse(CodeInvalidRequest, fmt.Sprintf("invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
		resp.ID = req.ID
	}

	respData, err := resp.Marshal()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal response")
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.log.Warn().Err(err).Msg("failed to send response")
	}
}

// handleCommand runs req against the service and never panics.
func (s *Server) handleCommand(req *Request) (resp *Response) {
	log := s.log.With().Str("request_id", req.ID).Str("command", string(req.Command)).Logger()
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("IPC handler panic recovered")
			resp = NewErrorResponse(CodeInternal, fmt.Sprintf("internal error: %v", r))
		}
	}()
	log.Debug().Msg("IPC request")

	switch req.Command {
	case CommandPing:
		return ok(nil)
	case CommandGetStatus:
		return ok(s.svc.Status())
	case CommandGetMonitors:
		monitors, err := s.svc.Monitors()
		if err != nil {
			return failure(err)
		}
		return ok(MonitorsData{Monitors: monitors})
	case CommandListActions:
		return ok(ListActions())
	case CommandRunAction:
		return s.handleRunAction(req.Payload)
	case CommandListShortcuts:
		return ok(ShortcutsData{Shortcuts: s.svc.Shortcuts()})
	case CommandUpdateShortcut:
		var p UpdateShortcutPayload
		if err := json.Unmarshal(req.Payload, &p); err != nil {
			return NewErrorResponse(CodeInvalidRequest, fmt.Sprintf("invalid update payload: %v", err))
		}
		if p.ID == "" {
			return NewErrorResponse(CodeInvalidRequest, "id is required")
		}
		entry, err := s.svc.UpdateShortcut(p.ID, p.Shortcut)
		if err != nil {
			log.Warn().Err(err).Str("id", p.ID).Str("shortcut", p.Shortcut).Msg("shortcut update rejected")
			return failure(err)
		}
		return ok(entry)
	case CommandReloadShortcuts:
		report, err := s.svc.ReloadShortcuts()
		if err != nil {
			return failure(err)
		}
		return ok(report)
	default:
		return NewErrorResponse(CodeUnknownCommand, fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleRunAction(payload json.RawMessage) *Response {
	var p RunActionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(CodeInvalidRequest, fmt.Sprintf("invalid action payload: %v", err))
	}
	action, err := tiling.ParseAction(p.Action, p.Gutter)
	if err != nil {
		return NewErrorResponse(CodeInvalidRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	res, err := s.svc.RunAction(ctx, action)
	if err != nil {
		return failure(err)
	}
	return ok(res)
}

func ok(data any) *Response {
	resp, err := NewOKResponse(data)
	if err != nil {
		return NewErrorResponse(CodeInternal, err.Error())
	}
	return resp
}

func failure(err error) *Response {
	return NewErrorResponse(ErrorCode(err), err.Error())
}

// Stop closes the listener, waits for in-flight requests and removes the
// socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}

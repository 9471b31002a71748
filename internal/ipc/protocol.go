package ipc

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/tiling"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandPing            CommandType = "PING"
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandGetMonitors     CommandType = "GET_MONITORS"
	CommandListActions     CommandType = "LIST_ACTIONS"
	CommandRunAction       CommandType = "RUN_ACTION"
	CommandListShortcuts   CommandType = "LIST_SHORTCUTS"
	CommandUpdateShortcut  CommandType = "UPDATE_SHORTCUT"
	CommandReloadShortcuts CommandType = "RELOAD_SHORTCUTS"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// Error codes carried in Response.Code.
const (
	CodeInvalidRequest     = "invalid_request"
	CodeUnknownCommand     = "unknown_command"
	CodeNotFound           = "not_found"
	CodeInvalidFormat      = "invalid_format"
	CodeRegistrationFailed = "registration_failed"
	CodeDuplicateShortcut  = "duplicate_shortcut"
	CodePersistence        = "persistence"
	CodeStoreUnreadable    = "store_unreadable"
	CodeNoActiveWindow     = "no_active_window"
	CodeNoMonitors         = "no_monitors"
	CodeOSQuery            = "os_query"
	CodeInternal           = "internal"
)

var codeSentinels = []struct {
	code string
	err  error
}{
	{CodeNotFound, registry.ErrNotFound},
	{CodeInvalidFormat, registry.ErrInvalidFormat},
	{CodeRegistrationFailed, registry.ErrRegistrationFailed},
	{CodeDuplicateShortcut, registry.ErrDuplicateShortcut},
	{CodePersistence, registry.ErrPersistence},
	{CodeStoreUnreadable, registry.ErrStoreUnreadable},
	{CodeNoActiveWindow, tiling.ErrNoActiveWindow},
	{CodeNoMonitors, tiling.ErrNoMonitors},
	{CodeOSQuery, tiling.ErrOSQuery},
}

// ErrorCode classifies err for the wire.
func ErrorCode(err error) string {
	for _, cs := range codeSentinels {
		if errors.Is(err, cs.err) {
			return cs.code
		}
	}
	return CodeInternal
}

// RemoteError is a daemon-side failure reported to a client. It matches the
// sentinel for its code under errors.Is.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("daemon error: %s", e.Message)
}

func (e *RemoteError) Is(target error) bool {
	for _, cs := range codeSentinels {
		if cs.code == e.Code && cs.err == target {
			return true
		}
	}
	return false
}

// Request represents an IPC request from client to server
type Request struct {
	ID      string          `json:"id,omitempty"`
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	ID     string          `json:"id,omitempty"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	Code   string          `json:"code,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	PID             int    `json:"pid"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	Shortcuts       int    `json:"shortcuts"`
	ActiveShortcuts int    `json:"active_shortcuts"`
	Monitors        int    `json:"monitors"`
	ShortcutsFile   string `json:"shortcuts_file"`
	DaemonRunning   bool   `json:"daemon_running"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []geometry.Monitor `json:"monitors"`
}

type ActionInfo struct {
	Name   string `json:"name"`
	Gutter bool   `json:"gutter,omitempty"`
}

type ActionsData struct {
	Actions []ActionInfo `json:"actions"`
}

type RunActionPayload struct {
	Action string `json:"action"`
	Gutter int    `json:"gutter,omitempty"`
}

type ShortcutsData struct {
	Shortcuts []registry.Entry `json:"shortcuts"`
}

type UpdateShortcutPayload struct {
	ID       string `json:"id"`
	Shortcut string `json:"shortcut"`
}

// ListActions describes every action the engine accepts.
func ListActions() ActionsData {
	kinds := tiling.Kinds()
	out := ActionsData{Actions: make([]ActionInfo, 0, len(kinds))}
	for _, k := range kinds {
		out.Actions = append(out.Actions, ActionInfo{Name: k.String(), Gutter: k == tiling.Maximize})
	}
	return out
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: StatusOK,
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(code, errMsg string) *Response {
	return &Response{
		Status: StatusError,
		Error:  errMsg,
		Code:   code,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("command is required")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

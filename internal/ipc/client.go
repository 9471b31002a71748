package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/runtimepath"
	"github.com/1broseidon/galaxy/internal/tiling"
	"github.com/google/uuid"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// sendRequest surfaces the connection error.
		socketPath = ""
	}
	return NewClientAt(socketPath)
}

// NewClientAt creates a client for socketPath.
func NewClientAt(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends one request and decodes the data into out when non-nil.
func (c *Client) sendRequest(cmd CommandType, payload any, out any) error {
	req := Request{ID: uuid.New().String(), Command: cmd}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		req.Payload = data
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	respData, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.ID != "" && resp.ID != req.ID {
		return fmt.Errorf("response id %q does not match request %q", resp.ID, req.ID)
	}
	if resp.Status == StatusError {
		return &RemoteError{Code: resp.Code, Message: resp.Error}
	}

	if out != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("failed to parse %s data: %w", cmd, err)
		}
	}
	return nil
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	return c.sendRequest(CommandPing, nil, nil)
}

func (c *Client) GetStatus() (*StatusData, error) {
	var status StatusData
	if err := c.sendRequest(CommandGetStatus, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) GetMonitors() ([]geometry.Monitor, error) {
	var data MonitorsData
	if err := c.sendRequest(CommandGetMonitors, nil, &data); err != nil {
		return nil, err
	}
	return data.Monitors, nil
}

func (c *Client) ListActions() ([]ActionInfo, error) {
	var data ActionsData
	if err := c.sendRequest(CommandListActions, nil, &data); err != nil {
		return nil, err
	}
	return data.Actions, nil
}

// RunAction asks the daemon to apply an action to the focused window.
func (c *Client) RunAction(action string, gutter int) (*tiling.Result, error) {
	var res tiling.Result
	if err := c.sendRequest(CommandRunAction, RunActionPayload{Action: action, Gutter: gutter}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListShortcuts() ([]registry.Entry, error) {
	var data ShortcutsData
	if err := c.sendRequest(CommandListShortcuts, nil, &data); err != nil {
		return nil, err
	}
	return data.Shortcuts, nil
}

// UpdateShortcut rebinds id. Errors match the registry sentinels under
// errors.Is.
func (c *Client) UpdateShortcut(id, shortcut string) (*registry.Entry, error) {
	var entry registry.Entry
	if err := c.sendRequest(CommandUpdateShortcut, UpdateShortcutPayload{ID: id, Shortcut: shortcut}, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *Client) ReloadShortcuts() (*registry.ReloadReport, error) {
	var report registry.ReloadReport
	if err := c.sendRequest(CommandReloadShortcuts, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

//go:build linux

package platform

import (
	"errors"
	"fmt"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/1broseidon/galaxy/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

var errNoConnection = errors.New("x11 backend is not connected")

// LinuxBackend wraps an X11 connection behind the Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection to display.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Connection exposes the X11 connection for hotkey grabs.
func (b *LinuxBackend) Connection() *x11.Connection {
	if b == nil {
		return nil
	}
	return b.conn
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

func (b *LinuxBackend) Monitors() ([]geometry.Monitor, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	return conn.Monitors()
}

func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	win, err := conn.ActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(win), nil
}

func (b *LinuxBackend) WindowRect(id WindowID) (geometry.Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return geometry.Rect{}, err
	}
	return conn.WindowRect(xproto.Window(id))
}

func (b *LinuxBackend) ExtendedFrameRect(id WindowID) (geometry.Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return geometry.Rect{}, err
	}
	return conn.VisibleRect(xproto.Window(id))
}

// WindowDPI returns the screen-wide Xft.dpi; X11 has no per-window DPI.
func (b *LinuxBackend) WindowDPI(WindowID) (int, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	return conn.DPI(), nil
}

func (b *LinuxBackend) MoveResize(id WindowID, p geometry.Placement) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("invalid placement %s", p)
	}
	return conn.MoveResize(xproto.Window(id), p.X, p.Y, p.Width, p.Height)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, errNoConnection
	}
	return b.conn, nil
}

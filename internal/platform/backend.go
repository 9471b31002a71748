package platform

import "github.com/1broseidon/galaxy/internal/geometry"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Backend abstracts the window-system queries and mutations the action
// engine depends on.
type Backend interface {
	// Monitors returns a fresh snapshot of every active monitor.
	Monitors() ([]geometry.Monitor, error)
	// ActiveWindow returns the focused top-level window, or 0 when none.
	ActiveWindow() (WindowID, error)
	// WindowRect returns the nominal window rectangle in root coordinates.
	WindowRect(id WindowID) (geometry.Rect, error)
	// ExtendedFrameRect returns the visibly rendered window rectangle.
	ExtendedFrameRect(id WindowID) (geometry.Rect, error)
	// WindowDPI returns the effective DPI for the window's screen.
	WindowDPI(id WindowID) (int, error)
	MoveResize(id WindowID, p geometry.Placement) error
}

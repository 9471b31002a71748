package x11

import (
	"fmt"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// States that pin a window in place and must be dropped before moving it.
var pinningStates = []string{
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_FULLSCREEN",
}

func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// WindowRect returns the outer rectangle of a window including the window
// manager's decorations, in root coordinates.
func (c *Connection) WindowRect(win xproto.Window) (geometry.Rect, error) {
	r, err := xwindow.New(c.XUtil, win).DecorGeometry()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("window %d geometry: %w", win, err)
	}
	return geometry.RectFromSize(r.X(), r.Y(), r.Width(), r.Height()), nil
}

// VisibleRect returns the outer rectangle minus the invisible client-side
// shadow area advertised through _GTK_FRAME_EXTENTS.
func (c *Connection) VisibleRect(win xproto.Window) (geometry.Rect, error) {
	outer, err := c.WindowRect(win)
	if err != nil {
		return geometry.Rect{}, err
	}
	ext, ok := c.gtkFrameExtents(win)
	if !ok {
		return outer, nil
	}
	return geometry.Rect{
		Left:   outer.Left + ext.Left,
		Top:    outer.Top + ext.Top,
		Right:  outer.Right - ext.Right,
		Bottom: outer.Bottom - ext.Bottom,
	}, nil
}

func (c *Connection) gtkFrameExtents(win xproto.Window) (geometry.FrameInsets, bool) {
	nums, err := xprop.PropValNums(xprop.GetProperty(c.XUtil, win, "_GTK_FRAME_EXTENTS"))
	if err != nil || len(nums) != 4 {
		return geometry.FrameInsets{}, false
	}
	// Property order is left, right, top, bottom.
	return geometry.FrameInsets{
		Left:   int(nums[0]),
		Right:  int(nums[1]),
		Top:    int(nums[2]),
		Bottom: int(nums[3]),
	}, true
}

// MoveResize places the outer rectangle of win at the given geometry.
func (c *Connection) MoveResize(win xproto.Window, x, y, width, height int) error {
	c.unpin(win)

	// The window manager sizes the client; subtract what the decorations add.
	w, h := width, height
	if client, err := xwindow.RawGeometry(c.XUtil, xproto.Drawable(win)); err == nil {
		if outer, err := xwindow.New(c.XUtil, win).DecorGeometry(); err == nil {
			w -= outer.Width() - client.Width()
			h -= outer.Height() - client.Height()
		}
	}
	w, h = max(w, 1), max(h, 1)

	return placeWindow(
		func() error {
			return ewmh.MoveresizeWindowExtra(c.XUtil, win, x, y, w, h, xproto.GravityBitForget, 2, true, true)
		},
		func() error {
			mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
			vals := []uint32{uint32(x), uint32(y), uint32(w), uint32(h)}
			return xproto.ConfigureWindowChecked(c.XUtil.Conn(), win, mask, vals).Check()
		},
	)
}

// placeWindow asks the window manager to move the window and configures it
// directly when that request cannot be sent. It fails only when both do.
func placeWindow(request, configure func() error) error {
	err := request()
	if err == nil {
		return nil
	}
	if cerr := configure(); cerr != nil {
		return fmt.Errorf("move/resize request: %w; configure: %w", err, cerr)
	}
	return nil
}

// unpin drops maximized and fullscreen states so the window manager honours
// an explicit geometry.
func (c *Connection) unpin(win xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, win)
	if err != nil {
		return
	}
	for _, s := range pinningStates {
		if contains(states, s) {
			ewmh.WmStateReqExtra(c.XUtil, win, ewmh.StateRemove, s, "", 2)
		}
	}
}

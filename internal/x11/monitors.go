package x11

import (
	"fmt"

	"github.com/1broseidon/galaxy/internal/geometry"
	"github.com/BurntSushi/xgb/randr"
	xgbxinerama "github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xinerama"
)

// Monitors returns every active output with its bounds and work area. RandR
// is preferred; Xinerama heads are used when RandR is unavailable.
func (c *Connection) Monitors() ([]geometry.Monitor, error) {
	monitors, err := c.randrMonitors()
	if err != nil || len(monitors) == 0 {
		heads, herr := xineramaHeads(c)
		if herr != nil {
			if err != nil {
				return nil, fmt.Errorf("randr: %w; xinerama: %v", err, herr)
			}
			return nil, fmt.Errorf("xinerama: %w", herr)
		}
		monitors = monitors[:0]
		for i, h := range heads {
			monitors = append(monitors, geometry.Monitor{
				Name:   fmt.Sprintf("Head%d", i),
				Bounds: geometry.RectFromSize(h.X(), h.Y(), h.Width(), h.Height()),
			})
		}
	}

	struts := c.dockStruts()
	workareas, _ := ewmh.WorkareaGet(c.XUtil)
	desktop := 0
	if cur, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(cur) < len(workareas) {
		desktop = int(cur)
	}
	var workarea *geometry.Rect
	if len(workareas) > 0 {
		wa := workareas[desktop]
		r := geometry.RectFromSize(wa.X, wa.Y, int(wa.Width), int(wa.Height))
		workarea = &r
	}

	rootW, rootH := c.rootSize()
	for i := range monitors {
		monitors[i].Work = workArea(monitors[i].Bounds, rootW, rootH, struts, workarea)
	}
	return monitors, nil
}

func (c *Connection) randrMonitors() ([]geometry.Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []geometry.Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, geometry.Monitor{
			Name:   name,
			Bounds: geometry.RectFromSize(int(info.X), int(info.Y), int(info.Width), int(info.Height)),
		})
	}
	return monitors, nil
}

func xineramaHeads(c *Connection) (xinerama.Heads, error) {
	if err := xgbxinerama.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("xinerama init failed: %w", err)
	}
	return xinerama.PhysicalHeads(c.XUtil)
}

func (c *Connection) rootSize() (int, int) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return 0, 0
	}
	return int(geom.Width), int(geom.Height)
}

// dockStruts collects the strut reservations of every dock window.
func (c *Connection) dockStruts() []ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}
	rootW, rootH := c.rootSize()

	var out []ewmh.WmStrutPartial
	for _, win := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
		if err != nil || !contains(types, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
			out = append(out, *sp)
			continue
		}
		// Some docks only set _NET_WM_STRUT.
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			out = append(out, fullStrut(s, rootW, rootH))
		}
	}
	return out
}

func fullStrut(s *ewmh.WmStrut, rootW, rootH int) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:       s.Left,
		Right:      s.Right,
		Top:        s.Top,
		Bottom:     s.Bottom,
		LeftEndY:   uint(max(rootH-1, 0)),
		RightEndY:  uint(max(rootH-1, 0)),
		TopEndX:    uint(max(rootW-1, 0)),
		BottomEndX: uint(max(rootW-1, 0)),
	}
}

// workArea shrinks bounds by the dock struts that overlap it. Without struts
// it falls back to the intersection with _NET_WORKAREA, then to bounds.
func workArea(bounds geometry.Rect, rootW, rootH int, struts []ewmh.WmStrutPartial, workarea *geometry.Rect) geometry.Rect {
	var left, right, top, bottom int
	for _, sp := range struts {
		if sp.Top > 0 {
			r := geometry.Rect{Left: int(sp.TopStartX), Top: 0, Right: int(sp.TopEndX) + 1, Bottom: int(sp.Top)}
			if is, ok := bounds.Intersect(r); ok {
				top = max(top, is.Height())
			}
		}
		if sp.Bottom > 0 {
			r := geometry.Rect{Left: int(sp.BottomStartX), Top: rootH - int(sp.Bottom), Right: int(sp.BottomEndX) + 1, Bottom: rootH}
			if is, ok := bounds.Intersect(r); ok {
				bottom = max(bottom, is.Height())
			}
		}
		if sp.Left > 0 {
			r := geometry.Rect{Left: 0, Top: int(sp.LeftStartY), Right: int(sp.Left), Bottom: int(sp.LeftEndY) + 1}
			if is, ok := bounds.Intersect(r); ok {
				left = max(left, is.Width())
			}
		}
		if sp.Right > 0 {
			r := geometry.Rect{Left: rootW - int(sp.Right), Top: int(sp.RightStartY), Right: rootW, Bottom: int(sp.RightEndY) + 1}
			if is, ok := bounds.Intersect(r); ok {
				right = max(right, is.Width())
			}
		}
	}

	if left != 0 || right != 0 || top != 0 || bottom != 0 {
		work := geometry.Rect{
			Left:   bounds.Left + left,
			Top:    bounds.Top + top,
			Right:  bounds.Right - right,
			Bottom: bounds.Bottom - bottom,
		}
		if work.Right <= work.Left {
			work.Right = work.Left + 1
		}
		if work.Bottom <= work.Top {
			work.Bottom = work.Top + 1
		}
		return work
	}

	if workarea != nil {
		if is, ok := bounds.Intersect(*workarea); ok {
			return is
		}
	}
	return bounds
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

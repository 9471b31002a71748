// Package geometry holds the screen-space types shared by the action engine
// and the window-system backend.
package geometry

import "fmt"

// Rect is an edge-described rectangle in screen coordinates. Right and
// Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// RectFromSize builds a Rect from an origin and size.
func RectFromSize(x, y, width, height int) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

func (r Rect) Width() int  { return r.Right - r.Left }
func (r Rect) Height() int { return r.Bottom - r.Top }

// Center returns the truncated midpoint of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}

// Contains reports whether the point lies inside the half-open rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Inside reports whether r lies entirely within outer.
func (r Rect) Inside(outer Rect) bool {
	return r.Left >= outer.Left && r.Top >= outer.Top && r.Right <= outer.Right && r.Bottom <= outer.Bottom
}

// Intersect returns the overlap of two rectangles and whether it is non-empty.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.Left >= out.Right || out.Top >= out.Bottom {
		return Rect{}, false
	}
	return out, true
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width(), r.Height(), r.Left, r.Top)
}

// Monitor is a per-query snapshot of one display. Work excludes space
// reserved by panels and docks.
type Monitor struct {
	Name   string `json:"name"`
	Bounds Rect   `json:"bounds"`
	Work   Rect   `json:"work"`
}

// Valid checks that both rectangles are non-empty and the work area lies
// inside the full bounds.
func (m Monitor) Valid() error {
	if m.Bounds.Left >= m.Bounds.Right || m.Bounds.Top >= m.Bounds.Bottom {
		return fmt.Errorf("monitor %q: empty bounds %v", m.Name, m.Bounds)
	}
	if m.Work.Left >= m.Work.Right || m.Work.Top >= m.Work.Bottom {
		return fmt.Errorf("monitor %q: empty work area %v", m.Name, m.Work)
	}
	if !m.Work.Inside(m.Bounds) {
		return fmt.Errorf("monitor %q: work area %v outside bounds %v", m.Name, m.Work, m.Bounds)
	}
	return nil
}

// MonitorAt returns the index of the first monitor whose full bounds contain
// the point, or 0 when none does.
func MonitorAt(monitors []Monitor, x, y int) int {
	for i, m := range monitors {
		if m.Bounds.Contains(x, y) {
			return i
		}
	}
	return 0
}

// WindowSnapshot captures the focused window at the moment an action runs.
type WindowSnapshot struct {
	Width   int `json:"width"`
	Height  int `json:"height"`
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`
}

// SnapshotOf derives a snapshot from a window's nominal rectangle.
func SnapshotOf(r Rect) WindowSnapshot {
	cx, cy := r.Center()
	return WindowSnapshot{
		Width:   r.Width(),
		Height:  r.Height(),
		CenterX: cx,
		CenterY: cy,
	}
}

// Placement is the computed size and origin for a window.
type Placement struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

// Rect converts the placement into edge form.
func (p Placement) Rect() Rect {
	return RectFromSize(p.X, p.Y, p.Width, p.Height)
}

func (p Placement) String() string {
	return fmt.Sprintf("%dx%d at (%d,%d)", p.Width, p.Height, p.X, p.Y)
}

// FrameInsets is the distance between a window's nominal rectangle and its
// visible (extended) frame on each edge. Positive values mean the visible
// frame lies inside the nominal one, as with client-drawn shadows.
type FrameInsets struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// InsetsBetween computes per-edge insets from the nominal and extended
// rectangles.
func InsetsBetween(nominal, extended Rect) FrameInsets {
	return FrameInsets{
		Left:   extended.Left - nominal.Left,
		Top:    extended.Top - nominal.Top,
		Right:  nominal.Right - extended.Right,
		Bottom: nominal.Bottom - extended.Bottom,
	}
}

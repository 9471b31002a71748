package tiling

import (
	"errors"
	"fmt"
	"math"

	"github.com/1broseidon/galaxy/internal/geometry"
)

const (
	growFactor   = 1.1
	shrinkFactor = 0.9
	minWidth     = 200
	minHeight    = 150

	baseDPI = 96
)

// ErrInvalidContext is returned when monitor indexes do not refer to the
// monitor list.
var ErrInvalidContext = errors.New("invalid action context")

// Context is the input to a placement computation. It is built once per
// action and not modified afterwards.
type Context struct {
	Current  int
	Target   int
	Monitors []geometry.Monitor
	Window   geometry.WindowSnapshot
}

// FrameMetrics is the live window data Maximize needs beyond the snapshot.
type FrameMetrics struct {
	DPI    int
	Insets geometry.FrameInsets
}

// FrameQuery fetches FrameMetrics for the window being placed.
type FrameQuery func() (FrameMetrics, error)

type placeFunc func(c Context) geometry.Placement

var placers = map[Kind]placeFunc{
	None:           placeUnchanged,
	MoveLeft:       placeCarryOver,
	MoveRight:      placeCarryOver,
	LeftHalf:       placeLeftHalf,
	RightHalf:      placeRightHalf,
	TopHalf:        placeTopHalf,
	BottomHalf:     placeBottomHalf,
	TopLeft:        placeTopLeft,
	TopRight:       placeTopRight,
	BottomLeft:     placeBottomLeft,
	BottomRight:    placeBottomRight,
	FirstThird:     placeFirstThird,
	CenterThird:    placeCenterThird,
	LastThird:      placeLastThird,
	FirstTwoThirds: placeFirstTwoThirds,
	LastTwoThirds:  placeLastTwoThirds,
	Center:         placeCenter,
	MakeLarger:     placeLarger,
	MakeSmaller:    placeSmaller,
	MaximizeHeight: placeMaximizeHeight,
}

// TargetMonitor selects the monitor an action moves the window to. Only the
// directional moves leave the current monitor.
func TargetMonitor(kind Kind, current int, monitors []geometry.Monitor) int {
	if current < 0 || current >= len(monitors) {
		return current
	}
	switch kind {
	case MoveLeft:
		return monitorLeftOf(current, monitors)
	case MoveRight:
		return monitorRightOf(current, monitors)
	default:
		return current
	}
}

// monitorLeftOf picks the nearest monitor whose right edge is at or before the
// current monitor's left edge, wrapping to the rightmost monitor. Ties keep
// the lowest index.
func monitorLeftOf(current int, monitors []geometry.Monitor) int {
	edge := monitors[current].Bounds.Left
	best := -1
	for i, m := range monitors {
		if m.Bounds.Right > edge {
			continue
		}
		if best < 0 || m.Bounds.Right > monitors[best].Bounds.Right {
			best = i
		}
	}
	if best >= 0 {
		return best
	}

	best = 0
	for i, m := range monitors {
		if m.Bounds.Right > monitors[best].Bounds.Right {
			best = i
		}
	}
	return best
}

// monitorRightOf mirrors monitorLeftOf, wrapping to the leftmost monitor.
func monitorRightOf(current int, monitors []geometry.Monitor) int {
	edge := monitors[current].Bounds.Right
	best := -1
	for i, m := range monitors {
		if m.Bounds.Left < edge {
			continue
		}
		if best < 0 || m.Bounds.Left < monitors[best].Bounds.Left {
			best = i
		}
	}
	if best >= 0 {
		return best
	}

	best = 0
	for i, m := range monitors {
		if m.Bounds.Left < monitors[best].Bounds.Left {
			best = i
		}
	}
	return best
}

// Compute returns the new placement for an action. frame is only consulted
// by Maximize; any error it returns is passed through unchanged.
func Compute(a Action, c Context, frame FrameQuery) (geometry.Placement, error) {
	if err := c.validate(); err != nil {
		return geometry.Placement{}, err
	}

	if a.Kind == Maximize {
		if frame == nil {
			return geometry.Placement{}, fmt.Errorf("%w: maximize needs frame metrics", ErrInvalidContext)
		}
		metrics, err := frame()
		if err != nil {
			return geometry.Placement{}, err
		}
		return placeMaximized(c.Monitors[c.Target].Work, a.Gutter, metrics), nil
	}

	place, ok := placers[a.Kind]
	if !ok {
		return geometry.Placement{}, fmt.Errorf("no handler for action %s", a.Kind)
	}
	return place(c), nil
}

func (c Context) validate() error {
	n := len(c.Monitors)
	if n == 0 {
		return fmt.Errorf("%w: no monitors", ErrInvalidContext)
	}
	if c.Current < 0 || c.Current >= n || c.Target < 0 || c.Target >= n {
		return fmt.Errorf("%w: monitor index out of range (current=%d target=%d count=%d)",
			ErrInvalidContext, c.Current, c.Target, n)
	}
	return nil
}

func (c Context) work() geometry.Rect {
	return c.Monitors[c.Target].Work
}

func placeUnchanged(c Context) geometry.Placement {
	w := c.Window
	return geometry.Placement{Width: w.Width, Height: w.Height, X: w.CenterX - w.Width/2, Y: w.CenterY - w.Height/2}
}

// placeCarryOver keeps the window's relative position and size fraction when
// moving between monitors, then clamps it into the target work area.
func placeCarryOver(c Context) geometry.Placement {
	src := c.Monitors[c.Current].Work
	dst := c.work()

	srcW, srcH := float64(src.Width()), float64(src.Height())
	dstW, dstH := float64(dst.Width()), float64(dst.Height())

	relX := float64(c.Window.CenterX-src.Left) / srcW
	relY := float64(c.Window.CenterY-src.Top) / srcH

	width := int(math.Min(dstW*(float64(c.Window.Width)/srcW), dstW))
	height := int(math.Min(dstH*(float64(c.Window.Height)/srcH), dstH))

	centerX := dst.Left + int(dstW*relX)
	centerY := dst.Top + int(dstH*relY)

	return geometry.Placement{
		Width:  width,
		Height: height,
		X:      clampOrigin(centerX-width/2, dst.Left, dst.Right-width),
		Y:      clampOrigin(centerY-height/2, dst.Top, dst.Bottom-height),
	}
}

// clampOrigin applies the lower bound first, so an oversized window ends
// up aligned to hi.
func clampOrigin(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func placeLeftHalf(c Context) geometry.Placement {
	wa := c.work()
	return geometry.Placement{Width: wa.Width() / 2, Height: wa.Height(), X: wa.Left, Y: wa.Top}
}

func placeRightHalf(c Context) geometry.Placement {
	wa := c.work()
	x := wa.Left + wa.Width()/2
	return geometry.Placement{Width: wa.Right - x, Height: wa.Height(), X: x, Y: wa.Top}
}

func placeTopHalf(c Context) geometry.Placement {
	wa := c.work()
	return geometry.Placement{Width: wa.Width(), Height: wa.Height() / 2, X: wa.Left, Y: wa.Top}
}

func placeBottomHalf(c Context) geometry.Placement {
	wa := c.work()
	y := wa.Top + wa.Height()/2
	return geometry.Placement{Width: wa.Width(), Height: wa.Bottom - y, X: wa.Left, Y: y}
}

func placeTopLeft(c Context) geometry.Placement {
	wa := c.work()
	return geometry.Placement{Width: wa.Width() / 2, Height: wa.Height() / 2, X: wa.Left, Y: wa.Top}
}

func placeTopRight(c Context) geometry.Placement {
	wa := c.work()
	x := wa.Left + wa.Width()/2
	return geometry.Placement{Width: wa.Right - x, Height: wa.Height() / 2, X: x, Y: wa.Top}
}

func placeBottomLeft(c Context) geometry.Placement {
	wa := c.work()
	y := wa.Top + wa.Height()/2
	return geometry.Placement{Width: wa.Width() / 2, Height: wa.Bottom - y, X: wa.Left, Y: y}
}

func placeBottomRight(c Context) geometry.Placement {
	wa := c.work()
	x := wa.Left + wa.Width()/2
	y := wa.Top + wa.Height()/2
	return geometry.Placement{Width: wa.Right - x, Height: wa.Bottom - y, X: x, Y: y}
}

func placeFirstThird(c Context) geometry.Placement {
	wa := c.work()
	return geometry.Placement{Width: wa.Width() / 3, Height: wa.Height(), X: wa.Left, Y: wa.Top}
}

func placeCenterThird(c Context) geometry.Placement {
	wa := c.work()
	third := wa.Width() / 3
	return geometry.Placement{Width: third, Height: wa.Height(), X: wa.Left + third, Y: wa.Top}
}

// placeLastThird absorbs the division remainder so the three thirds tile the
// work area exactly.
func placeLastThird(c Context) geometry.Placement {
	wa := c.work()
	x := wa.Left + 2*(wa.Width()/3)
	return geometry.Placement{Width: wa.Right - x, Height: wa.Height(), X: x, Y: wa.Top}
}

func placeFirstTwoThirds(c Context) geometry.Placement {
	wa := c.work()
	return geometry.Placement{Width: (2 * wa.Width()) / 3, Height: wa.Height(), X: wa.Left, Y: wa.Top}
}

func placeLastTwoThirds(c Context) geometry.Placement {
	wa := c.work()
	x := wa.Left + wa.Width()/3
	return geometry.Placement{Width: wa.Right - x, Height: wa.Height(), X: x, Y: wa.Top}
}

func placeCenter(c Context) geometry.Placement {
	wa := c.work()
	w, h := c.Window.Width, c.Window.Height
	return geometry.Placement{
		Width:  w,
		Height: h,
		X:      wa.Left + (wa.Width()-w)/2,
		Y:      wa.Top + (wa.Height()-h)/2,
	}
}

func placeMaximizeHeight(c Context) geometry.Placement {
	wa := c.work()
	w := c.Window.Width
	return geometry.Placement{Width: w, Height: wa.Height(), X: c.Window.CenterX - w/2, Y: wa.Top}
}

func placeLarger(c Context) geometry.Placement {
	wa := c.work()
	w := min(int(float64(c.Window.Width)*growFactor), wa.Width())
	h := min(int(float64(c.Window.Height)*growFactor), wa.Height())

	return geometry.Placement{
		Width:  w,
		Height: h,
		X:      clampOrigin(c.Window.CenterX-w/2, wa.Left, wa.Right-w),
		Y:      clampOrigin(c.Window.CenterY-h/2, wa.Top, wa.Bottom-h),
	}
}

// placeSmaller only enforces the minimum size; the origin is not clamped.
func placeSmaller(c Context) geometry.Placement {
	w := max(int(float64(c.Window.Width)*shrinkFactor), minWidth)
	h := max(int(float64(c.Window.Height)*shrinkFactor), minHeight)

	return geometry.Placement{
		Width:  w,
		Height: h,
		X:      c.Window.CenterX - w/2,
		Y:      c.Window.CenterY - h/2,
	}
}

// placeMaximized sizes the nominal rectangle so that the visible frame sits
// exactly gutter (DPI-scaled) pixels inside the work area on every side.
func placeMaximized(wa geometry.Rect, gutter int, m FrameMetrics) geometry.Placement {
	dpi := m.DPI
	if dpi <= 0 {
		dpi = baseDPI
	}
	g := int(float64(gutter) * float64(dpi) / baseDPI)
	in := m.Insets

	return geometry.Placement{
		Width:  wa.Width() - 2*g + in.Left + in.Right,
		Height: wa.Height() - 2*g + in.Top + in.Bottom,
		X:      wa.Left + g - in.Left,
		Y:      wa.Top + g - in.Top,
	}
}

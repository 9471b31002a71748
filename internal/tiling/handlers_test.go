package tiling

import (
	"errors"
	"testing"

	"github.com/1broseidon/galaxy/internal/geometry"
)

func mon(left, right int) geometry.Monitor {
	r := geometry.Rect{Left: left, Top: 0, Right: right, Bottom: 100}
	return geometry.Monitor{Bounds: r, Work: r}
}

func fullHD() []geometry.Monitor {
	r := geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}
	return []geometry.Monitor{{Name: "primary", Bounds: r, Work: r}}
}

func TestTargetMonitor_Directional(t *testing.T) {
	pair := []geometry.Monitor{mon(0, 100), mon(100, 200)}
	triple := []geometry.Monitor{mon(200, 300), mon(0, 100), mon(100, 200)}

	tests := []struct {
		name     string
		kind     Kind
		current  int
		monitors []geometry.Monitor
		want     int
	}{
		{"right from A", MoveRight, 0, pair, 1},
		{"right wraps from B to A", MoveRight, 1, pair, 0},
		{"left from B", MoveLeft, 1, pair, 0},
		{"left wraps from A to B", MoveLeft, 0, pair, 1},
		{"single monitor left is no-op", MoveLeft, 0, pair[:1], 0},
		{"single monitor right is no-op", MoveRight, 0, pair[:1], 0},
		{"nearest right, not farthest", MoveRight, 1, triple, 2},
		{"nearest left, not farthest", MoveLeft, 0, triple, 2},
		{"right wrap picks leftmost", MoveRight, 0, triple, 1},
		{"left wrap picks rightmost", MoveLeft, 1, triple, 0},
		{"snaps stay put", LeftHalf, 1, triple, 1},
		{"maximize stays put", Maximize, 0, pair, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TargetMonitor(tt.kind, tt.current, tt.monitors); got != tt.want {
				t.Fatalf("TargetMonitor(%s, %d) = %d, want %d", tt.kind, tt.current, got, tt.want)
			}
		})
	}
}

func TestTargetMonitor_TieKeepsLowestIndex(t *testing.T) {
	// Two monitors stacked vertically to the right share the same left edge.
	monitors := []geometry.Monitor{
		mon(0, 100),
		{Bounds: geometry.Rect{Left: 100, Top: 0, Right: 200, Bottom: 100}, Work: geometry.Rect{Left: 100, Top: 0, Right: 200, Bottom: 100}},
		{Bounds: geometry.Rect{Left: 100, Top: 100, Right: 200, Bottom: 200}, Work: geometry.Rect{Left: 100, Top: 100, Right: 200, Bottom: 200}},
	}
	if got := TargetMonitor(MoveRight, 0, monitors); got != 1 {
		t.Fatalf("expected first of tied monitors, got %d", got)
	}
	if got := TargetMonitor(MoveLeft, 0, monitors); got != 1 {
		t.Fatalf("expected wrap to first of tied rightmost monitors, got %d", got)
	}
}

func TestCompute_Snaps(t *testing.T) {
	window := geometry.WindowSnapshot{Width: 800, Height: 600, CenterX: 500, CenterY: 400}

	tests := []struct {
		kind Kind
		want geometry.Placement
	}{
		{LeftHalf, geometry.Placement{Width: 960, Height: 1080, X: 0, Y: 0}},
		{RightHalf, geometry.Placement{Width: 960, Height: 1080, X: 960, Y: 0}},
		{TopHalf, geometry.Placement{Width: 1920, Height: 540, X: 0, Y: 0}},
		{BottomHalf, geometry.Placement{Width: 1920, Height: 540, X: 0, Y: 540}},
		{TopLeft, geometry.Placement{Width: 960, Height: 540, X: 0, Y: 0}},
		{TopRight, geometry.Placement{Width: 960, Height: 540, X: 960, Y: 0}},
		{BottomLeft, geometry.Placement{Width: 960, Height: 540, X: 0, Y: 540}},
		{BottomRight, geometry.Placement{Width: 960, Height: 540, X: 960, Y: 540}},
		{FirstThird, geometry.Placement{Width: 640, Height: 1080, X: 0, Y: 0}},
		{CenterThird, geometry.Placement{Width: 640, Height: 1080, X: 640, Y: 0}},
		{LastThird, geometry.Placement{Width: 640, Height: 1080, X: 1280, Y: 0}},
		{FirstTwoThirds, geometry.Placement{Width: 1280, Height: 1080, X: 0, Y: 0}},
		{LastTwoThirds, geometry.Placement{Width: 1280, Height: 1080, X: 640, Y: 0}},
		{Center, geometry.Placement{Width: 800, Height: 600, X: 560, Y: 240}},
		{MaximizeHeight, geometry.Placement{Width: 800, Height: 1080, X: 100, Y: 0}},
		{None, geometry.Placement{Width: 800, Height: 600, X: 100, Y: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			c := Context{Monitors: fullHD(), Window: window}
			got, err := Compute(Action{Kind: tt.kind}, c, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Compute(%s) = %+v, want %+v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestCompute_OddWorkAreaRemainderGoesToSecondPiece(t *testing.T) {
	wa := geometry.Rect{Left: 10, Top: 20, Right: 1011, Bottom: 521} // 1001x501
	c := Context{Monitors: []geometry.Monitor{{Bounds: wa, Work: wa}}}

	left, _ := Compute(Action{Kind: LeftHalf}, c, nil)
	right, _ := Compute(Action{Kind: RightHalf}, c, nil)
	if left.Width != 500 || right.X != 510 || right.Width != 501 {
		t.Fatalf("unexpected halves: left=%+v right=%+v", left, right)
	}
	if right.X+right.Width != wa.Right {
		t.Fatalf("right half does not reach work area edge")
	}

	top, _ := Compute(Action{Kind: TopHalf}, c, nil)
	bottom, _ := Compute(Action{Kind: BottomHalf}, c, nil)
	if top.Height != 250 || bottom.Y != 270 || bottom.Height != 251 {
		t.Fatalf("unexpected halves: top=%+v bottom=%+v", top, bottom)
	}

	br, _ := Compute(Action{Kind: BottomRight}, c, nil)
	if br.X+br.Width != wa.Right || br.Y+br.Height != wa.Bottom {
		t.Fatalf("bottom-right quarter %+v does not reach corner", br)
	}
}

func TestCompute_ThirdsPartitionWidth(t *testing.T) {
	for _, width := range []int{1920, 1000, 1001, 1002, 2561} {
		wa := geometry.Rect{Left: 37, Top: 0, Right: 37 + width, Bottom: 900}
		c := Context{Monitors: []geometry.Monitor{{Bounds: wa, Work: wa}}}

		first, _ := Compute(Action{Kind: FirstThird}, c, nil)
		center, _ := Compute(Action{Kind: CenterThird}, c, nil)
		last, _ := Compute(Action{Kind: LastThird}, c, nil)

		if first.X != wa.Left {
			t.Fatalf("width %d: first third starts at %d", width, first.X)
		}
		if first.X+first.Width != center.X {
			t.Fatalf("width %d: gap between first and center thirds", width)
		}
		if center.X+center.Width != last.X {
			t.Fatalf("width %d: gap between center and last thirds", width)
		}
		if last.X+last.Width != wa.Right {
			t.Fatalf("width %d: last third ends at %d, want %d", width, last.X+last.Width, wa.Right)
		}
	}
}

func TestCompute_UsesTargetMonitorWorkArea(t *testing.T) {
	monitors := []geometry.Monitor{
		{Bounds: geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}, Work: geometry.Rect{Left: 0, Top: 32, Right: 1920, Bottom: 1080}},
		{Bounds: geometry.Rect{Left: 1920, Top: 0, Right: 4480, Bottom: 1440}, Work: geometry.Rect{Left: 1920, Top: 0, Right: 4480, Bottom: 1400}},
	}
	c := Context{Current: 0, Target: 1, Monitors: monitors}
	got, err := Compute(Action{Kind: TopLeft}, c, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := geometry.Placement{Width: 1280, Height: 700, X: 1920, Y: 0}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCompute_MakeLarger(t *testing.T) {
	tests := []struct {
		name   string
		window geometry.WindowSnapshot
		want   geometry.Placement
	}{
		{
			name:   "grows around center",
			window: geometry.WindowSnapshot{Width: 1000, Height: 500, CenterX: 960, CenterY: 540},
			want:   geometry.Placement{Width: 1100, Height: 550, X: 410, Y: 265},
		},
		{
			name:   "clamped to work area size",
			window: geometry.WindowSnapshot{Width: 1900, Height: 1000, CenterX: 960, CenterY: 540},
			want:   geometry.Placement{Width: 1920, Height: 1080, X: 0, Y: 0},
		},
		{
			name:   "translated back inside near the edge",
			window: geometry.WindowSnapshot{Width: 400, Height: 300, CenterX: 1800, CenterY: 100},
			want:   geometry.Placement{Width: 440, Height: 330, X: 1480, Y: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Context{Monitors: fullHD(), Window: tt.window}
			got, err := Compute(Action{Kind: MakeLarger}, c, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompute_MakeSmallerConvergesToFloor(t *testing.T) {
	window := geometry.WindowSnapshot{Width: 1913, Height: 1077, CenterX: 960, CenterY: 540}
	c := Context{Monitors: fullHD()}

	var p geometry.Placement
	for i := 0; i < 60; i++ {
		c.Window = window
		var err error
		p, err = Compute(Action{Kind: MakeSmaller}, c, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Width < minWidth || p.Height < minHeight {
			t.Fatalf("iteration %d went below floor: %+v", i, p)
		}
		window.Width, window.Height = p.Width, p.Height
	}
	if p.Width != 200 || p.Height != 150 {
		t.Fatalf("expected to converge to 200x150, got %dx%d", p.Width, p.Height)
	}
	if p.X != 860 || p.Y != 465 {
		t.Fatalf("expected to stay centered, got (%d,%d)", p.X, p.Y)
	}
}

func TestCompute_MakeSmallerDoesNotClampOrigin(t *testing.T) {
	c := Context{
		Monitors: fullHD(),
		Window:   geometry.WindowSnapshot{Width: 300, Height: 200, CenterX: 10, CenterY: 10},
	}
	got, _ := Compute(Action{Kind: MakeSmaller}, c, nil)
	want := geometry.Placement{Width: 270, Height: 180, X: -125, Y: -80}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCompute_DirectionalCarryOver(t *testing.T) {
	monitors := []geometry.Monitor{
		{Bounds: geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}, Work: geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}},
		{Bounds: geometry.Rect{Left: 1920, Top: 0, Right: 5760, Bottom: 2160}, Work: geometry.Rect{Left: 1920, Top: 0, Right: 5760, Bottom: 2160}},
	}

	t.Run("relative position and size preserved", func(t *testing.T) {
		c := Context{
			Current:  0,
			Target:   1,
			Monitors: monitors,
			Window:   geometry.WindowSnapshot{Width: 480, Height: 270, CenterX: 1440, CenterY: 810},
		}
		got, err := Compute(Action{Kind: MoveRight}, c, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := geometry.Placement{Width: 960, Height: 540, X: 4320, Y: 1350}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})

	t.Run("clamped inside target work area", func(t *testing.T) {
		c := Context{
			Current:  1,
			Target:   0,
			Monitors: monitors,
			Window:   geometry.WindowSnapshot{Width: 1920, Height: 1080, CenterX: 5700, CenterY: 2100},
		}
		got, err := Compute(Action{Kind: MoveLeft}, c, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := geometry.Placement{Width: 960, Height: 540, X: 960, Y: 540}
		if got != want {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})
}

func TestCompute_Maximize(t *testing.T) {
	wa := geometry.Rect{Left: 0, Top: 40, Right: 1920, Bottom: 1080}
	c := Context{Monitors: []geometry.Monitor{{Bounds: geometry.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}, Work: wa}}}

	tests := []struct {
		name    string
		gutter  int
		metrics FrameMetrics
		want    geometry.Placement
	}{
		{
			name:    "no gutter no shadow",
			metrics: FrameMetrics{DPI: 96},
			want:    geometry.Placement{Width: 1920, Height: 1040, X: 0, Y: 40},
		},
		{
			name:    "gutter with shadows",
			gutter:  32,
			metrics: FrameMetrics{DPI: 96, Insets: geometry.FrameInsets{Left: 7, Top: 0, Right: 7, Bottom: 7}},
			want:    geometry.Placement{Width: 1870, Height: 983, X: 25, Y: 72},
		},
		{
			name:    "gutter scaled by dpi",
			gutter:  32,
			metrics: FrameMetrics{DPI: 144},
			want:    geometry.Placement{Width: 1824, Height: 944, X: 48, Y: 88},
		},
		{
			name:    "unknown dpi treated as 96",
			gutter:  10,
			metrics: FrameMetrics{},
			want:    geometry.Placement{Width: 1900, Height: 1020, X: 10, Y: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query := func() (FrameMetrics, error) { return tt.metrics, nil }
			got, err := Compute(Action{Kind: Maximize, Gutter: tt.gutter}, c, query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			// The visible frame must sit exactly the scaled gutter inside the work area.
			visible := geometry.Rect{
				Left:   got.X + tt.metrics.Insets.Left,
				Top:    got.Y + tt.metrics.Insets.Top,
				Right:  got.X + got.Width - tt.metrics.Insets.Right,
				Bottom: got.Y + got.Height - tt.metrics.Insets.Bottom,
			}
			g := visible.Left - wa.Left
			if wa.Right-visible.Right != g || visible.Top-wa.Top != g || wa.Bottom-visible.Bottom != g {
				t.Fatalf("visible frame %v not evenly inset in %v", visible, wa)
			}
		})
	}
}

func TestCompute_MaximizePropagatesFrameError(t *testing.T) {
	boom := errors.New("boom")
	c := Context{Monitors: fullHD()}
	_, err := Compute(Action{Kind: Maximize}, c, func() (FrameMetrics, error) { return FrameMetrics{}, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected frame error, got %v", err)
	}
}

func TestCompute_InvalidContext(t *testing.T) {
	cases := []Context{
		{},
		{Current: 1, Monitors: fullHD()},
		{Target: -1, Monitors: fullHD()},
	}
	for _, c := range cases {
		if _, err := Compute(Action{Kind: LeftHalf}, c, nil); !errors.Is(err, ErrInvalidContext) {
			t.Fatalf("expected ErrInvalidContext for %+v, got %v", c, err)
		}
	}
}

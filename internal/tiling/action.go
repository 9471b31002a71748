package tiling

import (
	"fmt"
	"strings"
)

// Kind identifies a window action.
type Kind int

const (
	None Kind = iota
	MoveLeft
	MoveRight
	Maximize
	LeftHalf
	RightHalf
	TopHalf
	BottomHalf
	TopLeft
	TopRight
	BottomLeft
	BottomRight
	FirstThird
	CenterThird
	LastThird
	FirstTwoThirds
	LastTwoThirds
	Center
	MakeLarger
	MakeSmaller
	MaximizeHeight
)

var kindNames = [...]string{
	None:           "none",
	MoveLeft:       "move-left",
	MoveRight:      "move-right",
	Maximize:       "maximize",
	LeftHalf:       "left-half",
	RightHalf:      "right-half",
	TopHalf:        "top-half",
	BottomHalf:     "bottom-half",
	TopLeft:        "top-left",
	TopRight:       "top-right",
	BottomLeft:     "bottom-left",
	BottomRight:    "bottom-right",
	FirstThird:     "first-third",
	CenterThird:    "center-third",
	LastThird:      "last-third",
	FirstTwoThirds: "first-two-thirds",
	LastTwoThirds:  "last-two-thirds",
	Center:         "center",
	MakeLarger:     "make-larger",
	MakeSmaller:    "make-smaller",
	MaximizeHeight: "maximize-height",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Action is a requested window operation. Gutter is only meaningful for
// Maximize and is the margin in unscaled pixels between the visible window
// edge and the work area.
type Action struct {
	Kind   Kind
	Gutter int
}

func (a Action) String() string {
	if a.Kind == Maximize {
		return fmt.Sprintf("%s(gutter=%d)", a.Kind, a.Gutter)
	}
	return a.Kind.String()
}

// Kinds returns every action kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind resolves an action name. Matching ignores case and accepts
// underscores in place of hyphens.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	for i, candidate := range kindNames {
		if candidate == n {
			return Kind(i), nil
		}
	}
	return None, fmt.Errorf("unknown action %q", name)
}

// ParseAction resolves an action name; gutter is kept only for maximize.
func ParseAction(name string, gutter int) (Action, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return Action{}, err
	}
	if gutter < 0 {
		return Action{}, fmt.Errorf("gutter must be >= 0, got %d", gutter)
	}
	a := Action{Kind: kind}
	if kind == Maximize {
		a.Gutter = gutter
	}
	return a, nil
}

// Shortcut binding identifiers with a fixed action.
const (
	BindingMoveMonitorLeft      = "moveMonitorLeft"
	BindingMoveMonitorRight     = "moveMonitorRight"
	BindingMaximizeWindow       = "maximizeWindow"
	BindingAlmostMaximizeWindow = "almostMaximizeWindow"
)

var bindingKinds = map[string]Kind{
	BindingMoveMonitorLeft:  MoveLeft,
	BindingMoveMonitorRight: MoveRight,
	BindingMaximizeWindow:   Maximize,
	"leftHalf":              LeftHalf,
	"rightHalf":             RightHalf,
	"topHalf":               TopHalf,
	"bottomHalf":            BottomHalf,
	"topLeft":               TopLeft,
	"topRight":              TopRight,
	"bottomLeft":            BottomLeft,
	"bottomRight":           BottomRight,
}

// ActionForBinding maps a shortcut binding id to the action it fires.
// almostGutter is the gutter used for almostMaximizeWindow. Ids that are
// themselves action names map to that action.
func ActionForBinding(id string, almostGutter int) (Action, bool) {
	if id == BindingAlmostMaximizeWindow {
		return Action{Kind: Maximize, Gutter: almostGutter}, true
	}
	if kind, ok := bindingKinds[id]; ok {
		return Action{Kind: kind}, true
	}
	if kind, err := ParseKind(id); err == nil && kind != None {
		return Action{Kind: kind}, true
	}
	return Action{}, false
}

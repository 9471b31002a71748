package palette

import (
	"fmt"
	"strings"

	"github.com/1broseidon/galaxy/internal/registry"
	"github.com/1broseidon/galaxy/internal/shortcut"
	"github.com/1broseidon/galaxy/internal/tiling"
)

type section struct {
	title string
	icon  string
	kinds []tiling.Kind
}

var sections = []section{
	{"Halves", "view-split-left-right", []tiling.Kind{tiling.LeftHalf, tiling.RightHalf, tiling.TopHalf, tiling.BottomHalf}},
	{"Quarters", "view-grid", []tiling.Kind{tiling.TopLeft, tiling.TopRight, tiling.BottomLeft, tiling.BottomRight}},
	{"Thirds", "view-column", []tiling.Kind{tiling.FirstThird, tiling.CenterThird, tiling.LastThird, tiling.FirstTwoThirds, tiling.LastTwoThirds}},
	{"Size", "zoom-fit-best", []tiling.Kind{tiling.Maximize, tiling.MaximizeHeight, tiling.Center, tiling.MakeLarger, tiling.MakeSmaller}},
	{"Monitors", "video-display", []tiling.Kind{tiling.MoveLeft, tiling.MoveRight}},
}

// ActionItems builds the launcher rows, one section per action family.
// Rows show the shortcut currently bound to the action, if any.
// almostGutter adds an almost-maximize row when positive.
func ActionItems(entries []registry.Entry, almostGutter int) []Item {
	bound := make(map[string]string)
	for _, e := range entries {
		if e.ID == tiling.BindingAlmostMaximizeWindow && almostGutter <= 0 {
			continue
		}
		a, ok := tiling.ActionForBinding(e.ID, almostGutter)
		if !ok {
			continue
		}
		key := itemKey(a.Kind.String(), a.Gutter)
		if _, taken := bound[key]; taken {
			continue
		}
		if c, err := shortcut.Parse(e.Shortcut); err == nil {
			bound[key] = c.Display()
		}
	}

	var items []Item
	for _, s := range sections {
		items = append(items, Item{Label: s.title, IsHeader: true})
		for _, k := range s.kinds {
			name := k.String()
			items = append(items, Item{
				Label:  label(humanize(name), bound[itemKey(name, 0)]),
				Action: name,
				Icon:   s.icon,
				Meta:   strings.ReplaceAll(name, "-", " "),
			})
			if k == tiling.Maximize && almostGutter > 0 {
				items = append(items, Item{
					Label:  label(fmt.Sprintf("Almost maximize (%dpx)", almostGutter), bound[itemKey(name, almostGutter)]),
					Action: name,
					Gutter: almostGutter,
					Icon:   s.icon,
					Meta:   "maximize gutter almost",
				})
			}
		}
	}
	return items
}

// Pick shows the action launcher and returns the chosen action.
func Pick(b Backend, entries []registry.Entry, almostGutter int) (tiling.Action, error) {
	item, err := b.Show("galaxy", ActionItems(entries, almostGutter))
	if err != nil {
		return tiling.Action{}, err
	}
	return tiling.ParseAction(item.Action, item.Gutter)
}

func itemKey(action string, gutter int) string {
	return fmt.Sprintf("%s/%d", action, gutter)
}

func label(title, keys string) string {
	if keys == "" {
		return title
	}
	return title + "    " + keys
}

// humanize turns "first-two-thirds" into "First two thirds".
func humanize(name string) string {
	s := strings.ReplaceAll(name, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

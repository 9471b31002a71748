package hotkeys

import (
	"fmt"
	"strings"

	"github.com/1broseidon/galaxy/internal/shortcut"
)

// X11 modifier names in the order keybind expects them.
var modifierNames = []struct {
	mod  shortcut.Modifier
	name string
}{
	{shortcut.ModShift, "Shift"},
	{shortcut.ModControl, "Control"},
	{shortcut.ModAlt | shortcut.ModMeta, "Mod1"},
	{shortcut.ModSuper | shortcut.ModCmd | shortcut.ModWin, "Mod4"},
}

var keysyms = map[string]string{
	"arrowup":        "Up",
	"arrowdown":      "Down",
	"arrowleft":      "Left",
	"arrowright":     "Right",
	"home":           "Home",
	"end":            "End",
	"pageup":         "Prior",
	"pagedown":       "Next",
	"insert":         "Insert",
	"delete":         "Delete",
	"backspace":      "BackSpace",
	"tab":            "Tab",
	"enter":          "Return",
	"space":          "space",
	"escape":         "Escape",
	"printscreen":    "Print",
	"pause":          "Pause",
	"scrolllock":     "Scroll_Lock",
	"capslock":       "Caps_Lock",
	"numlock":        "Num_Lock",
	"equal":          "equal",
	"minus":          "minus",
	"plus":           "plus",
	"bracketleft":    "bracketleft",
	"bracketright":   "bracketright",
	"semicolon":      "semicolon",
	"quote":          "apostrophe",
	"comma":          "comma",
	"period":         "period",
	"slash":          "slash",
	"backslash":      "backslash",
	"backquote":      "grave",
	"numpadmultiply": "KP_Multiply",
	"numpadadd":      "KP_Add",
	"numpadsubtract": "KP_Subtract",
	"numpaddecimal":  "KP_Decimal",
	"numpaddivide":   "KP_Divide",
	"numpadenter":    "KP_Enter",
}

// Keysym maps a normalized key token to its X11 keysym name.
func Keysym(key string) (string, error) {
	if sym, ok := keysyms[key]; ok {
		return sym, nil
	}
	switch {
	case len(key) == 1 && (key[0] >= 'a' && key[0] <= 'z' || key[0] >= '0' && key[0] <= '9'):
		return key, nil
	case strings.HasPrefix(key, "numpad") && len(key) == len("numpad")+1:
		return "KP_" + key[len("numpad"):], nil
	case len(key) > 1 && key[0] == 'f' && shortcut.IsKnownKey(key):
		return strings.ToUpper(key), nil
	}
	return "", fmt.Errorf("no X11 keysym for key %q", key)
}

// KeySequence renders c in xgbutil keybind syntax, e.g. "Shift-Control-Left".
func KeySequence(c shortcut.Combo) (string, error) {
	sym, err := Keysym(c.Key)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(modifierNames)+1)
	for _, m := range modifierNames {
		if c.Mods&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, sym), "-"), nil
}

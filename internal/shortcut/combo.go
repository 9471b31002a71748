package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned for strings that do not describe a
// registrable key combination.
var ErrInvalidFormat = errors.New("invalid shortcut format")

// Modifier is a bit set of modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModMeta
	ModSuper
	ModCmd
	ModWin
)

var modifierBits = map[string]Modifier{
	"shift":   ModShift,
	"control": ModControl,
	"alt":     ModAlt,
	"meta":    ModMeta,
	"super":   ModSuper,
	"cmd":     ModCmd,
	"win":     ModWin,
}

// Has reports whether every bit in m2 is set in m.
func (m Modifier) Has(m2 Modifier) bool { return m&m2 == m2 }

// Names returns the canonical modifier names in canonical order.
func (m Modifier) Names() []string {
	var names []string
	for _, name := range canonicalModifiers {
		if m.Has(modifierBits[name]) {
			names = append(names, name)
		}
	}
	return names
}

// Combo is a parsed, registrable key combination. Key is a normalized key
// token such as "k", "f5", "arrowleft" or "comma".
type Combo struct {
	Mods Modifier
	Key  string
}

// String returns the normalized form of the combination.
func (c Combo) String() string {
	names := c.Mods.Names()
	if len(names) == 0 {
		return c.Key
	}
	return strings.Join(names, Separator) + Separator + c.Key
}

// IsZero reports whether c is the zero Combo.
func (c Combo) IsZero() bool { return c.Mods == 0 && c.Key == "" }

// Display renders the combination the way shortcut editors show it, e.g.
// "Shift+Control+ArrowLeft".
func (c Combo) Display() string {
	parts := make([]string, 0, 8)
	for _, name := range c.Mods.Names() {
		parts = append(parts, strings.ToUpper(name[:1])+name[1:])
	}
	parts = append(parts, displayKey(c.Key))
	return strings.Join(parts, Separator)
}

// Parse validates s and returns the combination it names. Every modifier
// must be one of shift, control, alt, meta, super, cmd or win (or a common
// synonym such as ctrl), each at most once, followed by exactly one known key.
func Parse(s string) (Combo, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Combo{}, fmt.Errorf("%w: empty shortcut", ErrInvalidFormat)
	}

	normalized := Normalize(trimmed)
	var mods []string
	key := normalized
	if _, _, ok := split(trimmed); ok {
		idx := strings.LastIndex(normalized, Separator)
		mods = strings.Split(normalized[:idx], Separator)
		key = normalized[idx+1:]
	}

	var c Combo
	for _, m := range mods {
		bit, ok := modifierBits[m]
		if !ok {
			return Combo{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidFormat, m, s)
		}
		if c.Mods.Has(bit) {
			return Combo{}, fmt.Errorf("%w: duplicate modifier %q in %q", ErrInvalidFormat, m, s)
		}
		c.Mods |= bit
	}

	if key == "" {
		return Combo{}, fmt.Errorf("%w: missing key in %q", ErrInvalidFormat, s)
	}
	if !IsKnownKey(key) {
		return Combo{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidFormat, key, s)
	}
	c.Key = key
	return c, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Combo {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// State is the edge of a hotkey event.
type State int

const (
	Pressed State = iota
	Released
)

func (s State) String() string {
	if s == Released {
		return "released"
	}
	return "pressed"
}

// Event is a fired global hotkey.
type Event struct {
	Shortcut Combo
	State    State
}

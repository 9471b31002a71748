// Package shortcut canonicalizes key-combination strings such as
// "Shift+Control+Alt+ArrowLeft" so they can be compared, registered and
// looked up.
package shortcut

import "strings"

// Separator joins modifiers and the key.
const Separator = "+"

// canonicalModifiers is the order modifiers appear in a normalized shortcut.
var canonicalModifiers = []string{"shift", "control", "alt", "meta", "super", "cmd", "win"}

var modifierSynonyms = map[string]string{
	"ctrl":    "control",
	"ctl":     "control",
	"option":  "alt",
	"opt":     "alt",
	"command": "cmd",
	"windows": "win",
}

// Aliases maps literal punctuation to the named key a shortcut editor
// reports for it, so "Control+," and "Control+Comma" are the same shortcut.
var Aliases = map[string]string{
	"=":  "Equal",
	"-":  "Minus",
	"[":  "BracketLeft",
	"]":  "BracketRight",
	";":  "Semicolon",
	"'":  "Quote",
	",":  "Comma",
	".":  "Period",
	"/":  "Slash",
	"\\": "Backslash",
	"`":  "Backquote",
	"+":  "Plus",
}

// keyAliases resolves lower-cased key spellings to their canonical token.
var keyAliases = map[string]string{
	"digit0":     "0",
	"digit1":     "1",
	"digit2":     "2",
	"digit3":     "3",
	"digit4":     "4",
	"digit5":     "5",
	"digit6":     "6",
	"digit7":     "7",
	"digit8":     "8",
	"digit9":     "9",
	"return":     "enter",
	"esc":        "escape",
	"del":        "delete",
	"ins":        "insert",
	"pgup":       "pageup",
	"pgdn":       "pagedown",
	"backtick":   "backquote",
	"up":         "arrowup",
	"down":       "arrowdown",
	"left":       "arrowleft",
	"right":      "arrowright",
	"spacebar":   "space",
	"apostrophe": "quote",
}

func init() {
	for punct, name := range Aliases {
		keyAliases[punct] = strings.ToLower(name)
	}
}

// Normalize returns the canonical form of a shortcut: lower-cased modifiers
// in the order shift, control, alt, meta, super, cmd, win, then "+" and the
// lower-cased, alias-resolved key. Unknown modifiers follow the canonical ones
// in their original order. Normalize is idempotent.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	mods, key, ok := split(s)
	if !ok {
		return normalizeKey(s)
	}

	remaining := make([]string, 0, len(mods))
	for _, m := range mods {
		m = strings.ToLower(strings.TrimSpace(m))
		if syn, ok := modifierSynonyms[m]; ok {
			m = syn
		}
		remaining = append(remaining, m)
	}

	ordered := make([]string, 0, len(remaining))
	for _, canon := range canonicalModifiers {
		for i, m := range remaining {
			if m == canon {
				ordered = append(ordered, canon)
				remaining = append(remaining[:i], remaining[i+1:]...)
				break
			}
		}
	}
	ordered = append(ordered, remaining...)

	return strings.Join(ordered, Separator) + Separator + normalizeKey(key)
}

// split separates modifiers from the trailing key. A trailing "++" means the
// key itself is "+".
func split(s string) (mods []string, key string, ok bool) {
	if !strings.Contains(s, Separator) || s == Separator {
		return nil, "", false
	}
	if strings.HasSuffix(s, Separator+Separator) {
		head := strings.TrimSuffix(s, Separator+Separator)
		if head == "" {
			return nil, "", false
		}
		return strings.Split(head, Separator), Separator, true
	}
	parts := strings.Split(s, Separator)
	return parts[:len(parts)-1], parts[len(parts)-1], true
}

func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	for {
		next := k
		if alias, ok := keyAliases[next]; ok {
			next = alias
		}
		if strings.HasPrefix(next, "key") && len(next) > len("key") {
			next = strings.TrimPrefix(next, "key")
		}
		if strings.HasPrefix(next, "arrow") {
			next = "arrow" + strings.TrimPrefix(next, "arrow")
		}
		if next == k {
			return k
		}
		k = next
	}
}

// Equal reports whether two shortcut strings name the same combination.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

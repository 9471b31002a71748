package shortcut

import (
	"fmt"
	"strings"
)

var namedKeys = []string{
	"arrowup", "arrowdown", "arrowleft", "arrowright",
	"home", "end", "pageup", "pagedown", "insert", "delete",
	"backspace", "tab", "enter", "space", "escape",
	"printscreen", "pause", "scrolllock", "capslock", "numlock",
	"equal", "minus", "plus", "bracketleft", "bracketright", "semicolon",
	"quote", "comma", "period", "slash", "backslash", "backquote",
	"numpadmultiply", "numpadadd", "numpadsubtract", "numpaddecimal",
	"numpaddivide", "numpadenter",
}

var knownKeys = buildKnownKeys()

func buildKnownKeys() map[string]struct{} {
	keys := make(map[string]struct{}, 128)
	for c := 'a'; c <= 'z'; c++ {
		keys[string(c)] = struct{}{}
	}
	for d := 0; d <= 9; d++ {
		keys[fmt.Sprint(d)] = struct{}{}
		keys[fmt.Sprintf("numpad%d", d)] = struct{}{}
	}
	for f := 1; f <= 24; f++ {
		keys[fmt.Sprintf("f%d", f)] = struct{}{}
	}
	for _, k := range namedKeys {
		keys[k] = struct{}{}
	}
	return keys
}

// IsKnownKey reports whether key is a normalized key token that can be bound.
func IsKnownKey(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

var displayNames = map[string]string{
	"arrowup":        "ArrowUp",
	"arrowdown":      "ArrowDown",
	"arrowleft":      "ArrowLeft",
	"arrowright":     "ArrowRight",
	"pageup":         "PageUp",
	"pagedown":       "PageDown",
	"printscreen":    "PrintScreen",
	"scrolllock":     "ScrollLock",
	"capslock":       "CapsLock",
	"numlock":        "NumLock",
	"bracketleft":    "BracketLeft",
	"bracketright":   "BracketRight",
	"numpadmultiply": "NumpadMultiply",
	"numpadadd":      "NumpadAdd",
	"numpadsubtract": "NumpadSubtract",
	"numpaddecimal":  "NumpadDecimal",
	"numpaddivide":   "NumpadDivide",
	"numpadenter":    "NumpadEnter",
}

func displayKey(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}
	if strings.HasPrefix(key, "numpad") {
		return "Numpad" + strings.TrimPrefix(key, "numpad")
	}
	if len(key) > 1 && key[0] == 'f' && key[1] >= '0' && key[1] <= '9' {
		return strings.ToUpper(key)
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

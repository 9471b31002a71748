package shortcut

import "testing"

func TestTranslateKey(t *testing.T) {
	tests := map[string]string{
		"BracketLeft": "[",
		"Semicolon":   ";",
		"Backquote":   "`",
		"Equal":       "=",
		"Digit0":      "0",
		"Digit9":      "9",
		"Question":    "?",
		"F12":         "F12",
		"ArrowLeft":   "ArrowLeft",
		"UnknownKey":  "UnknownKey",
	}
	for in, want := range tests {
		if got := TranslateKey(in); got != want {
			t.Fatalf("TranslateKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Control+Alt+BracketLeft", "control+alt+["},
		{"Shift+Control+Semicolon", "shift+control+;"},
		{"Alt+Quote", "alt+'"},
		{"Control+Comma", "control+,"},
		{"Control+UnknownKey", "control+UnknownKey"},
		{"Period", "."},
	}
	for _, tt := range tests {
		if got := Translate(tt.in); got != tt.want {
			t.Fatalf("Translate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTranslate_NormalizesToSameShortcut(t *testing.T) {
	for _, s := range []string{"Control+Alt+BracketLeft", "Shift+Control+Semicolon", "Control+Digit1"} {
		if !Equal(s, Translate(s)) {
			t.Fatalf("%q and its translation %q normalize differently", s, Translate(s))
		}
	}
}

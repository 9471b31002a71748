package shortcut

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Shift+Control+Alt+ArrowLeft", "shift+control+alt+arrowleft"},
		{"Alt+Control+Shift+ArrowLeft", "shift+control+alt+arrowleft"},
		{"Control+Alt+Enter", "control+alt+enter"},
		{"control+shift+ENTER", "shift+control+enter"},
		{"Control+KeyK", "control+k"},
		{"Super+Win+Meta+Cmd+A", "meta+super+cmd+win+a"},
		{"Control+,", "control+comma"},
		{"Control+Comma", "control+comma"},
		{"Shift+Digit1", "shift+1"},
		{"Ctrl+Option+Up", "control+alt+arrowup"},
		{"Control++", "control+plus"},
		{"Hyper+Shift+K", "shift+hyper+k"},
		{" Shift + Alt + F5 ", "shift+alt+f5"},
		{"F12", "f12"},
		{"Escape", "escape"},
		{",", "comma"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Shift+Control+Alt+ArrowLeft",
		"control+shift+ENTER",
		"Win+Alt+KeyKeyQ",
		"Alt+KeyDigit7",
		"Control+[",
		"Control++",
		"Foo+Bar+Shift+X",
		"shift+shift+k",
		"Space",
		"+",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalize_OrderAndCaseInsensitive(t *testing.T) {
	if Normalize("shift+control+Enter") != Normalize("Control+Shift+ENTER") {
		t.Fatalf("modifier order or case changed the normalized form")
	}
	if !Equal("Alt+Shift+Slash", "shift+ALT+/") {
		t.Fatalf("expected punctuation alias to compare equal")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Combo
		wantErr bool
	}{
		{in: "Shift+Control+Alt+ArrowLeft", want: Combo{Mods: ModShift | ModControl | ModAlt, Key: "arrowleft"}},
		{in: "ctrl+;", want: Combo{Mods: ModControl, Key: "semicolon"}},
		{in: "Super+Numpad5", want: Combo{Mods: ModSuper, Key: "numpad5"}},
		{in: "F9", want: Combo{Key: "f9"}},
		{in: "", wantErr: true},
		{in: "Control+", wantErr: true},
		{in: "Control+Shift", wantErr: true},
		{in: "Hyper+K", wantErr: true},
		{in: "Shift+shift+K", wantErr: true},
		{in: "Control+Banana", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("expected ErrInvalidFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_StringMatchesNormalize(t *testing.T) {
	inputs := []string{
		"Shift+Control+Alt+ArrowLeft",
		"Control+Alt+Enter",
		"Alt+Shift+Control+KeyM",
		"Win+Cmd+Super+Meta+Alt+Control+Shift+Z",
		"Control+Period",
		"Control+.",
		"Tab",
	}
	for _, in := range inputs {
		c, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if c.String() != Normalize(in) {
			t.Fatalf("Parse(%q).String() = %q, Normalize = %q", in, c.String(), Normalize(in))
		}
	}
}

func TestCombo_Display(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shift+control+alt+arrowleft", "Shift+Control+Alt+ArrowLeft"},
		{"control+alt+enter", "Control+Alt+Enter"},
		{"alt+f4", "Alt+F4"},
		{"control+,", "Control+Comma"},
		{"super+numpad3", "Super+Numpad3"},
	}
	for _, tt := range tests {
		if got := MustParse(tt.in).Display(); got != tt.want {
			t.Fatalf("Display(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

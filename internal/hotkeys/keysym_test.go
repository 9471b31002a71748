package hotkeys

import (
	"testing"

	"github.com/1broseidon/galaxy/internal/shortcut"
)

func TestKeySequence(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Shift+Control+Alt+ArrowLeft", "Shift-Control-Mod1-Left"},
		{"Control+Alt+Enter", "Control-Mod1-Return"},
		{"super+k", "Mod4-k"},
		{"cmd+win+1", "Mod4-1"},
		{"control+,", "Control-comma"},
		{"alt+Backquote", "Mod1-grave"},
		{"shift+f12", "Shift-F12"},
		{"control+numpad7", "Control-KP_7"},
		{"control+numpadenter", "Control-KP_Enter"},
		{"pagedown", "Next"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := shortcut.Parse(tt.in)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.in, err)
			}
			got, err := KeySequence(c)
			if err != nil {
				t.Fatalf("KeySequence(%v): %v", c, err)
			}
			if got != tt.want {
				t.Fatalf("KeySequence(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKeysymUnknown(t *testing.T) {
	if _, err := Keysym("hyper"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestIgnoreMasks(t *testing.T) {
	got := ignoreMasks([]uint16{2, 16})
	want := map[uint16]bool{0: true, 2: true, 16: true, 18: true}
	if len(got) != len(want) {
		t.Fatalf("expected %d masks, got %v", len(want), got)
	}
	for _, m := range got {
		if !want[m] {
			t.Fatalf("unexpected mask %d in %v", m, got)
		}
	}
}

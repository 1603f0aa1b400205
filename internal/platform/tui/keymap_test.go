package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazechase/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		isQuit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"k", runeKey('k'), core.ActionUp, false},
		{"j", runeKey('j'), core.ActionDown, false},
		{"h", runeKey('h'), core.ActionLeft, false},
		{"l", runeKey('l'), core.ActionRight, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"screenshot is not a game action", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionNone, false},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, isQuit := km.MapKey(tt.msg)
			if action != tt.expected {
				t.Errorf("MapKey(%q) action = %v, want %v", tt.msg.String(), action, tt.expected)
			}
			if isQuit != tt.isQuit {
				t.Errorf("MapKey(%q) isQuit = %v, want %v", tt.msg.String(), isQuit, tt.isQuit)
			}
		})
	}
}

func TestMapKeyToFrameLastDirectionWins(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyUp}, &frame)
	km.MapKeyToFrame(runeKey('p'), &frame)
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame)

	if frame.Has(core.ActionUp) {
		t.Error("earlier direction should be replaced")
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("latest direction should be queued")
	}
	if !frame.Has(core.ActionPause) {
		t.Error("non-direction actions should be kept")
	}
}

func TestMapKeyToFrameQuit(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('x'), &frame) {
		t.Error("unbound key reported as quit")
	}
	if !frame.Empty() {
		t.Errorf("unbound key set actions %v", frame.List())
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should report quit")
	}
}

package keybind

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Esc":        "esc",
		"escape":     "esc",
		"PageDown":   "pgdn",
		"Ctrl+C":     "ctrl+c",
		"alt+ctrl+X": "alt+ctrl+x",
		"shift+tab":  "shift+tab",
		" k ":        "k",
		"G":          "G",
		"+":          "+",
		"ctrl+":      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeKey(in), "normalizeKey(%q)", in)
	}
}

func TestMatches(t *testing.T) {
	up := NewKeybind(WithKeys("up", "k"), WithHelp("↑/k", "up"))
	quit := NewKeybind(WithKeys("ctrl+c", "q"))

	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), up))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), up))
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyRune, 'K', tcell.ModNone), up))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), up, quit))
	assert.False(t, Matches(nil, up))
}

func TestTabIsNotCtrlI(t *testing.T) {
	tab := NewKeybind(WithKeys("tab"))
	assert.True(t, Matches(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), tab))
}

func TestDisabledKeybindNeverMatches(t *testing.T) {
	cancel := NewKeybind(WithKeys("esc"))
	cancel.SetEnabled(false)

	assert.False(t, cancel.Enabled())
	assert.False(t, Matches(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), cancel))
}

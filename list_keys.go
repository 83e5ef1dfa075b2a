package dragsort

import "github.com/xqrs/dragsort/keybind"

// ListKeyMap holds the keys a ReorderList reacts to.
type ListKeyMap struct {
	Up       keybind.Keybind
	Down     keybind.Keybind
	PageUp   keybind.Keybind
	PageDown keybind.Keybind
	Top      keybind.Keybind
	Bottom   keybind.Keybind
	// CancelDrag aborts an active drag. It is only enabled while dragging.
	CancelDrag keybind.Keybind
}

// DefaultListKeyMap returns the arrow, vi and paging keys.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:         keybind.NewKeybind(keybind.WithKeys("up", "k"), keybind.WithHelp("↑/k", "up")),
		Down:       keybind.NewKeybind(keybind.WithKeys("down", "j"), keybind.WithHelp("↓/j", "down")),
		PageUp:     keybind.NewKeybind(keybind.WithKeys("pgup"), keybind.WithHelp("pgup", "page up")),
		PageDown:   keybind.NewKeybind(keybind.WithKeys("pgdn"), keybind.WithHelp("pgdn", "page down")),
		Top:        keybind.NewKeybind(keybind.WithKeys("home", "g"), keybind.WithHelp("g", "top")),
		Bottom:     keybind.NewKeybind(keybind.WithKeys("end", "G"), keybind.WithHelp("G", "bottom")),
		CancelDrag: keybind.NewKeybind(keybind.WithKeys("esc"), keybind.WithHelp("esc", "cancel drag")),
	}
}

// ShortHelp returns the keybinds shown in a one-line help bar.
func (k ListKeyMap) ShortHelp() []keybind.Keybind {
	return []keybind.Keybind{k.Up, k.Down, k.CancelDrag}
}

// FullHelp returns the keybinds grouped into help columns.
func (k ListKeyMap) FullHelp() [][]keybind.Keybind {
	return [][]keybind.Keybind{
		{k.Up, k.Down},
		{k.PageUp, k.PageDown},
		{k.Top, k.Bottom},
		{k.CancelDrag},
	}
}

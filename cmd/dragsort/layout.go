package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/xqrs/dragsort"
	"github.com/xqrs/dragsort/help"
	"github.com/xqrs/dragsort/keybind"
)

type appKeyMap struct {
	list dragsort.ListKeyMap
	Help keybind.Keybind
	Quit keybind.Keybind
}

func (k appKeyMap) ShortHelp() []keybind.Keybind {
	return append(k.list.ShortHelp(), k.Help, k.Quit)
}

func (k appKeyMap) FullHelp() [][]keybind.Keybind {
	return append(k.list.FullHelp(), []keybind.Keybind{k.Help, k.Quit})
}

// layout stacks the list above the help bar and owns the global keys.
type layout struct {
	*dragsort.Box
	list *dragsort.ReorderList
	bar  *help.Bar
	keys appKeyMap
}

func newLayout(list *dragsort.ReorderList, bar *help.Bar) *layout {
	l := &layout{
		Box:  dragsort.NewBox(),
		list: list,
		bar:  bar,
		keys: appKeyMap{
			Help: keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "more")),
			Quit: keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
		},
	}
	bar.SetKeyMapFunc(func() help.KeyMap {
		keys := l.keys
		keys.list = l.list.KeyMap()
		return keys
	})
	return l
}

func (l *layout) barHeight() int {
	if l.bar.ShowAll() {
		return 3
	}
	return 1
}

func (l *layout) SetRect(x, y, width, height int) {
	l.Box.SetRect(x, y, width, height)
	barHeight := min(l.barHeight(), height)
	l.list.SetRect(x, y, width, height-barHeight)
	l.bar.SetRect(x, y+height-barHeight, width, barHeight)
}

func (l *layout) Draw(screen tcell.Screen) {
	l.list.Draw(screen)
	l.bar.Draw(screen)
	l.MarkClean()
}

func (l *layout) InputHandler(event *tcell.EventKey) dragsort.Command {
	switch {
	case keybind.Matches(event, l.keys.Quit):
		return dragsort.QuitCommand{}
	case keybind.Matches(event, l.keys.Help) && !l.list.Dragging():
		l.bar.SetShowAll(!l.bar.ShowAll())
		l.SetRect(l.GetRect())
		return dragsort.RedrawCommand{}
	}
	return l.list.InputHandler(event)
}

func (l *layout) MouseHandler(action dragsort.MouseAction, event *tcell.EventMouse) (dragsort.Primitive, dragsort.Command) {
	// The bar is not interactive. A drag that crosses it reaches the list
	// through the mouse capture.
	if l.bar.InRect(event.Position()) {
		return nil, nil
	}
	return l.list.MouseHandler(action, event)
}

func (l *layout) HasFocus() bool {
	return l.list.HasFocus() || l.bar.HasFocus()
}

func (l *layout) Focus(delegate func(p dragsort.Primitive)) {
	delegate(l.list)
}

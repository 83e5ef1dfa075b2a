package main

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/xqrs/dragsort"
	"github.com/xqrs/dragsort/help"
)

// statusListener logs every reorder and reports it in the help bar.
type statusListener struct {
	list *dragsort.ReorderList
	bar  *help.Bar
}

func newStatusListener(list *dragsort.ReorderList, bar *help.Bar) *statusListener {
	return &statusListener{list: list, bar: bar}
}

func (s *statusListener) item(pos dragsort.RowPosition) string {
	items := s.list.Items()
	if pos.Row < 0 || pos.Row >= len(items) {
		return ""
	}
	return items[pos.Row]
}

func (s *statusListener) OnDragMoved(from, to dragsort.RowPosition) {
	log.Debug("row moved", "item", s.item(to), "from", from, "to", to)
	s.bar.SetStatus(fmt.Sprintf("%s → %d", s.item(to), to.Row+1))
}

func (s *statusListener) OnDragEnded(source, end dragsort.RowPosition) {
	item := s.item(end)
	if source == end {
		log.Info("drag ended in place", "item", item, "row", end)
		s.bar.SetStatus("")
		return
	}
	log.Infof("moved %q from row %d to row %d", item, source.Row+1, end.Row+1)
	s.bar.SetStatus(fmt.Sprintf("moved %s: %d → %d", item, source.Row+1, end.Row+1))
}

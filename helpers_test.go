package dragsort

import (
	"slices"
	"time"
)

// manualScheduler runs timers only when the test advances its clock.
type manualScheduler struct {
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Time
	f       func()
	stopped bool
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{now: time.Unix(0, 0)}
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := &manualTimer{at: s.now.Add(d), f: f}
	s.timers = append(s.timers, t)
	return func() bool {
		if t.stopped {
			return false
		}
		t.stopped = true
		return true
	}
}

func (s *manualScheduler) Now() time.Time {
	return s.now
}

func (s *manualScheduler) Pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward, firing due timers in order. Timers added
// by fired timers fire too if they fall inside the window.
func (s *manualScheduler) Advance(d time.Duration) {
	end := s.now.Add(d)
	for {
		i := slices.IndexFunc(s.timers, func(t *manualTimer) bool {
			return !t.stopped && !t.at.After(end)
		})
		if i < 0 {
			break
		}
		t := s.timers[i]
		s.timers = slices.Delete(s.timers, i, i+1)
		t.stopped = true
		if t.at.After(s.now) {
			s.now = t.at
		}
		t.f()
	}
	s.now = end
}

type fakeProxy struct {
	row       RowPosition
	center    Point
	transform Transform
	alpha     float64
	destroyed bool
}

func (p *fakeProxy) Center() Point            { return p.center }
func (p *fakeProxy) SetCenter(center Point)   { p.center = center }
func (p *fakeProxy) SetTransform(t Transform) { p.transform = t }
func (p *fakeProxy) SetAlpha(alpha float64)   { p.alpha = alpha }

// fakeSurface is a column of one-cell-high rows starting at line 0. Animations
// apply immediately unless deferred is set.
type fakeSurface struct {
	rows    []string
	hidden  map[int]bool
	proxies []*fakeProxy

	moves       [][2]RowPosition
	visibility  int
	deferred    bool
	completions []func()

	failCenter bool
}

func newFakeSurface(rows ...string) *fakeSurface {
	return &fakeSurface{rows: rows, hidden: make(map[int]bool)}
}

func (s *fakeSurface) PositionAt(p Point) (RowPosition, bool) {
	if p.Y < 0 || int(p.Y) >= len(s.rows) {
		return RowPosition{}, false
	}
	return Pos(int(p.Y)), true
}

func (s *fakeSurface) RowCount(section int) int {
	if section != 0 {
		return 0
	}
	return len(s.rows)
}

func (s *fakeSurface) MoveRow(from, to RowPosition) {
	s.moves = append(s.moves, [2]RowPosition{from, to})
	row := s.rows[from.Row]
	s.rows = slices.Delete(s.rows, from.Row, from.Row+1)
	s.rows = slices.Insert(s.rows, to.Row, row)

	// Visibility follows the moved row.
	hidden := s.hidden[from.Row]
	delete(s.hidden, from.Row)
	shifted := make(map[int]bool, len(s.hidden))
	for i, h := range s.hidden {
		switch {
		case from.Row < to.Row && i > from.Row && i <= to.Row:
			i--
		case from.Row > to.Row && i >= to.Row && i < from.Row:
			i++
		}
		shifted[i] = h
	}
	shifted[to.Row] = hidden
	s.hidden = shifted
}

func (s *fakeSurface) SetRowVisible(pos RowPosition, visible bool) {
	s.visibility++
	s.hidden[pos.Row] = !visible
}

func (s *fakeSurface) CenterOf(pos RowPosition) (Point, error) {
	if s.failCenter || pos.Row < 0 || pos.Row >= len(s.rows) {
		return Point{}, ErrRowOutOfRange
	}
	return Point{X: 10, Y: float64(pos.Row) + 0.5}, nil
}

func (s *fakeSurface) CreateProxy(pos RowPosition) (Proxy, error) {
	p := &fakeProxy{row: pos, transform: IdentityTransform, alpha: 1}
	s.proxies = append(s.proxies, p)
	return p, nil
}

func (s *fakeSurface) DestroyProxy(proxy Proxy) {
	proxy.(*fakeProxy).destroyed = true
}

func (s *fakeSurface) Animate(d time.Duration, mutations func(), onComplete func()) {
	mutations()
	if onComplete == nil {
		return
	}
	if s.deferred {
		s.completions = append(s.completions, onComplete)
		return
	}
	onComplete()
}

func (s *fakeSurface) hiddenRows() []int {
	var rows []int
	for i, h := range s.hidden {
		if h {
			rows = append(rows, i)
		}
	}
	slices.Sort(rows)
	return rows
}

func (s *fakeSurface) liveProxies() int {
	n := 0
	for _, p := range s.proxies {
		if !p.destroyed {
			n++
		}
	}
	return n
}

type endedCall struct {
	source, end RowPosition
}

type recordingListener struct {
	ended []endedCall
	moved [][2]RowPosition
}

func (l *recordingListener) OnDragEnded(source, end RowPosition) {
	l.ended = append(l.ended, endedCall{source, end})
}

func (l *recordingListener) OnDragMoved(from, to RowPosition) {
	l.moved = append(l.moved, [2]RowPosition{from, to})
}

// row returns the point in the middle of row i of a fakeSurface.
func row(i int) Point {
	return Point{X: 10, Y: float64(i) + 0.5}
}

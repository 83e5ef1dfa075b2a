package dragsort

import (
	"errors"
	"math"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/xqrs/dragsort/keybind"
)

// ErrRowOutOfRange is returned when a position does not name a row of the list.
var ErrRowOutOfRange = errors.New("row out of range")

type listRow struct {
	text  string
	alpha float64
}

// ReorderList displays a single-section list of text rows which the user can
// reorder by long-pressing a row and dragging it. While a row is dragged it
// is hidden in the list and a floating copy of it follows the pointer.
//
// ReorderList is the RowSurface of its own DragController.
type ReorderList struct {
	*Box

	rows      []*listRow
	rowHeight int
	offset    int
	cursor    int

	mainStyle     tcell.Style
	selectedStyle tcell.Style
	proxyStyle    tcell.Style

	keys ListKeyMap

	controller *DragController
	press      *LongPress
	animator   *Animator
	proxies    []*rowProxy
	scrollBar  *scrollBar

	// Values set inside an Animate mutation, mapped to their value before it.
	capture map[*float64]float64

	changed func(index int)
}

// NewReorderList returns an empty list.
func NewReorderList() *ReorderList {
	l := &ReorderList{
		Box:           NewBox(),
		rowHeight:     1,
		cursor:        -1,
		mainStyle:     tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.PrimitiveBackgroundColor),
		selectedStyle: tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.ContrastBackgroundColor),
		proxyStyle:    tcell.StyleDefault.Foreground(Styles.PrimaryTextColor).Background(Styles.ProxyBackgroundColor).Bold(true),
		keys:          DefaultListKeyMap(),
		animator:      NewAnimator(nil),
		scrollBar:     newScrollBar(),
	}
	l.keys.CancelDrag.SetEnabled(false)
	l.controller = NewDragController(l, nil)
	l.press = NewLongPress(l.handleGesture)
	l.animator.SetFrameFunc(l.MarkDirty)
	return l
}

// SetItems replaces the rows. An active drag is cancelled first.
func (l *ReorderList) SetItems(items ...string) *ReorderList {
	l.press.Cancel()
	l.animator.Finish()
	l.controller.resetEdge()
	l.rows = make([]*listRow, 0, len(items))
	for _, text := range items {
		l.rows = append(l.rows, &listRow{text: text, alpha: 1})
	}
	l.offset = 0
	l.setCursor(min(l.cursor, len(l.rows)-1))
	l.MarkDirty()
	return l
}

// AddItem appends a row.
func (l *ReorderList) AddItem(text string) *ReorderList {
	l.rows = append(l.rows, &listRow{text: text, alpha: 1})
	l.MarkDirty()
	return l
}

// Items returns the row texts in their current order.
func (l *ReorderList) Items() []string {
	items := make([]string, len(l.rows))
	for i, row := range l.rows {
		items[i] = row.text
	}
	return items
}

// ItemCount returns the number of rows.
func (l *ReorderList) ItemCount() int {
	return len(l.rows)
}

// SetRowHeight sets the number of lines each row occupies.
func (l *ReorderList) SetRowHeight(height int) *ReorderList {
	l.rowHeight = max(height, 1)
	l.MarkDirty()
	return l
}

// SetMainTextStyle sets the style of unselected rows.
func (l *ReorderList) SetMainTextStyle(style tcell.Style) *ReorderList {
	l.mainStyle = style
	l.MarkDirty()
	return l
}

// SetSelectedStyle sets the style of the row under the cursor.
func (l *ReorderList) SetSelectedStyle(style tcell.Style) *ReorderList {
	l.selectedStyle = style
	l.MarkDirty()
	return l
}

// SetProxyStyle sets the style of the floating copy of a dragged row.
func (l *ReorderList) SetProxyStyle(style tcell.Style) *ReorderList {
	l.proxyStyle = style
	return l
}

// SetScrollBarGlyphs sets the runes of the scroll bar shown when the rows do
// not fit.
func (l *ReorderList) SetScrollBarGlyphs(glyphs GlyphSet) *ReorderList {
	l.scrollBar.glyphs = glyphs
	l.MarkDirty()
	return l
}

// KeyMap returns the keys the list reacts to.
func (l *ReorderList) KeyMap() ListKeyMap {
	return l.keys
}

// SetKeyMap replaces the keys the list reacts to.
func (l *ReorderList) SetKeyMap(keys ListKeyMap) *ReorderList {
	keys.CancelDrag.SetEnabled(l.Dragging())
	l.keys = keys
	return l
}

// SetListener sets who is told about finished drags. It may implement
// MoveListener to follow every live reorder as well.
func (l *ReorderList) SetListener(listener Listener) *ReorderList {
	l.controller.SetListener(listener)
	return l
}

// SetDragEndedFunc is a shortcut for SetListener(ListenerFunc(handler)).
func (l *ReorderList) SetDragEndedFunc(handler func(source, end RowPosition)) *ReorderList {
	if handler == nil {
		return l.SetListener(nil)
	}
	return l.SetListener(ListenerFunc(handler))
}

// SetChangedFunc sets a handler that is called when the cursor changes.
func (l *ReorderList) SetChangedFunc(handler func(index int)) *ReorderList {
	l.changed = handler
	return l
}

// DragConfig returns the drag configuration.
func (l *ReorderList) DragConfig() Config {
	return l.controller.Config()
}

// SetDragConfig replaces the drag configuration. It fails while dragging.
func (l *ReorderList) SetDragConfig(config Config) error {
	return l.controller.SetConfig(config)
}

// SetLongPressDuration sets how long a row must be held before it lifts.
func (l *ReorderList) SetLongPressDuration(d time.Duration) *ReorderList {
	l.press.SetMinimumDuration(d)
	return l
}

// SetScheduler sets the scheduler driving the long-press timer and the
// animations, usually the Application. Without one, rows lift on press and
// animations jump to their end.
func (l *ReorderList) SetScheduler(scheduler Scheduler) *ReorderList {
	l.press.SetScheduler(scheduler)
	l.animator.SetScheduler(scheduler)
	return l
}

// Controller returns the drag controller of the list.
func (l *ReorderList) Controller() *DragController {
	return l.controller
}

// Dragging reports whether a row is being dragged.
func (l *ReorderList) Dragging() bool {
	return l.controller.Dragging()
}

// Cursor returns the selected row, or -1.
func (l *ReorderList) Cursor() int {
	return l.cursor
}

// SetCursor selects a row and scrolls it into view.
func (l *ReorderList) SetCursor(index int) *ReorderList {
	l.setCursor(index)
	return l
}

func (l *ReorderList) setCursor(index int) {
	if len(l.rows) == 0 {
		index = -1
	} else {
		index = min(max(index, 0), len(l.rows)-1)
	}
	if index == l.cursor {
		return
	}
	l.cursor = index
	l.ensureVisible()
	l.MarkDirty()
	if l.changed != nil {
		l.changed(index)
	}
}

func (l *ReorderList) visibleRows() int {
	_, _, _, height := l.GetInnerRect()
	return max(height/l.rowHeight, 1)
}

func (l *ReorderList) ensureVisible() {
	if l.cursor < 0 {
		return
	}
	visible := l.visibleRows()
	if l.cursor < l.offset {
		l.offset = l.cursor
	} else if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
}

func (l *ReorderList) scroll(rows int) {
	l.offset += rows
	l.clampOffset()
	l.MarkDirty()
}

func (l *ReorderList) clampOffset() {
	l.offset = min(l.offset, len(l.rows)-l.visibleRows())
	l.offset = max(l.offset, 0)
}

// PositionAt returns the row under p.
func (l *ReorderList) PositionAt(p Point) (RowPosition, bool) {
	px, py := int(math.Floor(p.X)), int(math.Floor(p.Y))
	if !l.InInnerRect(px, py) {
		return RowPosition{}, false
	}
	_, y, _, _ := l.GetInnerRect()
	index := l.offset + (py-y)/l.rowHeight
	if index >= len(l.rows) {
		return RowPosition{}, false
	}
	return Pos(index), true
}

// RowCount returns the number of rows in section, which is 0 for any section
// but the first.
func (l *ReorderList) RowCount(section int) int {
	if section != 0 {
		return 0
	}
	return len(l.rows)
}

// MoveRow moves the row at from to to, shifting the rows in between.
func (l *ReorderList) MoveRow(from, to RowPosition) {
	l.mustContain("move row", from)
	l.mustContain("move row", to)
	row := l.rows[from.Row]
	l.rows = slices.Delete(l.rows, from.Row, from.Row+1)
	l.rows = slices.Insert(l.rows, to.Row, row)
	l.MarkDirty()
}

// SetRowVisible shows or hides the row at pos.
func (l *ReorderList) SetRowVisible(pos RowPosition, visible bool) {
	l.mustContain("set row visible", pos)
	alpha := 0.0
	if visible {
		alpha = 1
	}
	l.setValue(&l.rows[pos.Row].alpha, alpha)
}

// CenterOf returns the screen center of the row at pos.
func (l *ReorderList) CenterOf(pos RowPosition) (Point, error) {
	if !l.contains(pos) {
		return Point{}, ErrRowOutOfRange
	}
	x, y, width, _ := l.GetInnerRect()
	return Point{
		X: float64(x) + float64(width)/2,
		Y: float64(y+(pos.Row-l.offset)*l.rowHeight) + float64(l.rowHeight)/2,
	}, nil
}

// CreateProxy returns a floating copy of the row at pos, centered on it.
func (l *ReorderList) CreateProxy(pos RowPosition) (Proxy, error) {
	center, err := l.CenterOf(pos)
	if err != nil {
		return nil, err
	}
	proxy := &rowProxy{
		list:    l,
		text:    l.rows[pos.Row].text,
		style:   l.proxyStyle,
		centerX: center.X,
		centerY: center.Y,
		scaleX:  1,
		scaleY:  1,
		alpha:   1,
	}
	l.proxies = append(l.proxies, proxy)
	l.MarkDirty()
	return proxy, nil
}

// DestroyProxy removes a proxy created by CreateProxy.
func (l *ReorderList) DestroyProxy(proxy Proxy) {
	p, ok := proxy.(*rowProxy)
	if !ok || p.list != l {
		return
	}
	for _, value := range p.values() {
		l.animator.Cancel(value)
	}
	l.proxies = slices.DeleteFunc(l.proxies, func(other *rowProxy) bool {
		return other == p
	})
	l.MarkDirty()
}

// Animate runs mutations, then animates every row and proxy property they
// changed from its old to its new value.
func (l *ReorderList) Animate(duration time.Duration, mutations func(), onComplete func()) {
	outer := l.capture
	l.capture = make(map[*float64]float64)
	mutations()
	captured := l.capture
	l.capture = outer

	tweens := make([]Tween, 0, len(captured))
	for value, from := range captured {
		if from != *value {
			tweens = append(tweens, Tween{Value: value, From: from, To: *value})
		}
	}
	l.animator.Animate(duration, tweens, onComplete)
}

// setValue assigns an animatable property. Outside of Animate it stops any
// animation of the property.
func (l *ReorderList) setValue(value *float64, v float64) {
	if l.capture != nil {
		if _, ok := l.capture[value]; !ok {
			l.capture[value] = *value
		}
	} else {
		l.animator.Cancel(value)
	}
	*value = v
	l.MarkDirty()
}

func (l *ReorderList) contains(pos RowPosition) bool {
	return pos.Section == 0 && pos.Row >= 0 && pos.Row < len(l.rows)
}

func (l *ReorderList) mustContain(op string, pos RowPosition) {
	if !l.contains(pos) {
		panic(&ContractError{Op: op, Position: pos, Err: ErrRowOutOfRange})
	}
}

func (l *ReorderList) handleGesture(phase GesturePhase, p Point) {
	dropped, wasDragging := l.controller.Current()
	if err := l.controller.Handle(phase, p); err != nil {
		return
	}
	if current, ok := l.controller.Current(); ok {
		l.setCursor(current.Row)
	} else if wasDragging {
		l.setCursor(dropped.Row)
	}
	l.keys.CancelDrag.SetEnabled(l.controller.Dragging())
}

func (l *ReorderList) tracking() bool {
	return l.press.Active() || l.press.Pending()
}

// Draw draws this primitive onto the screen.
func (l *ReorderList) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	if !l.Dragging() {
		l.clampOffset()
	}

	l.scrollBar.set(len(l.rows)*l.rowHeight, height, l.offset*l.rowHeight)
	rowWidth := width
	if l.scrollBar.visible() {
		rowWidth--
		l.scrollBar.draw(screen, x+rowWidth, y, height)
	}

	backdrop := l.GetBackgroundColor()
	inner := newClippedScreen(screen, x, y, rowWidth, height)
	for index := l.offset; index < len(l.rows); index++ {
		top := y + (index-l.offset)*l.rowHeight
		if top >= y+height {
			break
		}
		row := l.rows[index]
		if row.alpha <= 0 {
			continue
		}
		style := l.mainStyle
		if index == l.cursor && l.HasFocus() {
			style = l.selectedStyle
		}
		style = fadeStyle(style, row.alpha, backdrop)
		fill(inner, x, top, rowWidth, l.rowHeight, style)
		Print(inner, row.text, x+1, top+(l.rowHeight-1)/2, rowWidth-2, AlignmentLeft, style)
	}

	// Proxies float above the rows and may overlap the border.
	ox, oy, ow, oh := l.GetRect()
	outer := newClippedScreen(screen, ox, oy, ow, oh)
	for _, proxy := range l.proxies {
		proxy.draw(outer, width, l.rowHeight, backdrop)
	}
	l.MarkClean()
}

// InputHandler handles cursor movement and cancels drags.
func (l *ReorderList) InputHandler(event *tcell.EventKey) Command {
	keys := l.keys
	if keybind.Matches(event, keys.CancelDrag) {
		l.press.Cancel()
		return RedrawCommand{}
	}
	if l.tracking() {
		return nil
	}

	switch {
	case keybind.Matches(event, keys.Up):
		l.setCursor(l.cursor - 1)
	case keybind.Matches(event, keys.Down):
		l.setCursor(l.cursor + 1)
	case keybind.Matches(event, keys.PageUp):
		l.setCursor(l.cursor - l.visibleRows())
	case keybind.Matches(event, keys.PageDown):
		l.setCursor(l.cursor + l.visibleRows())
	case keybind.Matches(event, keys.Top):
		l.setCursor(0)
	case keybind.Matches(event, keys.Bottom):
		l.setCursor(len(l.rows) - 1)
	default:
		return nil
	}
	return RedrawCommand{}
}

// MouseHandler turns a long press on a row into a drag. While the button is
// held the list captures the mouse, so the drag keeps being tracked when the
// pointer leaves the list.
func (l *ReorderList) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()
	p := PointAt(x, y)

	switch action {
	case MouseLeftDown:
		if !l.InRect(x, y) {
			return nil, nil
		}
		focus := SetFocusCommand{Target: l}
		if _, ok := l.PositionAt(p); !ok {
			return nil, focus
		}
		l.press.Press(p)
		return l, AppendCommand(focus, RedrawCommand{})
	case MouseMove:
		if l.tracking() {
			l.press.Drag(p)
			return l, RedrawCommand{}
		}
	case MouseLeftUp:
		if l.tracking() {
			l.press.Release(p)
			return nil, RedrawCommand{}
		}
	case MouseLeftClick:
		if pos, ok := l.PositionAt(p); ok && !l.Dragging() {
			l.setCursor(pos.Row)
			return nil, RedrawCommand{}
		}
	case MouseScrollUp, MouseScrollDown:
		// The list never scrolls under a dragged row.
		if l.tracking() || !l.InRect(x, y) {
			return nil, nil
		}
		if action == MouseScrollUp {
			l.scroll(-1)
		} else {
			l.scroll(1)
		}
		return nil, RedrawCommand{}
	}
	return nil, nil
}

var (
	_ Primitive  = &ReorderList{}
	_ RowSurface = &ReorderList{}
)

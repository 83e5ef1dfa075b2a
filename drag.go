package dragsort

import "errors"

var (
	// ErrNoRowAtPoint is returned when a drag cannot start because the pointer
	// is not over a row and no edge row has been recorded to fall back on.
	ErrNoRowAtPoint = errors.New("no row at pointer")
	// ErrDragInProgress is returned for operations that are not allowed while
	// a drag is active.
	ErrDragInProgress = errors.New("drag in progress")
)

type dragState interface {
	isDragState()
}

type idleState struct{}

type draggingState struct {
	// Where the drag began. Reported unchanged when the drag ends.
	source RowPosition
	// The slot the dragged row occupies in the live list.
	current RowPosition
	// The most recent first or last row the pointer resolved to.
	lastKnownGood edgeMark
	proxy         Proxy
}

func (idleState) isDragState()      {}
func (*draggingState) isDragState() {}

type edgeMark struct {
	pos RowPosition
	ok  bool
}

// DragController turns a press, drag and release gesture into a live reorder
// of a RowSurface. It keeps at most one drag at a time and must be driven from
// a single goroutine.
type DragController struct {
	surface  RowSurface
	listener Listener
	config   Config
	state    dragState

	// The edge mark survives the session that recorded it.
	edge edgeMark
}

// NewDragController returns an idle controller for surface. The listener is
// not owned by the controller and may be nil.
func NewDragController(surface RowSurface, listener Listener) *DragController {
	return &DragController{
		surface:  surface,
		listener: listener,
		config:   DefaultConfig(),
		state:    idleState{},
	}
}

// SetListener replaces the listener. A nil listener silences notifications.
func (c *DragController) SetListener(listener Listener) *DragController {
	c.listener = listener
	return c
}

// Config returns the current configuration.
func (c *DragController) Config() Config {
	return c.config
}

// SetConfig replaces the configuration. It fails while a drag is active or
// when the configuration does not validate.
func (c *DragController) SetConfig(config Config) error {
	if c.Dragging() {
		return ErrDragInProgress
	}
	if err := config.Validate(); err != nil {
		return err
	}
	c.config = config
	return nil
}

// Dragging reports whether a drag is in progress.
func (c *DragController) Dragging() bool {
	_, ok := c.state.(*draggingState)
	return ok
}

// Source returns the position the active drag started at.
func (c *DragController) Source() (RowPosition, bool) {
	if s, ok := c.state.(*draggingState); ok {
		return s.source, true
	}
	return RowPosition{}, false
}

// Current returns the position the dragged row occupies right now.
func (c *DragController) Current() (RowPosition, bool) {
	if s, ok := c.state.(*draggingState); ok {
		return s.current, true
	}
	return RowPosition{}, false
}

// Handle feeds one gesture phase to the controller. Ended, cancelled and
// failed gestures all end the drag the same way.
func (c *DragController) Handle(phase GesturePhase, p Point) error {
	switch phase {
	case GestureBegan:
		return c.Begin(p)
	case GestureChanged:
		c.Move(p)
	case GestureEnded, GestureCancelled, GestureFailed:
		c.End()
	}
	return nil
}

// Begin lifts the row under p.
func (c *DragController) Begin(p Point) error {
	if c.Dragging() {
		return ErrDragInProgress
	}

	mark := c.edge
	pos, ok := c.resolve(p, &mark)
	c.edge = mark
	if !ok {
		return ErrNoRowAtPoint
	}

	center := c.centerOf(pos)
	proxy, err := c.surface.CreateProxy(pos)
	if err != nil {
		panic(&ContractError{Op: "create proxy", Position: pos, Err: err})
	}
	proxy.SetCenter(center)
	proxy.SetAlpha(0)

	c.state = &draggingState{
		source:        pos,
		current:       pos,
		lastKnownGood: mark,
		proxy:         proxy,
	}

	config := c.config
	c.surface.Animate(config.PickUpDuration, func() {
		proxy.SetCenter(Point{X: center.X, Y: p.Y})
		proxy.SetTransform(config.PickUpTransform)
		proxy.SetAlpha(config.DraggingAlpha)
		c.surface.SetRowVisible(pos, false)
	}, nil)
	return nil
}

// Move makes the proxy follow p and reorders the list when p has crossed
// into another row. It does nothing while idle.
func (c *DragController) Move(p Point) {
	s, ok := c.state.(*draggingState)
	if !ok {
		return
	}

	center := s.proxy.Center()
	center.Y = p.Y
	s.proxy.SetCenter(center)

	// Resolve against the row count from before this event's reorder.
	to, ok := c.resolve(p, &s.lastKnownGood)
	if !ok || to == s.current {
		return
	}

	from := s.current
	c.surface.MoveRow(from, to)
	c.surface.SetRowVisible(to, false)
	s.current = to

	if m, ok := c.listener.(MoveListener); ok {
		m.OnDragMoved(from, to)
	}
}

// End drops the dragged row into its current slot. The listener is notified
// before the drop animation starts; the proxy is destroyed once it finishes.
func (c *DragController) End() {
	s, ok := c.state.(*draggingState)
	if !ok {
		return
	}
	c.state = idleState{}
	c.edge = s.lastKnownGood

	if c.listener != nil {
		c.listener.OnDragEnded(s.source, s.current)
	}

	pos, proxy, config := s.current, s.proxy, c.config
	center := c.centerOf(pos)
	c.surface.SetRowVisible(pos, false)
	c.surface.Animate(config.DepositDuration, func() {
		proxy.SetCenter(center)
		proxy.SetTransform(config.DepositTransform)
		proxy.SetAlpha(0)
		c.surface.SetRowVisible(pos, true)
	}, func() {
		c.surface.DestroyProxy(proxy)
	})
}

// resetEdge forgets the edge row kept from earlier drags. Owners call it
// when they replace their rows.
func (c *DragController) resetEdge() {
	c.edge = edgeMark{}
}

// resolve maps p to a row. An unresolvable point falls back to the edge row
// recorded in mark, provided that row still exists; resolving to the first
// or last row records it.
func (c *DragController) resolve(p Point, mark *edgeMark) (RowPosition, bool) {
	pos, ok := c.surface.PositionAt(p)
	if !ok {
		if !mark.ok || mark.pos.Row < 0 || mark.pos.Row >= c.surface.RowCount(mark.pos.Section) {
			return RowPosition{}, false
		}
		return mark.pos, true
	}
	if pos.Row == 0 || pos.Row == c.surface.RowCount(pos.Section)-1 {
		*mark = edgeMark{pos: pos, ok: true}
	}
	return pos, true
}

func (c *DragController) centerOf(pos RowPosition) Point {
	center, err := c.surface.CenterOf(pos)
	if err != nil {
		panic(&ContractError{Op: "center", Position: pos, Err: err})
	}
	return center
}

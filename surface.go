package dragsort

import (
	"fmt"
	"time"
)

// Point is a pointer coordinate in screen cells. Fractional values appear
// while a proxy is being animated between cells.
type Point struct {
	X, Y float64
}

// PointAt returns the point for the cell at column x and line y.
func PointAt(x, y int) Point {
	return Point{X: float64(x), Y: float64(y)}
}

// Proxy is the floating stand-in for a dragged row.
type Proxy interface {
	Center() Point
	SetCenter(center Point)
	SetTransform(t Transform)
	SetAlpha(alpha float64)
}

// RowSurface is the scrollable list a DragController reorders.
//
// MoveRow must be reflected by PositionAt immediately. Animate captures the
// values set by mutations as animation targets and calls onComplete, if not
// nil, once the animation has finished.
type RowSurface interface {
	PositionAt(p Point) (RowPosition, bool)
	RowCount(section int) int
	MoveRow(from, to RowPosition)
	SetRowVisible(pos RowPosition, visible bool)
	CenterOf(pos RowPosition) (Point, error)
	CreateProxy(pos RowPosition) (Proxy, error)
	DestroyProxy(proxy Proxy)
	Animate(duration time.Duration, mutations func(), onComplete func())
}

// Scheduler runs f on the owning event loop after d has elapsed. The returned
// function cancels the call and reports whether it was still pending.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}

// ContractError is the panic value raised when a RowSurface cannot produce a
// row the controller holds during an active drag.
type ContractError struct {
	Op       string
	Position RowPosition
	Err      error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("row surface %s at %s: %v", e.Op, e.Position, e.Err)
}

func (e *ContractError) Unwrap() error {
	return e.Err
}

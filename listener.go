package dragsort

import "weak"

// Listener is told where a drag started and where the row was released.
type Listener interface {
	OnDragEnded(source, end RowPosition)
}

// MoveListener is an optional extension of Listener that is told about each
// live reorder while the drag is still in progress.
type MoveListener interface {
	OnDragMoved(from, to RowPosition)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(source, end RowPosition)

// OnDragEnded calls f(source, end).
func (f ListenerFunc) OnDragEnded(source, end RowPosition) {
	f(source, end)
}

type weakListener[T any, PT interface {
	*T
	Listener
}] struct {
	ref weak.Pointer[T]
}

// WeakListener returns a Listener that forwards to owner without keeping it
// alive. Once owner has been collected the notifications are dropped.
func WeakListener[T any, PT interface {
	*T
	Listener
}](owner PT) Listener {
	return &weakListener[T, PT]{ref: weak.Make((*T)(owner))}
}

func (w *weakListener[T, PT]) OnDragEnded(source, end RowPosition) {
	if owner := w.ref.Value(); owner != nil {
		PT(owner).OnDragEnded(source, end)
	}
}

func (w *weakListener[T, PT]) OnDragMoved(from, to RowPosition) {
	owner := w.ref.Value()
	if owner == nil {
		return
	}
	if m, ok := any(PT(owner)).(MoveListener); ok {
		m.OnDragMoved(from, to)
	}
}

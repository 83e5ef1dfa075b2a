package dragsort

import (
	"math"
	"time"
)

// GesturePhase is the state a continuous gesture reports to its handler.
type GesturePhase int

const (
	GestureBegan GesturePhase = iota
	GestureChanged
	GestureEnded
	GestureCancelled
	GestureFailed
)

func (p GesturePhase) String() string {
	switch p {
	case GestureBegan:
		return "began"
	case GestureChanged:
		return "changed"
	case GestureEnded:
		return "ended"
	case GestureCancelled:
		return "cancelled"
	case GestureFailed:
		return "failed"
	}
	return "unknown"
}

const (
	// DefaultPressDuration is how long the button has to be held before a
	// long press begins.
	DefaultPressDuration = 500 * time.Millisecond
	// DefaultAllowableMovement is how far, in cells, the pointer may wander
	// before the long press begins without the press failing.
	DefaultAllowableMovement = 1
)

type pressState int

const (
	pressIdle pressState = iota
	pressPossible
	pressActive
)

// LongPress recognizes a press that is held in place for a minimum duration
// and then follows the pointer until release. Press, Drag, Release and Cancel
// must be called from the event loop the scheduler delivers to.
type LongPress struct {
	minimumDuration   time.Duration
	allowableMovement float64
	scheduler         Scheduler
	handler           func(phase GesturePhase, p Point)

	state        pressState
	origin, last Point
	stopTimer    func() bool
	generation   uint64
}

// NewLongPress returns a recognizer reporting to handler.
func NewLongPress(handler func(phase GesturePhase, p Point)) *LongPress {
	return &LongPress{
		minimumDuration:   DefaultPressDuration,
		allowableMovement: DefaultAllowableMovement,
		handler:           handler,
	}
}

// SetMinimumDuration sets the hold time. Zero begins the gesture on press.
func (l *LongPress) SetMinimumDuration(d time.Duration) *LongPress {
	l.minimumDuration = d
	return l
}

// SetAllowableMovement sets how far the pointer may move during the hold.
func (l *LongPress) SetAllowableMovement(cells float64) *LongPress {
	l.allowableMovement = cells
	return l
}

// SetScheduler sets the scheduler used for the hold timer. Without one the
// gesture begins as soon as the button is pressed.
func (l *LongPress) SetScheduler(scheduler Scheduler) *LongPress {
	l.scheduler = scheduler
	return l
}

// Active reports whether the gesture has begun and not yet ended.
func (l *LongPress) Active() bool {
	return l.state == pressActive
}

// Pending reports whether a press is being held but has not begun yet.
func (l *LongPress) Pending() bool {
	return l.state == pressPossible
}

// Press starts tracking a press at p.
func (l *LongPress) Press(p Point) {
	if l.state != pressIdle {
		return
	}
	l.state = pressPossible
	l.origin, l.last = p, p

	if l.minimumDuration <= 0 || l.scheduler == nil {
		l.begin()
		return
	}

	l.generation++
	generation := l.generation
	l.stopTimer = l.scheduler.AfterFunc(l.minimumDuration, func() {
		// The timer may have fired after the press was already resolved.
		if l.generation == generation && l.state == pressPossible {
			l.stopTimer = nil
			l.begin()
		}
	})
}

// Drag reports a pointer move while the button is held.
func (l *LongPress) Drag(p Point) {
	l.last = p
	switch l.state {
	case pressPossible:
		if math.Max(math.Abs(p.X-l.origin.X), math.Abs(p.Y-l.origin.Y)) > l.allowableMovement {
			l.reset()
		}
	case pressActive:
		l.handler(GestureChanged, p)
	}
}

// Release reports that the button was let go at p.
func (l *LongPress) Release(p Point) {
	l.last = p
	switch l.state {
	case pressPossible:
		l.reset()
	case pressActive:
		l.state = pressIdle
		l.handler(GestureEnded, p)
	}
}

// Cancel aborts the gesture. An active gesture reports GestureCancelled at
// the last known pointer position.
func (l *LongPress) Cancel() {
	switch l.state {
	case pressPossible:
		l.reset()
	case pressActive:
		l.state = pressIdle
		l.handler(GestureCancelled, l.last)
	}
}

func (l *LongPress) begin() {
	l.state = pressActive
	l.handler(GestureBegan, l.last)
}

func (l *LongPress) reset() {
	if l.stopTimer != nil {
		l.stopTimer()
		l.stopTimer = nil
	}
	l.generation++
	l.state = pressIdle
}

package dragsort

import (
	"slices"
	"time"
)

// FrameInterval is the time between two animation frames.
var FrameInterval = 33 * time.Millisecond

// Tween moves the float at Value from From to To.
type Tween struct {
	Value    *float64
	From, To float64
}

type animation struct {
	start      time.Time
	duration   time.Duration
	tweens     []Tween
	onComplete func()
}

// Animator interpolates float values over time. Frames are driven by a
// Scheduler, so every value change and completion callback happens on the
// scheduler's event loop.
type Animator struct {
	scheduler Scheduler
	now       func() time.Time
	onFrame   func()

	running  []*animation
	stopTick func() bool
	// Bumped whenever the tick chain is stopped, so a tick that was already
	// queued when it got stopped does nothing.
	generation int
}

// NewAnimator returns an animator driven by scheduler. A nil scheduler makes
// every animation complete immediately.
func NewAnimator(scheduler Scheduler) *Animator {
	return &Animator{
		scheduler: scheduler,
		now:       time.Now,
	}
}

// SetScheduler replaces the scheduler. Running animations are finished first.
func (a *Animator) SetScheduler(scheduler Scheduler) *Animator {
	a.Finish()
	a.scheduler = scheduler
	return a
}

// SetClock replaces the time source.
func (a *Animator) SetClock(now func() time.Time) *Animator {
	a.now = now
	return a
}

// SetFrameFunc sets a callback invoked after every frame, typically to mark
// the owner dirty.
func (a *Animator) SetFrameFunc(handler func()) *Animator {
	a.onFrame = handler
	return a
}

// Running reports whether any animation is in flight.
func (a *Animator) Running() bool {
	return len(a.running) > 0
}

// Animate starts moving each tween's value from From to To over duration and
// calls onComplete, if not nil, once done. Values already animated by an
// earlier animation are taken over by this one.
func (a *Animator) Animate(duration time.Duration, tweens []Tween, onComplete func()) {
	for _, tween := range tweens {
		a.Cancel(tween.Value)
	}

	if duration <= 0 || a.scheduler == nil {
		for _, tween := range tweens {
			*tween.Value = tween.To
		}
		if a.onFrame != nil {
			a.onFrame()
		}
		if onComplete != nil {
			onComplete()
		}
		return
	}

	for _, tween := range tweens {
		*tween.Value = tween.From
	}
	a.running = append(a.running, &animation{
		start:      a.now(),
		duration:   duration,
		tweens:     tweens,
		onComplete: onComplete,
	})
	a.schedule()
}

// Cancel stops animating value, leaving it where it currently is. The
// animation it belonged to still completes on time.
func (a *Animator) Cancel(value *float64) {
	for _, anim := range a.running {
		anim.tweens = slices.DeleteFunc(anim.tweens, func(t Tween) bool {
			return t.Value == value
		})
	}
}

// Finish jumps every running animation to its end and runs the completions.
func (a *Animator) Finish() {
	if a.stopTick != nil {
		a.stopTick()
		a.stopTick = nil
	}
	a.generation++
	running := a.running
	a.running = nil
	for _, anim := range running {
		for _, tween := range anim.tweens {
			*tween.Value = tween.To
		}
	}
	for _, anim := range running {
		if anim.onComplete != nil {
			anim.onComplete()
		}
	}
}

func (a *Animator) schedule() {
	if a.stopTick != nil || len(a.running) == 0 {
		return
	}
	generation := a.generation
	a.stopTick = a.scheduler.AfterFunc(FrameInterval, func() {
		if a.generation == generation {
			a.tick()
		}
	})
}

func (a *Animator) tick() {
	a.stopTick = nil
	now := a.now()

	var finished []*animation
	a.running = slices.DeleteFunc(a.running, func(anim *animation) bool {
		progress := float64(now.Sub(anim.start)) / float64(anim.duration)
		if progress > 1 {
			progress = 1
		}
		eased := easeInOut(progress)
		for _, tween := range anim.tweens {
			*tween.Value = tween.From + (tween.To-tween.From)*eased
		}
		if progress >= 1 {
			finished = append(finished, anim)
			return true
		}
		return false
	})

	if a.onFrame != nil {
		a.onFrame()
	}
	for _, anim := range finished {
		if anim.onComplete != nil {
			anim.onComplete()
		}
	}
	a.schedule()
}

func easeInOut(t float64) float64 {
	return t * t * (3 - 2*t)
}

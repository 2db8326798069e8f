package goblib

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// NewTweenTask creates a task that interpolates a value from from to to
// over duration seconds using the given easing function, calling apply with
// the current value every frame. The task kills itself when the tween
// completes, so it is pruned from the tree automatically.
//
// The scheduler's dt is interpreted as seconds here; drive the tween from a
// Run loop (dt = 1/TPS) or pass consistent units yourself.
func NewTweenTask(name string, priority int, from, to, duration float32, fn ease.TweenFunc, apply func(float32)) *Task {
	tw := gween.New(from, to, duration, fn)
	t := NewTask(name, priority)
	t.OnExecute = func(dt float64) {
		v, finished := tw.Update(float32(dt))
		if apply != nil {
			apply(v)
		}
		if finished {
			t.Kill(false)
		}
	}
	return t
}

// NewTimerTask creates a one-shot task that calls fire after the given
// number of seconds of accumulated dt, then kills itself.
func NewTimerTask(name string, priority int, seconds float64, fire func()) *Task {
	t := NewTask(name, priority)
	var elapsed float64
	t.OnExecute = func(dt float64) {
		elapsed += dt
		if elapsed < seconds {
			return
		}
		if fire != nil {
			fire()
		}
		t.Kill(false)
	}
	return t
}

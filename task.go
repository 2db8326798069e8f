package goblib

import "fmt"

// State is a task's primary lifecycle state. Exactly one primary state is
// active at a time; the pause and kill flags are tracked separately so that
// illegal combinations cannot be represented.
type State uint8

const (
	StateInitialize State = iota // waiting for OnInitialize to report ready
	StateExecute                 // running; OnExecute is called every pump
	StateRelease                 // tearing down; killed once OnRelease reports done
	StateRestart                 // tearing down, then re-initializing
)

// String returns a short lowercase name for the state.
func (s State) String() string {
	switch s {
	case StateInitialize:
		return "init"
	case StateExecute:
		return "exec"
	case StateRelease:
		return "release"
	case StateRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Message is a tagged payload delivered to tasks through a Scheduler.
// Messages are values; posting copies them into the scheduler's queue.
// The delivery target is resolved by the Post/Send APIs, never set by the
// caller.
type Message struct {
	Code uint32
	Arg  any

	target *Task
}

// Task is a schedulable unit in a Tree: a tag, a priority, a lifecycle
// state machine, and the intrusive child/sibling links of the tree itself.
//
// Behavior is supplied through the optional callback fields. All of them
// default to nil; a Task with no callbacks initializes immediately, executes
// as a no-op, and releases immediately. Callbacks are invoked only from
// Scheduler.Pump (or Send/Broadcast for OnReceive) on the single goroutine
// driving the scheduler.
type Task struct {
	// Name is a short display tag used by Dump. Purely informational.
	Name string

	priority int
	state    State
	paused   bool
	killed   bool

	child   *Task
	sibling *Task

	// OnInitialize is polled once per pump while the task is initializing.
	// Returning false requests another attempt next frame. nil reads as true.
	OnInitialize func() bool

	// OnExecute runs once per pump while the task is executing and not
	// paused. dt is the scheduler's delta, passed through unmodified.
	OnExecute func(dt float64)

	// OnRelease is polled once per pump while the task is releasing or
	// restarting. Returning false requests another attempt next frame.
	// nil reads as true. A task that never returns true stalls forever;
	// that is the caller's responsibility, not detected by the scheduler.
	OnRelease func() bool

	// OnReceive handles messages delivered to this task.
	OnReceive func(Message)

	// OnChain and OnUnchain fire when the task enters or leaves a Tree.
	OnChain   func()
	OnUnchain func()
}

// NewTask creates a task in the initializing state. Tasks with a higher
// priority run before their lower-priority siblings; equal-priority siblings
// run newest-first.
func NewTask(name string, priority int) *Task {
	t := &Task{}
	taskInit(t, name, priority)
	return t
}

// taskInit sets up an embedded or preallocated Task in place.
func taskInit(t *Task, name string, priority int) {
	t.Name = name
	t.priority = priority
	t.state = StateInitialize
}

// Priority returns the task's priority. Priority is fixed at creation;
// changing it after insertion would corrupt the sibling ordering.
func (t *Task) Priority() int { return t.priority }

// State returns the task's primary lifecycle state.
func (t *Task) State() State { return t.state }

// FirstChild returns the task's first (highest-priority) child, or nil.
func (t *Task) FirstChild() *Task { return t.child }

// NextSibling returns the task's next sibling, or nil.
func (t *Task) NextSibling() *Task { return t.sibling }

// IsInitializing reports whether the task is waiting on OnInitialize.
func (t *Task) IsInitializing() bool { return t.state == StateInitialize }

// IsExecuting reports whether the task is in the execute state.
func (t *Task) IsExecuting() bool { return t.state == StateExecute }

// IsReleasing reports whether the task is in the release state.
func (t *Task) IsReleasing() bool { return t.state == StateRelease }

// IsPaused reports whether the task's per-frame execution is suppressed.
// Pause never blocks state transitions, only OnExecute.
func (t *Task) IsPaused() bool { return t.paused }

// IsKilled reports whether the task is marked for pruning. A killed task
// stays inspectable in the tree until the next Pump removes it.
func (t *Task) IsKilled() bool { return t.killed }

// String formats the task for diagnostics.
func (t *Task) String() string {
	flags := ""
	if t.paused {
		flags += "P"
	}
	if t.killed {
		flags += "K"
	}
	return fmt.Sprintf("[%s] %s%s pri=%d", t.Name, t.state, flags, t.priority)
}

// step advances the state machine by one frame. Killed tasks are inert.
//
// A restarting task whose OnRelease completes falls through to the
// initialize handling in the same frame.
func (t *Task) step(dt float64) {
	if t.killed {
		return
	}
	switch t.state {
	case StateExecute:
		if !t.paused && t.OnExecute != nil {
			t.OnExecute(dt)
		}

	case StateRestart:
		if !t.release() {
			return
		}
		t.state = StateInitialize
		fallthrough
	case StateInitialize:
		if t.initialize() {
			t.state = StateExecute
		}

	case StateRelease:
		if t.release() {
			t.killed = true
		}
	}
}

func (t *Task) initialize() bool {
	if t.OnInitialize == nil {
		return true
	}
	return t.OnInitialize()
}

func (t *Task) release() bool {
	if t.OnRelease == nil {
		return true
	}
	return t.OnRelease()
}

func (t *Task) receive(m Message) {
	if t.OnReceive != nil {
		t.OnReceive(m)
	}
}

// Release moves the task into the release state and clears its pause flag,
// so a paused task can still tear down. Once OnRelease reports completion
// the task is killed and pruned on the next Pump. With cascade, every
// descendant is released as well (siblings of t are not touched).
func (t *Task) Release(cascade bool) {
	t.applyRelease()
	if cascade {
		eachDescendant(t, (*Task).applyRelease)
	}
}

func (t *Task) applyRelease() {
	t.state = StateRelease
	t.paused = false
}

// Restart moves the task into the restart state: OnRelease runs to
// completion, then the task re-initializes. Pause and kill flags are kept.
// With cascade, every descendant is restarted as well.
func (t *Task) Restart(cascade bool) {
	t.applyRestart()
	if cascade {
		eachDescendant(t, (*Task).applyRestart)
	}
}

func (t *Task) applyRestart() {
	t.state = StateRestart
}

// Kill marks the task for pruning on the next Pump without touching its
// primary state. Kill does not cascade implicitly: pruning a killed task
// reparents its live children to the killed task's former parent. Pass
// cascade to take the whole subtree down.
func (t *Task) Kill(cascade bool) {
	t.killed = true
	if cascade {
		eachDescendant(t, func(c *Task) { c.killed = true })
	}
}

// SetPaused sets or clears the pause flag. A paused task skips OnExecute
// but still advances through initialize/release/restart transitions.
// With cascade, the flag is applied to every descendant as well.
func (t *Task) SetPaused(b, cascade bool) {
	t.paused = b
	if cascade {
		eachDescendant(t, func(c *Task) { c.paused = b })
	}
}

// Pause is shorthand for SetPaused(true, cascade).
func (t *Task) Pause(cascade bool) { t.SetPaused(true, cascade) }

// Resume is shorthand for SetPaused(false, cascade).
func (t *Task) Resume(cascade bool) { t.SetPaused(false, cascade) }

// eachDescendant applies fn to every descendant of t, pre-order.
func eachDescendant(t *Task, fn func(*Task)) {
	if t.child != nil {
		walkChain(t.child, fn)
	}
}

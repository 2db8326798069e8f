package goblib

import (
	"fmt"
	"io"
)

// SceneID identifies a scene. Zero is reserved to mean "no scene" in the
// enter/leave/change callbacks.
type SceneID uint32

// Scene is one frame of an application-level navigation stack, implemented
// as a task. A scene lives in the scheduler's tree as a child of the
// Director that owns it; its own children are the tasks that make up the
// scene's content, so pausing or releasing the scene cascades naturally.
type Scene struct {
	Task

	id       SceneID
	director *Director

	// OnEnter fires when this scene becomes current: on push with
	// resume=false, or when the scene above it is popped with resume=true.
	// prev is the scene that was current before, or 0.
	OnEnter func(prev SceneID, resume bool)

	// OnLeave fires when this scene stops being current, either because a
	// new scene was pushed over it or because it was popped. next is the
	// scene becoming current, or 0.
	OnLeave func(next SceneID)
}

// NewScene creates a scene task. id must be non-zero.
func NewScene(id SceneID, name string, priority int) *Scene {
	if id == 0 {
		panic("goblib: scene id must be non-zero")
	}
	sc := &Scene{id: id}
	taskInit(&sc.Task, name, priority)
	return sc
}

// ID returns the scene's identifier.
func (sc *Scene) ID() SceneID { return sc.id }

// Director returns the director currently managing this scene, or nil.
func (sc *Scene) Director() *Director { return sc.director }

// Push pushes next onto the stack of the director managing this scene.
// Panics when the scene is not managed.
func (sc *Scene) Push(next *Scene) {
	if sc.director == nil {
		panic("goblib: scene is not managed by a director")
	}
	sc.director.Push(next)
}

// Pop pops this director's current scene. Panics when the scene is not
// managed.
func (sc *Scene) Pop() {
	if sc.director == nil {
		panic("goblib: scene is not managed by a director")
	}
	sc.director.Pop()
}

// Director manages a LIFO stack of scenes on top of a Scheduler. It is
// itself a task in the tree; the scenes it manages are its children, stored
// redundantly in an explicit stack for O(1) access to the current scene.
//
// Pushing pauses the outgoing scene (and its subtree) but keeps it in the
// tree; popping releases the outgoing scene's subtree and resumes the one
// below. All transitions are task-level operations, so actual tree changes
// land at the usual deferred points inside Pump.
type Director struct {
	Task

	sched *Scheduler
	stack []*Scene // back is the current scene

	// OnChange fires after every completed push or pop with the new and
	// previous current scene ids (0 for none).
	OnChange func(to, from SceneID)
}

// NewDirector creates a director and reserve-inserts it into the
// scheduler's tree under parent (nil parent means top level). The director
// joins the tree on the scheduler's next Pump.
func NewDirector(sched *Scheduler, priority int, parent *Task) *Director {
	if sched == nil {
		panic("goblib: nil scheduler")
	}
	d := &Director{sched: sched, stack: make([]*Scene, 0, 8)}
	taskInit(&d.Task, "director", priority)
	d.Task.OnRelease = d.releaseScenes
	sched.ReserveInsert(&d.Task, parent)
	return d
}

// Current returns the scene on top of the stack, or nil when empty.
func (d *Director) Current() *Scene {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

// Depth returns the number of scenes on the stack.
func (d *Director) Depth() int { return len(d.stack) }

// Push makes sc the current scene. The outgoing scene, if any, is paused
// together with its subtree and notified through OnLeave; sc is
// reserve-inserted as a child of the director and notified through OnEnter.
// Panics when sc is nil or already managed by a director.
func (d *Director) Push(sc *Scene) {
	if sc == nil {
		panic("goblib: cannot push nil scene")
	}
	if sc.director != nil {
		panic("goblib: scene is already managed by a director")
	}

	var prev SceneID
	if cur := d.Current(); cur != nil {
		prev = cur.id
		cur.Pause(true)
		if cur.OnLeave != nil {
			cur.OnLeave(sc.id)
		}
	}

	d.sched.ReserveInsert(&sc.Task, &d.Task)
	d.stack = append(d.stack, sc)
	sc.director = d

	if sc.OnEnter != nil {
		sc.OnEnter(prev, false)
	}
	if d.OnChange != nil {
		d.OnChange(sc.id, prev)
	}
}

// Pop removes the current scene: it is notified through OnLeave, released
// together with its subtree (removal happens on the next Pump), and
// detached from the director. The scene below, if any, is resumed and
// notified through OnEnter with resume=true. No-op on an empty stack.
func (d *Director) Pop() {
	if len(d.stack) == 0 {
		return
	}

	out := d.stack[len(d.stack)-1]
	d.stack[len(d.stack)-1] = nil
	d.stack = d.stack[:len(d.stack)-1]

	var next SceneID
	cur := d.Current()
	if cur != nil {
		next = cur.id
	}

	if out.OnLeave != nil {
		out.OnLeave(next)
	}
	out.Release(true)
	out.director = nil

	if cur != nil {
		cur.Resume(true)
		if cur.OnEnter != nil {
			cur.OnEnter(out.id, true)
		}
	}
	if d.OnChange != nil {
		d.OnChange(next, out.id)
	}
}

// releaseScenes is the director's own OnRelease: it re-releases its whole
// subtree every frame and reports completion only once every tracked scene
// has been killed, so releasing the director tears down the entire scene
// stack as one task-tree operation.
func (d *Director) releaseScenes() bool {
	d.Task.Release(true)
	for _, sc := range d.stack {
		if !sc.IsKilled() {
			return false
		}
	}
	return true
}

// Dump writes the scene stack to w, current scene first, with a "C" marker
// on the current line. Debugging aid, not a stable format.
func (d *Director) Dump(w io.Writer) {
	fmt.Fprintf(w, "scenes:%d\n", len(d.stack))
	for i := len(d.stack) - 1; i >= 0; i-- {
		sc := d.stack[i]
		marker := " "
		if i == len(d.stack)-1 {
			marker = "C"
		}
		fmt.Fprintf(w, "%s [%s] id=%d\n", marker, sc.Name, sc.id)
	}
}

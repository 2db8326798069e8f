package goblib

import (
	"fmt"
	"io"
)

// Scheduler drives a Tree of tasks from an external fixed-step loop.
// Call Pump once per frame; everything else (message delivery, deferred
// insertion, pruning) hangs off that one call in a fixed order.
//
// A Scheduler is strictly single-threaded: all methods must be called from
// the one goroutine that owns the game loop. There are no locks anywhere in
// this package; "yielding" is a task returning false from OnInitialize or
// OnRelease to be revisited next frame.
type Scheduler struct {
	Tree

	// Post queues, drained at the start of every Pump. The spare slices are
	// recycled as the next frame's queues so steady-state pumping does not
	// allocate.
	posted         []Message
	postedSpare    []Message
	broadcast      []Message
	broadcastSpare []Message

	paused bool
}

// defaultQueueCap is the message queue capacity used by NewScheduler
// callers that have no better estimate.
const defaultQueueCap = 16

// NewScheduler creates a scheduler whose post queues are preallocated for
// queueCap messages. queueCap must be positive; defaultQueueCap is a
// reasonable hint.
func NewScheduler(queueCap int) *Scheduler {
	if queueCap <= 0 {
		panic("goblib: queue capacity must be positive")
	}
	s := &Scheduler{}
	taskInit(&s.Tree.root, "root", 0)
	s.posted = make([]Message, 0, queueCap)
	s.postedSpare = make([]Message, 0, queueCap)
	s.broadcast = make([]Message, 0, queueCap)
	s.broadcastSpare = make([]Message, 0, queueCap)
	return s
}

// SetPaused pauses or resumes the scheduler as a whole. While paused, Pump
// returns immediately: no messages are delivered, no task steps, no tree
// mutation is committed.
func (s *Scheduler) SetPaused(b bool) { s.paused = b }

// IsPaused reports whether the scheduler as a whole is paused.
func (s *Scheduler) IsPaused() bool { return s.paused }

// PauseAll sets the pause flag on every task in the tree. Unlike SetPaused
// this does not stop the pump cycle; state transitions and message delivery
// continue, only OnExecute is suppressed.
func (s *Scheduler) PauseAll() {
	s.Walk(func(t *Task) { t.paused = true })
}

// ResumeAll clears the pause flag on every task in the tree.
func (s *Scheduler) ResumeAll() {
	s.Walk(func(t *Task) { t.paused = false })
}

// Pump runs one scheduler tick:
//
//  1. return immediately when the scheduler is paused
//  2. deliver queued broadcast messages, then queued targeted messages
//  3. step every live task's state machine in pre-order
//  4. commit reserved insertions
//  5. prune killed tasks
//
// The order is load-bearing. Messages posted last frame are visible to this
// frame's OnExecute; tasks reserved during step 3 are not visited until the
// next Pump; kills requested during step 3 take effect only after this
// frame's traversal.
//
// dt is an opaque delta passed through to OnExecute; the scheduler does no
// timing of its own.
func (s *Scheduler) Pump(dt float64) {
	if s.paused {
		return
	}
	s.deliver()
	s.Walk(func(t *Task) { t.step(dt) })
	s.InsertReserved()
	s.RemoveIf((*Task).IsKilled)
}

// deliver drains both post queues. The queues are swapped out first so that
// messages posted from inside OnReceive land in the fresh queues and are
// delivered on the following Pump, never re-entrantly within this one.
func (s *Scheduler) deliver() {
	bq := s.broadcast
	s.broadcast = s.broadcastSpare[:0]
	tq := s.posted
	s.posted = s.postedSpare[:0]

	for i := range bq {
		s.broadcastTo(bq[i], bq[i].target)
	}
	for i := range tq {
		tq[i].target.receive(tq[i])
	}

	s.broadcastSpare = bq[:0]
	s.postedSpare = tq[:0]
}

// Send delivers m to target immediately, before returning.
func (s *Scheduler) Send(m Message, target *Task) {
	if target == nil {
		panic("goblib: nil message target")
	}
	target.receive(m)
}

// Post queues m for delivery to target at the start of the next Pump,
// before any task executes that frame.
func (s *Scheduler) Post(m Message, target *Task) {
	if target == nil {
		panic("goblib: nil message target")
	}
	m.target = target
	s.posted = append(s.posted, m)
}

// Broadcast delivers m immediately to top and every task below it.
// A nil top broadcasts to every task in the tree.
func (s *Scheduler) Broadcast(m Message, top *Task) {
	s.broadcastTo(m, top)
}

// PostBroadcast queues m for delivery to top and every task below it at the
// start of the next Pump. A nil top broadcasts to every task in the tree.
func (s *Scheduler) PostBroadcast(m Message, top *Task) {
	m.target = top
	s.broadcast = append(s.broadcast, m)
}

func (s *Scheduler) broadcastTo(m Message, top *Task) {
	if top == nil || top == &s.root {
		s.Walk(func(t *Task) { t.receive(m) })
		return
	}
	s.WalkSubtree(top, func(t *Task) { t.receive(m) })
}

// Pending returns the number of undelivered targeted messages.
func (s *Scheduler) Pending() int { return len(s.posted) }

// PendingBroadcast returns the number of undelivered broadcast messages.
func (s *Scheduler) PendingBroadcast() int { return len(s.broadcast) }

// Dump writes a human-readable listing of the tree to w: one task per line,
// indented by depth, with tag, state, flags, and priority. The format is a
// debugging aid, not a stable interface.
func (s *Scheduler) Dump(w io.Writer) {
	fmt.Fprintf(w, "scheduler paused:%v tasks:%d reserved:%d\n",
		s.paused, s.Len(), s.Reserved())
	s.WalkDepth(func(t *Task, depth int) {
		fmt.Fprintf(w, "%*s%s\n", depth*2, "", t.String())
	})
}

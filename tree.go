package goblib

// Tree is a left-child/right-sibling tree of tasks. A single concrete node
// type is used instead of a generic node interface to avoid interface
// dispatch on the hot path; the sibling/child links live directly on Task.
//
// The tree never owns node memory. Inserting only rewires links, removing
// only unwires them; the caller controls every Task's lifetime and must keep
// a task alive for as long as it is chained in (or reserved for) a tree.
//
// Sibling chains are kept in non-increasing priority order. A newly inserted
// node is placed before the first existing sibling whose priority is less
// than or equal to its own, so equal-priority siblings appear in
// reverse-insertion order. This tie-break is a defined part of the contract,
// not an accident of the sort.
type Tree struct {
	root    Task
	pending []pendingInsert

	// OnInsert is called after a task has been chained into the tree.
	// OnRemove is called after a task has been unchained. Both are optional.
	OnInsert func(*Task)
	OnRemove func(*Task)
}

// pendingInsert is one entry in the deferred-insertion queue.
// An explicit queue is used rather than repurposing node links as scratch
// storage, so a reserved task's links never hold stale data.
type pendingInsert struct {
	task   *Task
	parent *Task
}

// NewTree creates an empty tree. The root is a persistent sentinel owned by
// the tree itself; it never participates in sibling ordering and is never
// removed.
func NewTree() *Tree {
	t := &Tree{}
	taskInit(&t.root, "root", 0)
	return t
}

// Root returns the tree's sentinel root task. Use it as the parent argument
// to make a task top-level, or pass nil for the same effect.
func (tr *Tree) Root() *Task {
	return &tr.root
}

// Len returns the number of tasks in the tree, excluding the root sentinel
// and any reserved-but-not-yet-inserted tasks.
func (tr *Tree) Len() int {
	n := 0
	if tr.root.child != nil {
		walkChain(tr.root.child, func(*Task) { n++ })
	}
	return n
}

// Reserved returns the number of tasks waiting in the deferred-insertion
// queue.
func (tr *Tree) Reserved() int {
	return len(tr.pending)
}

// Contains reports whether t is currently chained into the tree.
// Reserved tasks are not contained until InsertReserved commits them.
func (tr *Tree) Contains(t *Task) bool {
	found := false
	if tr.root.child != nil {
		walkChain(tr.root.child, func(c *Task) {
			if c == t {
				found = true
			}
		})
	}
	return found
}

// Clear detaches every task from the tree and drops the pending queue.
// Task memory is not released and the detached tasks' own links are left
// as-is; reuse them only through Insert or ReserveInsert.
func (tr *Tree) Clear() {
	tr.root.child = nil
	tr.pending = tr.pending[:0]
}

// Insert chains t into the tree as a child of parent (nil parent means the
// root), keeping the parent's child chain in priority order.
//
// Insert must not be called while a Walk or Pump is traversing the tree;
// use ReserveInsert from inside callbacks instead.
func (tr *Tree) Insert(t, parent *Task) {
	if t == nil {
		panic("goblib: cannot insert nil task")
	}
	if t == &tr.root {
		panic("goblib: cannot insert the root sentinel")
	}
	if parent == nil {
		parent = &tr.root
	}

	t.sibling = nil
	parent.child = insertSorted(parent.child, t)

	if t.OnChain != nil {
		t.OnChain()
	}
	if tr.OnInsert != nil {
		tr.OnInsert(t)
	}
}

// ReserveInsert queues t for insertion as a child of parent (nil parent
// means the root). The queue preserves registration order and is committed
// by InsertReserved, which Scheduler.Pump calls at a fixed point each frame.
// This is the only safe way to grow the tree from inside a task callback.
func (tr *Tree) ReserveInsert(t, parent *Task) {
	if t == nil {
		panic("goblib: cannot reserve nil task")
	}
	if t == &tr.root {
		panic("goblib: cannot insert the root sentinel")
	}
	tr.pending = append(tr.pending, pendingInsert{task: t, parent: parent})
}

// InsertReserved commits every queued insertion in FIFO order and empties
// the queue. Reservations made while committing, say from an OnChain hook,
// are committed in the same pass. Called automatically by Scheduler.Pump;
// call it directly only when driving a bare Tree.
func (tr *Tree) InsertReserved() {
	for i := 0; i < len(tr.pending); i++ {
		p := tr.pending[i]
		tr.pending[i] = pendingInsert{}
		tr.Insert(p.task, p.parent)
	}
	tr.pending = tr.pending[:0]
}

// Remove unchains t from the tree. Children of t are reparented to t's
// former parent as new siblings, re-merged in priority order. No-op when t
// is not in the tree.
func (tr *Tree) Remove(t *Task) {
	tr.RemoveIf(func(c *Task) bool { return c == t })
}

// RemoveIf unchains every task for which pred returns true. The prune is
// post-order: a removed task's children have already been filtered when
// they are spliced onto the former right-sibling chain and merged back in
// priority order, so removal composes over whole subtrees. Task memory is
// never released.
func (tr *Tree) RemoveIf(pred func(*Task) bool) {
	tr.root.child = tr.removeIf(pred, tr.root.child)
}

func (tr *Tree) removeIf(pred func(*Task) bool, t *Task) *Task {
	if t == nil {
		return nil
	}
	t.child = tr.removeIf(pred, t.child)
	t.sibling = tr.removeIf(pred, t.sibling)
	if !pred(t) {
		return t
	}

	child, sibling := t.child, t.sibling
	t.child, t.sibling = nil, nil

	if t.OnUnchain != nil {
		t.OnUnchain()
	}
	if tr.OnRemove != nil {
		tr.OnRemove(t)
	}

	switch {
	case child == nil:
		return sibling
	case sibling == nil:
		return child
	}

	// Concatenate the orphaned children onto the sibling chain's tail,
	// then rebuild the whole chain in priority order.
	chainTail(sibling).sibling = child
	return mergeSorted(sibling)
}

// Walk visits every task in the tree in pre-order: a task, then its
// children, then its next sibling. The root sentinel is skipped.
//
// fn must not mutate the tree directly; reserve insertions and kill flags
// are the supported mutation paths during traversal.
func (tr *Tree) Walk(fn func(*Task)) {
	if tr.root.child != nil {
		walkChain(tr.root.child, fn)
	}
}

// WalkSubtree visits t and all of its descendants in pre-order, without
// continuing to t's own siblings. This is the shape broadcast delivery uses.
func (tr *Tree) WalkSubtree(t *Task, fn func(*Task)) {
	if t == nil {
		return
	}
	fn(t)
	if t.child != nil {
		walkChain(t.child, fn)
	}
}

// WalkDepth visits every task in pre-order along with its depth below the
// root (top-level tasks are depth 0). Intended for diagnostics such as Dump.
func (tr *Tree) WalkDepth(fn func(*Task, int)) {
	walkDepth(tr.root.child, 0, fn)
}

// walkChain visits t, t's descendants, and t's right siblings in pre-order.
func walkChain(t *Task, fn func(*Task)) {
	for p := t; p != nil; p = p.sibling {
		fn(p)
		if p.child != nil {
			walkChain(p.child, fn)
		}
	}
}

func walkDepth(t *Task, depth int, fn func(*Task, int)) {
	for p := t; p != nil; p = p.sibling {
		fn(p, depth)
		if p.child != nil {
			walkDepth(p.child, depth+1, fn)
		}
	}
}

// chainTail returns the last node of a sibling chain.
func chainTail(t *Task) *Task {
	p := t
	for p.sibling != nil {
		p = p.sibling
	}
	return p
}

// insertSorted places node into the sorted sibling chain headed by head and
// returns the new head. The node goes before the first sibling whose
// priority is <= its own, which keeps the chain non-increasing and puts new
// nodes ahead of their equal-priority peers.
func insertSorted(head, node *Task) *Task {
	if head == nil || head.priority <= node.priority {
		node.sibling = head
		return node
	}
	cur := head
	for cur.sibling != nil && cur.sibling.priority > node.priority {
		cur = cur.sibling
	}
	node.sibling = cur.sibling
	cur.sibling = node
	return head
}

// mergeSorted rebuilds an arbitrary sibling chain into priority order by
// re-inserting each node in chain order. Nodes processed later land ahead
// of equal-priority nodes processed earlier, mirroring the tie-break of
// insertSorted.
func mergeSorted(head *Task) *Task {
	var sorted *Task
	cur := head
	for cur != nil {
		next := cur.sibling
		sorted = insertSorted(sorted, cur)
		cur = next
	}
	return sorted
}

package goblib

import "testing"

// --- State machine ---

func TestTaskDefaultsRunImmediately(t *testing.T) {
	// All callbacks nil: initialize succeeds on the first step, execute on
	// the second.
	task := NewTask("t", 0)
	if !task.IsInitializing() {
		t.Fatal("new task should be initializing")
	}
	task.step(1)
	if !task.IsExecuting() {
		t.Error("task with nil OnInitialize should reach execute in one step")
	}
}

func TestTaskInitializeRetries(t *testing.T) {
	const readyAfter = 3
	calls := 0
	executed := 0

	task := NewTask("t", 0)
	task.OnInitialize = func() bool {
		calls++
		return calls >= readyAfter
	}
	task.OnExecute = func(float64) { executed++ }

	for i := 1; i < readyAfter; i++ {
		task.step(1)
		if !task.IsInitializing() {
			t.Fatalf("step %d: state = %v, want initializing", i, task.State())
		}
	}

	// The step on which OnInitialize succeeds transitions to execute but
	// does not run OnExecute yet.
	task.step(1)
	if !task.IsExecuting() {
		t.Fatalf("state = %v after successful initialize, want executing", task.State())
	}
	if executed != 0 {
		t.Errorf("OnExecute ran %d times during initialize, want 0", executed)
	}

	task.step(1)
	if executed != 1 {
		t.Errorf("OnExecute ran %d times, want 1", executed)
	}
}

func TestTaskReleaseRetries(t *testing.T) {
	done := false
	task := NewTask("t", 0)
	task.OnRelease = func() bool { return done }
	task.step(1) // initialize -> execute

	task.Release(false)
	task.step(1)
	if !task.IsReleasing() || task.IsKilled() {
		t.Error("release should retry while OnRelease returns false")
	}

	done = true
	task.step(1)
	if !task.IsKilled() {
		t.Error("task should be killed once OnRelease returns true")
	}
}

func TestTaskRestartFallsThroughSameFrame(t *testing.T) {
	released := 0
	initialized := 0
	task := NewTask("t", 0)
	task.OnRelease = func() bool { released++; return true }
	task.OnInitialize = func() bool { initialized++; return true }

	task.step(1) // initial initialize
	task.Restart(false)

	task.step(1)
	if released != 1 {
		t.Errorf("OnRelease calls = %d, want 1", released)
	}
	if initialized != 2 {
		t.Errorf("OnInitialize calls = %d, want 2 (restart re-initializes the same frame)", initialized)
	}
	if !task.IsExecuting() {
		t.Errorf("state = %v after restart, want executing", task.State())
	}
}

func TestTaskRestartWaitsOnRelease(t *testing.T) {
	task := NewTask("t", 0)
	done := false
	task.OnRelease = func() bool { return done }
	task.step(1)
	task.Restart(false)

	task.step(1)
	if task.State() != StateRestart {
		t.Errorf("state = %v, want restart while OnRelease is false", task.State())
	}

	done = true
	task.step(1)
	if !task.IsExecuting() {
		t.Errorf("state = %v, want executing after restart completes", task.State())
	}
}

// --- Pause ---

func TestPauseSuppressesExecuteOnly(t *testing.T) {
	executed := 0
	task := NewTask("t", 0)
	task.OnExecute = func(float64) { executed++ }

	task.Pause(false)
	task.step(1) // initialize still advances while paused
	if !task.IsExecuting() {
		t.Error("pause must not block the initialize transition")
	}

	task.step(1)
	if executed != 0 {
		t.Errorf("OnExecute ran %d times while paused, want 0", executed)
	}

	task.Resume(false)
	task.step(1)
	if executed != 1 {
		t.Errorf("OnExecute ran %d times after resume, want 1", executed)
	}
}

func TestReleaseClearsPause(t *testing.T) {
	task := NewTask("t", 0)
	task.Pause(false)
	task.Release(false)
	if task.IsPaused() {
		t.Error("Release should clear the pause flag")
	}
}

// --- Kill ---

func TestKillMakesStepInert(t *testing.T) {
	executed := 0
	task := NewTask("t", 0)
	task.OnExecute = func(float64) { executed++ }
	task.step(1)

	task.Kill(false)
	if !task.IsKilled() {
		t.Fatal("task should be killed")
	}
	if !task.IsExecuting() {
		t.Error("Kill should leave the primary state inspectable")
	}

	task.step(1)
	if executed != 0 {
		t.Errorf("killed task executed %d times, want 0", executed)
	}
}

// --- Cascading ---

// buildFamily returns parent with two children and one grandchild, plus a
// sibling of parent, all chained into a fresh tree.
func buildFamily(t *testing.T) (tr *Tree, parent, c1, c2, gc, sib *Task) {
	t.Helper()
	tr = NewTree()
	parent = NewTask("parent", 20)
	c1 = NewTask("c1", 10)
	c2 = NewTask("c2", 5)
	gc = NewTask("gc", 0)
	sib = NewTask("sib", 1)
	tr.Insert(parent, nil)
	tr.Insert(sib, nil)
	tr.Insert(c1, parent)
	tr.Insert(c2, parent)
	tr.Insert(gc, c1)
	return
}

func TestCascadeCoversDescendantsNotSiblings(t *testing.T) {
	_, parent, c1, c2, gc, sib := buildFamily(t)

	parent.Pause(true)

	for _, c := range []*Task{parent, c1, c2, gc} {
		if !c.IsPaused() {
			t.Errorf("%s should be paused", c.Name)
		}
	}
	if sib.IsPaused() {
		t.Error("cascade must not touch siblings of the start node")
	}
}

func TestCascadeKill(t *testing.T) {
	_, parent, c1, c2, gc, sib := buildFamily(t)

	parent.Kill(true)

	for _, c := range []*Task{parent, c1, c2, gc} {
		if !c.IsKilled() {
			t.Errorf("%s should be killed", c.Name)
		}
	}
	if sib.IsKilled() {
		t.Error("sibling must survive cascading kill")
	}
}

func TestNonCascadingKillSparesChildren(t *testing.T) {
	tr, parent, c1, c2, gc, _ := buildFamily(t)

	parent.Kill(false)
	tr.RemoveIf((*Task).IsKilled)

	// Children are reparented, not killed.
	for _, c := range []*Task{c1, c2, gc} {
		if c.IsKilled() {
			t.Errorf("%s should not be killed", c.Name)
		}
		if !tr.Contains(c) {
			t.Errorf("%s should remain in the tree", c.Name)
		}
	}
}

func TestCascadeRelease(t *testing.T) {
	_, parent, c1, _, gc, sib := buildFamily(t)
	c1.Pause(true) // paused subtree must still release

	parent.Release(true)

	for _, c := range []*Task{parent, c1, gc} {
		if !c.IsReleasing() {
			t.Errorf("%s state = %v, want releasing", c.Name, c.State())
		}
		if c.IsPaused() {
			t.Errorf("%s should have pause cleared by release", c.Name)
		}
	}
	if sib.IsReleasing() {
		t.Error("sibling must not be released")
	}
}

// --- Misc ---

func TestTaskString(t *testing.T) {
	task := NewTask("hero", 42)
	task.Pause(false)
	task.Kill(false)
	got := task.String()
	want := "[hero] initPK pri=42"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateInitialize, "init"},
		{StateExecute, "exec"},
		{StateRelease, "release"},
		{StateRestart, "restart"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

// Package goblib is a hierarchical cooperative task scheduler for
// [Ebitengine]-style fixed-step game loops.
//
// Tasks form a priority-ordered tree driven by one [Scheduler.Pump] call
// per frame. Each task is a small state machine (initialize, execute,
// release, restart) with optional pause and deferred kill; lifecycle
// operations can cascade down a subtree, and a deterministic message bus
// delivers targeted or broadcast messages at a fixed point in the frame.
// On top of the tree, [Director] and [Scene] implement a scene stack:
// pushing pauses the outgoing scene in place, popping tears the scene's
// subtree down through the normal release path.
//
// Everything is single-threaded and cooperative. There are no goroutines,
// locks, or channels in this package; a task "yields" by returning false
// from OnInitialize or OnRelease to be revisited next frame.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// pumps the scheduler at ebiten's tick rate:
//
//	sched := goblib.NewScheduler(16)
//
//	hero := goblib.NewTask("hero", 10)
//	hero.OnExecute = func(dt float64) { /* per-frame work */ }
//	sched.Insert(hero, nil)
//
//	goblib.Run(sched, goblib.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scheduler.Pump] from Update with your own delta.
//
// # Frame order
//
// Pump runs a fixed sequence: queued messages are delivered first, then
// every live task steps in pre-order, then reserved insertions are
// committed, then killed tasks are pruned. Tasks spawned during a frame
// must go through [Tree.ReserveInsert]; they join the tree at the end of
// the frame and run from the next one. Kills likewise take effect at the
// end of the frame, never mid-traversal.
//
// # Ownership
//
// The tree never owns task memory. It only rewires child/sibling links;
// callers keep tasks alive while they are chained or reserved, and may
// recycle them through [Pool] once pruned.
//
// # Scenes
//
//	sched := goblib.NewScheduler(16)
//	director := goblib.NewDirector(sched, 0, nil)
//
//	title := goblib.NewScene(1, "title", 0)
//	title.OnEnter = func(prev goblib.SceneID, resume bool) { /* ... */ }
//	director.Push(title)
//
// Tween and timer helpers ([NewTweenTask], [NewTimerTask]) wrap [gween]
// easings as self-terminating tasks.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package goblib

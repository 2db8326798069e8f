package goblib

// Pool is a fixed-capacity object pool. All slots are allocated up front in
// one backing array; Acquire and Release only move pointers, so steady-state
// use never touches the allocator. Useful for the caller-owned task memory
// this package's trees expect: acquire tasks from a pool, release them after
// they have been pruned.
//
// Pool is not safe for concurrent use, matching the rest of the package.
type Pool[T any] struct {
	slots []T
	free  []*T
}

// NewPool creates a pool with the given number of slots. size must be
// positive.
func NewPool[T any](size int) *Pool[T] {
	if size <= 0 {
		panic("goblib: pool size must be positive")
	}
	p := &Pool[T]{
		slots: make([]T, size),
		free:  make([]*T, 0, size),
	}
	for i := size - 1; i >= 0; i-- {
		p.free = append(p.free, &p.slots[i])
	}
	return p
}

// Cap returns the pool's total capacity.
func (p *Pool[T]) Cap() int { return len(p.slots) }

// Available returns the number of free slots.
func (p *Pool[T]) Available() int { return len(p.free) }

// Acquire takes a zeroed slot from the pool. ok is false when the pool is
// exhausted; that is an expected runtime condition, not an error.
func (p *Pool[T]) Acquire() (ptr *T, ok bool) {
	if len(p.free) == 0 {
		return nil, false
	}
	ptr = p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return ptr, true
}

// Release returns a slot to the pool, zeroing it first. ptr must have come
// from Acquire on this pool and must not be released twice; neither is
// checked. Releasing nil is a no-op.
func (p *Pool[T]) Release(ptr *T) {
	if ptr == nil {
		return
	}
	var zero T
	*ptr = zero
	p.free = append(p.free, ptr)
}

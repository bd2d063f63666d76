// Package pool provides fixed-capacity object pools backed by a free-list.
//
// Members live in a single array allocated up front. A member is either
// active (handed out) or free; Activate and Deactivate are the only state
// transitions, so pooled objects are recycled instead of reallocated.
package pool

import "iter"

// Pool is a fixed-capacity collection of reusable T values.
type Pool[T any] struct {
	items  []T
	active []bool
	free   []int // stack of free slot indices, lowest index on top
	count  int   // number of active members
}

// New creates a pool with the given capacity. init, if non-nil, is called
// once per slot to prepare the zero value.
func New[T any](capacity int, init func(i int, item *T)) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{
		items:  make([]T, capacity),
		active: make([]bool, capacity),
		free:   make([]int, 0, capacity),
	}
	if init != nil {
		for i := range p.items {
			init(i, &p.items[i])
		}
	}
	p.Reset()
	return p
}

// Activate hands out the first inactive member, i.e. the free slot with the
// lowest index. It returns false when every member is active.
func (p *Pool[T]) Activate() (*T, bool) {
	n := len(p.free)
	if n == 0 {
		return nil, false
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	p.active[idx] = true
	p.count++
	return &p.items[idx], true
}

// Deactivate returns a member to the free-list. It reports whether the
// member was active; deactivating a free member or a pointer that does not
// belong to the pool is a no-op.
func (p *Pool[T]) Deactivate(item *T) bool {
	idx, ok := p.indexOf(item)
	if !ok || !p.active[idx] {
		return false
	}
	p.active[idx] = false
	p.count--
	p.pushFree(idx)
	return true
}

// IsActive reports whether item is an active member of the pool.
func (p *Pool[T]) IsActive(item *T) bool {
	idx, ok := p.indexOf(item)
	return ok && p.active[idx]
}

// Reset deactivates every member.
func (p *Pool[T]) Reset() {
	clear(p.active)
	p.count = 0
	p.free = p.free[:0]
	for i := len(p.items) - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
}

// Active returns the number of active members.
func (p *Pool[T]) Active() int {
	return p.count
}

// Free returns the number of members available to Activate.
func (p *Pool[T]) Free() int {
	return len(p.free)
}

// Cap returns the fixed capacity of the pool.
func (p *Pool[T]) Cap() int {
	return len(p.items)
}

// All returns an iterator over the active members in slot order.
func (p *Pool[T]) All() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range p.items {
			if p.active[i] && !yield(&p.items[i]) {
				return
			}
		}
	}
}

// indexOf resolves a member pointer to its slot.
func (p *Pool[T]) indexOf(item *T) (int, bool) {
	for i := range p.items {
		if &p.items[i] == item {
			return i, true
		}
	}
	return 0, false
}

// pushFree inserts idx keeping the free stack sorted so that the lowest
// index is always handed out first.
func (p *Pool[T]) pushFree(idx int) {
	p.free = append(p.free, idx)
	for i := len(p.free) - 1; i > 0 && p.free[i-1] < p.free[i]; i-- {
		p.free[i-1], p.free[i] = p.free[i], p.free[i-1]
	}
}

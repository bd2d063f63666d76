// Package object holds the game objects the scenes are built from: the
// ship, pooled asteroids and bullets, and text labels.
package object

import (
	"iter"

	"github.com/tomz197/asteroid-shower/internal/physics"
	"github.com/tomz197/asteroid-shower/internal/pool"
	"github.com/tomz197/asteroid-shower/internal/render"
)

// Drawable is anything a scene can draw.
type Drawable interface {
	Draw(s render.Surface)
}

// Member constrains pooled objects to pointers that own a physics body.
type Member[T any] interface {
	*T
	physics.Collidable
}

// Group is a pool of physics objects. Getting a member enables its body at
// a position; killing it disables the body and returns it to the pool.
type Group[T any, P Member[T]] struct {
	pool *pool.Pool[T]
}

// NewGroup creates a group of size members. init prepares each slot once.
func NewGroup[T any, P Member[T]](size int, init func(i int, item P)) *Group[T, P] {
	var fn func(int, *T)
	if init != nil {
		fn = func(i int, item *T) { init(i, P(item)) }
	}
	return &Group[T, P]{pool: pool.New(size, fn)}
}

// Get activates the first free member with its body enabled at (x, y).
func (g *Group[T, P]) Get(x, y float64) (P, bool) {
	item, ok := g.pool.Activate()
	if !ok {
		return nil, false
	}
	p := P(item)
	p.PhysicsBody().Reset(x, y)
	return p, true
}

// Kill disables item and returns it to the pool. It reports whether item
// was an active member.
func (g *Group[T, P]) Kill(item P) bool {
	if item == nil || !g.pool.IsActive((*T)(item)) {
		return false
	}
	item.PhysicsBody().Disable()
	return g.pool.Deactivate((*T)(item))
}

// KillAll disables and frees every member.
func (g *Group[T, P]) KillAll() {
	for item := range g.Members() {
		item.PhysicsBody().Disable()
	}
	g.pool.Reset()
}

// Members iterates over the active members in slot order.
func (g *Group[T, P]) Members() iter.Seq[P] {
	return func(yield func(P) bool) {
		for item := range g.pool.All() {
			if !yield(P(item)) {
				return
			}
		}
	}
}

// Len returns the number of active members.
func (g *Group[T, P]) Len() int {
	return g.pool.Active()
}

// Free returns the number of members available to Get.
func (g *Group[T, P]) Free() int {
	return g.pool.Free()
}

// Cap returns the fixed size of the group.
func (g *Group[T, P]) Cap() int {
	return g.pool.Cap()
}

// Draw draws every active member that is Drawable.
func (g *Group[T, P]) Draw(s render.Surface) {
	for item := range g.Members() {
		if d, ok := any(item).(Drawable); ok {
			d.Draw(s)
		}
	}
}

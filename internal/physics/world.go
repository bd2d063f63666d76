package physics

import (
	"iter"
	"slices"
	"time"
)

// World integrates registered bodies and runs overlap checks.
//
// Overlaps are registered once; every Collide re-evaluates them against the
// current body positions. Callbacks run synchronously on the caller's
// goroutine and may disable bodies, which removes them from the remaining
// pairs of the same step.
type World struct {
	Width, Height float64

	timeScale  float64
	grid       *SpatialGrid
	integrated []func(dt float64)
	colliders  []*Collider
}

// Collider is a registered overlap check between two sets of bodies.
type Collider struct {
	run    func(w *World)
	active bool
}

// NewWorld creates a world of the given size. cellSize must be at least the
// largest sum of radii of any two bodies that can overlap.
func NewWorld(width, height, cellSize float64) *World {
	return &World{
		Width:     width,
		Height:    height,
		timeScale: 1,
		grid:      NewSpatialGrid(width, height, cellSize),
	}
}

// SetTimeScale sets the physics time scale. Values above 1 slow bodies
// down: a scale of 3 moves bodies at a third of their velocity.
func (w *World) SetTimeScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	w.timeScale = scale
}

// TimeScale returns the current physics time scale.
func (w *World) TimeScale() float64 {
	return w.timeScale
}

// AddBodies registers a set of bodies moved by every Integrate call.
// The set is re-evaluated each step, so pools can be passed as iterators.
func AddBodies[T Collidable](w *World, set iter.Seq[T]) {
	w.integrated = append(w.integrated, func(dt float64) {
		for item := range set {
			b := item.PhysicsBody()
			if !b.Enabled {
				continue
			}
			b.X += b.VX * dt
			b.Y += b.VY * dt
		}
	})
}

// AddOverlap registers an overlap check between two sets. fn is called once
// per intersecting pair of enabled bodies on every Collide.
func AddOverlap[A, B Collidable](w *World, as iter.Seq[A], bs iter.Seq[B], fn func(a A, b B)) *Collider {
	var candidates []B
	c := &Collider{active: true}
	c.run = func(w *World) {
		candidates = candidates[:0]
		w.grid.Clear()
		for b := range bs {
			body := b.PhysicsBody()
			if !body.Enabled {
				continue
			}
			w.grid.Insert(body.X, body.Y, len(candidates))
			candidates = append(candidates, b)
		}
		if len(candidates) == 0 {
			return
		}

		for a := range as {
			ab := a.PhysicsBody()
			if !ab.Enabled {
				continue
			}
			w.grid.QueryAround(ab.X, ab.Y, func(i int) bool {
				b := candidates[i]
				if ab.Overlaps(b.PhysicsBody()) {
					fn(a, b)
				}
				// stop once the callback disabled a
				return !ab.Enabled
			})
		}
	}
	w.colliders = append(w.colliders, c)
	return c
}

// RemoveCollider unregisters a collider.
func (w *World) RemoveCollider(c *Collider) {
	c.active = false
	w.colliders = slices.DeleteFunc(w.colliders, func(x *Collider) bool { return x == c })
}

// Colliders returns the number of registered colliders.
func (w *World) Colliders() int {
	return len(w.colliders)
}

// Integrate advances every enabled body by its velocity over dt, scaled by
// the world time scale.
func (w *World) Integrate(dt time.Duration) {
	step := dt.Seconds() / w.timeScale
	for _, fn := range w.integrated {
		fn(step)
	}
}

// Collide runs every registered overlap check once.
func (w *World) Collide() {
	for _, c := range w.colliders {
		if c != nil && c.active {
			c.run(w)
		}
	}
}

// Package particle implements the explode-mode emitter used for destruction
// effects.
package particle

import (
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/tomz197/asteroid-shower/internal/render"
)

// particlePool recycles particles across emitters.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Age     time.Duration
	Life    time.Duration
	Alpha   float64
	Scale   float64
	release bool
}

// Progress returns how far through its life the particle is, in [0, 1].
func (p *Particle) Progress() float64 {
	if p.Life <= 0 {
		return 1
	}
	return min(float64(p.Age)/float64(p.Life), 1)
}

// Config describes the particles an emitter produces.
type Config struct {
	Quantity int
	Lifespan time.Duration
	// Speed is the maximum initial speed in px/s; each particle gets a
	// random speed in [Speed/2, Speed] and a random direction.
	Speed  float64
	Radius float64
	Alpha  Range
	Scale  Range
	Color  render.Color
}

// Explosion returns the configuration of the destruction burst.
func Explosion(quantity int, lifespan time.Duration, speed, radius float64) Config {
	return Config{
		Quantity: quantity,
		Lifespan: lifespan,
		Speed:    speed,
		Radius:   radius,
		Alpha:    Range{Start: 1, End: 0, Ease: EaseInCubic},
		Scale:    Range{Start: 1, End: 5, Ease: EaseOutCubic},
		Color:    render.Orange,
	}
}

// Emitter emits bursts of particles on demand. It never emits on its own.
type Emitter struct {
	cfg   Config
	rng   *rand.Rand
	alive []*Particle
}

// NewEmitter creates an emitter. A nil rng uses a time-seeded source.
func NewEmitter(cfg Config, rng *rand.Rand) *Emitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Emitter{cfg: cfg, rng: rng}
}

// EmitParticleAt spawns Quantity particles at (x, y).
func (e *Emitter) EmitParticleAt(x, y float64) {
	for range e.cfg.Quantity {
		angle := e.rng.Float64() * 2 * math.Pi
		speed := e.cfg.Speed * (0.5 + e.rng.Float64()*0.5)

		p := particlePool.Get().(*Particle)
		*p = Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  e.cfg.Lifespan,
			Alpha: e.cfg.Alpha.At(0),
			Scale: e.cfg.Scale.At(0),
		}
		e.alive = append(e.alive, p)
	}
}

// Update ages and moves every particle, releasing the expired ones.
func (e *Emitter) Update(delta time.Duration) {
	dt := delta.Seconds()
	for _, p := range e.alive {
		p.Age += delta
		if p.Age >= p.Life {
			p.release = true
			continue
		}
		p.X += p.VX * dt
		p.Y += p.VY * dt
		t := p.Progress()
		p.Alpha = e.cfg.Alpha.At(t)
		p.Scale = e.cfg.Scale.At(t)
	}
	e.alive = slices.DeleteFunc(e.alive, func(p *Particle) bool {
		if p.release {
			particlePool.Put(p)
			return true
		}
		return false
	})
}

// Draw renders every live particle.
func (e *Emitter) Draw(s render.Surface) {
	for _, p := range e.alive {
		if p.Alpha <= 0 {
			continue
		}
		s.FillCircle(p.X, p.Y, e.cfg.Radius*p.Scale, render.Alpha(e.cfg.Color, p.Alpha))
	}
}

// Alive returns the number of live particles.
func (e *Emitter) Alive() int {
	return len(e.alive)
}

// Particles returns the live particles.
func (e *Emitter) Particles() []*Particle {
	return slices.Clone(e.alive)
}

// Clear releases every live particle.
func (e *Emitter) Clear() {
	for _, p := range e.alive {
		particlePool.Put(p)
	}
	e.alive = e.alive[:0]
}

package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroid-shower/internal/physics"
	"github.com/tomz197/asteroid-shower/internal/render"
)

// Asteroid is a pooled falling rock.
type Asteroid struct {
	physics.Body
	Angle    float64   // current rotation
	Spin     float64   // radians per second, visual only
	Vertices []float64 // vertex distances from centre, for an irregular outline
}

// Shape gives the asteroid a fresh irregular outline of the given radius.
func (a *Asteroid) Shape(radius float64, rng *rand.Rand) {
	a.Radius = radius
	n := 8 + rng.Intn(5)
	a.Vertices = a.Vertices[:0]
	for range n {
		// Vary radius by ±30% for irregular shape
		a.Vertices = append(a.Vertices, radius*(0.7+rng.Float64()*0.6))
	}
	a.Angle = rng.Float64() * 2 * math.Pi
	a.Spin = (rng.Float64() - 0.5) * 2
}

// Fall advances the asteroid by step px, wrapping to the top once it is
// past bottom.
func (a *Asteroid) Fall(step, bottom float64) {
	if a.Y > bottom {
		a.Y = 0
		return
	}
	// y == 0 is not special: a freshly wrapped asteroid steps on the next call.
	a.Y += step
}

// Turn rotates the outline for dt seconds.
func (a *Asteroid) Turn(dt float64) {
	a.Angle += a.Spin * dt
}

// Points returns the outline in world space.
func (a *Asteroid) Points() []render.Point {
	n := len(a.Vertices)
	pts := make([]render.Point, n)
	for i, dist := range a.Vertices {
		ang := a.Angle + float64(i)*2*math.Pi/float64(n)
		pts[i] = render.Point{X: a.X + math.Cos(ang)*dist, Y: a.Y + math.Sin(ang)*dist}
	}
	return pts
}

// Draw renders the asteroid as an irregular outline, or a circle if it has
// no outline yet.
func (a *Asteroid) Draw(s render.Surface) {
	if len(a.Vertices) < 3 {
		s.StrokeCircle(a.X, a.Y, a.Radius, render.Grey)
		return
	}
	s.Polygon(a.Points(), false, render.Grey)
}

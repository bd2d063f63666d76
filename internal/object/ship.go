package object

import (
	"github.com/tomz197/asteroid-shower/internal/physics"
	"github.com/tomz197/asteroid-shower/internal/render"
)

// Steering is the set of movement keys held this frame.
type Steering struct {
	Left, Right, Up, Down bool
}

// Ship is the player-controlled spaceship. It moves only by steering; its
// body velocity stays zero.
type Ship struct {
	physics.Body
	Speed         float64 // px per second
	Width, Height float64 // world bounds for wrapping
	Color         render.Color
}

// NewShip creates an enabled ship centred at (x, y).
func NewShip(x, y, radius, speed, width, height float64) *Ship {
	s := &Ship{
		Speed:  speed,
		Width:  width,
		Height: height,
		Color:  render.Cyan,
	}
	s.Radius = radius
	s.Reset(x, y)
	return s
}

// Move steers the ship for dt seconds. On each axis a ship already past an
// edge wraps to the opposite edge instead of moving that frame.
func (s *Ship) Move(in Steering, dt float64) {
	step := s.Speed * dt
	if in.Left {
		if s.X < 0 {
			s.X = s.Width
		} else {
			s.X -= step
		}
	}
	if in.Right {
		if s.X > s.Width {
			s.X = 0
		} else {
			s.X += step
		}
	}
	if in.Up {
		if s.Y < 0 {
			s.Y = s.Height
		} else {
			s.Y -= step
		}
	}
	if in.Down {
		if s.Y > s.Height {
			s.Y = 0
		} else {
			s.Y += step
		}
	}
}

// Points returns the ship's triangle, nose up.
func (s *Ship) Points() []render.Point {
	r := s.Radius
	return []render.Point{
		{X: s.X, Y: s.Y - r},
		{X: s.X - r*0.8, Y: s.Y + r*0.7},
		{X: s.X + r*0.8, Y: s.Y + r*0.7},
	}
}

// Draw renders the ship. A disabled ship is hidden.
func (s *Ship) Draw(surf render.Surface) {
	if !s.Enabled {
		return
	}
	surf.Polygon(s.Points(), true, s.Color)
}

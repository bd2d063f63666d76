package object

import (
	"github.com/tomz197/asteroid-shower/internal/physics"
	"github.com/tomz197/asteroid-shower/internal/render"
)

// Bullet is a pooled projectile fired straight up by the ship.
type Bullet struct {
	physics.Body
}

// Launch sets the bullet moving upwards at speed px/s.
func (b *Bullet) Launch(speed float64) {
	b.VX = 0
	b.VY = -speed
}

// OffScreen reports whether the bullet has left the top of the world.
func (b *Bullet) OffScreen() bool {
	return b.Y < 0
}

func (b *Bullet) Draw(s render.Surface) {
	s.FillCircle(b.X, b.Y, b.Radius, render.Yellow)
}

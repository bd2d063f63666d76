package physics

// Body is an arcade physics body with a circular collision shape.
// Disabled bodies are neither integrated nor tested for overlap.
type Body struct {
	X, Y    float64 // Centre
	VX, VY  float64 // Velocity in px per second
	Radius  float64
	Enabled bool
}

// Collidable is implemented by anything that owns a Body. Types embedding
// Body satisfy it through the promoted method.
type Collidable interface {
	PhysicsBody() *Body
}

// PhysicsBody returns the body itself.
func (b *Body) PhysicsBody() *Body {
	return b
}

// Reset enables the body at the given centre with zero velocity.
func (b *Body) Reset(x, y float64) {
	b.X, b.Y = x, y
	b.VX, b.VY = 0, 0
	b.Enabled = true
}

// Disable stops integration and overlap tests for the body.
func (b *Body) Disable() {
	b.Enabled = false
}

// Center returns the centre of the body.
func (b *Body) Center() (x, y float64) {
	return b.X, b.Y
}

// Overlaps reports whether two enabled bodies intersect.
func (b *Body) Overlaps(o *Body) bool {
	if !b.Enabled || !o.Enabled {
		return false
	}
	return CirclesOverlap(b.X, b.Y, b.Radius, o.X, o.Y, o.Radius)
}

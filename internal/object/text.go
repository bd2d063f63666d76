package object

import (
	"github.com/tomz197/asteroid-shower/internal/render"
)

// Text is a label drawn in world coordinates.
type Text struct {
	X, Y  float64
	Size  float64
	Value string
	Color render.Color
}

// NewText creates a white label.
func NewText(x, y, size float64, value string) *Text {
	return &Text{X: x, Y: y, Size: size, Value: value, Color: render.White}
}

// SetText replaces the label's value.
func (t *Text) SetText(v string) {
	t.Value = v
}

// Draw writes the label. Empty labels draw nothing.
func (t *Text) Draw(s render.Surface) {
	if t.Value == "" {
		return
	}
	s.Text(t.X, t.Y, t.Size, t.Value, t.Color)
}

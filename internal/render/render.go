// Package render defines the drawing contract between scenes and frontends.
//
// Scenes draw in logical world coordinates (1024x768 by default); every
// frontend scales to its own output.
package render

import "image/color"

// Point is a 2D coordinate in world space.
type Point struct {
	X, Y float64
}

// Color is an RGBA colour.
type Color = color.RGBA

// Hex converts 0xRRGGBB to an opaque colour.
func Hex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Alpha returns c with its alpha scaled by a in [0, 1].
func Alpha(c Color, a float64) Color {
	a = min(max(a, 0), 1)
	return Color{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// Common colours.
var (
	White  = Hex(0xffffff)
	Red    = Hex(0xff3b30)
	Yellow = Hex(0xffd60a)
	Orange = Hex(0xff9f0a)
	Grey   = Hex(0x8e8e93)
	Cyan   = Hex(0x64d2ff)
)

// Surface is a frame being drawn.
type Surface interface {
	// Fill clears the whole frame to c.
	Fill(c Color)
	FillCircle(x, y, r float64, c Color)
	StrokeCircle(x, y, r float64, c Color)
	// Polygon draws a closed polygon, filled or as an outline.
	Polygon(points []Point, filled bool, c Color)
	// Text draws s with its top-left corner at (x, y). size is the font
	// size in world pixels.
	Text(x, y, size float64, s string, c Color)
}

// Op is one recorded drawing call.
type Op struct {
	Kind   string
	X, Y   float64
	Size   float64 // radius for circles, font size for text
	Text   string
	Points []Point
	Filled bool
	Color  Color
}

// Recorder is a Surface that records every call. Frontends without a real
// output, such as tests, draw to it.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Fill(c Color) {
	r.Ops = append(r.Ops, Op{Kind: "fill", Color: c})
}

func (r *Recorder) FillCircle(x, y, rad float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: x, Y: y, Size: rad, Filled: true, Color: c})
}

func (r *Recorder) StrokeCircle(x, y, rad float64, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", X: x, Y: y, Size: rad, Color: c})
}

func (r *Recorder) Polygon(points []Point, filled bool, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "polygon", Points: append([]Point(nil), points...), Filled: filled, Color: c})
}

func (r *Recorder) Text(x, y, size float64, s string, c Color) {
	r.Ops = append(r.Ops, Op{Kind: "text", X: x, Y: y, Size: size, Text: s, Color: c})
}

// Texts returns the strings drawn so far, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == "text" {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

var _ Surface = (*Recorder)(nil)

package desktop

import (
	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/asteroid-shower/internal/render"
)

// fontFace is the bitmap font, 12 pixels high at scale 1.
var fontFace = text.NewGoXFace(bitmapfont.Face)

const fontPixels = 12

// Surface draws onto an ebiten image.
type Surface struct {
	dst      *ebiten.Image
	whiteImg *ebiten.Image
}

var _ render.Surface = (*Surface)(nil)

// Target sets the image the next draws go to.
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Surface) Fill(c render.Color) {
	s.dst.Fill(c)
}

func (s *Surface) FillCircle(x, y, r float64, c render.Color) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), c, true)
}

func (s *Surface) StrokeCircle(x, y, r float64, c render.Color) {
	vector.StrokeCircle(s.dst, float32(x), float32(y), float32(r), 1.5, c, true)
}

func (s *Surface) Polygon(points []render.Point, filled bool, c render.Color) {
	if len(points) < 3 {
		return
	}
	if !filled {
		n := len(points)
		for i := range n {
			a, b := points[i], points[(i+1)%n]
			vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1.5, c, true)
		}
		return
	}

	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(c.R) / 0xff
		vs[i].ColorG = float32(c.G) / 0xff
		vs[i].ColorB = float32(c.B) / 0xff
		vs[i].ColorA = float32(c.A) / 0xff
	}
	if s.whiteImg == nil {
		s.whiteImg = ebiten.NewImage(3, 3)
		s.whiteImg.Fill(render.White)
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	s.dst.DrawTriangles(vs, is, s.whiteImg, op)
}

func (s *Surface) Text(x, y, size float64, str string, c render.Color) {
	op := &text.DrawOptions{}
	scale := size / fontPixels
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(s.dst, str, fontFace, op)
}

package draw

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/asteroid-shower/internal/render"
)

// NewRenderer returns a lipgloss renderer for w. Sessions without a
// detectable terminal, such as SSH, can force true colour.
func NewRenderer(w io.Writer, trueColor bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if trueColor {
		r.SetColorProfile(termenv.TrueColor)
	}
	return r
}

// label is a queued text draw.
type label struct {
	x, y, size float64
	text       string
	color      render.Color
}

// Frame is a render.Surface backed by a Canvas. Shapes become canvas
// pixels; text is queued and written over the rendered canvas.
type Frame struct {
	canvas   *Canvas
	renderer *lipgloss.Renderer
	labels   []label
	notice   []string
}

var _ render.Surface = (*Frame)(nil)

// NewFrame creates a frame drawing to c. A nil renderer uses the lipgloss
// default.
func NewFrame(c *Canvas, r *lipgloss.Renderer) *Frame {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Frame{canvas: c, renderer: r}
}

// Canvas returns the canvas shapes are drawn to.
func (f *Frame) Canvas() *Canvas { return f.canvas }

// Reset drops everything drawn since the last Flush.
func (f *Frame) Reset() {
	f.canvas.Clear()
	f.labels = f.labels[:0]
	f.notice = nil
}

// Fill clears the canvas. The terminal keeps its own background colour.
func (f *Frame) Fill(render.Color) {
	f.canvas.Clear()
	f.labels = f.labels[:0]
}

func (f *Frame) FillCircle(x, y, r float64, c render.Color) {
	f.canvas.FillCircle(x, y, r, c)
}

func (f *Frame) StrokeCircle(x, y, r float64, c render.Color) {
	f.canvas.StrokeCircle(x, y, r, c)
}

func (f *Frame) Polygon(points []render.Point, filled bool, c render.Color) {
	f.canvas.DrawPolygon(points, filled, c)
}

func (f *Frame) Text(x, y, size float64, s string, c render.Color) {
	f.labels = append(f.labels, label{x: x, y: y, size: size, text: s, color: c})
}

// Notice shows lines in a box centred on the canvas, above everything else.
func (f *Frame) Notice(lines ...string) {
	f.notice = lines
}

// Labels returns the queued text, in draw order.
func (f *Frame) Labels() []string {
	out := make([]string, 0, len(f.labels))
	for _, l := range f.labels {
		out = append(out, l.text)
	}
	return out
}

// Flush renders the canvas, its border and the queued text into cw and
// writes it out.
func (f *Frame) Flush(cw *ChunkWriter) error {
	if err := f.canvas.Render(cw); err != nil {
		return err
	}
	if err := f.canvas.RenderBorder(cw); err != nil {
		return err
	}
	for _, l := range f.labels {
		f.writeLabel(cw, l)
	}
	if len(f.notice) > 0 {
		f.writeNotice(cw)
	}
	return cw.Flush()
}

func (f *Frame) writeLabel(cw *ChunkWriter, l label) {
	col, row := f.canvas.LogicalToTerminal(l.x, l.y)
	width := f.canvas.TerminalWidth()
	col = max(col, 1)
	if col > width || row < 1 || row > f.canvas.TerminalHeight() {
		return
	}
	text := l.text
	if r := []rune(text); len(r) > width-col+1 {
		text = string(r[:width-col+1])
	}

	style := f.renderer.NewStyle().Foreground(lipgloss.Color(hexColor(l.color)))
	if l.size >= 32 {
		style = style.Bold(true)
	}
	cw.WriteAt(col, row, style.Render(text))
	f.canvas.MarkDirty(col, row, lipgloss.Width(text))
}

func (f *Frame) writeNotice(cw *ChunkWriter) {
	box := f.renderer.NewStyle().
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Align(lipgloss.Center).
		Render(strings.Join(f.notice, "\n"))

	lines := strings.Split(box, "\n")
	w := lipgloss.Width(box)
	col := max((f.canvas.TerminalWidth()-w)/2+1, 1)
	row := max((f.canvas.TerminalHeight()-len(lines))/2+1, 1)
	for i, line := range lines {
		cw.WriteAt(col, row+i, line)
		f.canvas.MarkDirty(col, row+i, w)
	}
}

func hexColor(c render.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

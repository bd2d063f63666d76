package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tomz197/asteroid-shower/internal/render"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// minAlpha is the faintest colour still drawn; terminals cannot blend.
const minAlpha = 24

// cell is what one terminal character shows: two stacked sub-pixels.
type cell struct {
	top, bottom render.Color
}

// Canvas is a colour drawing buffer with 2x vertical resolution using
// half-block characters. It scales from logical world coordinates to
// terminal pixels and only re-renders the cells that changed.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int            // termHeight * 2
	pixels         []render.Color // [y * termWidth + x], zero alpha is empty

	shown []cell // last rendered frame
	dirty []bool // cells that must be redrawn regardless of shown
	force bool

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets for centering the render area.
	offsetCol int
	offsetRow int

	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []render.Point
	intersectionBuf []float64
}

// NewCanvas creates an unscaled canvas for the given terminal dimensions.
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that maps a logicalWidth x logicalHeight
// world onto termWidth x termHeight terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size. The next Render redraws everything.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth, termHeight = max(termWidth, 0), max(termHeight, 0)
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]render.Color, c.subPixelHeight*termWidth)
		c.shown = make([]cell, termWidth*termHeight)
		c.dirty = make([]bool, termWidth*termHeight)
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
	c.force = true
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.force = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// ForceRedraw makes the next Render write every cell, e.g. after the
// screen was cleared.
func (c *Canvas) ForceRedraw() {
	c.force = true
}

// MarkDirty makes the next Render rewrite n cells starting at the 1-based
// position (col, row), e.g. cells covered by a text overlay.
func (c *Canvas) MarkDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := max(col-1, 0); x < min(col-1+n, c.termWidth); x++ {
		c.dirty[r*c.termWidth+x] = true
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int, clr render.Color) {
	if clr.A < minAlpha {
		return
	}
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = clr
	}
}

// At returns the colour of the pixel at terminal pixel coordinates.
func (c *Canvas) At(x, y int) render.Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return render.Color{}
	}
	return c.pixels[y*c.termWidth+x]
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(x, y float64, clr render.Color) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)), clr)
}

// DrawLine draws a line using Bresenham's algorithm. Coordinates are
// logical and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 render.Point, clr render.Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1, clr)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a closed polygon, filling the interior with a scanline
// pass when filled is set.
func (c *Canvas) DrawPolygon(points []render.Point, filled bool, clr render.Color) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, clr)
	}
	n := len(points)
	for i := range n {
		c.DrawLine(points[i], points[(i+1)%n], clr)
	}
}

// fillPolygon works in pixel space so the fill matches the scaled outline.
func (c *Canvas) fillPolygon(points []render.Point, clr render.Color) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]render.Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = render.Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	n := len(scaled)
	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		for i := range n {
			p1, p2 := scaled[i], scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		slices.Sort(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y, clr)
			}
		}
	}
}

// FillCircle fills a circle given in logical coordinates. Circles smaller
// than a pixel still set the pixel under their centre.
func (c *Canvas) FillCircle(cx, cy, r float64, clr render.Color) {
	px, py := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 || ry < 0.5 {
		c.setPixel(int(math.Round(px)), int(math.Round(py)), clr)
		return
	}
	for y := int(math.Floor(py - ry)); y <= int(math.Ceil(py+ry)); y++ {
		dy := (float64(y) + 0.5 - py) / ry
		if dy*dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		for x := int(math.Ceil(px - half - 0.5)); x <= int(math.Floor(px+half-0.5)); x++ {
			c.setPixel(x, y, clr)
		}
	}
	c.setPixel(int(math.Round(px)), int(math.Round(py)), clr)
}

// circleSegments is the number of edges used to approximate a circle outline.
const circleSegments = 24

// StrokeCircle draws a circle outline given in logical coordinates.
func (c *Canvas) StrokeCircle(cx, cy, r float64, clr render.Color) {
	prev := render.Point{X: cx + r, Y: cy}
	for i := 1; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		next := render.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
		c.DrawLine(prev, next, clr)
		prev = next
	}
}

// maxChunkSize is the maximum bytes to write at once for smooth network
// flow over SSH.
const maxChunkSize = 1400

func (c *Canvas) cellAt(col, row int) cell {
	top := c.pixels[row*2*c.termWidth+col]
	var bottom render.Color
	if row*2+1 < c.subPixelHeight {
		bottom = c.pixels[(row*2+1)*c.termWidth+col]
	}
	return cell{top: top, bottom: bottom}
}

// Render writes the cells that changed since the last Render using
// half-block characters and 24-bit colour escapes.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	for row := range c.termHeight {
		for col := range c.termWidth {
			i := row*c.termWidth + col
			cur := c.cellAt(col, row)
			if !c.force && !c.dirty[i] && cur == c.shown[i] {
				continue
			}
			c.shown[i] = cur
			c.dirty[i] = false
			c.writeCell(row+1+c.offsetRow, col+1+c.offsetCol, cur)
		}
	}
	c.force = false

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) writeCell(row, col int, cl cell) {
	b := &c.renderBuf
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	b.WriteByte('H')

	top, bottom := cl.top.A != 0, cl.bottom.A != 0
	switch {
	case !top && !bottom:
		b.WriteByte(' ')
		return
	case top && bottom && cl.top == cl.bottom:
		c.writeColor(38, cl.top)
		b.WriteRune(BlockFull)
	case top && bottom:
		c.writeColor(38, cl.top)
		c.writeColor(48, cl.bottom)
		b.WriteRune(BlockUpperHalf)
	case top:
		c.writeColor(38, cl.top)
		b.WriteRune(BlockUpperHalf)
	default:
		c.writeColor(38, cl.bottom)
		b.WriteRune(BlockLowerHalf)
	}
	b.WriteString("\033[0m")
}

// writeColor appends an SGR true-colour sequence; layer is 38 for the
// foreground and 48 for the background.
func (c *Canvas) writeColor(layer int, clr render.Color) {
	b := &c.renderBuf
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	b.WriteString(";2;")
	b.Write(strconv.AppendUint(c.numBuf[:0], uint64(clr.R), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(c.numBuf[:0], uint64(clr.G), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendUint(c.numBuf[:0], uint64(clr.B), 10))
	b.WriteByte('m')
}

// RenderBorder draws a box around the canvas area when the terminal is
// larger than the maximum render size on either axis.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString(cursor(top, left) + "┌" + line + "┐")
			buf.WriteString(cursor(bottom, left) + "└" + line + "┘")
		} else {
			buf.WriteString(cursor(top, c.offsetCol+1) + line)
			buf.WriteString(cursor(bottom, c.offsetCol+1) + line)
		}
	}
	if hasH {
		startRow, endRow := top+1, bottom
		if !hasV {
			startRow, endRow = c.offsetRow+1, c.offsetRow+c.termHeight+1
		}
		for row := startRow; row < endRow; row++ {
			buf.WriteString(cursor(row, left) + "│" + cursor(row, right) + "│")
		}
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

func cursor(row, col int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// LogicalWidth returns the logical width.
func (c *Canvas) LogicalWidth() float64 { return c.logicalWidth }

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 { return c.logicalHeight }

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// LogicalToTerminal converts logical coordinates to a 1-based terminal
// position (col, row), relative to the canvas origin.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroid-shower/internal/render"
)

func TestClampSize(t *testing.T) {
	tests := []struct {
		name                 string
		w, h                 int
		wantW, wantH         int
		wantOffCol, wantOffR int
	}{
		{"fits", 80, 24, 80, 24, 0, 0},
		{"too wide", 200, 40, MaxTermWidth, 40, 20, 0},
		{"too tall", 100, 80, 100, MaxTermHeight, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, c, r := ClampSize(tt.w, tt.h)
			assert.Equal(t, []int{tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffR}, []int{w, h, c, r})
		})
	}
}

func TestCanvasScalesLogicalCoordinates(t *testing.T) {
	c := NewScaledCanvas(128, 48, 1024, 768)
	c.Set(512, 384, render.Red)
	assert.Equal(t, render.Red, c.At(64, 48))

	col, row := c.LogicalToTerminal(16, 16)
	assert.Equal(t, 3, col)
	assert.Equal(t, 2, row)
}

func TestCanvasSkipsFaintPixels(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Set(1, 1, render.Alpha(render.Orange, 0.01))
	assert.Zero(t, c.At(1, 1).A)
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(10, 10, 3, render.Yellow)
	assert.Equal(t, render.Yellow, c.At(10, 10))
	assert.Equal(t, render.Yellow, c.At(8, 10))
	assert.Zero(t, c.At(15, 10).A)

	c.Clear()
	c.FillCircle(4, 4, 0.1, render.Yellow)
	assert.Equal(t, render.Yellow, c.At(4, 4), "tiny circles still show")
}

func TestDrawPolygonFilled(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawPolygon([]render.Point{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}, {X: 2, Y: 12}}, true, render.Grey)
	assert.Equal(t, render.Grey, c.At(7, 7))
	assert.Equal(t, render.Grey, c.At(2, 2))

	c.Clear()
	c.DrawPolygon([]render.Point{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}, {X: 2, Y: 12}}, false, render.Grey)
	assert.Zero(t, c.At(7, 7).A)
	assert.Equal(t, render.Grey, c.At(12, 7))

	c.DrawPolygon([]render.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, true, render.Grey)
}

func TestRenderOnlyWritesChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, render.Red)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	first := buf.String()
	assert.Contains(t, first, "\033[1;1H\033[38;2;255;59;48m▀\033[0m")
	assert.Equal(t, 8, strings.Count(first, "H"), "first render writes every cell")

	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Empty(t, buf.String())

	c.Clear()
	c.Set(0, 1, render.Red)
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[1;1H\033[38;2;255;59;48m▄\033[0m", buf.String())

	buf.Reset()
	c.MarkDirty(2, 2, 1)
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[2;2H ", buf.String())
}

func TestRenderMixedCell(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0, render.Red)
	c.Set(0, 1, render.White)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[1;1H\033[38;2;255;59;48m\033[48;2;255;255;255m▀\033[0m", buf.String())
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(3, 2)
	c.SetOffset(1, 1)

	var buf bytes.Buffer
	require.NoError(t, c.RenderBorder(&buf))
	out := buf.String()
	assert.Contains(t, out, "\033[1;1H┌───┐")
	assert.Contains(t, out, "\033[4;1H└───┘")
	assert.Equal(t, 4, strings.Count(out, "│"))

	buf.Reset()
	c.SetOffset(0, 0)
	require.NoError(t, c.RenderBorder(&buf))
	assert.Empty(t, buf.String())
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	assert.Positive(t, cw.Len())
	assert.Empty(t, out.String())

	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[4;3Hhi", out.String())
	assert.Zero(t, cw.Len())
}

func TestChunkWriterLargeOutput(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	big := strings.Repeat("x", 3*maxChunkSize+7)
	cw.WriteString(big)
	require.NoError(t, cw.Flush())
	assert.Equal(t, big, out.String())
}

func TestFrameDrawsTextOverCanvas(t *testing.T) {
	var out bytes.Buffer
	c := NewScaledCanvas(128, 48, 1024, 768)
	f := NewFrame(c, NewRenderer(&out, false))

	f.Fill(render.Hex(0x000000))
	f.FillCircle(512, 384, 20, render.Red)
	f.Text(16, 16, 32, "Score: 0", render.White)
	f.Notice("PAUSED")
	assert.Equal(t, []string{"Score: 0"}, f.Labels())

	require.NoError(t, f.Flush(NewChunkWriter(&out, 0, 0)))
	s := out.String()
	assert.Contains(t, s, "Score: 0")
	assert.Contains(t, s, "PAUSED")
	assert.Contains(t, s, "╭")

	f.Reset()
	assert.Empty(t, f.Labels())
	assert.Zero(t, c.At(64, 48).A)
}

func TestFrameClipsText(t *testing.T) {
	var out bytes.Buffer
	c := NewCanvas(10, 4)
	f := NewFrame(c, NewRenderer(&out, false))
	f.Text(6, 0, 16, "Lives left: 3", render.White)
	f.Text(20, 0, 16, "hidden", render.White)

	require.NoError(t, f.Flush(NewChunkWriter(&out, 0, 0)))
	assert.Contains(t, out.String(), "\033[1;7HLive")
	assert.NotContains(t, out.String(), "Lives")
	assert.NotContains(t, out.String(), "hidden")
}

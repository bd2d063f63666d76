package object

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroid-shower/internal/render"
)

func TestShipWrapsBeforeMoving(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		in           Steering
		wantX, wantY float64
	}{
		{"left moves", 10, 100, Steering{Left: true}, 8, 100},
		{"left past edge wraps", -1, 100, Steering{Left: true}, 1024, 100},
		{"right moves", 1020, 100, Steering{Right: true}, 1022, 100},
		{"right past edge wraps", 1025, 100, Steering{Right: true}, 0, 100},
		{"up past edge wraps", 100, -0.5, Steering{Up: true}, 100, 768},
		{"down past edge wraps", 100, 769, Steering{Down: true}, 100, 0},
		{"at the edge still moves", 0, 768, Steering{Left: true, Down: true}, -2, 770},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShip(tt.x, tt.y, 17.5, 200, 1024, 768)
			s.Move(tt.in, 0.01)
			assert.InDelta(t, tt.wantX, s.X, 1e-9)
			assert.InDelta(t, tt.wantY, s.Y, 1e-9)
		})
	}
}

func TestDisabledShipIsHidden(t *testing.T) {
	s := NewShip(512, 384, 17.5, 200, 1024, 768)
	var rec render.Recorder
	s.Draw(&rec)
	require.Len(t, rec.Ops, 1)

	s.Disable()
	rec.Reset()
	s.Draw(&rec)
	assert.Empty(t, rec.Ops)
}

func TestGroupGetAndKill(t *testing.T) {
	g := NewGroup[Bullet](2, func(_ int, b *Bullet) { b.Radius = 4 })

	a, ok := g.Get(1, 2)
	require.True(t, ok)
	assert.True(t, a.Enabled)
	assert.Equal(t, 4.0, a.Radius)
	b, _ := g.Get(3, 4)
	_, ok = g.Get(5, 6)
	assert.False(t, ok)

	assert.True(t, g.Kill(a))
	assert.False(t, a.Enabled)
	assert.False(t, g.Kill(a))
	assert.False(t, g.Kill(nil))
	assert.Equal(t, 1, g.Len())

	again, _ := g.Get(7, 8)
	assert.Same(t, a, again, "first free member is reused")
	assert.Equal(t, 7.0, again.X)

	g.KillAll()
	assert.Equal(t, 0, g.Len())
	assert.False(t, b.Enabled)
}

func TestSpawnerLayoutAndReplenish(t *testing.T) {
	s := NewAsteroidSpawner(SpawnerConfig{
		Count: 6, Spacing: 150, VY: 10, Radius: 25, Step: 5, Bottom: 768,
	}, rand.New(rand.NewSource(1)))

	g := s.Group()
	require.Equal(t, 6, g.Len())
	i := 0
	for a := range g.Members() {
		assert.Equal(t, float64(i)*150, a.X)
		assert.Equal(t, 0.0, a.Y)
		assert.Equal(t, 10.0, a.VY)
		assert.GreaterOrEqual(t, len(a.Vertices), 8)
		i++
	}

	assert.False(t, s.Update(0))
	for a := range g.Members() {
		assert.Equal(t, 5.0, a.Y)
	}

	for a := range g.Members() {
		g.Kill(a)
	}
	assert.True(t, s.Update(0))
	assert.Equal(t, 6, g.Len())
	assert.Equal(t, 2, s.Waves())
}

func TestAsteroidWrapsPastBottom(t *testing.T) {
	var a Asteroid
	a.Y = 768
	a.Fall(5, 768)
	assert.Equal(t, 773.0, a.Y)
	a.Fall(5, 768)
	assert.Equal(t, 0.0, a.Y)
	a.Fall(5, 768)
	assert.Equal(t, 5.0, a.Y, "steps again from the top")
}

func TestBulletOffScreen(t *testing.T) {
	var b Bullet
	b.Reset(100, 1)
	b.Launch(300)
	assert.Equal(t, -300.0, b.VY)
	assert.False(t, b.OffScreen())
	b.Y = -0.1
	assert.True(t, b.OffScreen())
}

func TestTextDraw(t *testing.T) {
	txt := NewText(16, 16, 32, "Score: 0")
	txt.SetText("Score: 100")

	var rec render.Recorder
	txt.Draw(&rec)
	txt.SetText("")
	txt.Draw(&rec)
	assert.Equal(t, []string{"Score: 100"}, rec.Texts())
}

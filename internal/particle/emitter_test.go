package particle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroid-shower/internal/render"
)

func newTestEmitter() *Emitter {
	return NewEmitter(Explosion(8, 500*time.Millisecond, 60, 6), rand.New(rand.NewSource(1)))
}

func TestEmitParticleAtSpawnsQuantity(t *testing.T) {
	e := newTestEmitter()
	e.EmitParticleAt(100, 200)

	require.Equal(t, 8, e.Alive())
	for _, p := range e.Particles() {
		assert.Equal(t, 100.0, p.X)
		assert.Equal(t, 200.0, p.Y)
		assert.Equal(t, 1.0, p.Alpha)
		assert.Equal(t, 1.0, p.Scale)
		speed := p.VX*p.VX + p.VY*p.VY
		assert.GreaterOrEqual(t, speed, 30.0*30.0-1e-6)
		assert.LessOrEqual(t, speed, 60.0*60.0+1e-6)
	}
}

func TestParticlesFadeAndGrow(t *testing.T) {
	e := newTestEmitter()
	e.EmitParticleAt(0, 0)

	e.Update(250 * time.Millisecond)
	p := e.Particles()[0]
	assert.InDelta(t, 1-EaseInCubic(0.5), p.Alpha, 1e-9)
	assert.InDelta(t, 1+4*EaseOutCubic(0.5), p.Scale, 1e-9)
	assert.Less(t, p.Alpha, 1.0)
	assert.Greater(t, p.Scale, 1.0)
}

func TestParticlesExpireAfterLifespan(t *testing.T) {
	e := newTestEmitter()
	e.EmitParticleAt(0, 0)
	e.Update(499 * time.Millisecond)
	assert.Equal(t, 8, e.Alive())

	e.Update(time.Millisecond)
	assert.Equal(t, 0, e.Alive())
}

func TestDrawAndClear(t *testing.T) {
	e := newTestEmitter()
	e.EmitParticleAt(10, 10)

	var rec render.Recorder
	e.Draw(&rec)
	assert.Len(t, rec.Ops, 8)
	assert.Equal(t, 6.0, rec.Ops[0].Size)

	e.Clear()
	assert.Equal(t, 0, e.Alive())
}

func TestRangeAt(t *testing.T) {
	r := Range{Start: 1, End: 5}
	assert.Equal(t, 1.0, r.At(-1))
	assert.Equal(t, 3.0, r.At(0.5))
	assert.Equal(t, 5.0, r.At(2))

	assert.Equal(t, 0.0, EaseInCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
}

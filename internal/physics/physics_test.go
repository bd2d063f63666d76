package physics

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name string
		x2   float64
		want bool
	}{
		{"apart", 30, false},
		{"touching", 20, false},
		{"intersecting", 19.9, true},
		{"concentric", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CirclesOverlap(0, 0, 10, tt.x2, 0, 10))
		})
	}
	assert.Equal(t, 25.0, DistanceSquared(0, 0, 3, 4))
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(5, 5, 0)   // cell (0,0)
	g.Insert(15, 5, 1)  // cell (1,0)
	g.Insert(55, 55, 2) // far away
	g.Insert(-40, 5, 3) // clamped into (0,0)

	var found []int
	g.QueryAround(5, 5, func(i int) bool {
		found = append(found, i)
		return false
	})
	slices.Sort(found)
	assert.Equal(t, []int{0, 1, 3}, found)

	g.Clear()
	found = found[:0]
	g.QueryAround(5, 5, func(i int) bool {
		found = append(found, i)
		return false
	})
	assert.Empty(t, found)
}

func TestSpatialGridVisitsEachItemOnceInSmallWorld(t *testing.T) {
	g := NewSpatialGrid(10, 10, 10) // a single cell
	g.Insert(1, 1, 7)

	count := 0
	g.QueryAround(1, 1, func(int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestWorldIntegrateAppliesTimeScale(t *testing.T) {
	w := NewWorld(1024, 768, 64)
	w.SetTimeScale(3)

	bodies := []*Body{
		{X: 0, Y: 300, VY: -300, Enabled: true},
		{X: 0, Y: 300, VY: -300, Enabled: false},
	}
	AddBodies(w, slices.Values(bodies))

	w.Integrate(time.Second)
	assert.InDelta(t, 200.0, bodies[0].Y, 1e-9)
	assert.InDelta(t, 300.0, bodies[1].Y, 1e-9, "disabled bodies stay put")

	w.SetTimeScale(0)
	assert.Equal(t, 1.0, w.TimeScale())
}

func TestWorldOverlapCallsOncePerPair(t *testing.T) {
	w := NewWorld(1024, 768, 64)
	as := []*Body{
		{X: 100, Y: 100, Radius: 25, Enabled: true},
		{X: 500, Y: 500, Radius: 25, Enabled: true},
	}
	bs := []*Body{
		{X: 110, Y: 100, Radius: 4, Enabled: true},
		{X: 90, Y: 100, Radius: 4, Enabled: true},
		{X: 800, Y: 100, Radius: 4, Enabled: true},
	}

	type pair struct{ a, b *Body }
	var pairs []pair
	AddOverlap(w, slices.Values(as), slices.Values(bs), func(a, b *Body) {
		pairs = append(pairs, pair{a, b})
	})
	require.Equal(t, 1, w.Colliders())

	w.Collide()
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.Same(t, as[0], p.a)
	}
}

func TestWorldOverlapStopsWhenCallbackDisablesBody(t *testing.T) {
	w := NewWorld(1024, 768, 64)
	asteroid := &Body{X: 100, Y: 100, Radius: 25, Enabled: true}
	bullets := []*Body{
		{X: 105, Y: 100, Radius: 4, Enabled: true},
		{X: 95, Y: 100, Radius: 4, Enabled: true},
	}

	hits := 0
	AddOverlap(w, slices.Values([]*Body{asteroid}), slices.Values(bullets), func(a, b *Body) {
		hits++
		a.Disable()
		b.Disable()
	})
	w.Collide()

	assert.Equal(t, 1, hits)
	assert.False(t, asteroid.Enabled)
	assert.Equal(t, 1, countEnabled(bullets))
}

func TestRemoveCollider(t *testing.T) {
	w := NewWorld(100, 100, 50)
	a := []*Body{{X: 10, Y: 10, Radius: 5, Enabled: true}}
	hits := 0
	c := AddOverlap(w, slices.Values(a), slices.Values(a), func(_, _ *Body) { hits++ })

	w.Collide()
	w.RemoveCollider(c)
	w.Collide()

	assert.Equal(t, 1, hits)
	assert.Equal(t, 0, w.Colliders())
}

func TestBodyResetAndDisable(t *testing.T) {
	b := &Body{VX: 3, VY: 4, Radius: 2}
	b.Reset(10, 20)
	x, y := b.Center()
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
	assert.Zero(t, b.VX)
	assert.True(t, b.Enabled)

	other := &Body{X: 11, Y: 20, Radius: 2, Enabled: true}
	assert.True(t, b.Overlaps(other))
	b.Disable()
	assert.False(t, b.Overlaps(other))
}

func countEnabled(bodies []*Body) int {
	n := 0
	for _, b := range bodies {
		if b.Enabled {
			n++
		}
	}
	return n
}

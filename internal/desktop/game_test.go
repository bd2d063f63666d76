package desktop

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroid-shower/internal/config"
	"github.com/tomz197/asteroid-shower/internal/input"
	"github.com/tomz197/asteroid-shower/internal/scene"
)

func TestEveryGameKeyIsBound(t *testing.T) {
	bound := map[input.KeyCode]bool{}
	seen := map[string]bool{}
	for _, b := range bindings {
		bound[b.code] = true
		name := b.key.String()
		assert.False(t, seen[name], "%s bound twice", name)
		seen[name] = true
	}
	for _, code := range []input.KeyCode{
		input.KeyLeft, input.KeyRight, input.KeyUp, input.KeyDown,
		input.KeySpace, input.KeyEnter, input.KeyEscape, input.KeyPause, input.KeyQuit,
	} {
		assert.True(t, bound[code], "%s has no binding", code)
	}
}

func TestLayoutUsesWorldSize(t *testing.T) {
	settings := config.Default()
	settings.World.Width, settings.World.Height = 800, 600

	g, err := New(scene.Options{Settings: &settings})
	require.NoError(t, err)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestQuitTerminates(t *testing.T) {
	g, err := New(scene.Options{})
	require.NoError(t, err)

	g.Manager().KeyDown(input.KeyQuit)
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Nil(t, g.Manager().Current())
}

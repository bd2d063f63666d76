package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitCallsListenersInOrder(t *testing.T) {
	b := NewBus()
	var calls []string
	b.On(SceneReady, func(args ...any) { calls = append(calls, "first:"+args[0].(string)) })
	b.On(SceneReady, func(args ...any) { calls = append(calls, "second:"+args[0].(string)) })
	b.On(GameOver, func(...any) { calls = append(calls, "other") })

	assert.True(t, b.Emit(SceneReady, "Game"))
	assert.Equal(t, []string{"first:Game", "second:Game"}, calls)
	assert.False(t, b.Emit("nobody-listens"))
}

func TestOnceFiresOnlyOnce(t *testing.T) {
	b := NewBus()
	n := 0
	b.Once(ScoreChanged, func(...any) { n++ })

	b.Emit(ScoreChanged, 100)
	b.Emit(ScoreChanged, 200)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, b.Len())
}

func TestOff(t *testing.T) {
	b := NewBus()
	n := 0
	id := b.On(LivesChanged, func(...any) { n++ })
	assert.Equal(t, 1, b.ListenerCount(LivesChanged))

	assert.True(t, b.Off(id))
	assert.False(t, b.Off(id))
	b.Emit(LivesChanged, 2)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, b.ListenerCount(LivesChanged))
}

func TestListenerRemovingAnotherDuringEmit(t *testing.T) {
	b := NewBus()
	var second ID
	secondCalled := false
	b.On(ShipDestroyed, func(...any) { b.Off(second) })
	second = b.On(ShipDestroyed, func(...any) { secondCalled = true })

	b.Emit(ShipDestroyed)
	assert.False(t, secondCalled)
}

func TestListenerAddedDuringEmitWaitsForNextEmit(t *testing.T) {
	b := NewBus()
	late := 0
	b.Once(SceneReady, func(...any) {
		b.On(SceneReady, func(...any) { late++ })
	})

	b.Emit(SceneReady)
	assert.Equal(t, 0, late)
	b.Emit(SceneReady)
	assert.Equal(t, 1, late)
}

package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndUnregister(t *testing.T) {
	r := NewRegistry(nil)
	a := r.Register("alice")
	b := r.Register("bob")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, r.Count())

	r.Unregister(a.ID)
	r.Unregister(a.ID)
	r.Unregister(999)
	assert.Equal(t, 1, r.Count())
}

func TestHighScore(t *testing.T) {
	r := NewRegistry(nil)
	a := r.Register("alice")
	b := r.Register("bob")

	a.Record(0)
	best, games := r.HighScore()
	assert.Equal(t, "alice", best.Username)
	assert.Equal(t, 1, games)

	b.Record(30)
	a.Record(20)
	best, games = r.HighScore()
	assert.Equal(t, "bob", best.Username)
	assert.Equal(t, 30, best.Score)
	assert.Equal(t, 3, games)

	var orphan Handle
	orphan.Record(100)
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	r := NewRegistry(nil)
	h := r.Register("alice")

	go func() {
		ev := <-h.Events
		if ev.Type == EventShutdown {
			r.Unregister(h.ID)
		}
	}()
	assert.True(t, r.Shutdown(time.Second))
	assert.Zero(t, r.Count())
}

func TestShutdownTimesOut(t *testing.T) {
	r := NewRegistry(nil)
	h := r.Register("stuck")

	start := time.Now()
	assert.False(t, r.Shutdown(100*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)

	require.Len(t, h.Events, 1)
	assert.Equal(t, EventShutdown, (<-h.Events).Type)
}

func TestShutdownWithoutSessions(t *testing.T) {
	assert.True(t, NewRegistry(nil).Shutdown(time.Hour))
}

package loop

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroid-shower/internal/config"
	"github.com/tomz197/asteroid-shower/internal/event"
	"github.com/tomz197/asteroid-shower/internal/input"
	"github.com/tomz197/asteroid-shower/internal/scene"
	"github.com/tomz197/asteroid-shower/internal/session"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func TestRunQuitsOnQ(t *testing.T) {
	var out bytes.Buffer
	err := Run(bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize(128, 48),
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "ASTEROID SHOWER")
	assert.True(t, strings.HasPrefix(s, "\033[?25l"), "cursor hidden first")
	assert.Contains(t, s, "\033[?25h")
}

func TestRunStartsGame(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		io.WriteString(pw, " ")
		time.Sleep(200 * time.Millisecond)
		io.WriteString(pw, "q")
		pw.Close()
	}()

	var out bytes.Buffer
	require.NoError(t, Run(bufio.NewReader(pr), &out, Options{TermSizeFunc: fixedSize(128, 48)}))
	assert.Contains(t, out.String(), "Score: 0")
	assert.Contains(t, out.String(), "Lives left: 3")
}

func TestInactivityWarnsThenDisconnects(t *testing.T) {
	settings := config.Default()
	settings.Session.InactivityWarn = 10 * time.Millisecond
	settings.Session.InactivityDisconnect = 80 * time.Millisecond

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(bufio.NewReader(pr), &out, Options{
			Settings:     &settings,
			TermSizeFunc: fixedSize(128, 48),
			Inactivity:   true,
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("inactive session was not disconnected")
	}
	assert.Contains(t, out.String(), "INACTIVITY WARNING")
}

func TestServerShutdownCountsDown(t *testing.T) {
	settings := config.Default()
	settings.Session.ShutdownDisplay = 100 * time.Millisecond

	reg := session.NewRegistry(nil)
	h := reg.Register("alice")

	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	c, err := NewClient(bufio.NewReader(pr), &out, Options{
		Settings:     &settings,
		TermSizeFunc: fixedSize(128, 48),
		Session:      h,
	})
	require.NoError(t, err)

	left := make(chan bool, 1)
	go func() { left <- reg.Shutdown(5 * time.Second) }()

	require.NoError(t, c.Run())
	reg.Unregister(h.ID)
	assert.True(t, <-left)
	assert.Contains(t, out.String(), "SERVER SHUTTING DOWN")
	assert.Contains(t, out.String(), "Press Q to disconnect now")
}

func TestSceneChangeResetsHeldKeys(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c, err := NewClient(bufio.NewReader(pr), io.Discard, Options{TermSizeFunc: fixedSize(80, 24)})
	require.NoError(t, err)

	require.NoError(t, c.manager.Update(0))
	c.resetInputOnSceneChange()
	require.Equal(t, scene.MainMenuKey, c.current.Key())

	go io.WriteString(pw, " ")
	require.Eventually(t, func() bool {
		c.processInput()
		return c.prev.Held(input.KeySpace)
	}, time.Second, time.Millisecond)

	require.NoError(t, c.manager.Update(0))
	c.resetInputOnSceneChange()
	require.Equal(t, scene.GameKey, c.current.Key())
	assert.False(t, c.prev.Held(input.KeySpace))
	assert.False(t, input.ReadInput(c.stream).Held(input.KeySpace), "the start press is not held in the game")

	c.resetInputOnSceneChange()
	assert.Equal(t, scene.GameKey, c.current.Key())
}

func TestGameOverIsRecorded(t *testing.T) {
	reg := session.NewRegistry(nil)
	h := reg.Register("alice")

	c, err := NewClient(bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: fixedSize(80, 24),
		Session:      h,
	})
	require.NoError(t, err)

	c.Manager().Bus().Emit(event.GameOver, 40)
	best, games := reg.HighScore()
	assert.Equal(t, 40, best.Score)
	assert.Equal(t, "alice", best.Username)
	assert.Equal(t, 1, games)
}

func TestResizeRecentresCanvas(t *testing.T) {
	w, h := 80, 24
	var out bytes.Buffer
	c, err := NewClient(bufio.NewReader(strings.NewReader("")), &out, Options{
		TermSizeFunc: func() (int, int, error) { return w, h, nil },
	})
	require.NoError(t, err)
	assert.Equal(t, 80, c.canvas.TerminalWidth())

	w, h = 200, 80
	c.updateScreen()
	assert.Equal(t, 160, c.canvas.TerminalWidth())
	assert.Equal(t, 60, c.canvas.TerminalHeight())
	assert.Equal(t, 20, c.canvas.OffsetCol())
	assert.Equal(t, 10, c.canvas.OffsetRow())
	assert.Equal(t, len("\033[H\033[2J"), c.chunkWriter.Len())
}

func TestNewClientRejectsInvalidSettings(t *testing.T) {
	settings := config.Default()
	settings.World.FrameRate = 0
	_, err := NewClient(bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		Settings:     &settings,
		TermSizeFunc: fixedSize(80, 24),
	})
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestSecondsLeft(t *testing.T) {
	assert.Equal(t, 0, secondsLeft(-time.Second))
	assert.Equal(t, 1, secondsLeft(time.Millisecond))
	assert.Equal(t, 10, secondsLeft(10*time.Second))
}

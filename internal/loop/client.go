// Package loop runs the game in a terminal: it reads keys from a byte
// stream, drives a scene.Manager at a fixed frame rate and renders every
// frame with half-block characters.
package loop

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-shower/internal/audio"
	"github.com/tomz197/asteroid-shower/internal/config"
	"github.com/tomz197/asteroid-shower/internal/draw"
	"github.com/tomz197/asteroid-shower/internal/event"
	"github.com/tomz197/asteroid-shower/internal/input"
	"github.com/tomz197/asteroid-shower/internal/logging"
	"github.com/tomz197/asteroid-shower/internal/scene"
	"github.com/tomz197/asteroid-shower/internal/session"
)

// Options configures a Client. Zero values get defaults.
type Options struct {
	Settings     *config.Settings
	Logger       *log.Logger
	Audio        audio.Player
	Rand         *rand.Rand
	TermSizeFunc draw.TermSizeFunc
	// Renderer styles text; nil uses the lipgloss default.
	Renderer *lipgloss.Renderer
	// Session is the shared-server registration, nil for local play.
	Session *session.Handle
	// Inactivity enables the idle warning and disconnect.
	Inactivity bool
}

// Client is one terminal running the game.
type Client struct {
	settings config.Settings
	logger   *log.Logger
	manager  *scene.Manager
	handle   *session.Handle

	stream  *input.Stream
	prev    input.Snapshot
	current scene.Scene
	writer io.Writer

	canvas       *draw.Canvas
	frame        *draw.Frame
	chunkWriter  *draw.ChunkWriter
	termSizeFunc draw.TermSizeFunc

	inactivity   bool
	lastInput    time.Time
	idle         bool
	shuttingDown bool
	shutdownLeft time.Duration
	running      bool
	now          func() time.Time
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) (*Client, error) {
	settings := config.Default()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	termWidth, termHeight, err := termSizeFunc()
	if err != nil {
		return nil, fmt.Errorf("terminal size: %w", err)
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, settings.World.Width, settings.World.Height)
	canvas.SetOffset(offsetCol, offsetRow)

	manager := scene.NewManager(scene.Options{
		Settings: &settings,
		Logger:   logger,
		Audio:    opts.Audio,
		Rand:     opts.Rand,
	})
	if err := manager.Start(scene.MainMenuKey, nil); err != nil {
		return nil, err
	}

	c := &Client{
		settings:     settings,
		logger:       logger,
		manager:      manager,
		handle:       opts.Session,
		stream:       input.StartStream(r),
		writer:       w,
		canvas:       canvas,
		frame:        draw.NewFrame(canvas, opts.Renderer),
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		termSizeFunc: termSizeFunc,
		inactivity:   opts.Inactivity,
		running:      true,
		now:          time.Now,
	}
	c.lastInput = c.now()
	if c.handle != nil {
		manager.Bus().On(event.GameOver, func(args ...any) {
			if len(args) == 0 {
				return
			}
			if score, ok := args[0].(int); ok {
				c.handle.Record(score)
			}
		})
	}
	return c, nil
}

// Run creates a client and blocks until it stops.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	c, err := NewClient(r, w, opts)
	if err != nil {
		return err
	}
	return c.Run()
}

// Manager returns the scene manager driven by the client.
func (c *Client) Manager() *scene.Manager {
	return c.manager
}

// Run drives frames until the player quits, the session idles out or a
// server shutdown finishes counting down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.manager.Close()

	frameTime := c.settings.FrameTime()
	lastTime := c.now()

	for c.running {
		frameStart := c.now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processSessionEvents()
		c.updateScreen()
		c.updateShutdown(delta)

		if err := c.manager.Update(delta); err != nil {
			return err
		}
		c.resetInputOnSceneChange()
		if err := c.drawFrame(); err != nil {
			return err
		}
		if c.manager.Done() {
			c.running = false
		}

		if elapsed := c.now().Sub(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput turns this frame's bytes into key transitions and tracks
// inactivity.
func (c *Client) processInput() {
	snap := input.ReadInput(c.stream)
	now := c.now()

	if len(snap.Pressed) > 0 {
		c.lastInput = now
		c.idle = false
	} else if c.inactivity {
		idleFor := now.Sub(c.lastInput)
		switch {
		case idleFor > c.settings.Session.InactivityDisconnect:
			c.logger.Info("Disconnecting inactive session", "idle", idleFor.Round(time.Second))
			c.running = false
		case idleFor > c.settings.Session.InactivityWarn:
			c.idle = true
		}
	}

	input.Diff(c.prev, snap, c.manager)
	c.prev = snap
}

// resetInputOnSceneChange drops held keys once a new scene is running, so
// the key that left a screen is not seen as held by the next one.
func (c *Client) resetInputOnSceneChange() {
	cur := c.manager.Current()
	if cur == c.current {
		return
	}
	c.current = cur
	input.ResetKeyInput(c.stream)
	c.prev = input.Snapshot{}
}

// processSessionEvents handles events sent by the session registry.
func (c *Client) processSessionEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case ev, ok := <-c.handle.Events:
			if !ok {
				c.running = false
				return
			}
			if ev.Type == session.EventShutdown && !c.shuttingDown {
				c.shuttingDown = true
				c.shutdownLeft = c.settings.Session.ShutdownDisplay
				c.logger.Info("Server shutting down", "display", c.shutdownLeft)
			}
		default:
			return
		}
	}
}

func (c *Client) updateShutdown(delta time.Duration) {
	if !c.shuttingDown {
		return
	}
	c.shutdownLeft -= delta
	if c.shutdownLeft <= 0 {
		c.running = false
	}
}

// updateScreen follows terminal resizes, clamped to the maximum render
// size. A changed size clears the terminal so stale pixels and borders go.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampSize(termWidth, termHeight)
	if renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.canvas.OffsetCol() && offsetRow == c.canvas.OffsetRow() {
		return
	}
	c.chunkWriter.WriteString("\033[H\033[2J")
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

func (c *Client) drawFrame() error {
	c.frame.Reset()
	c.manager.Draw(c.frame)

	switch {
	case c.shuttingDown:
		c.frame.Notice(
			"SERVER SHUTTING DOWN",
			fmt.Sprintf("Disconnecting in %d seconds...", secondsLeft(c.shutdownLeft)),
			"Press Q to disconnect now",
		)
	case c.idle:
		left := c.settings.Session.InactivityDisconnect - c.now().Sub(c.lastInput)
		c.frame.Notice(
			"INACTIVITY WARNING",
			fmt.Sprintf("You will be disconnected in %d seconds.", secondsLeft(left)),
			"Press any key to continue",
		)
	}
	return c.frame.Flush(c.chunkWriter)
}

// secondsLeft rounds a countdown up to whole seconds.
func secondsLeft(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

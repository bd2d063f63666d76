// Package scene runs the game's scenes: the main menu, the asteroid
// shower itself and the game-over screen.
//
// A Manager owns the current scene and switches between scenes at the end
// of a frame. Frontends feed it key transitions, call Update once per
// frame and Draw onto their own Surface.
package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-shower/internal/audio"
	"github.com/tomz197/asteroid-shower/internal/config"
	"github.com/tomz197/asteroid-shower/internal/event"
	"github.com/tomz197/asteroid-shower/internal/input"
	"github.com/tomz197/asteroid-shower/internal/logging"
	"github.com/tomz197/asteroid-shower/internal/render"
)

// Scene keys.
const (
	MainMenuKey = "MainMenu"
	GameKey     = "Game"
	GameOverKey = "GameOver"
)

// ErrUnknownScene is returned when starting a scene that was never registered.
var ErrUnknownScene = errors.New("unknown scene")

// Scene is one screen of the game.
type Scene interface {
	Key() string
	// Create builds the scene. It is called once, before the first Update.
	Create(ctx *Context) error
	Update(delta time.Duration) error
	Draw(s render.Surface)
	// Shutdown releases the scene when another one starts. Held keys have
	// already fired their up listeners.
	Shutdown()
}

// Factory builds a fresh scene instance.
type Factory func() Scene

// Context is what a scene gets from the manager.
type Context struct {
	Settings config.Settings
	Keyboard *input.Keyboard
	Bus      *event.Bus
	Logger   *log.Logger
	Audio    audio.Player
	Rand     *rand.Rand
	// Data is the value passed to Start.
	Data any

	manager *Manager
}

// Start switches to the scene registered under key at the end of the
// current frame.
func (c *Context) Start(key string, data any) error {
	return c.manager.Start(key, data)
}

// Quit asks the frontend to stop.
func (c *Context) Quit() {
	c.manager.Quit()
}

// Options configures a Manager. Zero values get defaults.
type Options struct {
	Settings *config.Settings
	Logger   *log.Logger
	Audio    audio.Player
	Bus      *event.Bus
	Rand     *rand.Rand
}

type transition struct {
	key  string
	data any
}

// Manager runs one scene at a time.
type Manager struct {
	settings  config.Settings
	logger    *log.Logger
	audio     audio.Player
	bus       *event.Bus
	rng       *rand.Rand
	factories map[string]Factory

	current Scene
	ctx     *Context
	pending *transition
	done    bool
}

// NewManager creates a manager with the three game scenes registered.
func NewManager(opts Options) *Manager {
	m := &Manager{
		settings:  config.Default(),
		logger:    opts.Logger,
		audio:     opts.Audio,
		bus:       opts.Bus,
		rng:       opts.Rand,
		factories: make(map[string]Factory),
	}
	if opts.Settings != nil {
		m.settings = *opts.Settings
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.audio == nil {
		m.audio = audio.Nop{}
	}
	if m.bus == nil {
		m.bus = event.NewBus()
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m.Register(MainMenuKey, func() Scene { return &MainMenu{} })
	m.Register(GameKey, func() Scene { return &Game{} })
	m.Register(GameOverKey, func() Scene { return &GameOver{} })
	return m
}

// Register adds or replaces the factory for key.
func (m *Manager) Register(key string, f Factory) {
	m.factories[key] = f
}

// Keys returns the registered scene keys, sorted.
func (m *Manager) Keys() []string {
	keys := make([]string, 0, len(m.factories))
	for k := range m.factories {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Start queues a switch to the scene registered under key. The switch
// happens at the end of the next Update; a later Start in the same frame
// replaces an earlier one.
func (m *Manager) Start(key string, data any) error {
	if _, ok := m.factories[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScene, key)
	}
	m.pending = &transition{key: key, data: data}
	return nil
}

// Update advances the current scene by delta and then applies a queued
// scene switch.
func (m *Manager) Update(delta time.Duration) error {
	if m.current != nil {
		if err := m.current.Update(delta); err != nil {
			return fmt.Errorf("update scene %s: %w", m.current.Key(), err)
		}
	}
	return m.applyPending()
}

// Draw draws the current scene.
func (m *Manager) Draw(s render.Surface) {
	if m.current != nil {
		m.current.Draw(s)
	}
}

// KeyDown routes a key press to the current scene. The quit key stops
// the manager in every scene.
func (m *Manager) KeyDown(code input.KeyCode) {
	if code == input.KeyQuit {
		m.Quit()
		return
	}
	if m.ctx != nil {
		m.ctx.Keyboard.Press(code)
	}
}

// KeyUp routes a key release to the current scene.
func (m *Manager) KeyUp(code input.KeyCode) {
	if m.ctx != nil {
		m.ctx.Keyboard.Release(code)
	}
}

// Quit marks the manager as done.
func (m *Manager) Quit() {
	if !m.done {
		m.logger.Debug("Quit requested")
	}
	m.done = true
}

// Done reports whether the game asked to quit.
func (m *Manager) Done() bool {
	return m.done
}

// Current returns the running scene, or nil before the first switch.
func (m *Manager) Current() Scene {
	return m.current
}

// Bus returns the event bus shared by every scene.
func (m *Manager) Bus() *event.Bus {
	return m.bus
}

// Settings returns the settings scenes are created with.
func (m *Manager) Settings() config.Settings {
	return m.settings
}

// Close shuts the current scene down.
func (m *Manager) Close() {
	if m.current != nil {
		m.ctx.Keyboard.ReleaseAll()
		m.current.Shutdown()
		m.current = nil
		m.ctx = nil
	}
}

var _ input.Receiver = (*Manager)(nil)

func (m *Manager) applyPending() error {
	if m.pending == nil {
		return nil
	}
	next := m.pending
	m.pending = nil

	if m.current != nil {
		m.logger.Debug("Scene shutdown", "scene", m.current.Key())
		m.ctx.Keyboard.ReleaseAll()
		m.current.Shutdown()
	}

	s := m.factories[next.key]()
	ctx := &Context{
		Settings: m.settings,
		Keyboard: input.NewKeyboard(),
		Bus:      m.bus,
		Logger:   m.logger.With("scene", next.key),
		Audio:    m.audio,
		Rand:     m.rng,
		Data:     next.data,
		manager:  m,
	}
	m.current, m.ctx = s, ctx
	if err := s.Create(ctx); err != nil {
		return fmt.Errorf("create scene %s: %w", next.key, err)
	}
	m.logger.Info("Scene started", "scene", next.key)
	return nil
}

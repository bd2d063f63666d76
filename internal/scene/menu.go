package scene

import (
	"fmt"
	"time"

	"github.com/tomz197/asteroid-shower/internal/event"
	"github.com/tomz197/asteroid-shower/internal/input"
	"github.com/tomz197/asteroid-shower/internal/object"
	"github.com/tomz197/asteroid-shower/internal/render"
)

// glyphAspect approximates glyph width as a fraction of font size, for
// centring labels.
const glyphAspect = 0.5

// centered returns a label horizontally centred in a world of the given width.
func centered(width, y, size float64, s string) *object.Text {
	w := float64(len(s)) * size * glyphAspect
	return object.NewText((width-w)/2, y, size, s)
}

// screen is the shared shell of the menu-like scenes: a background, some
// labels and a keyboard.
type screen struct {
	ctx        *Context
	background render.Color
	labels     []*object.Text
	space      *input.Key
	enter      *input.Key
	back       *input.Key
	err        error
}

func (s *screen) create(ctx *Context) {
	s.ctx = ctx
	s.background = render.Hex(ctx.Settings.World.Background)
	s.space = ctx.Keyboard.AddKey(input.KeySpace)
	s.enter = ctx.Keyboard.AddKey(input.KeyEnter)
	s.back = ctx.Keyboard.AddKey(input.KeyEscape)
}

// confirmed reports a fresh press of SPACE or ENTER, consuming both.
func (s *screen) confirmed() bool {
	space := s.space.JustDown()
	enter := s.enter.JustDown()
	return space || enter
}

func (s *screen) label(y, size float64, text string) *object.Text {
	t := centered(s.ctx.Settings.World.Width, y, size, text)
	s.labels = append(s.labels, t)
	return t
}

func (s *screen) start(key string, data any) {
	if err := s.ctx.Start(key, data); err != nil {
		s.err = err
	}
}

func (s *screen) Draw(surf render.Surface) {
	surf.Fill(s.background)
	for _, l := range s.labels {
		l.Draw(surf)
	}
}

func (s *screen) Shutdown() {
	s.labels = nil
}

// MainMenu is the title screen. SPACE or ENTER starts a game, ESC quits.
type MainMenu struct {
	screen
}

func (m *MainMenu) Key() string { return MainMenuKey }

func (m *MainMenu) Create(ctx *Context) error {
	m.create(ctx)
	h := ctx.Settings.World.Height
	m.label(h/2-120, 48, "ASTEROID SHOWER")
	m.label(h/2, 24, "Press SPACE to Start")
	m.label(h/2+80, 16, "Arrows/WASD move  SPACE fire  P pause  Q quit")
	ctx.Bus.Emit(event.SceneReady, m)
	return nil
}

func (m *MainMenu) Update(time.Duration) error {
	switch {
	case m.confirmed():
		m.start(GameKey, nil)
	case m.back.JustDown():
		m.ctx.Quit()
	}
	return m.err
}

// GameOver shows the final score. SPACE or ENTER plays again, ESC returns
// to the main menu.
type GameOver struct {
	screen
	score int
}

func (g *GameOver) Key() string { return GameOverKey }

func (g *GameOver) Create(ctx *Context) error {
	g.create(ctx)
	if score, ok := ctx.Data.(int); ok {
		g.score = score
	}
	h := ctx.Settings.World.Height
	g.label(h/2-120, 48, "GAME OVER")
	g.label(h/2-30, 32, fmt.Sprintf("Final score: %d", g.score))
	g.label(h/2+60, 16, "SPACE to play again  ESC for menu")
	ctx.Bus.Emit(event.SceneReady, g)
	ctx.Logger.Debug("Created", "score", g.score)
	return nil
}

func (g *GameOver) Update(time.Duration) error {
	switch {
	case g.confirmed():
		g.start(GameKey, nil)
	case g.back.JustDown():
		g.start(MainMenuKey, nil)
	}
	return g.err
}

// Score returns the final score shown.
func (g *GameOver) Score() int { return g.score }

// Package desktop runs the game in a window with ebiten.
package desktop

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/asteroid-shower/internal/input"
	"github.com/tomz197/asteroid-shower/internal/scene"
)

// binding maps a physical key to a game key.
type binding struct {
	key  ebiten.Key
	code input.KeyCode
}

var bindings = []binding{
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyW, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyS, input.KeyDown},
	{ebiten.KeySpace, input.KeySpace},
	{ebiten.KeyShift, input.KeyShift},
	{ebiten.KeyEnter, input.KeyEnter},
	{ebiten.KeyEscape, input.KeyEscape},
	{ebiten.KeyP, input.KeyPause},
	{ebiten.KeyQ, input.KeyQuit},
}

// Game adapts a scene.Manager to ebiten.Game.
type Game struct {
	manager *scene.Manager
	surface Surface
	width   int
	height  int
}

var _ ebiten.Game = (*Game)(nil)

// New creates a game showing the main menu.
func New(opts scene.Options) (*Game, error) {
	m := scene.NewManager(opts)
	if err := m.Start(scene.MainMenuKey, nil); err != nil {
		return nil, err
	}
	s := m.Settings()
	return &Game{
		manager: m,
		width:   int(s.World.Width),
		height:  int(s.World.Height),
	}, nil
}

// Manager returns the scene manager.
func (g *Game) Manager() *scene.Manager {
	return g.manager
}

func (g *Game) Update() error {
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.manager.KeyDown(b.code)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			g.manager.KeyUp(b.code)
		}
	}

	if err := g.manager.Update(time.Second / time.Duration(ebiten.TPS())); err != nil {
		return err
	}
	if g.manager.Done() {
		g.manager.Close()
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	g.manager.Draw(&g.surface)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

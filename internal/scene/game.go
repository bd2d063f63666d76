package scene

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-shower/internal/audio"
	"github.com/tomz197/asteroid-shower/internal/config"
	"github.com/tomz197/asteroid-shower/internal/event"
	"github.com/tomz197/asteroid-shower/internal/input"
	"github.com/tomz197/asteroid-shower/internal/object"
	"github.com/tomz197/asteroid-shower/internal/particle"
	"github.com/tomz197/asteroid-shower/internal/physics"
	"github.com/tomz197/asteroid-shower/internal/render"
	"github.com/tomz197/asteroid-shower/internal/timer"
)

// Bullets is the pooled bullet group.
type Bullets = object.Group[object.Bullet, *object.Bullet]

// Game is the asteroid shower: the ship dodges falling asteroids and
// shoots them for points until it runs out of lives.
type Game struct {
	ctx *Context
	cfg config.Settings
	log *log.Logger

	clock     *timer.Clock
	world     *physics.World
	colliders []*physics.Collider

	keys     *input.CursorKeys
	steering object.Steering
	fireHeld bool

	background render.Color
	ship       *object.Ship
	asteroids  *object.AsteroidSpawner
	bullets    *Bullets
	plasma     *particle.Emitter

	score     int
	lives     int
	scoreText *object.Text
	livesText *object.Text
	pauseText *object.Text

	err error
}

func (g *Game) Key() string { return GameKey }

// Create builds the ship, both pools and the HUD, registers the overlap
// checks once and announces the scene as ready.
func (g *Game) Create(ctx *Context) error {
	g.ctx = ctx
	g.cfg = ctx.Settings
	g.log = ctx.Logger
	g.clock = timer.NewClock()

	g.background = render.Hex(g.cfg.World.Background)
	g.score = 0
	g.lives = g.cfg.Ship.Lives
	g.scoreText = object.NewText(16, 16, 32, "Score: 0")
	g.livesText = object.NewText(700, 16, 16, fmt.Sprintf("Lives left: %d", g.lives))
	g.pauseText = object.NewText(g.cfg.World.Width/2-90, g.cfg.World.Height/2-16, 32, "")

	g.keys = ctx.Keyboard.CreateCursorKeys()
	g.bindKeys()

	g.ship = object.NewShip(g.cfg.Ship.StartX, g.cfg.Ship.StartY, g.cfg.Ship.Radius,
		g.cfg.Ship.Speed, g.cfg.World.Width, g.cfg.World.Height)

	g.world = physics.NewWorld(g.cfg.World.Width, g.cfg.World.Height, g.cfg.CollisionCellSize())
	g.world.SetTimeScale(g.cfg.World.TimeScale)

	g.asteroids = object.NewAsteroidSpawner(object.SpawnerConfig{
		Count:   g.cfg.Asteroids.Count,
		Spacing: g.cfg.Asteroids.SpacingX,
		VY:      g.cfg.Asteroids.VelocityY,
		Radius:  g.cfg.Asteroids.Radius,
		Step:    g.cfg.Asteroids.Step,
		Bottom:  g.cfg.World.Height,
	}, ctx.Rand)
	g.bullets = g.newBullets()

	physics.AddBodies(g.world, g.asteroids.Group().Members())
	physics.AddBodies[*object.Bullet](g.world, g.bulletMembers)
	g.colliders = []*physics.Collider{
		physics.AddOverlap[*object.Asteroid, *object.Ship](g.world, g.asteroids.Group().Members(), g.shipMembers, g.hitShip),
		physics.AddOverlap[*object.Asteroid, *object.Bullet](g.world, g.asteroids.Group().Members(), g.bulletMembers, g.hitAsteroid),
	}

	g.plasma = particle.NewEmitter(particle.Explosion(
		g.cfg.Explosion.Quantity,
		g.cfg.Explosion.Lifespan,
		g.cfg.Explosion.Speed,
		g.cfg.Explosion.BaseRadius,
	), ctx.Rand)

	ctx.Bus.Emit(event.SceneReady, g)
	g.log.Debug("Created", "asteroids", g.asteroids.Group().Len(), "bullets", g.bullets.Cap(), "lives", g.lives)
	return nil
}

// bindKeys turns key transitions into held flags read by Update.
func (g *Game) bindKeys() {
	g.keys.Left.On(input.EventDown, func(*input.Key) { g.steering.Left = true }).
		On(input.EventUp, func(*input.Key) { g.steering.Left = false })
	g.keys.Right.On(input.EventDown, func(*input.Key) { g.steering.Right = true }).
		On(input.EventUp, func(*input.Key) { g.steering.Right = false })
	g.keys.Up.On(input.EventDown, func(*input.Key) { g.steering.Up = true }).
		On(input.EventUp, func(*input.Key) { g.steering.Up = false })
	g.keys.Down.On(input.EventDown, func(*input.Key) { g.steering.Down = true }).
		On(input.EventUp, func(*input.Key) { g.steering.Down = false })
	g.keys.Space.On(input.EventDown, func(*input.Key) { g.fireHeld = true }).
		On(input.EventUp, func(*input.Key) { g.fireHeld = false })

	g.ctx.Keyboard.AddKey(input.KeyPause).On(input.EventDown, func(*input.Key) { g.togglePause() })
}

func (g *Game) togglePause() {
	if g.clock.Paused() {
		g.clock.Resume()
		g.pauseText.SetText("")
		g.log.Debug("Resumed")
		return
	}
	g.clock.Pause()
	g.pauseText.SetText("PAUSED")
	g.log.Debug("Paused")
}

// Update runs one frame: timers, physics integration, steering, firing,
// the asteroid shower and finally the overlap checks.
func (g *Game) Update(delta time.Duration) error {
	g.clock.Update(delta)
	if g.clock.Paused() {
		// presses made while paused must not fire on resume
		g.keys.Space.JustDown()
		return g.err
	}
	dt := delta.Seconds()

	g.world.Integrate(delta)
	g.ship.Move(g.steering, dt)
	g.fireBullet()

	if g.asteroids.Update(dt) {
		g.log.Debug("Asteroid wave", "wave", g.asteroids.Waves())
	}
	if g.bullets.Cap() == 0 {
		g.bullets = g.newBullets()
	}

	g.world.Collide()
	g.plasma.Update(delta)
	return g.err
}

// fireBullet launches one bullet per press of the fire key and frees the
// bullets that left the top of the world.
func (g *Game) fireBullet() {
	if g.keys.Space.JustDown() && g.ship.Enabled {
		if b, ok := g.bullets.Get(g.ship.X, g.ship.Y); ok {
			b.Launch(g.cfg.Bullets.Speed)
			g.ctx.Audio.Play(audio.EffectFire)
		}
	}
	for b := range g.bullets.Members() {
		if b.OffScreen() {
			g.bullets.Kill(b)
		}
	}
}

func (g *Game) hitShip(_ *object.Asteroid, ship *object.Ship) {
	x, y := center(ship.PhysicsBody())
	ship.Disable()
	g.plasma.EmitParticleAt(x, y)
	g.ctx.Audio.Play(audio.EffectExplosion)

	g.lives--
	g.ctx.Bus.Emit(event.ShipDestroyed, x, y)
	g.ctx.Bus.Emit(event.LivesChanged, g.lives)
	g.log.Debug("Ship destroyed", "x", x, "y", y, "lives", g.lives)

	if g.lives > 0 {
		g.clock.DelayedCall(g.cfg.Ship.RespawnDelay, func() {
			ship.Reset(x, y)
		})
		g.livesText.SetText(fmt.Sprintf("Lives left: %d", g.lives))
		return
	}

	g.ctx.Bus.Emit(event.GameOver, g.score)
	g.log.Info("Game over", "score", g.score)
	if err := g.ctx.Start(GameOverKey, g.score); err != nil {
		g.err = err
	}
}

func (g *Game) hitAsteroid(a *object.Asteroid, b *object.Bullet) {
	g.asteroids.Group().Kill(a)
	g.bullets.Kill(b)
	g.ctx.Audio.Play(audio.EffectHit)

	g.score += g.cfg.ScoreIncrement
	g.scoreText.SetText(fmt.Sprintf("Score: %d", g.score))
	g.ctx.Bus.Emit(event.ScoreChanged, g.score)
}

func (g *Game) Draw(s render.Surface) {
	s.Fill(g.background)
	g.asteroids.Group().Draw(s)
	g.bullets.Draw(s)
	g.ship.Draw(s)
	g.plasma.Draw(s)
	g.scoreText.Draw(s)
	g.livesText.Draw(s)
	g.pauseText.Draw(s)
}

func (g *Game) Shutdown() {
	for _, c := range g.colliders {
		g.world.RemoveCollider(c)
	}
	g.colliders = nil
	g.clock.Reset()
	g.plasma.Clear()
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Ship returns the player ship.
func (g *Game) Ship() *object.Ship { return g.ship }

// Asteroids returns the asteroid group.
func (g *Game) Asteroids() *object.Asteroids { return g.asteroids.Group() }

// Bullets returns the bullet group.
func (g *Game) Bullets() *Bullets { return g.bullets }

// Paused reports whether the scene clock is paused.
func (g *Game) Paused() bool { return g.clock.Paused() }

func (g *Game) newBullets() *Bullets {
	return object.NewGroup(g.cfg.Bullets.Count, func(_ int, b *object.Bullet) {
		b.Radius = g.cfg.Bullets.Radius
	})
}

func (g *Game) bulletMembers(yield func(*object.Bullet) bool) {
	for b := range g.bullets.Members() {
		if !yield(b) {
			return
		}
	}
}

func (g *Game) shipMembers(yield func(*object.Ship) bool) {
	yield(g.ship)
}

// center returns the centre of b, or the origin when there is no body.
func center(b *physics.Body) (x, y float64) {
	if b == nil {
		return 0, 0
	}
	return b.Center()
}

// FireHeld reports whether the fire key is held.
func (g *Game) FireHeld() bool { return g.fireHeld }

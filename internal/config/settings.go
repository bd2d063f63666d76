package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned by Validate for out-of-range values.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds every tunable game parameter.
// Defaults reproduce the classic arcade scene; a yaml file and environment
// variables can override them.
type Settings struct {
	World     WorldSettings     `yaml:"world"`
	Ship      ShipSettings      `yaml:"ship"`
	Asteroids AsteroidSettings  `yaml:"asteroids"`
	Bullets   BulletSettings    `yaml:"bullets"`
	Explosion ExplosionSettings `yaml:"explosion"`
	Session   SessionSettings   `yaml:"session"`

	// ScoreIncrement is added to the score per destroyed asteroid.
	ScoreIncrement int `yaml:"scoreIncrement"`
}

// WorldSettings describes the logical play field.
type WorldSettings struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Background uint32  `yaml:"background"` // 0xRRGGBB
	FrameRate  int     `yaml:"frameRate"`
	// TimeScale divides physics velocities: 3 means bodies move at a third
	// of their nominal speed.
	TimeScale float64 `yaml:"timeScale"`
}

// ShipSettings configures the player ship.
type ShipSettings struct {
	StartX       float64       `yaml:"startX"`
	StartY       float64       `yaml:"startY"`
	Speed        float64       `yaml:"speed"` // px per second
	Radius       float64       `yaml:"radius"`
	Lives        int           `yaml:"lives"`
	RespawnDelay time.Duration `yaml:"respawnDelay"`
}

// AsteroidSettings configures the asteroid pool.
type AsteroidSettings struct {
	Count     int     `yaml:"count"`
	Step      float64 `yaml:"step"` // px per frame
	SpacingX  float64 `yaml:"spacingX"`
	VelocityY float64 `yaml:"velocityY"`
	Radius    float64 `yaml:"radius"`
}

// BulletSettings configures the bullet pool.
type BulletSettings struct {
	Count  int     `yaml:"count"`
	Speed  float64 `yaml:"speed"` // px per second, upwards
	Radius float64 `yaml:"radius"`
}

// ExplosionSettings configures the destruction particle burst.
type ExplosionSettings struct {
	Quantity   int           `yaml:"quantity"`
	Lifespan   time.Duration `yaml:"lifespan"`
	Speed      float64       `yaml:"speed"`
	BaseRadius float64       `yaml:"baseRadius"`
}

// SessionSettings configures terminal and SSH sessions.
type SessionSettings struct {
	InactivityWarn       time.Duration `yaml:"inactivityWarn"`
	InactivityDisconnect time.Duration `yaml:"inactivityDisconnect"`
	ShutdownDisplay      time.Duration `yaml:"shutdownDisplay"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		World: WorldSettings{
			Width:      1024,
			Height:     768,
			Background: 0x101010,
			FrameRate:  60,
			TimeScale:  3,
		},
		Ship: ShipSettings{
			StartX:       512,
			StartY:       384,
			Speed:        200,
			Radius:       50 * 0.35,
			Lives:        3,
			RespawnDelay: 500 * time.Millisecond,
		},
		Asteroids: AsteroidSettings{
			Count:     6,
			Step:      5,
			SpacingX:  150,
			VelocityY: 10,
			Radius:    25,
		},
		Bullets: BulletSettings{
			Count:  30,
			Speed:  300,
			Radius: 4,
		},
		Explosion: ExplosionSettings{
			Quantity:   8,
			Lifespan:   500 * time.Millisecond,
			Speed:      60,
			BaseRadius: 6,
		},
		Session: SessionSettings{
			InactivityWarn:       90 * time.Second,
			InactivityDisconnect: 120 * time.Second,
			ShutdownDisplay:      10 * time.Second,
		},
		ScoreIncrement: 100,
	}
}

// Load reads a yaml settings file on top of the defaults and validates it.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// FromEnv returns the default settings, optionally overlaid by the yaml file
// named in SHOOTER_CONFIG, and finally by individual SHOOTER_* variables.
func FromEnv() (Settings, error) {
	s := Default()
	if path := GetEnv("SHOOTER_CONFIG", ""); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return s, err
		}
		s = loaded
	}
	s.ApplyEnv()
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// ApplyEnv overrides a subset of settings from environment variables.
func (s *Settings) ApplyEnv() {
	s.Ship.Lives = GetEnvInt("SHOOTER_LIVES", s.Ship.Lives)
	s.Ship.Speed = GetEnvFloat("SHOOTER_SHIP_SPEED", s.Ship.Speed)
	s.Ship.RespawnDelay = GetEnvDuration("SHOOTER_RESPAWN_DELAY", s.Ship.RespawnDelay)
	s.Asteroids.Count = GetEnvInt("SHOOTER_ASTEROIDS", s.Asteroids.Count)
	s.Bullets.Count = GetEnvInt("SHOOTER_BULLETS", s.Bullets.Count)
	s.World.TimeScale = GetEnvFloat("SHOOTER_TIME_SCALE", s.World.TimeScale)
	s.World.FrameRate = GetEnvInt("SHOOTER_FPS", s.World.FrameRate)
}

// Validate checks that the settings describe a playable scene.
func (s *Settings) Validate() error {
	switch {
	case s.World.Width <= 0 || s.World.Height <= 0:
		return fmt.Errorf("%w: world size %.0fx%.0f", ErrInvalidSettings, s.World.Width, s.World.Height)
	case s.World.FrameRate <= 0:
		return fmt.Errorf("%w: frame rate %d", ErrInvalidSettings, s.World.FrameRate)
	case s.World.TimeScale <= 0:
		return fmt.Errorf("%w: time scale %.2f", ErrInvalidSettings, s.World.TimeScale)
	case s.Ship.Lives < 1:
		return fmt.Errorf("%w: lives %d", ErrInvalidSettings, s.Ship.Lives)
	case s.Ship.Radius <= 0 || s.Asteroids.Radius <= 0 || s.Bullets.Radius <= 0:
		return fmt.Errorf("%w: collision radii must be positive", ErrInvalidSettings)
	case s.Asteroids.Count < 1:
		return fmt.Errorf("%w: asteroid count %d", ErrInvalidSettings, s.Asteroids.Count)
	case s.Bullets.Count < 1:
		return fmt.Errorf("%w: bullet count %d", ErrInvalidSettings, s.Bullets.Count)
	case s.ScoreIncrement < 0:
		return fmt.Errorf("%w: score increment %d", ErrInvalidSettings, s.ScoreIncrement)
	case s.Explosion.Quantity < 0:
		return fmt.Errorf("%w: explosion quantity %d", ErrInvalidSettings, s.Explosion.Quantity)
	}
	return nil
}

// FrameTime returns the target duration of one frame.
func (s *Settings) FrameTime() time.Duration {
	return time.Second / time.Duration(s.World.FrameRate)
}

// CollisionCellSize returns a broad-phase cell size large enough for the
// widest pair of colliding circles.
func (s *Settings) CollisionCellSize() float64 {
	return max(s.Ship.Radius, s.Bullets.Radius) + s.Asteroids.Radius
}

package object

import (
	"math/rand"
)

// Asteroids is the pooled asteroid group.
type Asteroids = Group[Asteroid, *Asteroid]

// SpawnerConfig lays out a wave of asteroids.
type SpawnerConfig struct {
	Count   int     // asteroids per wave
	Spacing float64 // horizontal distance between asteroids, first at x=0
	VY      float64 // initial vertical velocity, px/s
	Radius  float64
	Step    float64 // px moved down per shower tick
	Bottom  float64 // y past which an asteroid wraps to the top
}

// AsteroidSpawner keeps the asteroid shower going: it lays out a new wave
// whenever the group empties and otherwise moves every asteroid down.
type AsteroidSpawner struct {
	cfg   SpawnerConfig
	group *Asteroids
	rng   *rand.Rand
	waves int
}

// NewAsteroidSpawner creates the asteroid group and lays out the first wave.
func NewAsteroidSpawner(cfg SpawnerConfig, rng *rand.Rand) *AsteroidSpawner {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	s := &AsteroidSpawner{
		cfg:   cfg,
		group: NewGroup[Asteroid](cfg.Count, nil),
		rng:   rng,
	}
	s.Spawn()
	return s
}

// Group returns the asteroid group.
func (s *AsteroidSpawner) Group() *Asteroids {
	return s.group
}

// Spawn lays out a full wave along the top edge.
func (s *AsteroidSpawner) Spawn() {
	s.group.KillAll()
	for i := range s.cfg.Count {
		a, ok := s.group.Get(float64(i)*s.cfg.Spacing, 0)
		if !ok {
			break
		}
		a.VY = s.cfg.VY
		a.Shape(s.cfg.Radius, s.rng)
	}
	s.waves++
}

// Update replenishes an empty group, otherwise it moves every asteroid down
// by one step. It reports whether a new wave was spawned.
func (s *AsteroidSpawner) Update(dt float64) bool {
	if s.group.Len() == 0 {
		s.Spawn()
		return true
	}
	for a := range s.group.Members() {
		a.Fall(s.cfg.Step, s.cfg.Bottom)
		a.Turn(dt)
	}
	return false
}

// Waves returns how many waves have been spawned.
func (s *AsteroidSpawner) Waves() int {
	return s.waves
}

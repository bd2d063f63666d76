// Package audio synthesizes and plays the game's sound effects.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Effect is a sound effect.
type Effect int

const (
	EffectFire Effect = iota
	EffectHit
	EffectExplosion
)

func (e Effect) String() string {
	switch e {
	case EffectFire:
		return "fire"
	case EffectHit:
		return "hit"
	case EffectExplosion:
		return "explosion"
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// Player plays sound effects. Play must not block the frame loop.
type Player interface {
	Play(e Effect)
}

// Nop is a Player that plays nothing.
type Nop struct{}

func (Nop) Play(Effect) {}

// Speaker plays effects on the local sound device through a shared mixer.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewSpeaker initializes the sound device. Volume is in [0, 1].
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}, volume: volume}
	speaker.Play(s.mixer)
	return s, nil
}

// NewPlayer returns a Speaker, or Nop when the sound device is unavailable.
func NewPlayer(volume float64, logger *log.Logger) Player {
	if volume <= 0 {
		return Nop{}
	}
	s, err := NewSpeaker(volume)
	if err != nil {
		if logger != nil {
			logger.Warn("Sound disabled", "error", err)
		}
		return Nop{}
	}
	return s
}

// Play queues e on the mixer.
func (s *Speaker) Play(e Effect) {
	st := Streamer(e, sampleRate, s.volume)
	if st == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences every playing effect and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// Recorder is a Player that remembers what it was asked to play.
type Recorder struct {
	Played []Effect
}

func (r *Recorder) Play(e Effect) {
	r.Played = append(r.Played, e)
}

var (
	_ Player = Nop{}
	_ Player = (*Speaker)(nil)
	_ Player = (*Recorder)(nil)
)

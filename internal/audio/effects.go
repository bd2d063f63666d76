package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator wave shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// oscillator generates a wave whose frequency slides linearly from freq to
// endFreq over its duration.
type oscillator struct {
	freq, endFreq float64
	phase         float64
	total         int
	pos           int
	wave          Wave
	rate          beep.SampleRate
}

func newOscillator(freq, endFreq float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{freq: freq, endFreq: endFreq, total: rate.N(d), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.total {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveNoise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		t := float64(o.pos) / float64(o.total)
		o.phase += (o.freq + (o.endFreq-o.freq)*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay scales a stream by a linear attack followed by an exponential
// release over the stream's duration.
type decay struct {
	s       beep.Streamer
	attack  int
	total   int
	pos     int
	falloff float64
}

func newDecay(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) *decay {
	return &decay{s: s, attack: rate.N(attack), total: rate.N(d), falloff: 5}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.s.Stream(samples)
	for i := range n {
		vol := math.Exp(-d.falloff * float64(d.pos) / float64(max(d.total, 1)))
		if d.pos < d.attack {
			vol *= float64(d.pos) / float64(d.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.s.Err() }

// gain wraps s in a volume effect; 0 or less is silent.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Streamer builds a fresh streamer for effect e at the given volume.
// Unknown effects return nil.
func Streamer(e Effect, rate beep.SampleRate, vol float64) beep.Streamer {
	switch e {
	case EffectFire:
		const d = 90 * time.Millisecond
		osc := newOscillator(1400, 500, d, WaveSquare, rate)
		return gain(newDecay(osc, d, 2*time.Millisecond, rate), vol*0.3)
	case EffectHit:
		const d = 160 * time.Millisecond
		noise := newOscillator(0, 0, d, WaveNoise, rate)
		tone := newOscillator(320, 120, d, WaveSine, rate)
		mixed := beep.Mix(gain(noise, 0.5), gain(tone, 0.5))
		return gain(newDecay(beep.Take(rate.N(d), mixed), d, 3*time.Millisecond, rate), vol*0.5)
	case EffectExplosion:
		const d = 600 * time.Millisecond
		noise := newOscillator(0, 0, d, WaveNoise, rate)
		rumble := newOscillator(90, 30, d, WaveSine, rate)
		mixed := beep.Mix(gain(noise, 0.6), gain(rumble, 0.8))
		return gain(newDecay(beep.Take(rate.N(d), mixed), d, 5*time.Millisecond, rate), vol*0.7)
	}
	return nil
}

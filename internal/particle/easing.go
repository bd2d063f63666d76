package particle

import "math"

// Ease maps progress t in [0, 1] to an eased value in [0, 1].
type Ease func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// EaseInCubic starts slow and ends fast: t³.
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic starts fast and ends slow: 1 - (1-t)³.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Lerp interpolates between a and b; t=0 returns a, t=1 returns b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Range is a start/end pair interpolated over a particle's life.
type Range struct {
	Start, End float64
	Ease       Ease
}

// At returns the value at progress t.
func (r Range) At(t float64) float64 {
	t = min(max(t, 0), 1)
	ease := r.Ease
	if ease == nil {
		ease = Linear
	}
	return Lerp(r.Start, r.End, ease(t))
}

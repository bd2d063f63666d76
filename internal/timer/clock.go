// Package timer provides the per-scene clock used for delayed calls.
package timer

import (
	"slices"
	"time"
)

// Event is a pending delayed call.
type Event struct {
	delay    time.Duration
	elapsed  time.Duration
	callback func()
	done     bool
}

// Remaining returns how long until the event fires.
func (e *Event) Remaining() time.Duration {
	return max(e.delay-e.elapsed, 0)
}

// Done reports whether the event fired or was removed.
func (e *Event) Done() bool {
	return e.done
}

// Clock advances scene time and fires delayed calls. It is driven by the
// frame loop and never starts goroutines; callbacks run inside Update.
type Clock struct {
	now    time.Duration
	paused bool
	events []*Event
}

// NewClock creates a running clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// DelayedCall schedules fn to run once after delay of scene time.
func (c *Clock) DelayedCall(delay time.Duration, fn func()) *Event {
	ev := &Event{delay: delay, callback: fn}
	c.events = append(c.events, ev)
	return ev
}

// Remove cancels a pending event.
func (c *Clock) Remove(ev *Event) {
	if ev == nil || ev.done {
		return
	}
	ev.done = true
	c.events = slices.DeleteFunc(c.events, func(x *Event) bool { return x == ev })
}

// Update advances the clock by delta and fires every due event in
// scheduling order. Events scheduled by a callback start counting on the
// next Update. A paused clock does nothing.
func (c *Clock) Update(delta time.Duration) {
	if c.paused || delta < 0 {
		return
	}
	c.now += delta

	due := c.events
	c.events = nil
	var pending []*Event
	for _, ev := range due {
		if ev.done {
			continue
		}
		ev.elapsed += delta
		if ev.elapsed < ev.delay {
			pending = append(pending, ev)
			continue
		}
		ev.done = true
		if ev.callback != nil {
			ev.callback()
		}
	}
	c.events = append(pending, c.events...)
}

// Now returns the scene time elapsed while the clock was running.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pause stops the clock.
func (c *Clock) Pause() {
	c.paused = true
}

// Resume restarts a paused clock.
func (c *Clock) Resume() {
	c.paused = false
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}

// Pending returns the number of events waiting to fire.
func (c *Clock) Pending() int {
	return len(c.events)
}

// Reset cancels every pending event and rewinds the clock.
func (c *Clock) Reset() {
	for _, ev := range c.events {
		ev.done = true
	}
	c.events = nil
	c.now = 0
	c.paused = false
}

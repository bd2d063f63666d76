// Package event provides the synchronous event bus scenes use to notify
// listeners outside the scene, such as frontends and loggers.
package event

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Event names emitted by the scenes.
const (
	SceneReady    = "current-scene-ready"
	ScoreChanged  = "score-changed"
	LivesChanged  = "lives-changed"
	ShipDestroyed = "ship-destroyed"
	GameOver      = "game-over"
)

// Listener receives the arguments passed to Emit.
type Listener func(args ...any)

// ID identifies a subscription.
type ID uint64

type subscription struct {
	name string
	fn   Listener
	once bool
}

// Bus dispatches named events to listeners in registration order.
// It is not safe for concurrent use; every call happens on the frame loop.
type Bus struct {
	subs   *intmap.Map[ID, subscription]
	order  map[string][]ID
	nextID ID
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs:  intmap.New[ID, subscription](16),
		order: make(map[string][]ID),
	}
}

// On subscribes fn to name.
func (b *Bus) On(name string, fn Listener) ID {
	return b.add(name, fn, false)
}

// Once subscribes fn to the next emission of name only.
func (b *Bus) Once(name string, fn Listener) ID {
	return b.add(name, fn, true)
}

// Off removes a subscription. It reports whether the subscription existed.
func (b *Bus) Off(id ID) bool {
	sub, ok := b.subs.Get(id)
	if !ok {
		return false
	}
	b.subs.Del(id)
	b.order[sub.name] = slices.DeleteFunc(b.order[sub.name], func(x ID) bool { return x == id })
	if len(b.order[sub.name]) == 0 {
		delete(b.order, sub.name)
	}
	return true
}

// Emit calls every listener of name with args and reports whether any
// listener was called. Listeners added during Emit are not called until the
// next emission.
func (b *Bus) Emit(name string, args ...any) bool {
	ids := slices.Clone(b.order[name])
	called := false
	for _, id := range ids {
		sub, ok := b.subs.Get(id)
		if !ok {
			continue // removed by an earlier listener
		}
		if sub.once {
			b.Off(id)
		}
		sub.fn(args...)
		called = true
	}
	return called
}

// ListenerCount returns the number of listeners subscribed to name.
func (b *Bus) ListenerCount(name string) int {
	return len(b.order[name])
}

// Len returns the total number of subscriptions.
func (b *Bus) Len() int {
	return b.subs.Len()
}

func (b *Bus) add(name string, fn Listener, once bool) ID {
	b.nextID++
	id := b.nextID
	b.subs.Put(id, subscription{name: name, fn: fn, once: once})
	b.order[name] = append(b.order[name], id)
	return id
}

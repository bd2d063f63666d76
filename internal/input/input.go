// Package input turns raw frontend input into key transitions for scenes.
//
// Terminals only report key presses (with auto-repeat), never releases, so
// the terminal Stream keeps a key "held" for a window after its last byte
// that outlasts the auto-repeat interval. Successive Snapshots are diffed into Press/Release calls on a
// Keyboard, which then behaves like an event-driven desktop keyboard.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// It must exceed the terminal auto-repeat interval (about 33-40ms) so a held
// key stays down between repeats. The initial repeat delay is longer and
// still reads as a second press.
const keyHoldDuration = 150 * time.Millisecond

// Snapshot is the set of keys held during one frame.
type Snapshot struct {
	held    [keyCount]bool
	Pressed []byte // raw bytes read this frame
}

// Held reports whether code was held in this snapshot.
func (s Snapshot) Held(code KeyCode) bool {
	if code <= KeyUnknown || code >= keyCount {
		return false
	}
	return s.held[code]
}

// With returns a copy of s with code marked as held.
func (s Snapshot) With(code KeyCode) Snapshot {
	if code > KeyUnknown && code < keyCount {
		s.held[code] = true
	}
	return s
}

// Receiver accepts key transitions.
type Receiver interface {
	KeyDown(code KeyCode)
	KeyUp(code KeyCode)
}

// Diff sends a KeyDown for every key held in cur but not in prev, and a KeyUp
// for every key held in prev but not in cur.
func Diff(prev, cur Snapshot, r Receiver) {
	for code := KeyUnknown + 1; code < keyCount; code++ {
		switch {
		case cur.held[code] && !prev.held[code]:
			r.KeyDown(code)
		case !cur.held[code] && prev.held[code]:
			r.KeyUp(code)
		}
	}
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch       chan byte
	lastSeen [keyCount]time.Time
	now      func() time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns the keys held at this instant. Handles escape sequences for arrow
// keys. A closed stream reports the quit key so the caller can stop.
func ReadInput(s *Stream) Snapshot {
	now := s.now()
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if code := arrowKey(buf[i+2]); code != KeyUnknown {
				s.lastSeen[code] = now
				i += 2
				continue
			}
		}

		if code := byteKey(b); code != KeyUnknown {
			s.lastSeen[code] = now
		}
	}

	snap := Snapshot{Pressed: buf}
	for code := KeyUnknown + 1; code < keyCount; code++ {
		snap.held[code] = !s.lastSeen[code].IsZero() && now.Sub(s.lastSeen[code]) < keyHoldDuration
	}
	if closed {
		snap.held[KeyQuit] = true
	}
	return snap
}

// ResetKeyInput forgets every recently seen key, so a key used to leave a
// screen does not leak into the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	clear(s.lastSeen[:])
}

func arrowKey(b byte) KeyCode {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyUnknown
}

// byteKey maps a single input byte to a key.
func byteKey(b byte) KeyCode {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		return KeyQuit
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'w', 'W', 'k', 'K':
		return KeyUp
	case 's', 'S', 'j', 'J':
		return KeyDown
	case 'p', 'P':
		return KeyPause
	case ' ':
		return KeySpace
	case '\n', '\r':
		return KeyEnter
	case '\x1b':
		return KeyEscape
	}
	return KeyUnknown
}

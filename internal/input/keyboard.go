package input

// KeyCode identifies a logical key independent of the frontend.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyShift
	KeyEnter
	KeyEscape
	KeyPause
	KeyQuit
	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown: "unknown",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
	KeySpace:   "space",
	KeyShift:   "shift",
	KeyEnter:   "enter",
	KeyEscape:  "escape",
	KeyPause:   "pause",
	KeyQuit:    "quit",
}

func (c KeyCode) String() string {
	if c < 0 || c >= keyCount {
		return "unknown"
	}
	return keyNames[c]
}

// EventKind distinguishes key transitions.
type EventKind int

const (
	EventDown EventKind = iota
	EventUp
)

// Key tracks the state of one key and dispatches its transitions to
// listeners synchronously, on the goroutine that feeds the keyboard.
type Key struct {
	Code KeyCode

	isDown    bool
	justDown  bool
	justUp    bool
	listeners [2][]func(k *Key)
}

// On registers fn for the given transition and returns the key for chaining.
func (k *Key) On(kind EventKind, fn func(k *Key)) *Key {
	if k == nil || fn == nil {
		return k
	}
	k.listeners[kind] = append(k.listeners[kind], fn)
	return k
}

// IsDown reports whether the key is currently held.
func (k *Key) IsDown() bool {
	return k != nil && k.isDown
}

// JustDown reports whether the key was pressed since the last call.
// It returns true once per physical press, however long the key is held.
func (k *Key) JustDown() bool {
	if k == nil || !k.justDown {
		return false
	}
	k.justDown = false
	return true
}

// JustUp reports whether the key was released since the last call.
func (k *Key) JustUp() bool {
	if k == nil || !k.justUp {
		return false
	}
	k.justUp = false
	return true
}

// Reset clears the key state without firing listeners.
func (k *Key) Reset() {
	k.isDown = false
	k.justDown = false
	k.justUp = false
}

func (k *Key) press() {
	if k.isDown {
		return // auto-repeat
	}
	k.isDown = true
	k.justDown = true
	k.justUp = false
	k.emit(EventDown)
}

func (k *Key) release() {
	if !k.isDown {
		return
	}
	k.isDown = false
	k.justUp = true
	k.emit(EventUp)
}

func (k *Key) emit(kind EventKind) {
	for _, fn := range k.listeners[kind] {
		fn(k)
	}
}

// CursorKeys is the standard set of movement and action keys.
type CursorKeys struct {
	Up, Down, Left, Right, Space, Shift *Key
}

// Keyboard owns the keys of one scene.
type Keyboard struct {
	keys [keyCount]*Key
}

// NewKeyboard creates an empty keyboard.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// AddKey returns the key for code, creating it on first use.
func (kb *Keyboard) AddKey(code KeyCode) *Key {
	if code <= KeyUnknown || code >= keyCount {
		return nil
	}
	if kb.keys[code] == nil {
		kb.keys[code] = &Key{Code: code}
	}
	return kb.keys[code]
}

// CreateCursorKeys returns the arrow keys plus space and shift.
func (kb *Keyboard) CreateCursorKeys() *CursorKeys {
	return &CursorKeys{
		Up:    kb.AddKey(KeyUp),
		Down:  kb.AddKey(KeyDown),
		Left:  kb.AddKey(KeyLeft),
		Right: kb.AddKey(KeyRight),
		Space: kb.AddKey(KeySpace),
		Shift: kb.AddKey(KeyShift),
	}
}

// Press records a key-down transition. Keys nobody asked for are ignored.
func (kb *Keyboard) Press(code KeyCode) {
	if k := kb.key(code); k != nil {
		k.press()
	}
}

// Release records a key-up transition.
func (kb *Keyboard) Release(code KeyCode) {
	if k := kb.key(code); k != nil {
		k.release()
	}
}

// ReleaseAll releases every held key, firing up listeners.
func (kb *Keyboard) ReleaseAll() {
	for _, k := range kb.keys {
		if k != nil {
			k.release()
		}
	}
}

// IsDown reports whether the key for code is held.
func (kb *Keyboard) IsDown(code KeyCode) bool {
	return kb.key(code).IsDown()
}

func (kb *Keyboard) key(code KeyCode) *Key {
	if code <= KeyUnknown || code >= keyCount {
		return nil
	}
	return kb.keys[code]
}

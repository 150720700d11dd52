package rack

// MouseButton represents a mouse button.
// Values match GLFW button numbers so backends convert by cast.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Action is the transition reported for a button or key.
type Action int

const (
	Release Action = iota
	Press
	Repeat
)

// Mods is a bitmask of modifier keys held during an input event.
type Mods int

const (
	ModShift Mods = 1 << iota
	ModControl
	ModAlt
	ModSuper
	ModCapsLock
	ModNumLock
)

// Has reports whether all bits of m2 are set.
func (m Mods) Has(m2 Mods) bool {
	return m&m2 == m2
}

// Key represents a keyboard key.
// Values match GLFW key codes; only the keys referenced by the core are named.
type Key int

const (
	KeyUnknown   Key = -1
	KeySpace     Key = 32
	KeyA         Key = 65
	KeyC         Key = 67
	KeyV         Key = 86
	KeyZ         Key = 90
	KeyEscape    Key = 256
	KeyEnter     Key = 257
	KeyTab       Key = 258
	KeyBackspace Key = 259
	KeyDelete    Key = 261
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
)

// KeyName returns a human-readable name for a key.
func KeyName(k Key) string {
	names := map[Key]string{
		KeyUnknown:   "--",
		KeySpace:     "Space",
		KeyEscape:    "Esc",
		KeyEnter:     "Enter",
		KeyTab:       "Tab",
		KeyBackspace: "Backspace",
		KeyDelete:    "Del",
		KeyRight:     "Right",
		KeyLeft:      "Left",
		KeyDown:      "Down",
		KeyUp:        "Up",
	}
	if name, ok := names[k]; ok {
		return name
	}
	if k >= KeyA && k <= KeyZ {
		return string(rune('A' + (k - KeyA)))
	}
	return "?"
}

// CursorLocker is the window side of cursor capture. Widgets reach it
// through Interaction while dragging controls that need unbounded motion.
type CursorLocker interface {
	LockCursor()
	UnlockCursor()
	// IsModPressed reports whether the platform's primary modifier is held.
	IsModPressed() bool
}

// KeyboardDriver receives raw key transitions when the caps-lock gate is
// active, letting the computer keyboard act as a note input device.
type KeyboardDriver interface {
	Press(key Key)
	Release(key Key)
}

package cmdline

// KeyCode is the virtual key of a KeyEvent.
type KeyCode int

const (
	KeyRune KeyCode = iota // a character; see KeyEvent.Rune
	KeyUp
	KeyDown
	KeyBackspace
	KeyEscape
	KeyEnter
	KeyOther
)

// KeyEvent is one key press. Rune is set for KeyRune.
type KeyEvent struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the event for typing r
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Code: KeyRune, Rune: r}
}

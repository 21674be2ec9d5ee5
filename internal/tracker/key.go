package tracker

// KeyCode classifies a logical key symbol. The terminal collaborator
// decodes raw input into these before they reach the router; navigation
// keys never reach it at all.
type KeyCode int

const (
	// KeyRune is a printable character carried in Key.Rune.
	KeyRune KeyCode = iota
	// KeyEnter commits the pending entry or confirms a target.
	KeyEnter
	// KeyEscape cancels the current modal sub-state.
	KeyEscape
	// KeyBackspace deletes the last buffered character.
	KeyBackspace
)

// Key is one decoded key symbol.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey builds a printable-character key.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

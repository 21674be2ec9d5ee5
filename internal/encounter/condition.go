package encounter

// Condition is a named status effect applied to a combatant.
//
// Conditions are opaque to the tracker: it records whatever the operator
// enters and never interprets the tag against game rules.
type Condition struct {
	Tag    string // Free-form label (e.g., "Poisoned")
	Rounds int    // Rounds remaining; 0 means indefinite
	Source string // Optional note about what caused it
}

// Indefinite reports whether the condition has no duration.
func (c Condition) Indefinite() bool {
	return c.Rounds <= 0
}

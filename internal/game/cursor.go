package game

import "github.com/samdwyer/turntracker/internal/tracker"

// Cursor tracks which combatant is highlighted. Navigation lives here,
// outside the input router; the router only reads the highlighted id.
type Cursor struct {
	ids []string
	pos int
}

// NewCursor creates a cursor over combatant ids in turn order, starting at
// the first entry.
func NewCursor(ids []string) *Cursor {
	return &Cursor{ids: ids}
}

// HighlightedID returns the highlighted combatant's id, or "" for an empty
// roster.
func (c *Cursor) HighlightedID() string {
	if len(c.ids) == 0 {
		return ""
	}
	return c.ids[c.pos]
}

// Move shifts the highlight by delta rows, clamped to the roster bounds.
func (c *Cursor) Move(delta int) {
	c.pos += delta
	if c.pos < 0 {
		c.pos = 0
	}
	if c.pos >= len(c.ids) {
		c.pos = len(c.ids) - 1
	}
}

var _ tracker.Selector = (*Cursor)(nil)

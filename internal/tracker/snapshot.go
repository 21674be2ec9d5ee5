package tracker

import (
	"fmt"

	"github.com/samdwyer/turntracker/internal/encounter"
)

// CombatantRow is the read-only per-combatant slice of the view model.
type CombatantRow struct {
	ID   string
	Name string

	CurrentHP int
	MaxHP     int
	Down      bool

	ActionUsed      bool
	BonusActionUsed bool
	ReactionUsed    bool

	ArmorClass int
	Speed      int
	Scores     encounter.AbilityScores

	Conditions []string // Formatted, in application order

	Active      bool // Active turn holder
	Highlighted bool // Under the cursor
}

// Snapshot is the view model handed to the render collaborator after each
// processed event. It is a copy; mutating it does not touch the encounter.
type Snapshot struct {
	Rows        []CombatantRow
	Round       int
	ActiveIndex int

	Mode          Mode
	Buffer        string
	PendingTarget string // Name of the confirmed damage target, if any

	View   ViewMode
	Status string
}

// Snapshot builds the current view model.
func (r *Router) Snapshot() Snapshot {
	enc := r.trk.Encounter()
	highlighted := r.sel.HighlightedID()

	combatants := enc.Combatants()
	rows := make([]CombatantRow, 0, len(combatants))
	for i, c := range combatants {
		rows = append(rows, CombatantRow{
			ID:              c.ID,
			Name:            c.Name,
			CurrentHP:       c.CurrentHP,
			MaxHP:           c.MaxHP,
			Down:            c.IsDown(),
			ActionUsed:      c.ActionUsed,
			BonusActionUsed: c.BonusActionUsed,
			ReactionUsed:    c.ReactionUsed,
			ArmorClass:      c.ArmorClass,
			Speed:           c.Speed,
			Scores:          c.Scores,
			Conditions:      formatConditions(c.Conditions),
			Active:          i == enc.ActiveIndex(),
			Highlighted:     c.ID == highlighted,
		})
	}

	snap := Snapshot{
		Rows:        rows,
		Round:       enc.Round(),
		ActiveIndex: enc.ActiveIndex(),
		Mode:        r.mode,
		Buffer:      string(r.buffer),
		View:        r.trk.View(),
		Status:      r.status,
	}
	if r.mode == ModeDamageEntry && r.pendingTarget != "" {
		if c, err := enc.Get(r.pendingTarget); err == nil {
			snap.PendingTarget = c.Name
		}
	}
	return snap
}

// formatConditions renders conditions as compact labels, timed ones with
// their rounds remaining.
func formatConditions(conds []encounter.Condition) []string {
	out := make([]string, 0, len(conds))
	for _, c := range conds {
		if c.Indefinite() {
			out = append(out, c.Tag)
		} else {
			out = append(out, fmt.Sprintf("%s (%d)", c.Tag, c.Rounds))
		}
	}
	return out
}

package tracker

// ViewMode selects what the info panel shows for the highlighted combatant.
type ViewMode int

const (
	// ViewCombatCard is the condensed per-combatant display.
	ViewCombatCard ViewMode = iota
	// ViewStats is the full stat block display.
	ViewStats
)

// String returns a human-readable view mode name.
func (v ViewMode) String() string {
	switch v {
	case ViewCombatCard:
		return "combat_card"
	case ViewStats:
		return "stats"
	default:
		return "unknown"
	}
}

// Toggle returns the other view mode. Toggling twice is an involution.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewStats {
		return ViewCombatCard
	}
	return ViewStats
}

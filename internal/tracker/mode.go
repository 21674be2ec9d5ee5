package tracker

// Mode is the router's current interaction sub-state. Exactly one mode is
// active at a time; entry modes own the pending buffer, target selection
// owns the pending target.
type Mode int

const (
	// ModeIdle is the default browsing state; turn-control keys live here.
	ModeIdle Mode = iota
	// ModeSelectingDamageTarget waits for the operator to confirm a target.
	ModeSelectingDamageTarget
	// ModeConditionEntry collects a condition tag/duration/source as text.
	ModeConditionEntry
	// ModeDamageEntry collects a damage or healing amount as text.
	ModeDamageEntry
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSelectingDamageTarget:
		return "select_damage_target"
	case ModeConditionEntry:
		return "condition_entry"
	case ModeDamageEntry:
		return "damage_entry"
	default:
		return "unknown"
	}
}

// Entry reports whether the mode consumes keystrokes as literal text.
func (m Mode) Entry() bool {
	return m == ModeConditionEntry || m == ModeDamageEntry
}

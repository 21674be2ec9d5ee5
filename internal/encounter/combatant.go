// Package encounter owns the combatant roster and per-combatant combat state.
package encounter

// ActionKind identifies one of the three per-turn action-economy slots.
type ActionKind int

const (
	ActionMain ActionKind = iota
	ActionBonus
	ActionReaction
)

// String returns a human-readable action kind name.
func (k ActionKind) String() string {
	switch k {
	case ActionMain:
		return "action"
	case ActionBonus:
		return "bonus_action"
	case ActionReaction:
		return "reaction"
	default:
		return "unknown"
	}
}

// AbilityScores holds the six ability scores shown in the stat block view.
type AbilityScores struct {
	Str, Dex, Con, Int, Wis, Cha int
}

// Combatant is a tracked participant in the encounter.
type Combatant struct {
	ID   string // Stable unique identifier
	Name string // Display name

	// Health, clamped to [0, MaxHP] by ApplyDamage/ApplyHealing.
	MaxHP     int
	CurrentHP int

	// Stat block display fields. The tracker never interprets these.
	ArmorClass int
	Speed      int
	Scores     AbilityScores

	// Active conditions in application order. The same tag may appear
	// more than once (e.g., stacking poison).
	Conditions []Condition

	// Action economy, reset when this combatant becomes the active
	// turn holder.
	ActionUsed      bool
	BonusActionUsed bool
	ReactionUsed    bool
}

// IsDown reports whether the combatant is at zero HP.
func (c *Combatant) IsDown() bool {
	return c.CurrentHP <= 0
}

// ApplyDamage reduces HP, saturating at zero, and returns the amount
// actually lost. Over-damage is not an error.
func (c *Combatant) ApplyDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > c.CurrentHP {
		actual = c.CurrentHP
	}
	c.CurrentHP -= actual
	return actual
}

// ApplyHealing restores HP, saturating at MaxHP, and returns the amount
// actually restored. Over-healing is not an error.
func (c *Combatant) ApplyHealing(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if c.CurrentHP+actual > c.MaxHP {
		actual = c.MaxHP - c.CurrentHP
	}
	c.CurrentHP += actual
	return actual
}

// AddCondition appends a condition. Existing conditions are never touched;
// the sequence only grows.
func (c *Combatant) AddCondition(cond Condition) {
	c.Conditions = append(c.Conditions, cond)
}

// TickConditions decrements every timed condition by one round and removes
// the ones that reach zero, returning the expired conditions in order.
// Indefinite conditions are left alone.
func (c *Combatant) TickConditions() []Condition {
	var expired []Condition
	remaining := c.Conditions[:0]
	for _, cond := range c.Conditions {
		if cond.Indefinite() {
			remaining = append(remaining, cond)
			continue
		}
		cond.Rounds--
		if cond.Rounds <= 0 {
			expired = append(expired, cond)
		} else {
			remaining = append(remaining, cond)
		}
	}
	c.Conditions = remaining
	return expired
}

// UseAction marks the given action slot as spent. Marking an already-spent
// slot is a no-op, not an error.
func (c *Combatant) UseAction(kind ActionKind) {
	switch kind {
	case ActionMain:
		c.ActionUsed = true
	case ActionBonus:
		c.BonusActionUsed = true
	case ActionReaction:
		c.ReactionUsed = true
	}
}

// ToggleAction flips the given action slot, for operators who want to undo
// a mistaken press.
func (c *Combatant) ToggleAction(kind ActionKind) {
	switch kind {
	case ActionMain:
		c.ActionUsed = !c.ActionUsed
	case ActionBonus:
		c.BonusActionUsed = !c.BonusActionUsed
	case ActionReaction:
		c.ReactionUsed = !c.ReactionUsed
	}
}

// ActionAvailable reports whether the given action slot is still unspent.
func (c *Combatant) ActionAvailable(kind ActionKind) bool {
	switch kind {
	case ActionMain:
		return !c.ActionUsed
	case ActionBonus:
		return !c.BonusActionUsed
	case ActionReaction:
		return !c.ReactionUsed
	default:
		return false
	}
}

// ResetActionEconomy clears all three action slots. Called exactly when the
// combatant becomes the active turn holder.
func (c *Combatant) ResetActionEconomy() {
	c.ActionUsed = false
	c.BonusActionUsed = false
	c.ReactionUsed = false
}

package encounter

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a combatant id does not resolve against
// the current roster.
var ErrNotFound = errors.New("combatant not found")

// Encounter holds the ordered roster, the active-turn pointer, and the
// round counter. Combatants are created at setup and never removed while
// the encounter runs.
type Encounter struct {
	combatants map[string]*Combatant
	order      []string // Turn order (combatant ids)
	active     int      // Index into order
	round      int      // Starts at 1
}

// New creates an encounter from combatants already sorted into turn order.
func New(combatants []*Combatant) (*Encounter, error) {
	if len(combatants) == 0 {
		return nil, errors.New("encounter needs at least one combatant")
	}

	byID := make(map[string]*Combatant, len(combatants))
	order := make([]string, 0, len(combatants))
	for _, c := range combatants {
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate combatant id %q", c.ID)
		}
		byID[c.ID] = c
		order = append(order, c.ID)
	}

	return &Encounter{
		combatants: byID,
		order:      order,
		active:     0,
		round:      1,
	}, nil
}

// Get returns the combatant with the given id.
func (e *Encounter) Get(id string) (*Combatant, error) {
	c, ok := e.combatants[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c, nil
}

// Combatants returns all combatants in turn order.
func (e *Encounter) Combatants() []*Combatant {
	out := make([]*Combatant, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.combatants[id])
	}
	return out
}

// Len returns the roster size.
func (e *Encounter) Len() int {
	return len(e.order)
}

// Round returns the current round, starting at 1.
func (e *Encounter) Round() int {
	return e.round
}

// ActiveIndex returns the position of the active turn holder in turn order.
func (e *Encounter) ActiveIndex() int {
	return e.active
}

// Active returns the active turn holder.
func (e *Encounter) Active() *Combatant {
	e.checkInvariants()
	return e.combatants[e.order[e.active]]
}

// AdvanceTurn moves the active pointer one step, incrementing the round
// when the order wraps, and returns the new active combatant. Each call
// advances exactly one step. Action economy is the caller's concern.
func (e *Encounter) AdvanceTurn() *Combatant {
	e.checkInvariants()
	e.active = (e.active + 1) % len(e.order)
	if e.active == 0 {
		e.round++
	}
	return e.combatants[e.order[e.active]]
}

// ApplyDamage reduces a combatant's HP, clamped at zero, returning the
// amount actually applied.
func (e *Encounter) ApplyDamage(id string, amount int) (int, error) {
	c, err := e.Get(id)
	if err != nil {
		return 0, err
	}
	return c.ApplyDamage(amount), nil
}

// ApplyHealing restores a combatant's HP, clamped at MaxHP, returning the
// amount actually applied.
func (e *Encounter) ApplyHealing(id string, amount int) (int, error) {
	c, err := e.Get(id)
	if err != nil {
		return 0, err
	}
	return c.ApplyHealing(amount), nil
}

// AddCondition appends a condition to a combatant.
func (e *Encounter) AddCondition(id string, cond Condition) error {
	c, err := e.Get(id)
	if err != nil {
		return err
	}
	c.AddCondition(cond)
	return nil
}

// RemoveExpiredConditions ticks a combatant's timed conditions down one
// round and removes the ones that expire, returning them. Called once at
// the start of that combatant's turn.
func (e *Encounter) RemoveExpiredConditions(id string) ([]Condition, error) {
	c, err := e.Get(id)
	if err != nil {
		return nil, err
	}
	return c.TickConditions(), nil
}

// SetActionUsed marks an action slot spent on a combatant.
func (e *Encounter) SetActionUsed(id string, kind ActionKind) error {
	c, err := e.Get(id)
	if err != nil {
		return err
	}
	c.UseAction(kind)
	return nil
}

// ToggleActionUsed flips an action slot on a combatant.
func (e *Encounter) ToggleActionUsed(id string, kind ActionKind) error {
	c, err := e.Get(id)
	if err != nil {
		return err
	}
	c.ToggleAction(kind)
	return nil
}

// ResetActionEconomy clears all three action slots on a combatant.
func (e *Encounter) ResetActionEconomy(id string) error {
	c, err := e.Get(id)
	if err != nil {
		return err
	}
	c.ResetActionEconomy()
	return nil
}

// checkInvariants panics if the turn pointer or round counter is out of
// range. Unreachable through the public contract.
func (e *Encounter) checkInvariants() {
	if e.active < 0 || e.active >= len(e.order) {
		panic(fmt.Sprintf("encounter: active index %d out of range [0,%d)", e.active, len(e.order)))
	}
	if e.round < 1 {
		panic(fmt.Sprintf("encounter: round %d < 1", e.round))
	}
}

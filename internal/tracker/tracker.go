// Package tracker drives turn advancement, condition and damage application,
// and the key-driven interaction state machine on top of an encounter.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/turntracker/internal/encounter"
	"github.com/samdwyer/turntracker/internal/telemetry"
)

// ErrInvalidAmount is returned when operator-entered damage/heal text does
// not parse as a number. Validation of the input text, not of game rules.
var ErrInvalidAmount = errors.New("invalid amount")

// ActionPolicy controls what pressing an action key does when the slot is
// already spent.
type ActionPolicy int

const (
	// PolicyMarkUsed marks the slot spent; re-pressing is a no-op.
	PolicyMarkUsed ActionPolicy = iota
	// PolicyToggle flips the slot, letting the operator undo a misclick.
	PolicyToggle
)

// Tracker applies operator actions to an encounter. It owns the view
// preference for the session but no rendering.
type Tracker struct {
	enc    *encounter.Encounter
	policy ActionPolicy
	view   ViewMode
}

// New creates a tracker over an encounter.
func New(enc *encounter.Encounter, policy ActionPolicy, view ViewMode) *Tracker {
	return &Tracker{enc: enc, policy: policy, view: view}
}

// Encounter returns the underlying encounter.
func (t *Tracker) Encounter() *encounter.Encounter {
	return t.enc
}

// View returns the current view preference.
func (t *Tracker) View() ViewMode {
	return t.view
}

// ToggleView flips the view preference between stat block and combat card.
func (t *Tracker) ToggleView() {
	t.view = t.view.Toggle()
}

// AdvanceTurn moves to the next combatant in turn order. On wrap the round
// counter increments. The newly active combatant (and only that combatant)
// gets its action economy reset and its timed conditions ticked. Repeated
// calls step repeatedly; nothing is batched.
func (t *Tracker) AdvanceTurn(ctx context.Context) *encounter.Combatant {
	tracer := telemetry.Tracer("tracker")
	_, span := tracer.Start(ctx, "tracker.turn")
	defer span.End()

	next := t.enc.AdvanceTurn()
	next.ResetActionEconomy()
	expired := next.TickConditions()

	span.SetAttributes(
		attribute.Int("round", t.enc.Round()),
		attribute.Int("turn_index", t.enc.ActiveIndex()),
		attribute.String("active", next.Name),
		attribute.Int("conditions_expired", len(expired)),
	)
	return next
}

// UseAction records an action-economy use on the given combatant, which
// need not be the active one (reactions in particular are off-turn).
// Under PolicyMarkUsed an already-spent slot stays spent; under
// PolicyToggle the slot flips.
func (t *Tracker) UseAction(id string, kind encounter.ActionKind) error {
	if t.policy == PolicyToggle {
		return t.enc.ToggleActionUsed(id, kind)
	}
	return t.enc.SetActionUsed(id, kind)
}

// ApplyCondition appends a condition to the target. It never advances the
// turn or touches action economy.
func (t *Tracker) ApplyCondition(ctx context.Context, id, tag string, rounds int, source string) error {
	tracer := telemetry.Tracer("tracker")
	_, span := tracer.Start(ctx, "tracker.apply_condition")
	defer span.End()
	span.SetAttributes(
		attribute.String("target", id),
		attribute.String("tag", tag),
		attribute.Int("rounds", rounds),
	)

	return t.enc.AddCondition(id, encounter.Condition{Tag: tag, Rounds: rounds, Source: source})
}

// ApplyDelta applies a signed HP change to the target: negative is damage,
// positive is healing. HP saturates into [0, MaxHP]; the actual amount
// applied is returned. Independent of whose turn it is.
func (t *Tracker) ApplyDelta(ctx context.Context, id string, delta int) (int, error) {
	tracer := telemetry.Tracer("tracker")
	_, span := tracer.Start(ctx, "tracker.apply_damage")
	defer span.End()
	span.SetAttributes(
		attribute.String("target", id),
		attribute.Int("delta", delta),
	)

	if delta < 0 {
		actual, err := t.enc.ApplyDamage(id, -delta)
		return -actual, err
	}
	actual, err := t.enc.ApplyHealing(id, delta)
	return actual, err
}

// ParseDelta converts operator-entered damage text to a signed HP delta.
// A bare number is damage ("5" -> -5), an explicit "+" prefix is healing,
// and an explicit "-" prefix is also damage. Anything else is
// ErrInvalidAmount.
func ParseDelta(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	heal := false
	switch text[0] {
	case '+':
		heal = true
		text = text[1:]
	case '-':
		text = text[1:]
	}

	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if heal {
		return n, nil
	}
	return -n, nil
}

// ParseConditionEntry splits a condition buffer of the form
// "tag/rounds/source" into its parts. Rounds and source are optional;
// a missing or empty rounds field means indefinite.
func ParseConditionEntry(text string) (tag string, rounds int, source string, err error) {
	parts := strings.SplitN(text, "/", 3)

	tag = strings.TrimSpace(parts[0])
	if tag == "" {
		return "", 0, "", errors.New("condition tag is empty")
	}

	if len(parts) > 1 {
		field := strings.TrimSpace(parts[1])
		if field != "" {
			rounds, err = strconv.Atoi(field)
			if err != nil || rounds < 0 {
				return "", 0, "", fmt.Errorf("%w: rounds %q", ErrInvalidAmount, field)
			}
		}
	}
	if len(parts) > 2 {
		source = strings.TrimSpace(parts[2])
	}
	return tag, rounds, source, nil
}

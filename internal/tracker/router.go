package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/turntracker/internal/encounter"
)

// Selector supplies the combatant currently highlighted by the cursor.
// Highlight navigation is the UI's job; the router only reads the result.
type Selector interface {
	// HighlightedID returns the highlighted combatant's id, or "" if
	// nothing is highlighted.
	HighlightedID() string
}

// Router maps logical key symbols to state transitions. One key event is
// fully processed before the next is accepted; the router mutates the
// encounter only through the tracker.
//
// Entry modes consume every printable rune as literal text, so the
// turn-control keys (and the global s/q keys) cannot leak into the
// buffer's meaning while the operator is typing. Escape cancels, Enter
// commits.
type Router struct {
	trk *Tracker
	sel Selector

	mode          Mode
	pendingTarget string // Target id captured on entry, cleared on exit
	buffer        []rune // Partially typed tag or amount
	status        string // Transient operator-facing message
	quit          bool
}

// NewRouter creates a router in the idle state.
func NewRouter(trk *Tracker, sel Selector) *Router {
	return &Router{trk: trk, sel: sel, mode: ModeIdle}
}

// Mode returns the current interaction mode.
func (r *Router) Mode() Mode {
	return r.mode
}

// QuitRequested reports whether the operator pressed the quit key.
func (r *Router) QuitRequested() bool {
	return r.quit
}

// Buffer returns the pending entry text.
func (r *Router) Buffer() string {
	return string(r.buffer)
}

// HandleKey processes one key event: a state transition plus at most one
// encounter mutation. Operator errors surface as a status message and a
// return to a safe state; they never propagate.
func (r *Router) HandleKey(ctx context.Context, key Key) {
	r.status = ""

	switch r.mode {
	case ModeIdle:
		r.handleIdle(ctx, key)
	case ModeSelectingDamageTarget:
		r.handleSelecting(key)
	case ModeConditionEntry, ModeDamageEntry:
		r.handleEntry(ctx, key)
	}
}

func (r *Router) handleIdle(ctx context.Context, key Key) {
	if key.Code != KeyRune {
		return
	}

	switch key.Rune {
	case 'c':
		id := r.sel.HighlightedID()
		c, err := r.trk.Encounter().Get(id)
		if err != nil {
			r.status = "no combatant highlighted"
			return
		}
		r.pendingTarget = c.ID
		r.buffer = r.buffer[:0]
		r.mode = ModeConditionEntry
	case 'd':
		r.mode = ModeSelectingDamageTarget
		r.status = "select a target, Enter to confirm"
	case 'a':
		r.useAction(encounter.ActionMain)
	case 'b':
		r.useAction(encounter.ActionBonus)
	case 'r':
		r.useAction(encounter.ActionReaction)
	case 'n':
		next := r.trk.AdvanceTurn(ctx)
		r.status = fmt.Sprintf("round %d: %s's turn", r.trk.Encounter().Round(), next.Name)
	case 's':
		r.trk.ToggleView()
	case 'q':
		r.quit = true
	}
}

func (r *Router) handleSelecting(key Key) {
	switch key.Code {
	case KeyEnter:
		id := r.sel.HighlightedID()
		if _, err := r.trk.Encounter().Get(id); err != nil {
			r.status = "no combatant highlighted"
			return
		}
		r.pendingTarget = id
		r.buffer = r.buffer[:0]
		r.mode = ModeDamageEntry
	case KeyEscape:
		r.reset()
	case KeyRune:
		// Global keys stay live while browsing targets.
		switch key.Rune {
		case 's':
			r.trk.ToggleView()
		case 'q':
			r.quit = true
		}
	}
}

func (r *Router) handleEntry(ctx context.Context, key Key) {
	switch key.Code {
	case KeyRune:
		r.buffer = append(r.buffer, key.Rune)
	case KeyBackspace:
		if len(r.buffer) > 0 {
			r.buffer = r.buffer[:len(r.buffer)-1]
		}
	case KeyEscape:
		r.reset()
	case KeyEnter:
		if r.mode == ModeConditionEntry {
			r.commitCondition(ctx)
		} else {
			r.commitDamage(ctx)
		}
	}
}

// commitCondition applies the buffered condition to the target captured
// when the mode was entered. Malformed input keeps the sub-state so the
// operator can correct it.
func (r *Router) commitCondition(ctx context.Context) {
	tag, rounds, source, err := ParseConditionEntry(string(r.buffer))
	if err != nil {
		r.status = err.Error()
		return
	}

	target := r.pendingTarget
	if err := r.trk.ApplyCondition(ctx, target, tag, rounds, source); err != nil {
		r.status = err.Error()
		r.reset()
		return
	}

	c, _ := r.trk.Encounter().Get(target)
	r.status = fmt.Sprintf("%s applied to %s", tag, c.Name)
	r.reset()
}

// commitDamage parses the buffered amount and applies it to the pending
// target. ErrInvalidAmount retains the entry sub-state; a vanished target
// drops back to idle.
func (r *Router) commitDamage(ctx context.Context) {
	delta, err := ParseDelta(string(r.buffer))
	if err != nil {
		r.status = err.Error()
		return
	}

	target := r.pendingTarget
	actual, err := r.trk.ApplyDelta(ctx, target, delta)
	if err != nil {
		if errors.Is(err, encounter.ErrNotFound) {
			r.status = err.Error()
			r.reset()
			return
		}
		r.status = err.Error()
		return
	}

	c, _ := r.trk.Encounter().Get(target)
	if actual < 0 {
		r.status = fmt.Sprintf("%s takes %d damage", c.Name, -actual)
	} else {
		r.status = fmt.Sprintf("%s heals %d HP", c.Name, actual)
	}
	r.reset()
}

// useAction marks (or toggles, per policy) an action slot on the
// highlighted combatant.
func (r *Router) useAction(kind encounter.ActionKind) {
	id := r.sel.HighlightedID()
	if err := r.trk.UseAction(id, kind); err != nil {
		r.status = "no combatant highlighted"
	}
}

// reset discards any pending target and buffer and returns to idle.
func (r *Router) reset() {
	r.mode = ModeIdle
	r.pendingTarget = ""
	r.buffer = r.buffer[:0]
}

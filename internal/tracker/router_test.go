package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/turntracker/internal/encounter"
)

// stubSelector stands in for the UI cursor.
type stubSelector struct {
	id string
}

func (s *stubSelector) HighlightedID() string { return s.id }

func newTestRouter(t *testing.T, policy ActionPolicy) (*Router, *encounter.Encounter, *stubSelector) {
	t.Helper()
	enc := newTestEncounter(t)
	sel := &stubSelector{id: "a"}
	return NewRouter(New(enc, policy, ViewCombatCard), sel), enc, sel
}

func typeText(ctx context.Context, r *Router, text string) {
	for _, ch := range text {
		r.HandleKey(ctx, RuneKey(ch))
	}
}

// cloneRoster deep-copies combatant state for before/after comparison.
func cloneRoster(enc *encounter.Encounter) []encounter.Combatant {
	var out []encounter.Combatant
	for _, c := range enc.Combatants() {
		cp := *c
		cp.Conditions = append([]encounter.Condition(nil), c.Conditions...)
		out = append(out, cp)
	}
	return out
}

func TestConditionEntryFlow(t *testing.T) {
	ctx := context.Background()
	r, enc, _ := newTestRouter(t, PolicyMarkUsed)

	r.HandleKey(ctx, RuneKey('c'))
	require.Equal(t, ModeConditionEntry, r.Mode())

	typeText(ctx, r, "Poisoned/3")
	r.HandleKey(ctx, Key{Code: KeyEnter})

	assert.Equal(t, ModeIdle, r.Mode())
	a, _ := enc.Get("a")
	require.Len(t, a.Conditions, 1)
	assert.Equal(t, encounter.Condition{Tag: "Poisoned", Rounds: 3}, a.Conditions[0])
}

func TestConditionTargetCapturedAtEntry(t *testing.T) {
	ctx := context.Background()
	r, enc, sel := newTestRouter(t, PolicyMarkUsed)

	r.HandleKey(ctx, RuneKey('c'))
	sel.id = "b" // cursor moves while typing
	typeText(ctx, r, "Stunned")
	r.HandleKey(ctx, Key{Code: KeyEnter})

	a, _ := enc.Get("a")
	b, _ := enc.Get("b")
	assert.Len(t, a.Conditions, 1, "condition goes to the combatant highlighted at entry")
	assert.Empty(t, b.Conditions)
}

func TestDamageFlow(t *testing.T) {
	ctx := context.Background()
	r, enc, sel := newTestRouter(t, PolicyMarkUsed)

	r.HandleKey(ctx, RuneKey('d'))
	require.Equal(t, ModeSelectingDamageTarget, r.Mode())

	sel.id = "b"
	r.HandleKey(ctx, Key{Code: KeyEnter})
	require.Equal(t, ModeDamageEntry, r.Mode())

	typeText(ctx, r, "5")
	r.HandleKey(ctx, Key{Code: KeyEnter})

	assert.Equal(t, ModeIdle, r.Mode())
	b, _ := enc.Get("b")
	assert.Equal(t, 3, b.CurrentHP)
}

func TestDamageClampsAtZero(t *testing.T) {
	ctx := context.Background()
	r, enc, sel := newTestRouter(t, PolicyMarkUsed)
	b, _ := enc.Get("b")
	b.CurrentHP = 3

	sel.id = "b"
	r.HandleKey(ctx, RuneKey('d'))
	r.HandleKey(ctx, Key{Code: KeyEnter})
	typeText(ctx, r, "10")
	r.HandleKey(ctx, Key{Code: KeyEnter})

	assert.Equal(t, 0, b.CurrentHP, "damage saturates, never negative")
}

func TestHealingWithPlusPrefix(t *testing.T) {
	ctx := context.Background()
	r, enc, sel := newTestRouter(t, PolicyMarkUsed)
	a, _ := enc.Get("a")
	a.CurrentHP = 2

	sel.id = "a"
	r.HandleKey(ctx, RuneKey('d'))
	r.HandleKey(ctx, Key{Code: KeyEnter})
	typeText(ctx, r, "+5")
	r.HandleKey(ctx, Key{Code: KeyEnter})

	assert.Equal(t, 7, a.CurrentHP)
}

func TestInvalidAmountRetainsEntry(t *testing.T) {
	ctx := context.Background()
	r, enc, sel := newTestRouter(t, PolicyMarkUsed)
	sel.id = "b"

	r.HandleKey(ctx, RuneKey('d'))
	r.HandleKey(ctx, Key{Code: KeyEnter})
	typeText(ctx, r, "abc")
	r.HandleKey(ctx, Key{Code: KeyEnter})

	// Sub-state and buffer are retained so the operator can correct.
	assert.Equal(t, ModeDamageEntry, r.Mode())
	assert.Equal(t, "abc", r.Buffer())
	assert.NotEmpty(t, r.Snapshot().Status)

	// Correct the input and commit.
	for i := 0; i < 3; i++ {
		r.HandleKey(ctx, Key{Code: KeyBackspace})
	}
	typeText(ctx, r, "4")
	r.HandleKey(ctx, Key{Code: KeyEnter})

	assert.Equal(t, ModeIdle, r.Mode())
	b, _ := enc.Get("b")
	assert.Equal(t, 4, b.CurrentHP)
}

func TestEmptyConditionTagRetainsEntry(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRouter(t, PolicyMarkUsed)

	r.HandleKey(ctx, RuneKey('c'))
	r.HandleKey(ctx, Key{Code: KeyEnter})

	assert.Equal(t, ModeConditionEntry, r.Mode())
	assert.NotEmpty(t, r.Snapshot().Status)
}

func TestCancelLeavesRegistryUnchanged(t *testing.T) {
	ctx := context.Background()

	t.Run("condition entry", func(t *testing.T) {
		r, enc, _ := newTestRouter(t, PolicyMarkUsed)
		before := cloneRoster(enc)

		r.HandleKey(ctx, RuneKey('c'))
		typeText(ctx, r, "Poisoned/3")
		r.HandleKey(ctx, Key{Code: KeyEscape})

		assert.Equal(t, ModeIdle, r.Mode())
		assert.Empty(t, r.Buffer())
		assert.Equal(t, before, cloneRoster(enc))
	})

	t.Run("damage entry", func(t *testing.T) {
		r, enc, sel := newTestRouter(t, PolicyMarkUsed)
		before := cloneRoster(enc)

		sel.id = "b"
		r.HandleKey(ctx, RuneKey('d'))
		r.HandleKey(ctx, Key{Code: KeyEnter})
		typeText(ctx, r, "99")
		r.HandleKey(ctx, Key{Code: KeyEscape})

		assert.Equal(t, ModeIdle, r.Mode())
		assert.Equal(t, before, cloneRoster(enc))
	})

	t.Run("target selection", func(t *testing.T) {
		r, enc, _ := newTestRouter(t, PolicyMarkUsed)
		before := cloneRoster(enc)

		r.HandleKey(ctx, RuneKey('d'))
		r.HandleKey(ctx, Key{Code: KeyEscape})

		assert.Equal(t, ModeIdle, r.Mode())
		assert.Equal(t, before, cloneRoster(enc))
	})
}

func TestTurnKeysOnlyWorkFromIdle(t *testing.T) {
	ctx := context.Background()
	r, enc, _ := newTestRouter(t, PolicyMarkUsed)
	a, _ := enc.Get("a")

	r.HandleKey(ctx, RuneKey('c'))
	typeText(ctx, r, "nabr")

	// The letters went into the buffer, not into turn control.
	assert.Equal(t, "nabr", r.Buffer())
	assert.Equal(t, 1, enc.Round())
	assert.Equal(t, 0, enc.ActiveIndex())
	assert.False(t, a.ActionUsed)
	assert.False(t, a.BonusActionUsed)
	assert.False(t, a.ReactionUsed)
}

func TestGlobalKeysAreTextWhileTyping(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRouter(t, PolicyMarkUsed)
	view := r.Snapshot().View

	r.HandleKey(ctx, RuneKey('c'))
	typeText(ctx, r, "sq")

	assert.Equal(t, "sq", r.Buffer())
	assert.False(t, r.QuitRequested())
	assert.Equal(t, view, r.Snapshot().View)
}

func TestActionKeys(t *testing.T) {
	ctx := context.Background()
	r, enc, sel := newTestRouter(t, PolicyMarkUsed)
	b, _ := enc.Get("b")

	// Reactions are usable by non-active combatants.
	sel.id = "b"
	r.HandleKey(ctx, RuneKey('r'))
	assert.True(t, b.ReactionUsed)
	assert.Equal(t, 0, enc.ActiveIndex(), "use_action never advances the turn")

	r.HandleKey(ctx, RuneKey('a'))
	r.HandleKey(ctx, RuneKey('b'))
	assert.True(t, b.ActionUsed)
	assert.True(t, b.BonusActionUsed)
}

func TestActionKeyWithoutHighlight(t *testing.T) {
	ctx := context.Background()
	r, _, sel := newTestRouter(t, PolicyMarkUsed)
	sel.id = ""

	r.HandleKey(ctx, RuneKey('a'))

	assert.Equal(t, ModeIdle, r.Mode())
	assert.NotEmpty(t, r.Snapshot().Status)
}

func TestAdvanceTurnKeyScenario(t *testing.T) {
	ctx := context.Background()
	r, enc, _ := newTestRouter(t, PolicyMarkUsed)

	r.HandleKey(ctx, RuneKey('n'))
	assert.Equal(t, 1, enc.ActiveIndex())
	assert.Equal(t, 1, enc.Round())

	r.HandleKey(ctx, RuneKey('n'))
	assert.Equal(t, 0, enc.ActiveIndex())
	assert.Equal(t, 2, enc.Round())
}

func TestViewToggleKeyInvolution(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRouter(t, PolicyMarkUsed)
	start := r.Snapshot().View

	r.HandleKey(ctx, RuneKey('s'))
	assert.NotEqual(t, start, r.Snapshot().View)
	r.HandleKey(ctx, RuneKey('s'))
	assert.Equal(t, start, r.Snapshot().View)

	// Also live while selecting a damage target, without leaving the mode.
	r.HandleKey(ctx, RuneKey('d'))
	r.HandleKey(ctx, RuneKey('s'))
	assert.Equal(t, ModeSelectingDamageTarget, r.Mode())
	assert.NotEqual(t, start, r.Snapshot().View)
}

func TestQuit(t *testing.T) {
	ctx := context.Background()

	r, _, _ := newTestRouter(t, PolicyMarkUsed)
	r.HandleKey(ctx, RuneKey('q'))
	assert.True(t, r.QuitRequested())

	// Quit also works mid target selection; pending state is discarded,
	// not committed.
	r, enc, _ := newTestRouter(t, PolicyMarkUsed)
	before := cloneRoster(enc)
	r.HandleKey(ctx, RuneKey('d'))
	r.HandleKey(ctx, RuneKey('q'))
	assert.True(t, r.QuitRequested())
	assert.Equal(t, before, cloneRoster(enc))
}

func TestSelectingEnterWithoutHighlight(t *testing.T) {
	ctx := context.Background()
	r, _, sel := newTestRouter(t, PolicyMarkUsed)
	sel.id = ""

	r.HandleKey(ctx, RuneKey('d'))
	r.HandleKey(ctx, Key{Code: KeyEnter})

	assert.Equal(t, ModeSelectingDamageTarget, r.Mode())
	assert.NotEmpty(t, r.Snapshot().Status)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	r, enc, sel := newTestRouter(t, PolicyMarkUsed)

	require.NoError(t, enc.AddCondition("a", encounter.Condition{Tag: "Poisoned", Rounds: 3}))
	require.NoError(t, enc.AddCondition("a", encounter.Condition{Tag: "Cursed"}))

	snap := r.Snapshot()
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, 1, snap.Round)
	assert.Equal(t, ModeIdle, snap.Mode)

	alda := snap.Rows[0]
	assert.Equal(t, "Alda", alda.Name)
	assert.True(t, alda.Active)
	assert.True(t, alda.Highlighted)
	assert.Equal(t, []string{"Poisoned (3)", "Cursed"}, alda.Conditions)

	assert.False(t, snap.Rows[1].Active)
	assert.False(t, snap.Rows[1].Highlighted)

	// Pending target name shows up during damage entry.
	sel.id = "b"
	r.HandleKey(ctx, RuneKey('d'))
	r.HandleKey(ctx, Key{Code: KeyEnter})
	typeText(ctx, r, "5")
	snap = r.Snapshot()
	assert.Equal(t, "Brick", snap.PendingTarget)
	assert.Equal(t, "5", snap.Buffer)
	assert.Equal(t, ModeDamageEntry, snap.Mode)
}

func TestSnapshotIsACopy(t *testing.T) {
	r, enc, _ := newTestRouter(t, PolicyMarkUsed)

	snap := r.Snapshot()
	snap.Rows[0].CurrentHP = -999
	snap.Rows[0].Conditions = append(snap.Rows[0].Conditions, "Fake")

	a, _ := enc.Get("a")
	assert.Equal(t, 10, a.CurrentHP)
	assert.Empty(t, a.Conditions)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/turntracker/internal/tracker"
)

// Action letters keep the colors the table legend documents: action green,
// bonus action orange, reaction magenta.
var (
	styleAction   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBonus    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 165, 0))
	styleReaction = tcell.StyleDefault.Foreground(tcell.ColorDarkMagenta)

	styleHeader = tcell.StyleDefault.Bold(true)
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorYellow)

	bgActive = tcell.NewRGBColor(0, 48, 130)
	bgDown   = tcell.NewRGBColor(100, 0, 0)
)

// Renderer draws a tracker snapshot to the screen. It is a pure consumer
// of the view model and never reaches into tracker state.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the roster table, the info panel for the highlighted
// combatant, and the entry footer.
func (r *Renderer) Render(snap tracker.Snapshot) {
	r.screen.Clear()

	width, height := r.screen.Size()
	split := width / 2

	r.renderTable(snap, split, height)
	r.renderInfoPanel(snap, split+2, width-split-2)
	r.renderFooter(snap, width, height)

	r.screen.Show()
}

func (r *Renderer) renderTable(snap tracker.Snapshot, width, height int) {
	r.screen.SetText(0, 0, fmt.Sprintf("Round: %d", snap.Round), styleHeader)
	r.screen.SetText(0, 1, fmt.Sprintf("Turn: %d/%d", snap.ActiveIndex+1, len(snap.Rows)), styleHeader)

	y := 3
	for _, row := range snap.Rows {
		if y >= height-2 {
			break
		}
		r.renderRow(row, y, width)
		y++
	}
}

func (r *Renderer) renderRow(row tracker.CombatantRow, y, width int) {
	rowStyle := tcell.StyleDefault
	if row.Down {
		rowStyle = rowStyle.Background(bgDown)
	}
	if row.Active {
		rowStyle = rowStyle.Background(bgActive)
	}

	// Cursor marker, then name padded to a fixed column.
	marker := ' '
	if row.Highlighted {
		marker = '>'
	}
	r.screen.SetContent(0, y, marker, rowStyle.Bold(true))

	name := row.Name
	if len(name) > 20 {
		name = name[:20]
	}
	x := r.screen.SetText(2, y, fmt.Sprintf("%-20s", name), rowStyle)

	x = r.renderActionLetter(x, y, 'A', !row.ActionUsed, styleAction, rowStyle)
	x = r.renderActionLetter(x, y, 'B', !row.BonusActionUsed, styleBonus, rowStyle)
	x = r.renderActionLetter(x, y, 'R', !row.ReactionUsed, styleReaction, rowStyle)

	x = r.screen.SetText(x+1, y, fmt.Sprintf("%3d/%-3d", row.CurrentHP, row.MaxHP), rowStyle)

	if len(row.Conditions) > 0 {
		conds := strings.Join(row.Conditions, ", ")
		if x+2+len(conds) > width {
			cut := width - x - 3
			if cut < 0 {
				cut = 0
			}
			conds = conds[:cut]
		}
		r.screen.SetText(x+2, y, conds, rowStyle.Foreground(tcell.ColorTeal))
	}
}

// renderActionLetter draws one action-economy letter, dimmed when spent.
func (r *Renderer) renderActionLetter(x, y int, letter rune, available bool, avail, rowStyle tcell.Style) int {
	style := styleDim
	if available {
		style = avail
	}
	if _, bg, _ := rowStyle.Decompose(); bg != tcell.ColorDefault {
		style = style.Background(bg)
	}
	r.screen.SetContent(x, y, letter, style)
	return x + 2
}

// renderInfoPanel shows either the stat block or the combat card for the
// highlighted combatant (falling back to the active turn holder).
func (r *Renderer) renderInfoPanel(snap tracker.Snapshot, x, width int) {
	row, ok := focusRow(snap)
	if !ok || width < 10 {
		return
	}

	if snap.View == tracker.ViewStats {
		r.renderStatBlock(row, x)
	} else {
		r.renderCombatCard(row, x)
	}
}

func (r *Renderer) renderStatBlock(row tracker.CombatantRow, x int) {
	r.screen.SetText(x, 0, row.Name, styleHeader)
	r.screen.SetText(x, 1, strings.Repeat("-", len(row.Name)), styleDim)
	r.screen.SetText(x, 2, fmt.Sprintf("HP    %d/%d", row.CurrentHP, row.MaxHP), tcell.StyleDefault)
	r.screen.SetText(x, 3, fmt.Sprintf("AC    %d", row.ArmorClass), tcell.StyleDefault)
	r.screen.SetText(x, 4, fmt.Sprintf("Speed %d ft.", row.Speed), tcell.StyleDefault)

	s := row.Scores
	r.screen.SetText(x, 6, "STR DEX CON INT WIS CHA", styleHeader)
	r.screen.SetText(x, 7, fmt.Sprintf("%3d %3d %3d %3d %3d %3d", s.Str, s.Dex, s.Con, s.Int, s.Wis, s.Cha), tcell.StyleDefault)
}

func (r *Renderer) renderCombatCard(row tracker.CombatantRow, x int) {
	r.screen.SetText(x, 0, row.Name, styleHeader)
	r.screen.SetText(x, 1, strings.Repeat("-", len(row.Name)), styleDim)
	r.screen.SetText(x, 2, fmt.Sprintf("HP %d/%d", row.CurrentHP, row.MaxHP), tcell.StyleDefault)

	r.screen.SetText(x, 4, "Action:       "+usedLabel(row.ActionUsed), styleAction)
	r.screen.SetText(x, 5, "Bonus action: "+usedLabel(row.BonusActionUsed), styleBonus)
	r.screen.SetText(x, 6, "Reaction:     "+usedLabel(row.ReactionUsed), styleReaction)

	y := 8
	if len(row.Conditions) == 0 {
		r.screen.SetText(x, y, "No conditions", styleDim)
		return
	}
	r.screen.SetText(x, y, "Conditions:", styleHeader)
	for i, cond := range row.Conditions {
		r.screen.SetText(x+2, y+1+i, cond, tcell.StyleDefault)
	}
}

// renderFooter shows the entry prompt and any status message on the last
// two lines.
func (r *Renderer) renderFooter(snap tracker.Snapshot, width, height int) {
	prompt := ""
	switch snap.Mode {
	case tracker.ModeConditionEntry:
		prompt = "condition (tag/rounds/source)> " + snap.Buffer
	case tracker.ModeDamageEntry:
		target := snap.PendingTarget
		if target == "" {
			target = "?"
		}
		prompt = fmt.Sprintf("damage to %s (+n heals)> %s", target, snap.Buffer)
	case tracker.ModeSelectingDamageTarget:
		prompt = "select a target, Enter to confirm, Esc to cancel"
	}

	if prompt != "" {
		r.screen.SetText(0, height-2, prompt, tcell.StyleDefault.Bold(true))
		// Visible caret position for entry modes.
		if snap.Mode.Entry() {
			r.screen.SetContent(len(prompt), height-2, ' ', tcell.StyleDefault.Reverse(true))
		}
	}

	if snap.Status != "" {
		msg := snap.Status
		if len(msg) > width {
			msg = msg[:width]
		}
		r.screen.SetText(0, height-1, msg, styleStatus)
	}
}

// focusRow picks the row the info panel describes.
func focusRow(snap tracker.Snapshot) (tracker.CombatantRow, bool) {
	for _, row := range snap.Rows {
		if row.Highlighted {
			return row, true
		}
	}
	for _, row := range snap.Rows {
		if row.Active {
			return row, true
		}
	}
	return tracker.CombatantRow{}, false
}

func usedLabel(used bool) string {
	if used {
		return "used"
	}
	return "ready"
}

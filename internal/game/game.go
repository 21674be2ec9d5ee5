// Package game wires the screen, renderer, and tracker into the main loop.
package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/turntracker/internal/telemetry"
	"github.com/samdwyer/turntracker/internal/tracker"
	"github.com/samdwyer/turntracker/internal/ui"
)

// Game holds the running session.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	router   *tracker.Router
	cursor   *Cursor
	quit     bool
}

// New creates a session from config: roster, encounter, tracker, terminal.
func New(cfg Config) (*Game, error) {
	defs, err := loadRoster(cfg)
	if err != nil {
		return nil, err
	}

	enc, err := NewEncounter(defs)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, enc.Len())
	for _, c := range enc.Combatants() {
		ids = append(ids, c.ID)
	}
	cursor := NewCursor(ids)

	trk := tracker.New(enc, cfg.ActionPolicy(), cfg.ViewMode())
	router := tracker.NewRouter(trk, cursor)

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	return &Game{
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		router:   router,
		cursor:   cursor,
	}, nil
}

// Run executes the main loop: render the current view model, wait for one
// key event, process it fully, repeat.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	snap := g.router.Snapshot()
	_, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.Int("roster_size", len(snap.Rows)),
		attribute.String("view", snap.View.String()),
	)
	initSpan.End()

	for !g.quit && !g.router.QuitRequested() {
		g.renderer.Render(g.router.Snapshot())
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// handleInput processes a single terminal event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent routes navigation keys to the cursor and everything else
// to the input router as a logical key symbol.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.quit = true
		return
	case tcell.KeyUp:
		g.cursor.Move(-1)
		return
	case tcell.KeyDown:
		g.cursor.Move(1)
		return
	}

	// j/k navigate too, but only while not typing into an entry buffer.
	if ev.Key() == tcell.KeyRune && !g.router.Mode().Entry() {
		switch ev.Rune() {
		case 'j':
			g.cursor.Move(1)
			return
		case 'k':
			g.cursor.Move(-1)
			return
		}
	}

	if key, ok := translateKey(ev); ok {
		g.router.HandleKey(ctx, key)
	}
}

// translateKey decodes a tcell key event into a logical key symbol.
func translateKey(ev *tcell.EventKey) (tracker.Key, bool) {
	switch ev.Key() {
	case tcell.KeyEnter:
		return tracker.Key{Code: tracker.KeyEnter}, true
	case tcell.KeyEscape:
		return tracker.Key{Code: tracker.KeyEscape}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return tracker.Key{Code: tracker.KeyBackspace}, true
	case tcell.KeyRune:
		return tracker.RuneKey(ev.Rune()), true
	}
	return tracker.Key{}, false
}

// Close cleans up terminal resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

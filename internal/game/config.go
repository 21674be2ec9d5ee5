package game

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/turntracker/internal/tracker"
)

// Config holds session options, parsed from the environment. A .env file
// loaded at startup can supply any of these.
type Config struct {
	// RosterPath points at a roster JSON file; empty means the embedded
	// default roster.
	RosterPath string `env:"TRACKER_ROSTER"`

	// View is the initial info panel mode: "card" or "stats".
	View string `env:"TRACKER_VIEW" envDefault:"card"`

	// ToggleActions makes the action keys flip an already-spent slot
	// back to ready instead of leaving it spent.
	ToggleActions bool `env:"TRACKER_TOGGLE_ACTIONS" envDefault:"false"`
}

// LoadConfig parses configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.View != "card" && cfg.View != "stats" {
		return Config{}, fmt.Errorf("TRACKER_VIEW must be \"card\" or \"stats\", got %q", cfg.View)
	}
	return cfg, nil
}

// ViewMode returns the configured initial view preference.
func (c Config) ViewMode() tracker.ViewMode {
	if c.View == "stats" {
		return tracker.ViewStats
	}
	return tracker.ViewCombatCard
}

// ActionPolicy returns the configured action-key policy.
func (c Config) ActionPolicy() tracker.ActionPolicy {
	if c.ToggleActions {
		return tracker.PolicyToggle
	}
	return tracker.PolicyMarkUsed
}

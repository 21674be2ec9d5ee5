package game

import (
	"github.com/google/uuid"

	"github.com/samdwyer/turntracker/data"
	"github.com/samdwyer/turntracker/internal/encounter"
)

// NewEncounter builds an encounter from roster definitions, minting a
// fresh id per combatant. File order is turn order.
func NewEncounter(defs []data.CombatantDef) (*encounter.Encounter, error) {
	combatants := make([]*encounter.Combatant, 0, len(defs))
	for _, def := range defs {
		combatants = append(combatants, &encounter.Combatant{
			ID:         uuid.NewString(),
			Name:       def.Name,
			MaxHP:      def.MaxHP,
			CurrentHP:  def.MaxHP,
			ArmorClass: def.ArmorClass,
			Speed:      def.Speed,
			Scores: encounter.AbilityScores{
				Str: def.Scores.Str,
				Dex: def.Scores.Dex,
				Con: def.Scores.Con,
				Int: def.Scores.Int,
				Wis: def.Scores.Wis,
				Cha: def.Scores.Cha,
			},
		})
	}
	return encounter.New(combatants)
}

// loadRoster returns the configured roster file, or the embedded default.
func loadRoster(cfg Config) ([]data.CombatantDef, error) {
	if cfg.RosterPath != "" {
		return data.ReadRosterFile(cfg.RosterPath)
	}
	return data.LoadRoster()
}

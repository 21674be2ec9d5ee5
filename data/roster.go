package data

import (
	"encoding/json"
	"fmt"
	"os"
)

// CombatantDef defines one roster entry loaded from JSON. Entries appear in
// the file in initiative order; the tracker keeps that order.
type CombatantDef struct {
	Name       string    `json:"name"`       // Display name
	MaxHP      int       `json:"maxHp"`      // Hit point maximum, must be > 0
	ArmorClass int       `json:"armorClass"` // Shown in the stat block view
	Speed      int       `json:"speed"`      // Feet per round, display only
	Scores     ScoresDef `json:"scores"`     // Ability scores, display only
}

// ScoresDef holds the six ability scores of a roster entry.
type ScoresDef struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// RosterFile represents the structure of roster.json.
type RosterFile struct {
	Combatants []CombatantDef `json:"combatants"`
}

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad reads and unmarshals a JSON file, panicking on error. Use this
// for data that must be present for the tracker to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}

// LoadRoster loads the embedded default roster.
func LoadRoster() ([]CombatantDef, error) {
	file, err := Load[RosterFile]("roster.json")
	if err != nil {
		return nil, err
	}
	return validate(file.Combatants)
}

// ReadRosterFile loads a roster from a JSON file on disk, for sessions that
// override the embedded default.
func ReadRosterFile(path string) ([]CombatantDef, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}

	var file RosterFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse JSON from %s: %w", path, err)
	}
	return validate(file.Combatants)
}

// validate rejects rosters the encounter cannot represent.
func validate(defs []CombatantDef) ([]CombatantDef, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("roster has no combatants")
	}
	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("roster entry %d has no name", i)
		}
		if def.MaxHP <= 0 {
			return nil, fmt.Errorf("roster entry %q has maxHp %d, must be > 0", def.Name, def.MaxHP)
		}
	}
	return defs, nil
}

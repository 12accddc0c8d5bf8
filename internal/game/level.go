package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Flag is a capturable objective. Its tile is mutable: a carried flag
// follows the carrier, and a carrier's death drops it where they fell.
type Flag struct {
	Team       int
	Tile       TileCoord
	CarrierIdx int // index into the character arena, -1 when grounded
}

// Carried reports whether the flag is being carried.
func (f *Flag) Carried() bool { return f.CarrierIdx >= 0 }

// LevelData is the opaque read-only configuration supplied by the level
// collaborator at match reset: grid dimensions, obstacle tiles, and one
// flag tile per team. The core never parses or persists level files.
type LevelData struct {
	Cols, Rows int
	Obstacles  []TileCoord
	FlagTiles  []TileCoord
}

// DefaultLevel is a small symmetric two-team arena with a center wall.
func DefaultLevel() LevelData {
	return LevelData{
		Cols: 14,
		Rows: 10,
		Obstacles: []TileCoord{
			T(6, 2), T(6, 3), T(6, 4),
			T(7, 5), T(7, 6), T(7, 7),
			T(3, 7), T(10, 2),
		},
		FlagTiles: []TileCoord{T(0, 4), T(13, 5)},
	}
}

// MatchConfig is the static configuration consumed once at match reset.
// There is no runtime reconfiguration mid-match.
type MatchConfig struct {
	Teams            int    `yaml:"teams"`
	SquadSize        int    `yaml:"squadSize"`
	MaxSpawnDistance int    `yaml:"maxSpawnDistance"` // tiles from the team flag
	FogOfWar         bool   `yaml:"fogOfWar"`
	Difficulty       string `yaml:"difficulty"` // easy | medium | hard
	MaxTurns         int    `yaml:"maxTurns"`   // 0 = unbounded
}

// DefaultConfig returns the standard two-team skirmish setup.
func DefaultConfig() MatchConfig {
	return MatchConfig{
		Teams:            2,
		SquadSize:        3,
		MaxSpawnDistance: 3,
		FogOfWar:         false,
		Difficulty:       "medium",
	}
}

// Validate checks the configuration against a level.
func (c MatchConfig) Validate(level LevelData) error {
	if c.Teams < 2 {
		return fmt.Errorf("config: need at least 2 teams, got %d", c.Teams)
	}
	if c.SquadSize < 1 {
		return fmt.Errorf("config: squadSize must be >= 1, got %d", c.SquadSize)
	}
	if c.MaxSpawnDistance < 1 {
		return fmt.Errorf("config: maxSpawnDistance must be >= 1, got %d", c.MaxSpawnDistance)
	}
	if _, err := ParseDifficulty(c.Difficulty); err != nil {
		return err
	}
	if len(level.FlagTiles) < c.Teams {
		return fmt.Errorf("config: level has %d flag tiles for %d teams", len(level.FlagTiles), c.Teams)
	}
	return nil
}

// LoadConfig reads a MatchConfig from a YAML file, applying defaults for
// absent fields.
func LoadConfig(path string) (MatchConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

package engine

import (
	"fmt"

	"github.com/vovakirdan/graph-chase/internal/config"
	"github.com/vovakirdan/graph-chase/internal/core"
)

// Rules holds the simulation constants.
type Rules struct {
	Lives        int
	DotPoints    int
	PelletPoints int
	TurnChance   float64 // chance a chaser turns even when it could continue

	Respawn     core.Coord // where the player goes after losing a life
	PlayerStart core.Coord // used when the map has no player spawn
	PlayerDir   core.Dir
	ChaserDir   core.Dir

	// FallbackChasers are inserted when the map has no chaser spawns.
	FallbackChasers []Chaser
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		Lives:        3,
		DotPoints:    10,
		PelletPoints: 50,
		TurnChance:   0.2,
		Respawn:      core.C(1, 1),
		PlayerStart:  core.C(1, 1),
		PlayerDir:    core.DirRight,
		ChaserDir:    core.DirLeft,
		FallbackChasers: []Chaser{
			{ID: 0, X: 12, Y: 3, Dir: core.DirLeft},
			{ID: 1, X: 14, Y: 3, Dir: core.DirRight},
		},
	}
}

// RulesFromConfig converts the YAML rules section.
func RulesFromConfig(c config.RulesConfig) (Rules, error) {
	playerDir, err := core.ParseDir(c.PlayerDir)
	if err != nil {
		return Rules{}, fmt.Errorf("engine: rules.player_dir: %w", err)
	}
	chaserDir, err := core.ParseDir(c.ChaserDir)
	if err != nil {
		return Rules{}, fmt.Errorf("engine: rules.chaser_dir: %w", err)
	}

	r := Rules{
		Lives:        c.Lives,
		DotPoints:    c.DotPoints,
		PelletPoints: c.PelletPoints,
		TurnChance:   c.TurnChance,
		Respawn:      core.C(c.Respawn.X, c.Respawn.Y),
		PlayerStart:  core.C(c.PlayerStart.X, c.PlayerStart.Y),
		PlayerDir:    playerDir,
		ChaserDir:    chaserDir,
	}
	for i, fc := range c.FallbackChasers {
		dir, err := core.ParseDir(fc.Dir)
		if err != nil {
			return Rules{}, fmt.Errorf("engine: rules.fallback_chasers[%d]: %w", i, err)
		}
		r.FallbackChasers = append(r.FallbackChasers, Chaser{ID: i, X: fc.X, Y: fc.Y, Dir: dir})
	}
	return r, nil
}

package config

import (
	_ "embed"
)

//go:embed defaults/chase.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It mirrors defaults/chase.yaml and is used if the embedded file fails to parse.
func DefaultConfig() Config {
	return Config{
		Map:  "classic",
		Seed: 0,
		State: StateConfig{
			Driver: DriverFile,
			Path:   "state.json",
			DBPath: "~/.chase/chase.db",
		},
		Output: OutputConfig{
			Script: "commit.sh",
			Screen: "screen.txt",
		},
		Commit: CommitConfig{
			Branch:  "display-layer",
			Message: "p",
			Hour:    12,
		},
		Render: RenderConfig{
			ShowChasers: false,
		},
		Watch: WatchConfig{
			FPS: 4,
		},
		Rules: RulesConfig{
			Lives:        3,
			DotPoints:    10,
			PelletPoints: 50,
			TurnChance:   0.2,
			Respawn:      PointConfig{X: 1, Y: 1},
			PlayerStart:  PointConfig{X: 1, Y: 1},
			PlayerDir:    "RIGHT",
			ChaserDir:    "LEFT",
			FallbackChasers: []ChaserConfig{
				{X: 12, Y: 3, Dir: "LEFT"},
				{X: 14, Y: 3, Dir: "RIGHT"},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

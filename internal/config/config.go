// Package config provides YAML-based configuration loading for chase, with
// environment variable overrides.
package config

import (
	"fmt"
	"strings"
)

// Config contains all configuration for a chase invocation.
type Config struct {
	Map    string       `yaml:"map"`
	Seed   int64        `yaml:"seed"`
	State  StateConfig  `yaml:"state"`
	Output OutputConfig `yaml:"output"`
	Commit CommitConfig `yaml:"commit"`
	Render RenderConfig `yaml:"render"`
	Watch  WatchConfig  `yaml:"watch"`
	Rules  RulesConfig  `yaml:"rules"`
}

// StateConfig selects where the simulation snapshot is persisted.
type StateConfig struct {
	Driver string `yaml:"driver" env:"CHASE_STATE_DRIVER"` // "file" or "sqlite"
	Path   string `yaml:"path" env:"CHASE_STATE_PATH"`
	DBPath string `yaml:"db_path" env:"CHASE_DB"`
}

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// OutputConfig names the files written by a tick.
type OutputConfig struct {
	Script string `yaml:"script" env:"CHASE_SCRIPT"`
	Screen string `yaml:"screen" env:"CHASE_SCREEN"`
}

// CommitConfig shapes the generated commit script.
type CommitConfig struct {
	Branch  string `yaml:"branch" env:"CHASE_BRANCH"`
	Message string `yaml:"message" env:"CHASE_COMMIT_MESSAGE"`
	Hour    int    `yaml:"hour" env:"CHASE_COMMIT_HOUR"`
}

// RenderConfig toggles optional brightness levels.
type RenderConfig struct {
	ShowChasers bool `yaml:"show_chasers" env:"CHASE_SHOW_CHASERS"`
}

// WatchConfig configures the live terminal view.
type WatchConfig struct {
	FPS int `yaml:"fps" env:"CHASE_FPS"`
}

// RulesConfig defines the simulation constants.
type RulesConfig struct {
	Lives           int            `yaml:"lives"`
	DotPoints       int            `yaml:"dot_points"`
	PelletPoints    int            `yaml:"pellet_points"`
	TurnChance      float64        `yaml:"turn_chance"`
	Respawn         PointConfig    `yaml:"respawn"`
	PlayerStart     PointConfig    `yaml:"player_start"`
	PlayerDir       string         `yaml:"player_dir"`
	ChaserDir       string         `yaml:"chaser_dir"`
	FallbackChasers []ChaserConfig `yaml:"fallback_chasers"`
}

// PointConfig is a grid coordinate.
type PointConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ChaserConfig places a fallback chaser.
type ChaserConfig struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir"`
}

// Validate checks values the rest of the program relies on.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Map) == "" {
		return fmt.Errorf("config: map is required")
	}
	switch c.State.Driver {
	case DriverFile:
		if c.State.Path == "" {
			return fmt.Errorf("config: state.path is required for the file driver")
		}
	case DriverSQLite:
		if c.State.DBPath == "" {
			return fmt.Errorf("config: state.db_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("config: unknown state driver %q", c.State.Driver)
	}
	if c.Commit.Hour < 0 || c.Commit.Hour > 23 {
		return fmt.Errorf("config: commit.hour %d out of range 0-23", c.Commit.Hour)
	}
	if c.Commit.Branch == "" {
		return fmt.Errorf("config: commit.branch is required")
	}
	if c.Watch.FPS <= 0 {
		return fmt.Errorf("config: watch.fps must be positive")
	}
	if c.Rules.Lives <= 0 {
		return fmt.Errorf("config: rules.lives must be positive")
	}
	if c.Rules.TurnChance < 0 || c.Rules.TurnChance > 1 {
		return fmt.Errorf("config: rules.turn_chance %v out of range 0-1", c.Rules.TurnChance)
	}
	return nil
}

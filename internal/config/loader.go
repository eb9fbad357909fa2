package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load loads the chase configuration.
// Search order: customPath -> ~/.chase/config.yaml -> ./configs/chase.yaml -> embedded default.
// Files are applied on top of the defaults, then CHASE_* environment
// variables override individual fields.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
	} else {
		cfg = loadFirstFound(cfg, userConfigPath("config.yaml"), filepath.Join("configs", "chase.yaml"))
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// loadFirstFound applies the first readable, parseable file over base.
func loadFirstFound(base Config, paths ...string) Config {
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		cfg := base
		cfg.Rules.FallbackChasers = append([]ChaserConfig(nil), base.Rules.FallbackChasers...)
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg
		}
	}
	return base
}

// envOverrides holds the top-level fields that can be set from the environment.
type envOverrides struct {
	Map  string `env:"CHASE_MAP"`
	Seed int64  `env:"CHASE_SEED"`
}

// applyEnv overrides configuration fields from CHASE_* variables.
// Unset variables leave the loaded values untouched.
func applyEnv(cfg *Config) error {
	targets := []any{&cfg.State, &cfg.Output, &cfg.Commit, &cfg.Render, &cfg.Watch}
	for _, target := range targets {
		if err := env.Parse(target); err != nil {
			return fmt.Errorf("config: parse env: %w", err)
		}
	}

	var top envOverrides
	if err := env.Parse(&top); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	if top.Map != "" {
		cfg.Map = top.Map
	}
	if top.Seed != 0 {
		cfg.Seed = top.Seed
	}
	return nil
}

// userConfigPath returns the path to a file in ~/.chase, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chase", filename)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/")), nil
}

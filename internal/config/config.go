// Package config loads skirmish settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Player kinds.
const (
	KindHuman = "human"
	KindAI    = "ai"
)

// Config holds all settings for the interactive game and the simulator.
type Config struct {
	// Seed for battles and AI decisions. 0 picks a random seed.
	Seed int64  `yaml:"seed"`
	Map  string `yaml:"map"`

	Players []PlayerConfig `yaml:"players"`

	// TurnLimit ends a match in a draw after this many rounds. 0 means no
	// limit.
	TurnLimit int `yaml:"turn_limit"`

	// FrameDelay is how long the terminal holds each animation step.
	FrameDelay time.Duration `yaml:"frame_delay"`

	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	Telemetry bool   `yaml:"telemetry"`

	Sim SimConfig `yaml:"sim"`
}

// PlayerConfig says who controls one side of the map.
type PlayerConfig struct {
	Number int    `yaml:"number"`
	Kind   string `yaml:"kind"` // human or ai
	// Ordered makes an AI prefer tiles closest to the enemy over random ones.
	Ordered bool `yaml:"ordered"`
}

// SimConfig holds headless simulation settings.
type SimConfig struct {
	Matches  int `yaml:"matches"`
	Parallel int `yaml:"parallel"`
}

// Default returns a config with sensible defaults: a human against an
// ordered AI on the border map.
func Default() Config {
	return Config{
		Map: "border_skirmish",
		Players: []PlayerConfig{
			{Number: 0, Kind: KindHuman},
			{Number: 1, Kind: KindAI, Ordered: true},
		},
		TurnLimit:  50,
		FrameDelay: 120 * time.Millisecond,
		LogLevel:   "info",
		LogFile:    "skirmish.log",
		Sim: SimConfig{
			Matches:  100,
			Parallel: 4,
		},
	}
}

// Load reads the config from a YAML file, applies SKIRMISH_* environment
// overrides and validates the result. If the file doesn't exist, defaults
// are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SKIRMISH_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}

	if v, ok := lookup("SKIRMISH_SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("SKIRMISH_SEED: %w", err))
		} else {
			c.Seed = n
		}
	}
	str("SKIRMISH_MAP", &c.Map)
	num("SKIRMISH_TURN_LIMIT", &c.TurnLimit)
	if v, ok := lookup("SKIRMISH_FRAME_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SKIRMISH_FRAME_DELAY: %w", err))
		} else {
			c.FrameDelay = d
		}
	}
	str("SKIRMISH_LOG_LEVEL", &c.LogLevel)
	str("SKIRMISH_LOG_FILE", &c.LogFile)
	if v, ok := lookup("SKIRMISH_TELEMETRY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("SKIRMISH_TELEMETRY: %w", err))
		} else {
			c.Telemetry = b
		}
	}
	num("SKIRMISH_SIM_MATCHES", &c.Sim.Matches)
	num("SKIRMISH_SIM_PARALLEL", &c.Sim.Parallel)

	return errors.Join(errs...)
}

// Validate checks the config for values the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Map == "" {
		errs = append(errs, errors.New("map is required"))
	}
	if len(c.Players) < 2 {
		errs = append(errs, fmt.Errorf("need at least 2 players, got %d", len(c.Players)))
	}
	seen := make(map[int]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.Number] {
			errs = append(errs, fmt.Errorf("player %d listed twice", p.Number))
		}
		seen[p.Number] = true
		if p.Kind != KindHuman && p.Kind != KindAI {
			errs = append(errs, fmt.Errorf("player %d: unknown kind %q", p.Number, p.Kind))
		}
	}
	if c.TurnLimit < 0 {
		errs = append(errs, fmt.Errorf("turn_limit must not be negative, got %d", c.TurnLimit))
	}
	if c.FrameDelay < 0 {
		errs = append(errs, fmt.Errorf("frame_delay must not be negative, got %v", c.FrameDelay))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Sim.Matches < 0 {
		errs = append(errs, fmt.Errorf("sim.matches must not be negative, got %d", c.Sim.Matches))
	}
	if c.Sim.Parallel < 1 {
		errs = append(errs, fmt.Errorf("sim.parallel must be at least 1, got %d", c.Sim.Parallel))
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// HasHuman reports whether any side is played from the keyboard.
func (c *Config) HasHuman() bool {
	for _, p := range c.Players {
		if p.Kind == KindHuman {
			return true
		}
	}
	return false
}

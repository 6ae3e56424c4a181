package config

import (
	"errors"
	"fmt"
	"os"

	"cookieempire/internal/currency"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version     string    `yaml:"version" json:"version"`
	Difficulty  string    `yaml:"difficulty" json:"difficulty"`
	Save        Save      `yaml:"save" json:"save"`
	Combo       Combo     `yaml:"combo" json:"combo"`
	Economy     Economy   `yaml:"economy" json:"economy"`
	Bonus       Bonus     `yaml:"bonus" json:"bonus"`
	SeededRNG   SeededRNG `yaml:"seeded_rng" json:"seeded_rng"`
	CatalogPath string    `yaml:"catalog_path" json:"catalog_path"`
}

type Save struct {
	Dir             string `yaml:"dir" json:"dir"`
	File            string `yaml:"file" json:"file"`
	AutosaveSeconds int    `yaml:"autosave_seconds" json:"autosave_seconds"`
}

type Combo struct {
	WindowSeconds  float64 `yaml:"window_seconds" json:"window_seconds"`
	ActionsPerStep uint64  `yaml:"actions_per_step" json:"actions_per_step"`
}

type Economy struct {
	BaseClickYield currency.Currency `yaml:"base_click_yield" json:"base_click_yield"`
	FloorBonus     currency.Currency `yaml:"floor_bonus" json:"floor_bonus"`
}

type Bonus struct {
	MinSpawnSeconds int    `yaml:"min_spawn_seconds" json:"min_spawn_seconds"`
	MaxSpawnSeconds int    `yaml:"max_spawn_seconds" json:"max_spawn_seconds"`
	LifetimeSeconds int    `yaml:"lifetime_seconds" json:"lifetime_seconds"`
	MinMultiplier   uint64 `yaml:"min_multiplier" json:"min_multiplier"`
	MaxMultiplier   uint64 `yaml:"max_multiplier" json:"max_multiplier"`
	MaxActive       int    `yaml:"max_active" json:"max_active"`
}

type SeededRNG struct {
	Enabled bool  `yaml:"enabled" json:"enabled"`
	Seed    int64 `yaml:"seed" json:"seed"`
}

var ErrInvalid = errors.New("invalid config")

func (s *Save) ApplyDefaults() {
	if s.Dir == "" {
		s.Dir = "data"
	}
	if s.File == "" {
		s.File = "cookie_save.json"
	}
	if s.AutosaveSeconds == 0 {
		s.AutosaveSeconds = 5
	}
}

func (c *Combo) ApplyDefaults() {
	if c.WindowSeconds == 0 {
		c.WindowSeconds = 3
	}
	if c.ActionsPerStep == 0 {
		c.ActionsPerStep = 10
	}
}

func (e *Economy) ApplyDefaults() {
	if e.BaseClickYield.IsZero() {
		e.BaseClickYield = currency.FromInt64(1)
	}
	if e.FloorBonus.IsZero() {
		e.FloorBonus = currency.FromInt64(2000)
	}
}

func (b *Bonus) ApplyDefaults() {
	if b.MinSpawnSeconds == 0 {
		b.MinSpawnSeconds = 30
	}
	if b.MaxSpawnSeconds == 0 {
		b.MaxSpawnSeconds = 420
	}
	if b.LifetimeSeconds == 0 {
		b.LifetimeSeconds = 10
	}
	if b.MinMultiplier == 0 {
		b.MinMultiplier = 7
	}
	if b.MaxMultiplier == 0 {
		b.MaxMultiplier = 20
	}
	if b.MaxActive == 0 {
		b.MaxActive = 2
	}
}

func (c *Config) ApplyDefaults() {
	if c.Version == "" {
		c.Version = "1"
	}
	if c.Difficulty == "" {
		c.Difficulty = DifficultyNormal
	}
	c.Save.ApplyDefaults()
	c.Combo.ApplyDefaults()
	c.Economy.ApplyDefaults()
	c.Bonus.ApplyDefaults()
}

// Validate rejects values the game cannot run with. Call after
// ApplyDefaults.
func (c *Config) Validate() error {
	switch {
	case c.Save.AutosaveSeconds < 0:
		return fmt.Errorf("%w: save.autosave_seconds must not be negative", ErrInvalid)
	case c.Combo.WindowSeconds <= 0:
		return fmt.Errorf("%w: combo.window_seconds must be positive", ErrInvalid)
	case c.Bonus.MinSpawnSeconds <= 0:
		return fmt.Errorf("%w: bonus.min_spawn_seconds must be positive", ErrInvalid)
	case c.Bonus.MaxSpawnSeconds < c.Bonus.MinSpawnSeconds:
		return fmt.Errorf("%w: bonus.max_spawn_seconds is below min_spawn_seconds", ErrInvalid)
	case c.Bonus.LifetimeSeconds <= 0:
		return fmt.Errorf("%w: bonus.lifetime_seconds must be positive", ErrInvalid)
	case c.Bonus.MaxMultiplier < c.Bonus.MinMultiplier:
		return fmt.Errorf("%w: bonus.max_multiplier is below min_multiplier", ErrInvalid)
	case c.Bonus.MaxActive < 0:
		return fmt.Errorf("%w: bonus.max_active must not be negative", ErrInvalid)
	}
	if _, ok := presets[c.Difficulty]; !ok {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, c.Difficulty)
	}
	return nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse reads a YAML document. A difficulty named in the document is applied
// first, so explicit values in the same document still win over the preset.
func Parse(b []byte) (*Config, error) {
	var probe struct {
		Difficulty string `yaml:"difficulty"`
	}
	if err := yaml.Unmarshal(b, &probe); err != nil {
		return nil, err
	}
	r := Default()
	if probe.Difficulty != "" {
		r.ApplyDifficulty(probe.Difficulty)
	}
	if err := yaml.Unmarshal(b, r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadOrDefault loads path when it exists and falls back to Default when it
// does not. An empty path means Default.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	c, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

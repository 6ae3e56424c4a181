package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"cookieempire/internal/achievement"
	"cookieempire/internal/currency"

	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateName     = errors.New("duplicate catalog name")
	ErrInvalidDefinition = errors.New("invalid catalog definition")
)

//go:embed default_catalog.yml
var defaultCatalogYAML []byte

// Generator produces cookies passively. Name is the save-file key.
type Generator struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	BaseCost    currency.Currency `yaml:"base_cost" json:"base_cost"`
	Yield       float64           `yaml:"yield" json:"yield"`
	Tier        uint32            `yaml:"tier" json:"tier"`
}

// Multiplier permanently adds Bonus to the click yield per unit owned.
type Multiplier struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description" json:"description"`
	BaseCost    currency.Currency `yaml:"base_cost" json:"base_cost"`
	Bonus       currency.Currency `yaml:"bonus" json:"bonus"`
}

type Catalog struct {
	Version      string                   `yaml:"version" json:"version"`
	Generators   []Generator              `yaml:"generators" json:"generators"`
	Multipliers  []Multiplier             `yaml:"multipliers" json:"multipliers"`
	Achievements []achievement.Definition `yaml:"achievements" json:"achievements"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns a copy of the embedded catalog. Invalid embedded data is a
// build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat.Clone()
}

func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) ApplyDefaults() {
	for i := range c.Generators {
		g := &c.Generators[i]
		if g.Description == "" {
			g.Description = "Produces " + strconv.FormatFloat(g.Yield, 'f', -1, 64) + " cookies/sec"
		}
	}
	for i := range c.Multipliers {
		m := &c.Multipliers[i]
		if m.Description == "" {
			m.Description = "+" + m.Bonus.Short() + " cookies per click"
		}
	}
}

// Validate checks names are unique within each list and every definition
// is usable.
func (c *Catalog) Validate() error {
	seen := map[string]bool{}
	for i, g := range c.Generators {
		if g.Name == "" {
			return fmt.Errorf("%w: generator %d has no name", ErrInvalidDefinition, i)
		}
		if seen[g.Name] {
			return fmt.Errorf("%w: generator %q", ErrDuplicateName, g.Name)
		}
		seen[g.Name] = true
		if g.BaseCost.IsZero() {
			return fmt.Errorf("%w: generator %q has zero base cost", ErrInvalidDefinition, g.Name)
		}
		if g.Yield < 0 {
			return fmt.Errorf("%w: generator %q has negative yield", ErrInvalidDefinition, g.Name)
		}
	}

	seen = map[string]bool{}
	for i, m := range c.Multipliers {
		if m.Name == "" {
			return fmt.Errorf("%w: multiplier %d has no name", ErrInvalidDefinition, i)
		}
		if seen[m.Name] {
			return fmt.Errorf("%w: multiplier %q", ErrDuplicateName, m.Name)
		}
		seen[m.Name] = true
		if m.BaseCost.IsZero() {
			return fmt.Errorf("%w: multiplier %q has zero base cost", ErrInvalidDefinition, m.Name)
		}
	}

	seen = map[string]bool{}
	for i, a := range c.Achievements {
		if a.Name == "" {
			return fmt.Errorf("%w: achievement %d has no name", ErrInvalidDefinition, i)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: achievement %q", ErrDuplicateName, a.Name)
		}
		seen[a.Name] = true
		if err := a.Requirement.Validate(); err != nil {
			return fmt.Errorf("achievement %q: %w", a.Name, err)
		}
	}
	return nil
}

func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Version:      c.Version,
		Generators:   make([]Generator, len(c.Generators)),
		Multipliers:  make([]Multiplier, len(c.Multipliers)),
		Achievements: make([]achievement.Definition, len(c.Achievements)),
	}
	copy(out.Generators, c.Generators)
	copy(out.Multipliers, c.Multipliers)
	copy(out.Achievements, c.Achievements)
	return out
}

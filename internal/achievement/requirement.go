package achievement

import (
	"errors"
	"fmt"

	"cookieempire/internal/currency"
)

var ErrUnknownRequirement = errors.New("unknown achievement requirement")

// Kind selects which progress counter a requirement is checked against.
type Kind string

const (
	KindLifetimeCurrency Kind = "lifetime_currency"
	KindProductionRate   Kind = "production_rate"
	KindManualActions    Kind = "manual_actions"
	KindSpecialBonuses   Kind = "special_bonuses"
	KindGeneratorCount   Kind = "generator_count"
	KindPrestigeLevel    Kind = "prestige_level"
	KindComboLevel       Kind = "combo_level"
)

// Requirement is a tagged union: Kind decides which of the other fields
// carries the threshold.
//
//	lifetime_currency -> Amount
//	production_rate   -> Rate
//	generator_count   -> Generator (index) and Count
//	everything else   -> Count
type Requirement struct {
	Kind      Kind              `yaml:"kind" json:"kind"`
	Amount    currency.Currency `yaml:"amount,omitempty" json:"amount,omitempty"`
	Rate      float64           `yaml:"rate,omitempty" json:"rate,omitempty"`
	Count     uint64            `yaml:"count,omitempty" json:"count,omitempty"`
	Generator int               `yaml:"generator,omitempty" json:"generator,omitempty"`
}

func LifetimeCurrency(amount currency.Currency) Requirement {
	return Requirement{Kind: KindLifetimeCurrency, Amount: amount}
}

func ProductionRate(rate float64) Requirement {
	return Requirement{Kind: KindProductionRate, Rate: rate}
}

func ManualActions(n uint64) Requirement {
	return Requirement{Kind: KindManualActions, Count: n}
}

func SpecialBonuses(n uint64) Requirement {
	return Requirement{Kind: KindSpecialBonuses, Count: n}
}

func GeneratorCount(index int, n uint64) Requirement {
	return Requirement{Kind: KindGeneratorCount, Generator: index, Count: n}
}

func PrestigeLevel(n uint64) Requirement {
	return Requirement{Kind: KindPrestigeLevel, Count: n}
}

func ComboLevel(n uint64) Requirement {
	return Requirement{Kind: KindComboLevel, Count: n}
}

// Progress is the read-only view of the economy a requirement is checked
// against.
type Progress struct {
	LifetimeEarned  currency.Currency
	ProductionRate  float64
	ManualActions   uint64
	SpecialBonuses  uint64
	PrestigeLevel   uint64
	ComboLevel      uint64
	GeneratorCounts []uint64
}

func (r Requirement) Validate() error {
	switch r.Kind {
	case KindLifetimeCurrency, KindProductionRate, KindManualActions,
		KindSpecialBonuses, KindPrestigeLevel, KindComboLevel:
		return nil
	case KindGeneratorCount:
		if r.Generator < 0 {
			return fmt.Errorf("generator_count: negative generator index %d", r.Generator)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRequirement, r.Kind)
	}
}

// Satisfied reports whether p meets the requirement. A generator_count
// requirement that points past the generator list is never satisfied.
func (r Requirement) Satisfied(p Progress) bool {
	switch r.Kind {
	case KindLifetimeCurrency:
		return p.LifetimeEarned.GreaterOrEqual(r.Amount)
	case KindProductionRate:
		return p.ProductionRate >= r.Rate
	case KindManualActions:
		return p.ManualActions >= r.Count
	case KindSpecialBonuses:
		return p.SpecialBonuses >= r.Count
	case KindGeneratorCount:
		if r.Generator < 0 || r.Generator >= len(p.GeneratorCounts) {
			return false
		}
		return p.GeneratorCounts[r.Generator] >= r.Count
	case KindPrestigeLevel:
		return p.PrestigeLevel >= r.Count
	case KindComboLevel:
		return p.ComboLevel >= r.Count
	default:
		return false
	}
}

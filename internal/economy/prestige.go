package economy

import (
	"fmt"
	"math"

	"cookieempire/internal/currency"

	"github.com/shopspring/decimal"
)

const (
	prestigeBase         = 1e11
	prestigeExponentBase = 1.15
	prestigeExponentStep = 0.005

	// lifetime cookies per banked prestige point
	bankedPerPrestigePoint = 1_000_000
)

// PrestigeRequirement is 1e11 * (level+1)^(1.15 + 0.005*level), truncated.
// The float evaluation overflows somewhere past level 14000; past that the result is
// rebuilt from its base-10 logarithm so the curve keeps rising.
func PrestigeRequirement(level uint64) currency.Currency {
	l := float64(level)
	exp := prestigeExponentBase + l*prestigeExponentStep
	v := prestigeBase * math.Pow(l+1, exp)
	if c, ok := currency.FromFloat(v); ok {
		return c
	}

	log10 := math.Log10(prestigeBase) + exp*math.Log10(l+1)
	whole := math.Floor(log10)
	mantissa := decimal.NewFromFloat(math.Pow(10, log10-whole))
	return currency.FromDecimal(mantissa.Shift(int32(whole)))
}

func (s *State) PrestigeRequirement() currency.Currency {
	return PrestigeRequirement(s.prestigeLevel)
}

func (s *State) CanPrestige() bool {
	return s.balance.GreaterOrEqual(s.PrestigeRequirement())
}

// PrestigeProgress is the balance as a percentage of the requirement, capped
// at 100.
func (s *State) PrestigeProgress() float64 {
	req := s.PrestigeRequirement()
	if s.balance.GreaterOrEqual(req) {
		return 100
	}
	pct := s.balance.Decimal().Div(req.Decimal()).Mul(decimal.NewFromInt(100))
	return pct.InexactFloat64()
}

// PrestigeBonusPercent is the production bonus currently granted by prestige.
func (s *State) PrestigeBonusPercent() float64 {
	return float64(s.prestigeLevel) * PrestigeBonusPerLevel * 100
}

// Prestige trades the current run for a permanent production bonus.
// Generators, balance and run earnings reset; multipliers, click yield,
// lifetime totals, counters and achievements are kept. Below the
// requirement it returns ErrNotEnoughLifetimeCurrency and changes nothing.
func (s *State) Prestige() error {
	req := s.PrestigeRequirement()
	if s.balance.LessThan(req) {
		return fmt.Errorf("%w: have %s, need %s", ErrNotEnoughLifetimeCurrency, s.balance, req)
	}

	s.prestigeLevel++
	s.prestigeCurrency = s.lifetimeEarned.Div(bankedPerPrestigePoint)
	s.balance = currency.Zero
	s.runEarned = currency.Zero
	s.carry = 0
	// Tiered generators restart at their discounted count-0 price, not at the
	// raw base cost, so Price always equals GeneratorPrice(base, count, tier)
	// and a prestiged game prices exactly like a fresh one.
	for i := range s.generators {
		s.generators[i].Count = 0
		s.generators[i].reprice()
	}
	s.recomputeProduction()
	return nil
}

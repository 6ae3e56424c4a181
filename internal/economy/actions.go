package economy

import (
	"fmt"
	"math"

	"cookieempire/internal/currency"

	"github.com/shopspring/decimal"
)

// secondsOfProduction is how many seconds of output a special bonus is
// worth per point of multiplier.
const secondsOfProduction = 60

// ManualAction credits one click: click yield times the combo multiplier
// (1 when no combo is active). It returns the amount earned.
func (s *State) ManualAction(comboMultiplier uint64) currency.Currency {
	if comboMultiplier == 0 {
		comboMultiplier = 1
	}
	earned := s.clickYield.Mul(comboMultiplier)
	s.credit(earned)
	s.manualActions++
	return earned
}

// PurchaseGenerator buys one unit of the generator at index i.
func (s *State) PurchaseGenerator(i int) error {
	if i < 0 || i >= len(s.generators) {
		return fmt.Errorf("generator %d: %w", i, ErrIndexOutOfRange)
	}
	g := &s.generators[i]
	rest, ok := s.balance.Sub(g.Price)
	if !ok {
		return fmt.Errorf("generator %q costs %s: %w", g.Name, g.Price, ErrInsufficientFunds)
	}
	s.balance = rest
	g.Count++
	g.reprice()
	s.recomputeProduction()
	return nil
}

// PurchaseMultiplier buys one unit of the multiplier at index i. Click
// yield grows by the unit bonus.
func (s *State) PurchaseMultiplier(i int) error {
	if i < 0 || i >= len(s.multipliers) {
		return fmt.Errorf("multiplier %d: %w", i, ErrIndexOutOfRange)
	}
	m := &s.multipliers[i]
	rest, ok := s.balance.Sub(m.Price)
	if !ok {
		return fmt.Errorf("multiplier %q costs %s: %w", m.Name, m.Price, ErrInsufficientFunds)
	}
	s.balance = rest
	m.Count++
	m.reprice()
	s.clickYield = s.clickYield.Add(m.Bonus)
	return nil
}

// CollectSpecialBonus credits max(rate * multiplier * 60, floor bonus)
// using the production rate at the moment of collection.
func (s *State) CollectSpecialBonus(multiplier uint64) currency.Currency {
	reward := rateDecimal(s.productionRate).
		Mul(currency.FromUint64(multiplier).Decimal()).
		Mul(decimal.NewFromInt(secondsOfProduction))
	earned := currency.FromDecimal(reward)
	if earned.LessThan(s.opts.FloorBonus) {
		earned = s.opts.FloorBonus
	}
	s.credit(earned)
	s.specialBonuses++
	return earned
}

// rateDecimal converts a production rate for exact scaling. An overflowed
// rate saturates at the largest finite float; NaN and negatives are 0.
func rateDecimal(rate float64) decimal.Decimal {
	switch {
	case math.IsNaN(rate) || rate <= 0:
		return decimal.Zero
	case math.IsInf(rate, 1):
		return decimal.NewFromFloat(math.MaxFloat64)
	}
	return decimal.NewFromFloat(rate)
}

// Tick credits production for deltaSeconds of elapsed time and returns the
// whole cookies credited. The fractional remainder carries into the next
// tick, so splitting an interval never changes the total. Non-positive or
// non-finite deltas are ignored.
func (s *State) Tick(deltaSeconds float64) currency.Currency {
	if !(deltaSeconds > 0) || math.IsInf(deltaSeconds, 0) || s.productionRate <= 0 {
		return currency.Zero
	}
	total := s.productionRate*deltaSeconds + s.carry
	whole := math.Floor(total)
	s.carry = total - whole
	if s.carry < 0 || s.carry >= 1 || whole > maxExactFloat {
		s.carry = 0
	}
	earned, ok := currency.FromFloat(whole)
	if !ok || earned.IsZero() {
		return currency.Zero
	}
	s.credit(earned)
	return earned
}

// above 2^53 a float64 has no fractional part to carry
const maxExactFloat = 1 << 53

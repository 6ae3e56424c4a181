package economy

import (
	"cookieempire/internal/currency"

	"github.com/shopspring/decimal"
)

var (
	generatorGrowth  = decimal.RequireFromString("1.15")
	multiplierGrowth = decimal.RequireFromString("1.20")
	hundred          = decimal.NewFromInt(100)
	minPrice         = currency.FromInt64(1)
)

// PrestigeBonusPerLevel is the production bonus granted by each prestige
// level (1%).
const PrestigeBonusPerLevel = 0.01

// GeneratorPrice is base * 1.15^count * (1 - tier/100), truncated, never
// below 1.
func GeneratorPrice(base currency.Currency, count uint64, tier uint32) currency.Currency {
	if tier >= 100 {
		return minPrice
	}
	discount := hundred.Sub(decimal.NewFromInt(int64(tier))).Div(hundred)
	p := base.Decimal().Mul(pow(generatorGrowth, count)).Mul(discount)
	return clampPrice(currency.FromDecimal(p))
}

// MultiplierPrice is base * 1.20^count, truncated, never below 1.
func MultiplierPrice(base currency.Currency, count uint64) currency.Currency {
	p := base.Decimal().Mul(pow(multiplierGrowth, count))
	return clampPrice(currency.FromDecimal(p))
}

// ProductionMultiplier is 1 + level * PrestigeBonusPerLevel.
func ProductionMultiplier(prestigeLevel uint64) float64 {
	return 1 + float64(prestigeLevel)*PrestigeBonusPerLevel
}

func clampPrice(p currency.Currency) currency.Currency {
	if p.LessThan(minPrice) {
		return minPrice
	}
	return p
}

// pow computes b^n exactly by repeated squaring.
func pow(b decimal.Decimal, n uint64) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(b)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b)
		}
	}
	return result
}

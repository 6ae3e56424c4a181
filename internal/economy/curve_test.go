package economy

import (
	"testing"

	"cookieempire/internal/currency"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorPrice(t *testing.T) {
	base := currency.FromInt64(15)
	assert.Equal(t, "15", GeneratorPrice(base, 0, 0).String())
	assert.Equal(t, "17", GeneratorPrice(base, 1, 0).String())
	assert.Equal(t, "19", GeneratorPrice(base, 2, 0).String())

	farm := currency.FromInt64(1100)
	assert.Equal(t, "990", GeneratorPrice(farm, 0, 10).String())
	assert.Equal(t, "1138", GeneratorPrice(farm, 1, 10).String())
}

func TestGeneratorPrice_ClampsAtOne(t *testing.T) {
	assert.Equal(t, "1", GeneratorPrice(currency.FromInt64(1), 0, 99).String())
	assert.Equal(t, "1", GeneratorPrice(currency.FromInt64(1_000_000), 3, 100).String())
	assert.Equal(t, "1", GeneratorPrice(currency.FromInt64(1_000_000), 3, 250).String())
}

func TestMultiplierPrice(t *testing.T) {
	base := currency.FromInt64(100)
	assert.Equal(t, "100", MultiplierPrice(base, 0).String())
	assert.Equal(t, "120", MultiplierPrice(base, 1).String())
	assert.Equal(t, "144", MultiplierPrice(base, 2).String())
}

func TestPrices_StrictlyIncreasingInCount(t *testing.T) {
	bases := []currency.Currency{
		currency.FromInt64(15),
		currency.FromInt64(100),
		currency.MustParse("3e24"),
	}
	for _, base := range bases {
		prevGen := GeneratorPrice(base, 0, 7)
		prevMult := MultiplierPrice(base, 0)
		for n := uint64(1); n <= 200; n++ {
			g := GeneratorPrice(base, n, 7)
			m := MultiplierPrice(base, n)
			assert.True(t, prevGen.LessThan(g), "generator base=%s n=%d", base, n)
			assert.True(t, prevMult.LessThan(m), "multiplier base=%s n=%d", base, n)
			prevGen, prevMult = g, m
		}
	}
}

func TestPrices_ExceedUint64WithoutOverflow(t *testing.T) {
	p := GeneratorPrice(currency.MustParse("3e24"), 500, 0)
	assert.Greater(t, len(p.String()), 50)
	assert.True(t, p.GreaterOrEqual(currency.MustParse("3e24")))
}

func TestProductionMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, ProductionMultiplier(0))
	assert.InDelta(t, 1.05, ProductionMultiplier(5), 1e-12)
	assert.InDelta(t, 2.0, ProductionMultiplier(100), 1e-12)
}

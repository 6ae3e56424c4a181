package economy

import (
	"errors"
	"testing"

	"cookieempire/internal/currency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrestigeRequirement(t *testing.T) {
	assert.Equal(t, "100000000000", PrestigeRequirement(0).String())

	prev := PrestigeRequirement(0)
	for _, level := range []uint64{1, 2, 5, 10, 100, 1_000, 5_000, 10_000, 100_000} {
		req := PrestigeRequirement(level)
		assert.True(t, prev.LessThan(req), "level %d", level)
		prev = req
	}
}

func TestPrestige_FailsBelowRequirementWithoutMutating(t *testing.T) {
	s := stateWith(t, 99_999_999_999)
	require.NoError(t, s.PurchaseGenerator(0))
	before := s.Snapshot(fixedTime)

	for i := 0; i < 3; i++ {
		err := s.Prestige()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotEnoughLifetimeCurrency))
		assert.True(t, errors.Is(err, ErrInsufficientFunds))
		assert.Equal(t, before, s.Snapshot(fixedTime))
	}
	assert.False(t, s.CanPrestige())
}

func TestPrestige_ResetsGeneratorsOnly(t *testing.T) {
	s := stateWith(t, 100_000_000_000+10_000)
	require.NoError(t, s.PurchaseGenerator(1))
	require.NoError(t, s.PurchaseGenerator(2))
	require.NoError(t, s.PurchaseMultiplier(1))
	s.ManualAction(1)
	s.EvaluateAchievements(0)
	unlockedBefore := s.AchievementsUnlocked()
	lifetime := s.LifetimeEarned()
	clickYield := s.ClickYield()
	require.True(t, s.CanPrestige())

	require.NoError(t, s.Prestige())

	assert.Equal(t, uint64(1), s.PrestigeLevel())
	assert.True(t, s.Balance().IsZero())
	assert.True(t, s.RunEarned().IsZero())
	assert.Equal(t, 0.0, s.ProductionRate())
	for _, g := range s.Generators() {
		assert.Zero(t, g.Count)
		assert.Equal(t, GeneratorPrice(g.BaseCost, 0, g.Tier).String(), g.Price.String())
		if g.Tier == 0 {
			assert.Equal(t, g.BaseCost.String(), g.Price.String())
		}
	}
	m, _ := s.Multiplier(1)
	assert.Equal(t, uint64(1), m.Count)
	assert.Equal(t, clickYield.String(), s.ClickYield().String())
	assert.Equal(t, lifetime.String(), s.LifetimeEarned().String())
	assert.Equal(t, uint64(1), s.ManualActions())
	assert.Equal(t, unlockedBefore, s.AchievementsUnlocked())

	// floor(lifetime / 1e6)
	assert.Equal(t, "100000", s.PrestigeCurrency().String())
	assert.InDelta(t, 1.0, s.PrestigeBonusPercent(), 1e-12)
}

func TestPrestige_TieredGeneratorPricesMatchFreshGame(t *testing.T) {
	s := stateWith(t, 100_000_000_000+10_000)
	require.NoError(t, s.PurchaseGenerator(2))
	require.NoError(t, s.Prestige())

	farm, ok := s.Generator(2)
	require.True(t, ok)
	assert.Equal(t, uint32(10), farm.Tier)
	// 1100 with a 10% tier discount
	assert.Equal(t, "990", farm.Price.String())

	fresh, _ := New(testCatalog(t), Options{}).Generator(2)
	assert.Equal(t, fresh.Price.String(), farm.Price.String())
}

func TestPrestige_BonusAppliesToProduction(t *testing.T) {
	s := stateWith(t, 100_000_000_000)
	require.NoError(t, s.Prestige())
	s.credit(currency.FromInt64(100))
	require.NoError(t, s.PurchaseGenerator(1))
	assert.InDelta(t, 1.01, s.ProductionRate(), 1e-12)
}

func TestPrestigeProgress(t *testing.T) {
	s := stateWith(t, 25_000_000_000)
	assert.InDelta(t, 25.0, s.PrestigeProgress(), 1e-9)

	s = stateWith(t, 300_000_000_000)
	assert.Equal(t, 100.0, s.PrestigeProgress())

	s = New(testCatalog(t), Options{})
	assert.Equal(t, 0.0, s.PrestigeProgress())
}

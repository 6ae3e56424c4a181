package economy

import (
	"testing"

	"cookieempire/internal/catalog"
	"cookieempire/internal/currency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedState(t *testing.T) *State {
	t.Helper()
	s := stateWith(t, 5_000)
	require.NoError(t, s.PurchaseGenerator(0))
	require.NoError(t, s.PurchaseGenerator(0))
	require.NoError(t, s.PurchaseGenerator(1))
	require.NoError(t, s.PurchaseMultiplier(0))
	s.ManualAction(1)
	s.CollectSpecialBonus(7)
	s.EvaluateAchievements(0)
	return s
}

func TestReconcile_RoundTrip(t *testing.T) {
	s := playedState(t)
	snap := s.Snapshot(fixedTime)

	got, rep := Reconcile(testCatalog(t), snap, Options{})

	assert.Equal(t, s.GameID(), got.GameID())
	assert.Equal(t, s.Balance().String(), got.Balance().String())
	assert.Equal(t, s.RunEarned().String(), got.RunEarned().String())
	assert.Equal(t, s.LifetimeEarned().String(), got.LifetimeEarned().String())
	assert.Equal(t, s.ClickYield().String(), got.ClickYield().String())
	assert.Equal(t, s.ManualActions(), got.ManualActions())
	assert.Equal(t, s.SpecialBonuses(), got.SpecialBonuses())
	assert.Equal(t, s.PrestigeLevel(), got.PrestigeLevel())
	assert.InDelta(t, s.ProductionRate(), got.ProductionRate(), 1e-12)
	assert.Equal(t, itemSummary(s), itemSummary(got))
	assert.Equal(t, s.Achievements(), got.Achievements())

	assert.Zero(t, rep.Dropped())
	assert.Zero(t, rep.NewGenerators)
	assert.Zero(t, rep.NewMultipliers)
	assert.Zero(t, rep.NewAchievements)
	assert.False(t, rep.Fresh)
}

func TestReconcile_AddedCatalogItems(t *testing.T) {
	snap := playedState(t).Snapshot(fixedTime)

	bigger := testCatalog(t)
	bigger.Generators = append(bigger.Generators, catalog.Generator{Name: "Mine", BaseCost: currency.FromInt64(12_000), Yield: 47})
	bigger.Multipliers = append(bigger.Multipliers, catalog.Multiplier{Name: "Titanium Click", BaseCost: currency.FromInt64(5_000), Bonus: currency.FromInt64(10)})
	require.NoError(t, bigger.Validate())

	got, rep := Reconcile(bigger, snap, Options{})

	mine, ok := got.Generator(3)
	require.True(t, ok)
	assert.Zero(t, mine.Count)
	assert.Equal(t, "12000", mine.Price.String())
	ti, _ := got.Multiplier(2)
	assert.Zero(t, ti.Count)
	assert.Equal(t, "5000", ti.Price.String())

	assert.Equal(t, 1, rep.NewGenerators)
	assert.Equal(t, 1, rep.NewMultipliers)
	assert.Zero(t, rep.Dropped())
}

func TestReconcile_RemovedCatalogItems(t *testing.T) {
	snap := playedState(t).Snapshot(fixedTime)
	snap.Generators = append(snap.Generators, ItemCount{Name: "Retired Oven", Count: 12})
	snap.Multipliers = append(snap.Multipliers, ItemCount{Name: "Old Click", Count: 3})
	snap.Achievements = append(snap.Achievements, achievementEntry("Legacy", true))

	got, rep := Reconcile(testCatalog(t), snap, Options{})

	assert.Equal(t, []string{"Retired Oven"}, rep.DroppedGenerators)
	assert.Equal(t, []string{"Old Click"}, rep.DroppedMultipliers)
	assert.Equal(t, []string{"Legacy"}, rep.DroppedAchievements)
	assert.Len(t, got.Generators(), 3)
	assert.Equal(t, 4, got.AchievementsTotal())
}

func TestReconcile_RecomputesDerivedFields(t *testing.T) {
	snap := Snapshot{
		PrestigeLevel:  2,
		ClickYield:     currency.FromInt64(999_999),
		ProductionRate: 123456,
		Generators:     []ItemCount{{Name: "Grandma", Count: 10}},
		Multipliers:    []ItemCount{{Name: "Golden Fingers", Count: 2}},
	}

	got, _ := Reconcile(testCatalog(t), snap, Options{})

	assert.InDelta(t, 10*1.02, got.ProductionRate(), 1e-9)
	assert.Equal(t, "11", got.ClickYield().String())
	g, _ := got.Generator(1)
	assert.Equal(t, GeneratorPrice(currency.FromInt64(100), 10, 0).String(), g.Price.String())
}

func TestReconcile_OldSnapshotDefaults(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(`{"cookies": "42", "total_cookies_earned": "50"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version)

	got, rep := Reconcile(testCatalog(t), snap, Options{})
	assert.NotEmpty(t, got.GameID())
	assert.Equal(t, "42", got.Balance().String())
	// lifetime never trails the current run
	assert.Equal(t, "50", got.LifetimeEarned().String())
	assert.Equal(t, 3, rep.NewGenerators)
	assert.Equal(t, 4, rep.NewAchievements)
}

package economy

import (
	"time"

	"cookieempire/internal/achievement"
	"cookieempire/internal/currency"
)

// SnapshotVersion is written into every snapshot. Version 1 files (no
// game_id, no saved_at) load unchanged.
const SnapshotVersion = 2

// ItemCount is an owned count keyed by catalog name.
type ItemCount struct {
	Name  string `json:"name"`
	Count uint64 `json:"count"`
}

// Snapshot is the persisted form of a State. Names are the reconciliation
// keys. ClickYield and ProductionRate are informational; Reconcile
// recomputes both from the catalog.
type Snapshot struct {
	Version int        `json:"version"`
	GameID  string     `json:"game_id,omitempty"`
	SavedAt *time.Time `json:"saved_at,omitempty"`

	Balance        currency.Currency `json:"cookies"`
	RunEarned      currency.Currency `json:"total_cookies_earned"`
	LifetimeEarned currency.Currency `json:"lifetime_cookies"`
	ClickYield     currency.Currency `json:"cookies_per_click"`
	ProductionRate float64           `json:"cookies_per_second"`

	ManualActions  uint64 `json:"total_clicks"`
	SpecialBonuses uint64 `json:"golden_cookies_clicked"`

	PrestigeLevel    uint64            `json:"prestige_level"`
	PrestigeCurrency currency.Currency `json:"prestige_points"`

	Generators   []ItemCount         `json:"generators"`
	Multipliers  []ItemCount         `json:"multipliers"`
	Achievements []achievement.Entry `json:"achievements"`
}

// Snapshot captures s. The result shares nothing with s.
func (s *State) Snapshot(now time.Time) Snapshot {
	savedAt := now.UTC()
	snap := Snapshot{
		Version:          SnapshotVersion,
		GameID:           s.gameID,
		SavedAt:          &savedAt,
		Balance:          s.balance,
		RunEarned:        s.runEarned,
		LifetimeEarned:   s.lifetimeEarned,
		ClickYield:       s.clickYield,
		ProductionRate:   s.productionRate,
		ManualActions:    s.manualActions,
		SpecialBonuses:   s.specialBonuses,
		PrestigeLevel:    s.prestigeLevel,
		PrestigeCurrency: s.prestigeCurrency,
		Generators:       make([]ItemCount, len(s.generators)),
		Multipliers:      make([]ItemCount, len(s.multipliers)),
		Achievements:     s.achievements.Entries(),
	}
	for i, g := range s.generators {
		snap.Generators[i] = ItemCount{Name: g.Name, Count: g.Count}
	}
	for i, m := range s.multipliers {
		snap.Multipliers[i] = ItemCount{Name: m.Name, Count: m.Count}
	}
	return snap
}

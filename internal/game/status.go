package game

import (
	"time"

	"cookieempire/internal/bonus"
	"cookieempire/internal/currency"
	"cookieempire/internal/economy"
)

type ItemStatus struct {
	Index       int               `json:"index"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Count       uint64            `json:"count"`
	Price       currency.Currency `json:"price"`
	Affordable  bool              `json:"affordable"`
}

type ComboStatus struct {
	Active     bool          `json:"active"`
	Level      uint64        `json:"level"`
	Counter    uint64        `json:"counter"`
	Multiplier uint64        `json:"multiplier"`
	Remaining  time.Duration `json:"remaining"`
}

// Status is everything a presentation layer shows, read in one consistent
// pass.
type Status struct {
	GameID string `json:"game_id"`

	Balance        currency.Currency `json:"balance"`
	RunEarned      currency.Currency `json:"run_earned"`
	LifetimeEarned currency.Currency `json:"lifetime_earned"`
	ProductionRate float64           `json:"production_rate"`
	ClickYield     currency.Currency `json:"click_yield"`
	ManualActions  uint64            `json:"manual_actions"`
	SpecialBonuses uint64            `json:"special_bonuses"`

	Combo         ComboStatus   `json:"combo"`
	ActiveBonuses []bonus.Bonus `json:"active_bonuses"`

	PrestigeLevel        uint64            `json:"prestige_level"`
	PrestigeCurrency     currency.Currency `json:"prestige_currency"`
	PrestigeRequirement  currency.Currency `json:"prestige_requirement"`
	CanPrestige          bool              `json:"can_prestige"`
	PrestigeProgress     float64           `json:"prestige_progress"`
	PrestigeBonusPercent float64           `json:"prestige_bonus_percent"`

	Rank     economy.Rank  `json:"rank"`
	NextRank *economy.Rank `json:"next_rank,omitempty"`

	AchievementsUnlocked int `json:"achievements_unlocked"`
	AchievementsTotal    int `json:"achievements_total"`

	Generators  []ItemStatus `json:"generators"`
	Multipliers []ItemStatus `json:"multipliers"`
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	out := Status{
		GameID:         st.GameID(),
		Balance:        st.Balance(),
		RunEarned:      st.RunEarned(),
		LifetimeEarned: st.LifetimeEarned(),
		ProductionRate: st.ProductionRate(),
		ClickYield:     st.ClickYield(),
		ManualActions:  st.ManualActions(),
		SpecialBonuses: st.SpecialBonuses(),
		Combo: ComboStatus{
			Active:     s.combo.Active(),
			Level:      s.combo.Level(),
			Counter:    s.combo.Counter(),
			Multiplier: s.combo.Multiplier(),
			Remaining:  s.combo.Remaining(),
		},
		ActiveBonuses:        s.spawner.Active(),
		PrestigeLevel:        st.PrestigeLevel(),
		PrestigeCurrency:     st.PrestigeCurrency(),
		PrestigeRequirement:  st.PrestigeRequirement(),
		CanPrestige:          st.CanPrestige(),
		PrestigeProgress:     st.PrestigeProgress(),
		PrestigeBonusPercent: st.PrestigeBonusPercent(),
		Rank:                 st.Rank(),
		AchievementsUnlocked: st.AchievementsUnlocked(),
		AchievementsTotal:    st.AchievementsTotal(),
	}
	if next, ok := economy.NextRank(st.LifetimeEarned()); ok {
		out.NextRank = &next
	}

	balance := st.Balance()
	for i, g := range st.Generators() {
		out.Generators = append(out.Generators, ItemStatus{
			Index:       i,
			Name:        g.Name,
			Description: g.Description,
			Count:       g.Count,
			Price:       g.Price,
			Affordable:  balance.GreaterOrEqual(g.Price),
		})
	}
	for i, m := range st.Multipliers() {
		out.Multipliers = append(out.Multipliers, ItemStatus{
			Index:       i,
			Name:        m.Name,
			Description: m.Description,
			Count:       m.Count,
			Price:       m.Price,
			Affordable:  balance.GreaterOrEqual(m.Price),
		})
	}
	return out
}

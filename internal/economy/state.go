package economy

import (
	"cookieempire/internal/achievement"
	"cookieempire/internal/catalog"
	"cookieempire/internal/currency"

	"github.com/google/uuid"
)

var (
	DefaultBaseClickYield = currency.FromInt64(1)
	DefaultFloorBonus     = currency.FromInt64(2000)
)

type Options struct {
	// BaseClickYield is the manual-action yield before any multiplier is
	// bought.
	BaseClickYield currency.Currency
	// FloorBonus is the minimum reward for collecting a special bonus.
	FloorBonus currency.Currency
}

func (o Options) withDefaults() Options {
	if o.BaseClickYield.IsZero() {
		o.BaseClickYield = DefaultBaseClickYield
	}
	if o.FloorBonus.IsZero() {
		o.FloorBonus = DefaultFloorBonus
	}
	return o
}

// State is the economy ledger for one game. It has a single owner; nothing
// in it is safe for concurrent use. Use Clone to hand a consistent copy to
// another goroutine.
type State struct {
	opts   Options
	gameID string

	balance        currency.Currency
	runEarned      currency.Currency
	lifetimeEarned currency.Currency
	clickYield     currency.Currency

	manualActions  uint64
	specialBonuses uint64

	prestigeLevel    uint64
	prestigeCurrency currency.Currency

	productionRate float64
	// carry holds the fractional cookies produced by Tick but not yet
	// credited. Always in [0, 1).
	carry float64

	generators   []Generator
	multipliers  []Multiplier
	achievements *achievement.Registry
}

// New returns a fresh game: zero balance, every catalog item at count 0.
func New(cat *catalog.Catalog, opts Options) *State {
	opts = opts.withDefaults()
	s := &State{
		opts:         opts,
		gameID:       uuid.NewString(),
		clickYield:   opts.BaseClickYield,
		generators:   make([]Generator, len(cat.Generators)),
		multipliers:  make([]Multiplier, len(cat.Multipliers)),
		achievements: achievement.NewRegistry(cat.Achievements),
	}
	for i, def := range cat.Generators {
		s.generators[i] = newGenerator(def)
	}
	for i, def := range cat.Multipliers {
		s.multipliers[i] = newMultiplier(def)
	}
	return s
}

func (s *State) GameID() string                      { return s.gameID }
func (s *State) Balance() currency.Currency          { return s.balance }
func (s *State) RunEarned() currency.Currency        { return s.runEarned }
func (s *State) LifetimeEarned() currency.Currency   { return s.lifetimeEarned }
func (s *State) ClickYield() currency.Currency       { return s.clickYield }
func (s *State) ManualActions() uint64               { return s.manualActions }
func (s *State) SpecialBonuses() uint64              { return s.specialBonuses }
func (s *State) PrestigeLevel() uint64               { return s.prestigeLevel }
func (s *State) PrestigeCurrency() currency.Currency { return s.prestigeCurrency }
func (s *State) ProductionRate() float64             { return s.productionRate }

func (s *State) Generators() []Generator {
	out := make([]Generator, len(s.generators))
	copy(out, s.generators)
	return out
}

func (s *State) Multipliers() []Multiplier {
	out := make([]Multiplier, len(s.multipliers))
	copy(out, s.multipliers)
	return out
}

func (s *State) Generator(i int) (Generator, bool) {
	if i < 0 || i >= len(s.generators) {
		return Generator{}, false
	}
	return s.generators[i], true
}

func (s *State) Multiplier(i int) (Multiplier, bool) {
	if i < 0 || i >= len(s.multipliers) {
		return Multiplier{}, false
	}
	return s.multipliers[i], true
}

func (s *State) Achievements() []achievement.Entry { return s.achievements.Entries() }

func (s *State) AchievementDefinitions() []achievement.Definition {
	return s.achievements.Definitions()
}

func (s *State) AchievementsUnlocked() int { return s.achievements.UnlockedCount() }

func (s *State) AchievementsTotal() int { return s.achievements.Len() }

// EvaluateAchievements unlocks whatever the current state (plus the given
// combo level, which lives outside the ledger) now satisfies.
func (s *State) EvaluateAchievements(comboLevel uint64) []achievement.Unlocked {
	counts := make([]uint64, len(s.generators))
	for i, g := range s.generators {
		counts[i] = g.Count
	}
	return s.achievements.Evaluate(achievement.Progress{
		LifetimeEarned:  s.lifetimeEarned,
		ProductionRate:  s.productionRate,
		ManualActions:   s.manualActions,
		SpecialBonuses:  s.specialBonuses,
		PrestigeLevel:   s.prestigeLevel,
		ComboLevel:      comboLevel,
		GeneratorCounts: counts,
	})
}

// Clone returns a deep copy that shares nothing mutable with s.
func (s *State) Clone() *State {
	c := *s
	c.generators = s.Generators()
	c.multipliers = s.Multipliers()
	c.achievements = s.achievements.Clone()
	return &c
}

func (s *State) credit(amount currency.Currency) {
	s.balance = s.balance.Add(amount)
	s.runEarned = s.runEarned.Add(amount)
	s.lifetimeEarned = s.lifetimeEarned.Add(amount)
}

// recomputeProduction derives the production rate from generator counts and
// the prestige level. It is the only writer of productionRate.
func (s *State) recomputeProduction() {
	mult := ProductionMultiplier(s.prestigeLevel)
	rate := 0.0
	for _, g := range s.generators {
		rate += g.Yield * float64(g.Count) * mult
	}
	s.productionRate = rate
}

func (s *State) recomputeClickYield() {
	y := s.opts.BaseClickYield
	for _, m := range s.multipliers {
		y = y.Add(m.Bonus.Mul(m.Count))
	}
	s.clickYield = y
}

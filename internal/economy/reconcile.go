package economy

import (
	"cookieempire/internal/catalog"

	"github.com/google/uuid"
)

// LoadReport describes what reconciliation could not carry over and what the
// current catalog added.
type LoadReport struct {
	Fresh bool `json:"fresh"`

	DroppedGenerators   []string `json:"dropped_generators,omitempty"`
	DroppedMultipliers  []string `json:"dropped_multipliers,omitempty"`
	DroppedAchievements []string `json:"dropped_achievements,omitempty"`

	NewGenerators   int `json:"new_generators"`
	NewMultipliers  int `json:"new_multipliers"`
	NewAchievements int `json:"new_achievements"`
}

func (r LoadReport) Dropped() int {
	return len(r.DroppedGenerators) + len(r.DroppedMultipliers) + len(r.DroppedAchievements)
}

// Reconcile rebuilds a State from snap against the current catalog. Counts
// and unlocked flags are matched by name; unknown names are dropped and
// catalog entries missing from the snapshot start at zero. Prices,
// production rate and click yield are always recomputed.
func Reconcile(cat *catalog.Catalog, snap Snapshot, opts Options) (*State, LoadReport) {
	s := New(cat, opts)
	var rep LoadReport

	if snap.GameID != "" {
		s.gameID = snap.GameID
	} else {
		s.gameID = uuid.NewString()
	}
	s.balance = snap.Balance
	s.runEarned = snap.RunEarned
	s.lifetimeEarned = snap.LifetimeEarned
	if s.lifetimeEarned.LessThan(s.runEarned) {
		s.lifetimeEarned = s.runEarned
	}
	s.manualActions = snap.ManualActions
	s.specialBonuses = snap.SpecialBonuses
	s.prestigeLevel = snap.PrestigeLevel
	s.prestigeCurrency = snap.PrestigeCurrency

	genIndex := make(map[string]int, len(s.generators))
	for i, g := range s.generators {
		genIndex[g.Name] = i
	}
	seen := map[int]bool{}
	for _, ic := range snap.Generators {
		i, ok := genIndex[ic.Name]
		if !ok {
			rep.DroppedGenerators = append(rep.DroppedGenerators, ic.Name)
			continue
		}
		s.generators[i].Count = ic.Count
		s.generators[i].reprice()
		seen[i] = true
	}
	rep.NewGenerators = len(s.generators) - len(seen)

	multIndex := make(map[string]int, len(s.multipliers))
	for i, m := range s.multipliers {
		multIndex[m.Name] = i
	}
	seen = map[int]bool{}
	for _, ic := range snap.Multipliers {
		i, ok := multIndex[ic.Name]
		if !ok {
			rep.DroppedMultipliers = append(rep.DroppedMultipliers, ic.Name)
			continue
		}
		s.multipliers[i].Count = ic.Count
		s.multipliers[i].reprice()
		seen[i] = true
	}
	rep.NewMultipliers = len(s.multipliers) - len(seen)

	current := map[string]bool{}
	for _, def := range s.achievements.Definitions() {
		current[def.Name] = true
	}
	var unlocked []string
	known := map[string]bool{}
	for _, e := range snap.Achievements {
		known[e.Name] = true
		if !current[e.Name] {
			rep.DroppedAchievements = append(rep.DroppedAchievements, e.Name)
			continue
		}
		if e.Unlocked {
			unlocked = append(unlocked, e.Name)
		}
	}
	s.achievements.Restore(unlocked)
	for name := range current {
		if !known[name] {
			rep.NewAchievements++
		}
	}

	s.recomputeProduction()
	s.recomputeClickYield()
	return s, rep
}

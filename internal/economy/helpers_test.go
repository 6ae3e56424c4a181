package economy

import (
	"fmt"
	"math"
	"testing"
	"time"

	"cookieempire/internal/achievement"
	"cookieempire/internal/catalog"
	"cookieempire/internal/currency"

	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `
version: test
generators:
  - {name: Cursor, base_cost: 15, yield: 0.1}
  - {name: Grandma, base_cost: 100, yield: 1}
  - {name: Farm, base_cost: 1100, yield: 8, tier: 10}
multipliers:
  - {name: Reinforced Click, base_cost: 100, bonus: 1}
  - {name: Golden Fingers, base_cost: 500, bonus: 5}
achievements:
  - {name: First Click, description: Click once, requirement: {kind: manual_actions, count: 1}}
  - {name: Grandma's Pet, description: Own a grandma, requirement: {kind: generator_count, generator: 1, count: 1}}
  - {name: Thousandaire, description: Earn 1000 cookies, requirement: {kind: lifetime_currency, amount: 1000}}
  - {name: Reborn, description: Prestige once, requirement: {kind: prestige_level, count: 1}}
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalogYAML))
	require.NoError(t, err)
	return c
}

// stateWith returns a reconciled state holding balance, as if loaded from a
// save.
func stateWith(t *testing.T, balance int64) *State {
	t.Helper()
	b := currency.FromInt64(balance)
	s, _ := Reconcile(testCatalog(t), Snapshot{Balance: b, RunEarned: b, LifetimeEarned: b}, Options{})
	return s
}

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func nan() float64 { return math.NaN() }
func inf() float64 { return math.Inf(1) }

func achievementEntry(name string, unlocked bool) achievement.Entry {
	return achievement.Entry{Name: name, Unlocked: unlocked}
}

// itemSummary renders name:count@price for every item, for comparisons that
// should not depend on how a price was computed.
func itemSummary(s *State) []string {
	var out []string
	for _, g := range s.Generators() {
		out = append(out, fmt.Sprintf("%s:%d@%s", g.Name, g.Count, g.Price))
	}
	for _, m := range s.Multipliers() {
		out = append(out, fmt.Sprintf("%s:%d@%s", m.Name, m.Count, m.Price))
	}
	return out
}

package economy

import "cookieempire/internal/currency"

// Rank is a milestone title earned by lifetime cookies.
type Rank struct {
	Title     string            `json:"title"`
	Threshold currency.Currency `json:"threshold"`
}

var ranks = []Rank{
	{"Beginner", currency.Zero},
	{"Sugar Novice", currency.MustParse("1e3")},
	{"Apprentice Baker", currency.MustParse("1e4")},
	{"Seasoned Pastry Cook", currency.MustParse("1e5")},
	{"Master Baker", currency.MustParse("1e6")},
	{"Pastry Expert", currency.MustParse("1e7")},
	{"Lord of the Oven", currency.MustParse("1e8")},
	{"Cookie Baron", currency.MustParse("1e9")},
	{"Cookie Marquess", currency.MustParse("1e10")},
	{"Duke of Sugar", currency.MustParse("1e11")},
	{"Cookie Monarch", currency.MustParse("1e12")},
	{"High Monarch of Cookies", currency.MustParse("1e13")},
	{"Absolute Master of the Oven", currency.MustParse("1e14")},
	{"Cookie Legend", currency.MustParse("1e15")},
	{"Sovereign of Sugared Dimensions", currency.MustParse("1e16")},
	{"Cosmic Sugar Regent", currency.MustParse("1e17")},
	{"Cookie Emperor", currency.MustParse("1e18")},
	{"Architect of the Sugar Multiverse", currency.MustParse("1e19")},
	{"Supreme Entity of the Oven", currency.MustParse("1e20")},
	{"Cookie Deity", currency.MustParse("1e21")},
}

// Ranks returns the ladder, lowest first.
func Ranks() []Rank {
	out := make([]Rank, len(ranks))
	copy(out, ranks)
	return out
}

// RankFor returns the highest rank whose threshold lifetime has reached.
func RankFor(lifetime currency.Currency) Rank {
	r := ranks[0]
	for _, next := range ranks[1:] {
		if lifetime.LessThan(next.Threshold) {
			break
		}
		r = next
	}
	return r
}

// NextRank returns the rank after the one lifetime holds. ok is false at the
// top of the ladder.
func NextRank(lifetime currency.Currency) (Rank, bool) {
	for _, r := range ranks {
		if lifetime.LessThan(r.Threshold) {
			return r, true
		}
	}
	return Rank{}, false
}

func (s *State) Rank() Rank { return RankFor(s.lifetimeEarned) }

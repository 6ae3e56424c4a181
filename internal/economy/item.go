package economy

import (
	"cookieempire/internal/catalog"
	"cookieempire/internal/currency"
)

// Generator is a catalog generator plus the owned count and cached price.
type Generator struct {
	catalog.Generator
	Count uint64            `json:"count"`
	Price currency.Currency `json:"price"`
}

func newGenerator(def catalog.Generator) Generator {
	g := Generator{Generator: def}
	g.reprice()
	return g
}

func (g *Generator) reprice() {
	g.Price = GeneratorPrice(g.BaseCost, g.Count, g.Tier)
}

// Multiplier is a catalog multiplier plus the owned count and cached price.
type Multiplier struct {
	catalog.Multiplier
	Count uint64            `json:"count"`
	Price currency.Currency `json:"price"`
}

func newMultiplier(def catalog.Multiplier) Multiplier {
	m := Multiplier{Multiplier: def}
	m.reprice()
	return m
}

func (m *Multiplier) reprice() {
	m.Price = MultiplierPrice(m.BaseCost, m.Count)
}

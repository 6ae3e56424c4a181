package config

import "cookieempire/internal/currency"

const (
	DifficultyNormal = "normal"
	DifficultyCasual = "casual"
	DifficultyHard   = "hard"
)

var presets = map[string]func(*Config){
	DifficultyNormal: func(*Config) {},
	DifficultyCasual: casual,
	DifficultyHard:   hard,
}

// casual makes special bonuses frequent and generous and keeps the combo
// window forgiving.
func casual(c *Config) {
	c.Combo.WindowSeconds = 5
	c.Economy.FloorBonus = currency.FromInt64(5000)
	c.Bonus.MinSpawnSeconds = 20
	c.Bonus.MaxSpawnSeconds = 180
	c.Bonus.LifetimeSeconds = 15
	c.Bonus.MaxActive = 3
}

// hard shortens every window and raises the combo step.
func hard(c *Config) {
	c.Combo.WindowSeconds = 2
	c.Combo.ActionsPerStep = 15
	c.Economy.FloorBonus = currency.FromInt64(1000)
	c.Bonus.MinSpawnSeconds = 60
	c.Bonus.MaxSpawnSeconds = 600
	c.Bonus.LifetimeSeconds = 7
	c.Bonus.MaxActive = 1
}

// ApplyDifficulty overwrites the tuned fields with the named preset. Unknown
// names are left for Validate to reject.
func (c *Config) ApplyDifficulty(name string) {
	preset, ok := presets[name]
	c.Difficulty = name
	if ok {
		preset(c)
	}
}

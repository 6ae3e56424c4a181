package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"cookieempire/internal/bonus"
	"cookieempire/internal/catalog"
	"cookieempire/internal/combo"
	"cookieempire/internal/config"
	"cookieempire/internal/economy"
	"cookieempire/internal/events"
)

type Options struct {
	Catalog *catalog.Catalog
	Repo    economy.Repository
	Clock   Clock
	Logger  *log.Logger

	Economy        economy.Options
	ComboWindow    time.Duration
	ActionsPerStep uint64
	Bonus          bonus.Options

	// Rand drives bonus spawns. When nil, Seeded/Seed decide how one is
	// built once the game id is known.
	Rand   *rand.Rand
	Seeded bool
	Seed   int64

	// AutosaveInterval <= 0 disables autosave.
	AutosaveInterval time.Duration
	FeedCapacity     int
}

func (o *Options) applyDefaults() {
	if o.Catalog == nil {
		o.Catalog = catalog.Default()
	}
	if o.Repo == nil {
		o.Repo = economy.NewMemoryRepo()
	}
	if o.Clock == nil {
		o.Clock = RealClock{}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.ComboWindow <= 0 {
		o.ComboWindow = combo.DefaultWindow
	}
	if o.ActionsPerStep == 0 {
		o.ActionsPerStep = combo.DefaultActionsPerStep
	}
	if o.FeedCapacity <= 0 {
		o.FeedCapacity = events.DefaultCapacity
	}
}

// OptionsFromConfig builds session options from cfg: the catalog override
// if one is named, a file repository in the save directory, and the tuning
// sections.
func OptionsFromConfig(cfg *config.Config, logger *log.Logger) (Options, error) {
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		c, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return Options{}, fmt.Errorf("load catalog: %w", err)
		}
		cat = c
	}
	repo, err := economy.NewFileRepo(cfg.Save.Dir, cfg.Save.File)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Catalog: cat,
		Repo:    repo,
		Logger:  logger,
		Economy: economy.Options{
			BaseClickYield: cfg.Economy.BaseClickYield,
			FloorBonus:     cfg.Economy.FloorBonus,
		},
		ComboWindow:    time.Duration(cfg.Combo.WindowSeconds * float64(time.Second)),
		ActionsPerStep: cfg.Combo.ActionsPerStep,
		Bonus: bonus.Options{
			MinSpawn:      time.Duration(cfg.Bonus.MinSpawnSeconds) * time.Second,
			MaxSpawn:      time.Duration(cfg.Bonus.MaxSpawnSeconds) * time.Second,
			Lifetime:      time.Duration(cfg.Bonus.LifetimeSeconds) * time.Second,
			MinMultiplier: cfg.Bonus.MinMultiplier,
			MaxMultiplier: cfg.Bonus.MaxMultiplier,
			MaxActive:     cfg.Bonus.MaxActive,
		},
		Seeded:           cfg.SeededRNG.Enabled,
		Seed:             cfg.SeededRNG.Seed,
		AutosaveInterval: time.Duration(cfg.Save.AutosaveSeconds) * time.Second,
	}, nil
}

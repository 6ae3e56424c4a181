package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"cookieempire/internal/achievement"
	"cookieempire/internal/config"
	"cookieempire/internal/currency"
	"cookieempire/internal/events"
	"cookieempire/internal/game"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cmds := map[string]func([]string) error{
		"status":         cmdStatus,
		"click":          cmdClick,
		"buy-generator":  cmdBuyGenerator,
		"buy-multiplier": cmdBuyMultiplier,
		"idle":           cmdIdle,
		"bonus":          cmdBonus,
		"prestige":       cmdPrestige,
		"achievements":   cmdAchievements,
		"catalog":        cmdCatalog,
	}
	run, ok := cmds[os.Args[1]]
	if !ok {
		printUsage()
		os.Exit(2)
	}
	if err := run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

type common struct {
	configPath *string
	verbose    *bool
	asJSON     *bool
}

func commonFlags(fs *flag.FlagSet) common {
	return common{
		configPath: fs.String("config", "cookieempire.yml", "config file"),
		verbose:    fs.Bool("v", false, "log JSON lines to stderr"),
		asJSON:     fs.Bool("json", false, "print JSON"),
	}
}

// withSession opens the saved game, runs fn, prints the notifications fn
// produced and saves on the way out.
func withSession(c common, fn func(ctx context.Context, s *game.Session) error) error {
	cfg, err := config.LoadOrDefault(*c.configPath)
	if err != nil {
		return err
	}
	cfg = config.FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if *c.verbose {
		logger = log.New(os.Stderr, "", 0)
	}
	opts, err := game.OptionsFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := game.Open(ctx, opts)
	if err != nil {
		return err
	}
	runErr := fn(ctx, s)
	if !*c.asJSON {
		printEvents(s.DrainEvents())
	}
	if err := s.Close(context.Background()); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func cmdStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	c := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withSession(c, func(ctx context.Context, s *game.Session) error {
		st := s.Status()
		if *c.asJSON {
			return printJSON(st)
		}
		fmt.Printf("%s cookies (%s/s, %s per click)\n", st.Balance.Short(), formatRate(st.ProductionRate), st.ClickYield.Short())
		fmt.Printf("lifetime %s, this run %s\n", st.LifetimeEarned.Short(), st.RunEarned.Short())
		fmt.Printf("rank: %s", st.Rank.Title)
		if st.NextRank != nil {
			fmt.Printf(" (next: %s at %s)", st.NextRank.Title, st.NextRank.Threshold.Short())
		}
		fmt.Println()
		fmt.Printf("clicks %d, special bonuses %d, achievements %d/%d\n",
			st.ManualActions, st.SpecialBonuses, st.AchievementsUnlocked, st.AchievementsTotal)
		if st.CanPrestige {
			fmt.Printf("prestige available: level %d -> %d\n", st.PrestigeLevel, st.PrestigeLevel+1)
		} else {
			fmt.Printf("prestige level %d (+%.0f%% production), %.1f%% toward %s\n",
				st.PrestigeLevel, st.PrestigeBonusPercent, st.PrestigeProgress, st.PrestigeRequirement.Short())
		}
		return nil
	})
}

func cmdClick(args []string) error {
	fs := flag.NewFlagSet("click", flag.ContinueOnError)
	c := commonFlags(fs)
	n := fs.Int("n", 1, "number of clicks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withSession(c, func(ctx context.Context, s *game.Session) error {
		total := currency.Zero
		var last game.ActionResult
		for i := 0; i < *n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			last = s.ManualAction()
			total = total.Add(last.Earned)
		}
		if *c.asJSON {
			return printJSON(map[string]any{"earned": total, "combo_level": last.ComboLevel})
		}
		fmt.Printf("+%s cookies (combo level %d)\n", total.Short(), last.ComboLevel)
		return nil
	})
}

func cmdBuyGenerator(args []string) error {
	return buy("buy-generator", args, (*game.Session).PurchaseGenerator)
}

func cmdBuyMultiplier(args []string) error {
	return buy("buy-multiplier", args, (*game.Session).PurchaseMultiplier)
}

func buy(name string, args []string, purchase func(*game.Session, int) ([]achievement.Unlocked, error)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c := commonFlags(fs)
	index := fs.Int("i", 0, "item index (see catalog)")
	n := fs.Int("n", 1, "units to buy")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withSession(c, func(ctx context.Context, s *game.Session) error {
		bought := 0
		for ; bought < *n; bought++ {
			if _, err := purchase(s, *index); err != nil {
				if bought > 0 {
					fmt.Printf("bought %d before stopping\n", bought)
				}
				return err
			}
		}
		fmt.Printf("bought %d, balance %s\n", bought, s.Status().Balance.Short())
		return nil
	})
}

func cmdIdle(args []string) error {
	fs := flag.NewFlagSet("idle", flag.ContinueOnError)
	c := commonFlags(fs)
	seconds := fs.Int("seconds", 60, "simulated seconds")
	collect := fs.Bool("collect", false, "collect special bonuses as they appear")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withSession(c, func(ctx context.Context, s *game.Session) error {
		total := currency.Zero
		for i := 0; i < *seconds; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := s.Tick(time.Second)
			total = total.Add(res.Earned)
			if !*collect {
				continue
			}
			for range res.Spawned {
				b, err := s.CollectSpecialBonus()
				if err != nil {
					break
				}
				total = total.Add(b.Earned)
			}
		}
		fmt.Printf("+%s cookies over %ds\n", total.Short(), *seconds)
		return nil
	})
}

func cmdBonus(args []string) error {
	fs := flag.NewFlagSet("bonus", flag.ContinueOnError)
	c := commonFlags(fs)
	maxWait := fs.Int("max-wait", 420, "simulated seconds to wait for a bonus")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withSession(c, func(ctx context.Context, s *game.Session) error {
		for i := 0; i <= *maxWait; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.CollectSpecialBonus()
			if err == nil {
				fmt.Printf("x%d bonus after %ds: +%s cookies\n", res.Bonus.Multiplier, i, res.Earned.Short())
				return nil
			}
			if !errors.Is(err, game.ErrNoBonusAvailable) {
				return err
			}
			s.Tick(time.Second)
		}
		return game.ErrNoBonusAvailable
	})
}

func cmdPrestige(args []string) error {
	fs := flag.NewFlagSet("prestige", flag.ContinueOnError)
	c := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withSession(c, func(ctx context.Context, s *game.Session) error {
		if _, err := s.Prestige(); err != nil {
			return err
		}
		st := s.Status()
		fmt.Printf("prestige level %d, +%.0f%% production, %s prestige points\n",
			st.PrestigeLevel, st.PrestigeBonusPercent, st.PrestigeCurrency.Short())
		return nil
	})
}

func cmdAchievements(args []string) error {
	fs := flag.NewFlagSet("achievements", flag.ContinueOnError)
	c := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withSession(c, func(ctx context.Context, s *game.Session) error {
		st := s.State()
		defs := st.AchievementDefinitions()
		entries := st.Achievements()
		if *c.asJSON {
			return printJSON(entries)
		}
		for i, def := range defs {
			mark := " "
			if entries[i].Unlocked {
				mark = "x"
			}
			fmt.Printf("[%s] %-32s %s\n", mark, def.Name, def.Description)
		}
		fmt.Printf("%d/%d unlocked\n", st.AchievementsUnlocked(), st.AchievementsTotal())
		return nil
	})
}

func cmdCatalog(args []string) error {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	c := commonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return withSession(c, func(ctx context.Context, s *game.Session) error {
		st := s.Status()
		if *c.asJSON {
			return printJSON(map[string]any{"generators": st.Generators, "multipliers": st.Multipliers})
		}
		fmt.Println("generators:")
		for _, it := range st.Generators {
			fmt.Printf("  %2d %-28s x%-5d %10s  %s\n", it.Index, it.Name, it.Count, it.Price.Short(), it.Description)
		}
		fmt.Println("multipliers:")
		for _, it := range st.Multipliers {
			fmt.Printf("  %2d %-28s x%-5d %10s  %s\n", it.Index, it.Name, it.Count, it.Price.Short(), it.Description)
		}
		return nil
	})
}

func printEvents(evs []events.Event) {
	for _, ev := range evs {
		switch ev.Type {
		case events.AchievementUnlocked:
			fmt.Printf("* achievement unlocked: %v (%v)\n", ev.Metadata["name"], ev.Metadata["description"])
		case events.RankReached:
			fmt.Printf("* new rank: %v\n", ev.Metadata["title"])
		case events.ComboStep:
			fmt.Printf("* combo level %v\n", ev.Metadata["level"])
		case events.SaveFailed:
			fmt.Printf("! save failed: %v\n", ev.Metadata["error"])
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatRate(r float64) string {
	if r < 1000 {
		return strconv.FormatFloat(r, 'f', 1, 64)
	}
	c, ok := currency.FromFloat(r)
	if !ok {
		return "inf"
	}
	return c.Short()
}

func printUsage() {
	fmt.Println("usage: cookieempire <command> [flags]")
	fmt.Println("  status                       balance, production, combo, prestige and rank")
	fmt.Println("  click -n 10                  manual actions")
	fmt.Println("  buy-generator -i 0 [-n 1]    buy a generator")
	fmt.Println("  buy-multiplier -i 0 [-n 1]   buy a click multiplier")
	fmt.Println("  idle -seconds 60 [-collect]  let production run")
	fmt.Println("  bonus [-max-wait 420]        wait for and collect a special bonus")
	fmt.Println("  prestige                     reset the run for a permanent bonus")
	fmt.Println("  achievements                 list achievements")
	fmt.Println("  catalog                      list items and prices")
	fmt.Println("common flags: -config cookieempire.yml -v -json")
}

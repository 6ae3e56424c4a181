package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cookieempire/internal/achievement"
	"cookieempire/internal/bonus"
	"cookieempire/internal/catalog"
	"cookieempire/internal/combo"
	"cookieempire/internal/currency"
	"cookieempire/internal/economy"
	"cookieempire/internal/events"
)

var ErrNoBonusAvailable = errors.New("no special bonus to collect")

const autosaveTimeout = 10 * time.Second

// Session owns one game: the economy ledger, the combo streak, the bonus
// spawner and the notification feed. Calls are serialized internally.
// Autosaves run off the caller's goroutine on a snapshot taken under the
// lock; at most one is queued or running at a time.
type Session struct {
	mu       sync.Mutex
	opts     Options
	state    *economy.State
	combo    *combo.State
	spawner  *bonus.Spawner
	feed     *events.Feed
	rank     string
	lastSync time.Time
	// time ticked since the last save
	sinceSave time.Duration
	// snapSeq numbers snapshots in the order they were taken; guarded by mu
	snapSeq uint64

	saveMu sync.Mutex
	// seq of the newest snapshot written; guarded by saveMu
	persistedSeq uint64
	saving       atomic.Bool
	inflight     sync.WaitGroup
}

// pendingSave is a snapshot waiting to be written.
type pendingSave struct {
	seq  uint64
	snap economy.Snapshot
}

type ActionResult struct {
	Earned       currency.Currency      `json:"earned"`
	ComboLevel   uint64                 `json:"combo_level"`
	ComboStepped bool                   `json:"combo_stepped"`
	Unlocked     []achievement.Unlocked `json:"unlocked,omitempty"`
}

type BonusResult struct {
	Bonus    bonus.Bonus            `json:"bonus"`
	Earned   currency.Currency      `json:"earned"`
	Unlocked []achievement.Unlocked `json:"unlocked,omitempty"`
}

type TickResult struct {
	Earned    currency.Currency      `json:"earned"`
	Spawned   []bonus.Bonus          `json:"spawned,omitempty"`
	Expired   []bonus.Bonus          `json:"expired,omitempty"`
	ComboLost bool                   `json:"combo_lost"`
	Unlocked  []achievement.Unlocked `json:"unlocked,omitempty"`
	Autosaved bool                   `json:"autosaved"`
}

// Open loads the game stored in opts.Repo, or starts a fresh one. A missing
// or unreadable snapshot is not an error; the latter is logged.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts.applyDefaults()
	s := &Session{
		opts: opts,
		feed: events.NewFeed(opts.FeedCapacity),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.loadLocked(ctx); economy.IsContextDone(err) {
		return nil, err
	}
	return s, nil
}

// Load replaces the running game with the stored one, reconciled against
// the catalog. Like Open, an unreadable snapshot yields a fresh game; the
// read or parse error is returned for reporting only. If ctx ends first the
// running game is kept and ctx's error is returned.
func (s *Session) Load(ctx context.Context) (economy.LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Session) loadLocked(ctx context.Context) (economy.LoadReport, error) {
	st, rep, err := economy.LoadOrNew(ctx, s.opts.Repo, s.opts.Catalog, s.opts.Economy)
	if st == nil {
		logJSON(s.opts.Logger, "warn", "load_abandoned", map[string]any{
			"error":  err.Error(),
			"action": "keeping running game",
		})
		return rep, err
	}
	if err != nil {
		logJSON(s.opts.Logger, "warn", "snapshot_unreadable", map[string]any{
			"error":  err.Error(),
			"action": "starting fresh game",
		})
	}

	now := s.opts.Clock.Now()
	rng := s.opts.Rand
	if rng == nil {
		rng = bonus.NewRand(s.opts.Seeded, s.opts.Seed, st.GameID(), now)
	}
	s.state = st
	s.combo = combo.New(s.opts.ComboWindow, s.opts.ActionsPerStep)
	s.spawner = bonus.NewSpawner(s.opts.Bonus, rng)
	s.rank = st.Rank().Title
	s.lastSync = now
	s.sinceSave = 0

	logJSON(s.opts.Logger, "info", "game_loaded", map[string]any{
		"game_id":             st.GameID(),
		"fresh":               rep.Fresh,
		"dropped":             rep.Dropped(),
		"dropped_generators":  rep.DroppedGenerators,
		"dropped_multipliers": rep.DroppedMultipliers,
		"new_generators":      rep.NewGenerators,
		"new_multipliers":     rep.NewMultipliers,
		"new_achievements":    rep.NewAchievements,
	})

	// content added since the save may already be satisfied
	s.afterMutationLocked()
	return rep, err
}

// ManualAction performs one click. The combo multiplier in effect before
// the click applies to it; the click then counts toward the streak.
func (s *Session) ManualAction() ActionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	earned := s.state.ManualAction(s.combo.Multiplier())
	stepped := s.combo.Register()
	if stepped {
		s.record(events.ComboStep, events.Metadata{"level": s.combo.Level()})
	}
	return ActionResult{
		Earned:       earned,
		ComboLevel:   s.combo.Level(),
		ComboStepped: stepped,
		Unlocked:     s.afterMutationLocked(),
	}
}

func (s *Session) PurchaseGenerator(i int) ([]achievement.Unlocked, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.PurchaseGenerator(i); err != nil {
		return nil, err
	}
	return s.afterMutationLocked(), nil
}

func (s *Session) PurchaseMultiplier(i int) ([]achievement.Unlocked, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.state.PurchaseMultiplier(i); err != nil {
		return nil, err
	}
	return s.afterMutationLocked(), nil
}

// CollectSpecialBonus collects the oldest live special bonus.
func (s *Session) CollectSpecialBonus() (BonusResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.spawner.Collect()
	if !ok {
		return BonusResult{}, ErrNoBonusAvailable
	}
	earned := s.state.CollectSpecialBonus(b.Multiplier)
	s.record(events.BonusCollected, events.Metadata{
		"bonus_id":   b.ID,
		"multiplier": b.Multiplier,
		"earned":     earned.String(),
	})
	return BonusResult{Bonus: b, Earned: earned, Unlocked: s.afterMutationLocked()}, nil
}

func (s *Session) Prestige() ([]achievement.Unlocked, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.Prestige(); err != nil {
		return nil, err
	}
	level := s.state.PrestigeLevel()
	s.record(events.Prestige, events.Metadata{
		"level":  level,
		"points": s.state.PrestigeCurrency().String(),
	})
	logJSON(s.opts.Logger, "info", "prestige", map[string]any{
		"game_id":       s.state.GameID(),
		"level":         level,
		"points":        s.state.PrestigeCurrency().String(),
		"bonus_percent": s.state.PrestigeBonusPercent(),
	})
	return s.afterMutationLocked(), nil
}

// Tick advances the game by dt: combo decay, passive production, bonus
// spawn and expiry, and the autosave timer.
func (s *Session) Tick(dt time.Duration) TickResult {
	if dt <= 0 {
		return TickResult{Earned: currency.Zero}
	}

	s.mu.Lock()
	res := s.tickLocked(dt)
	pending, due := s.autosaveDueLocked(dt)
	if due {
		s.inflight.Add(1)
	}
	s.mu.Unlock()

	if due {
		res.Autosaved = true
		go s.autosave(pending)
	}
	return res
}

// Sync ticks by the wall time elapsed since the previous Sync (or since the
// game was loaded).
func (s *Session) Sync() TickResult {
	s.mu.Lock()
	now := s.opts.Clock.Now()
	dt := now.Sub(s.lastSync)
	s.lastSync = now
	s.mu.Unlock()
	return s.Tick(dt)
}

func (s *Session) tickLocked(dt time.Duration) TickResult {
	var res TickResult
	if s.combo.Advance(dt) {
		res.ComboLost = true
		s.record(events.ComboLost, nil)
	}
	res.Earned = s.state.Tick(dt.Seconds())

	res.Spawned, res.Expired = s.spawner.Advance(dt)
	for _, b := range res.Spawned {
		s.record(events.BonusSpawned, events.Metadata{
			"bonus_id":   b.ID,
			"multiplier": b.Multiplier,
			"lifetime":   b.Remaining.String(),
		})
	}
	for _, b := range res.Expired {
		s.record(events.BonusExpired, events.Metadata{"bonus_id": b.ID})
	}

	res.Unlocked = s.afterMutationLocked()
	return res
}

func (s *Session) autosaveDueLocked(dt time.Duration) (pendingSave, bool) {
	if s.opts.AutosaveInterval <= 0 {
		return pendingSave{}, false
	}
	s.sinceSave += dt
	if s.sinceSave < s.opts.AutosaveInterval {
		return pendingSave{}, false
	}
	// a slow save still running means this interval is skipped, not queued
	if !s.saving.CompareAndSwap(false, true) {
		return pendingSave{}, false
	}
	s.sinceSave = 0
	return s.snapshotLocked(), true
}

func (s *Session) snapshotLocked() pendingSave {
	s.snapSeq++
	return pendingSave{seq: s.snapSeq, snap: s.state.Snapshot(s.opts.Clock.Now())}
}

func (s *Session) autosave(p pendingSave) {
	defer s.inflight.Done()
	defer s.saving.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
	defer cancel()
	_ = s.persist(ctx, p)
}

// Save writes the current game synchronously. A failure leaves the game
// untouched; the next save retries.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	p := s.snapshotLocked()
	s.sinceSave = 0
	s.mu.Unlock()
	return s.persist(ctx, p)
}

// persist writes p unless a newer snapshot has already been written.
func (s *Session) persist(ctx context.Context, p pendingSave) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	snap := p.snap
	if p.seq <= s.persistedSeq {
		logJSON(s.opts.Logger, "info", "stale_save_skipped", map[string]any{
			"game_id": snap.GameID,
			"seq":     p.seq,
			"newest":  s.persistedSeq,
		})
		return nil
	}

	start := time.Now()
	err := s.opts.Repo.Save(ctx, snap)
	if err != nil {
		if !errors.Is(err, economy.ErrPersistenceWrite) {
			err = fmt.Errorf("%w: %v", economy.ErrPersistenceWrite, err)
		}
		s.record(events.SaveFailed, events.Metadata{"error": err.Error()})
		logJSON(s.opts.Logger, "error", "save_failed", map[string]any{
			"game_id": snap.GameID,
			"error":   err.Error(),
		})
		return err
	}
	s.persistedSeq = p.seq
	logJSON(s.opts.Logger, "info", "game_saved", map[string]any{
		"game_id":     snap.GameID,
		"lifetime":    snap.LifetimeEarned.String(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// Flush waits for any running autosave.
func (s *Session) Flush() {
	s.inflight.Wait()
}

// Close waits for running autosaves and writes a final save.
func (s *Session) Close(ctx context.Context) error {
	s.Flush()
	return s.Save(ctx)
}

func (s *Session) DrainEvents() []events.Event {
	return s.feed.Drain()
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.opts.Catalog.Clone()
}

// State returns a copy of the ledger.
func (s *Session) State() *economy.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Session) afterMutationLocked() []achievement.Unlocked {
	unlocked := s.state.EvaluateAchievements(s.combo.Level())
	for _, u := range unlocked {
		s.record(events.AchievementUnlocked, events.Metadata{
			"name":        u.Name,
			"description": u.Description,
		})
	}
	if title := s.state.Rank().Title; title != s.rank {
		s.rank = title
		s.record(events.RankReached, events.Metadata{"title": title})
	}
	return unlocked
}

func (s *Session) record(typ events.Type, md events.Metadata) {
	s.feed.Record(typ, s.opts.Clock.Now(), md)
}

package bonus

import (
	"hash/fnv"
	"math/rand"
	"time"
)

const (
	DefaultMinSpawn      = 30 * time.Second
	DefaultMaxSpawn      = 420 * time.Second
	DefaultLifetime      = 10 * time.Second
	DefaultMinMultiplier = 7
	DefaultMaxMultiplier = 20
	DefaultMaxActive     = 2
)

// Options configures spawn timing and the multiplier roll. Zero fields take
// the defaults above.
type Options struct {
	MinSpawn      time.Duration
	MaxSpawn      time.Duration
	Lifetime      time.Duration
	MinMultiplier uint64
	MaxMultiplier uint64
	MaxActive     int
}

func (o Options) withDefaults() Options {
	if o.MinSpawn <= 0 {
		o.MinSpawn = DefaultMinSpawn
	}
	if o.MaxSpawn < o.MinSpawn {
		o.MaxSpawn = o.MinSpawn
	}
	if o.Lifetime <= 0 {
		o.Lifetime = DefaultLifetime
	}
	if o.MinMultiplier == 0 {
		o.MinMultiplier = DefaultMinMultiplier
	}
	if o.MaxMultiplier < o.MinMultiplier {
		o.MaxMultiplier = o.MinMultiplier
	}
	if o.MaxActive <= 0 {
		o.MaxActive = DefaultMaxActive
	}
	return o
}

// Bonus is a live special bonus waiting to be collected.
type Bonus struct {
	ID         int           `json:"id"`
	Multiplier uint64        `json:"multiplier"`
	Remaining  time.Duration `json:"remaining"`
}

// Spawner drops bonuses after a random delay and expires the ones nobody
// collects. Not safe for concurrent use.
type Spawner struct {
	opts       Options
	rng        *rand.Rand
	untilSpawn time.Duration
	active     []Bonus
	nextID     int
}

func NewSpawner(opts Options, rng *rand.Rand) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Spawner{
		opts:   opts.withDefaults(),
		rng:    rng,
		nextID: 1,
	}
	s.untilSpawn = s.rollDelay()
	return s
}

// NewRand returns a deterministic source when seeded is true, otherwise one
// seeded from now. The game id is mixed into a fixed seed so two saves with
// the same config do not share a bonus sequence.
func NewRand(seeded bool, seed int64, gameID string, now time.Time) *rand.Rand {
	if !seeded {
		return rand.New(rand.NewSource(now.UnixNano()))
	}
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(gameID))
	return rand.New(rand.NewSource(seed ^ int64(hasher.Sum64())))
}

// Advance moves time forward by dt. Live bonuses age first, then any spawn
// timers that fire within dt are resolved in order. A spawn that would
// exceed MaxActive is skipped and the timer restarts.
func (s *Spawner) Advance(dt time.Duration) (spawned, expired []Bonus) {
	if dt <= 0 {
		return nil, nil
	}

	kept := s.active[:0]
	for _, b := range s.active {
		b.Remaining -= dt
		if b.Remaining <= 0 {
			b.Remaining = 0
			expired = append(expired, b)
			continue
		}
		kept = append(kept, b)
	}
	s.active = kept

	s.untilSpawn -= dt
	for s.untilSpawn <= 0 {
		// time already elapsed since this timer fired
		late := -s.untilSpawn
		if len(s.active) < s.opts.MaxActive && late < s.opts.Lifetime {
			b := Bonus{
				ID:         s.nextID,
				Multiplier: s.rollMultiplier(),
				Remaining:  s.opts.Lifetime - late,
			}
			s.nextID++
			s.active = append(s.active, b)
			spawned = append(spawned, b)
		}
		s.untilSpawn += s.rollDelay()
	}
	return spawned, expired
}

// Collect removes and returns the oldest live bonus.
func (s *Spawner) Collect() (Bonus, bool) {
	if len(s.active) == 0 {
		return Bonus{}, false
	}
	b := s.active[0]
	s.active = append(s.active[:0], s.active[1:]...)
	return b, true
}

func (s *Spawner) Active() []Bonus {
	out := make([]Bonus, len(s.active))
	copy(out, s.active)
	return out
}

func (s *Spawner) UntilNextSpawn() time.Duration { return s.untilSpawn }

func (s *Spawner) rollDelay() time.Duration {
	span := s.opts.MaxSpawn - s.opts.MinSpawn
	if span <= 0 {
		return s.opts.MinSpawn
	}
	return s.opts.MinSpawn + time.Duration(s.rng.Int63n(int64(span)))
}

func (s *Spawner) rollMultiplier() uint64 {
	span := s.opts.MaxMultiplier - s.opts.MinMultiplier
	return s.opts.MinMultiplier + uint64(s.rng.Int63n(int64(span)+1))
}

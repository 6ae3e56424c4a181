package bonus

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedOpts() Options {
	return Options{
		MinSpawn:      30 * time.Second,
		MaxSpawn:      30 * time.Second,
		Lifetime:      10 * time.Second,
		MinMultiplier: 9,
		MaxMultiplier: 9,
		MaxActive:     2,
	}
}

func TestSpawner_SpawnAndExpire(t *testing.T) {
	s := NewSpawner(fixedOpts(), rand.New(rand.NewSource(1)))

	spawned, expired := s.Advance(29 * time.Second)
	assert.Empty(t, spawned)
	assert.Empty(t, expired)

	spawned, _ = s.Advance(time.Second)
	require.Len(t, spawned, 1)
	assert.Equal(t, 1, spawned[0].ID)
	assert.Equal(t, uint64(9), spawned[0].Multiplier)
	assert.Equal(t, 10*time.Second, spawned[0].Remaining)

	_, expired = s.Advance(10 * time.Second)
	require.Len(t, expired, 1)
	assert.Equal(t, 1, expired[0].ID)
	assert.Empty(t, s.Active())
}

func TestSpawner_RespectsMaxActive(t *testing.T) {
	opts := fixedOpts()
	opts.Lifetime = 100 * time.Second
	s := NewSpawner(opts, nil)

	s.Advance(30 * time.Second)
	s.Advance(30 * time.Second)
	spawned, _ := s.Advance(30 * time.Second)
	assert.Empty(t, spawned)
	assert.Len(t, s.Active(), 2)
	assert.Equal(t, 30*time.Second, s.UntilNextSpawn())
}

func TestSpawner_CatchUpSkipsBonusesThatWouldAlreadyHaveExpired(t *testing.T) {
	opts := fixedOpts()
	opts.MaxActive = 5
	s := NewSpawner(opts, nil)

	spawned, expired := s.Advance(95 * time.Second)
	require.Len(t, spawned, 1)
	assert.Equal(t, 5*time.Second, spawned[0].Remaining)
	assert.Empty(t, expired)
	assert.Equal(t, 25*time.Second, s.UntilNextSpawn())
}

func TestSpawner_CollectTakesOldest(t *testing.T) {
	opts := fixedOpts()
	opts.Lifetime = 100 * time.Second
	s := NewSpawner(opts, nil)

	_, ok := s.Collect()
	assert.False(t, ok)

	s.Advance(30 * time.Second)
	s.Advance(30 * time.Second)

	b, ok := s.Collect()
	require.True(t, ok)
	assert.Equal(t, 1, b.ID)
	assert.Equal(t, 70*time.Second, b.Remaining)

	b, ok = s.Collect()
	require.True(t, ok)
	assert.Equal(t, 2, b.ID)
	assert.Empty(t, s.Active())
}

func TestSpawner_RollsWithinRange(t *testing.T) {
	s := NewSpawner(Options{MaxActive: 1000, Lifetime: time.Hour}, rand.New(rand.NewSource(7)))
	for i := 0; i < 200; i++ {
		d := s.UntilNextSpawn()
		assert.GreaterOrEqual(t, d, DefaultMinSpawn)
		assert.Less(t, d, DefaultMaxSpawn)
		spawned, _ := s.Advance(d)
		require.Len(t, spawned, 1)
		m := spawned[0].Multiplier
		assert.GreaterOrEqual(t, m, uint64(DefaultMinMultiplier))
		assert.LessOrEqual(t, m, uint64(DefaultMaxMultiplier))
	}
}

func TestSpawner_IgnoresNonPositiveDelta(t *testing.T) {
	s := NewSpawner(fixedOpts(), nil)
	before := s.UntilNextSpawn()
	s.Advance(0)
	s.Advance(-time.Second)
	assert.Equal(t, before, s.UntilNextSpawn())
}

func TestNewRand_SeededIsDeterministic(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	a := NewSpawner(Options{}, NewRand(true, 42, "game-a", now))
	b := NewSpawner(Options{}, NewRand(true, 42, "game-a", now.Add(time.Hour)))
	assert.Equal(t, a.UntilNextSpawn(), b.UntilNextSpawn())

	for i := 0; i < 5; i++ {
		sa, _ := a.Advance(a.UntilNextSpawn())
		sb, _ := b.Advance(b.UntilNextSpawn())
		assert.Equal(t, sa, sb)
	}
}

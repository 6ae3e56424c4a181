package economy

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	snap  Snapshot
	saved bool
	saves int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = cloneSnapshot(snap)
	r.saved = true
	r.saves++
	return nil
}

func (r *MemoryRepo) Load(ctx context.Context) (Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.saved {
		return Snapshot{}, false, nil
	}
	return cloneSnapshot(r.snap), true, nil
}

// Saves reports how many times Save has been called.
func (r *MemoryRepo) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

func cloneSnapshot(s Snapshot) Snapshot {
	if s.SavedAt != nil {
		at := *s.SavedAt
		s.SavedAt = &at
	}
	s.Generators = append([]ItemCount(nil), s.Generators...)
	s.Multipliers = append([]ItemCount(nil), s.Multipliers...)
	s.Achievements = append(s.Achievements[:0:0], s.Achievements...)
	return s
}

package economy

import (
	"context"
	"errors"

	"cookieempire/internal/catalog"
)

// Repository stores one snapshot. Load reports ok=false when nothing has
// been saved yet.
type Repository interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
}

// LoadOrNew reconciles the stored snapshot against cat. A missing snapshot
// yields a fresh game. An unreadable or corrupt snapshot also yields a fresh
// game, and the read/parse error is returned alongside it for logging.
//
// A context that ends before the snapshot is read is not a bad snapshot:
// the State is nil and the context's error is returned, so the caller keeps
// whatever game it already has.
func LoadOrNew(ctx context.Context, repo Repository, cat *catalog.Catalog, opts Options) (*State, LoadReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, LoadReport{}, err
	}
	snap, ok, err := repo.Load(ctx)
	if err != nil {
		if IsContextDone(err) {
			return nil, LoadReport{}, err
		}
		if errors.Is(err, ErrPersistenceRead) || errors.Is(err, ErrPersistenceParse) {
			return New(cat, opts), LoadReport{Fresh: true}, err
		}
		return New(cat, opts), LoadReport{Fresh: true}, errors.Join(ErrPersistenceRead, err)
	}
	if !ok {
		return New(cat, opts), LoadReport{Fresh: true}, nil
	}
	s, rep := Reconcile(cat, snap, opts)
	return s, rep, nil
}

// IsContextDone reports whether err comes from a cancelled or expired
// context.
func IsContextDone(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

package economy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const DefaultSaveFile = "cookie_save.json"

// FileRepo keeps the snapshot as indented JSON in a single file. Writes go
// to a temp file in the same directory and are renamed into place, so a
// failed save never truncates the previous one.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

func NewFileRepo(dataDir, file string) (*FileRepo, error) {
	if file == "" {
		file = DefaultSaveFile
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	return &FileRepo{path: filepath.Join(dataDir, file)}, nil
}

func (r *FileRepo) Path() string { return r.path }

func (r *FileRepo) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistenceWrite, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	return nil
}

func (r *FileRepo) Load(ctx context.Context) (Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
	}
	snap, err := DecodeSnapshot(b)
	if err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

// DecodeSnapshot parses a snapshot document. Missing fields keep their zero
// values.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrPersistenceParse, err)
	}
	if snap.Version == 0 {
		snap.Version = 1
	}
	return snap, nil
}

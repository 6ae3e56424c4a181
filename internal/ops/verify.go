package ops

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"cookieempire/internal/catalog"
	"cookieempire/internal/economy"
)

// Verification describes a snapshot file as the current catalog would load
// it.
type Verification struct {
	Path          string             `json:"path"`
	SHA256        string             `json:"sha256"`
	Version       int                `json:"version"`
	GameID        string             `json:"game_id"`
	SavedAt       *time.Time         `json:"saved_at,omitempty"`
	Balance       string             `json:"balance"`
	Lifetime      string             `json:"lifetime"`
	PrestigeLevel uint64             `json:"prestige_level"`
	Report        economy.LoadReport `json:"report"`
}

// VerifySnapshot parses the snapshot at path and reconciles it against cat
// without touching the file.
func VerifySnapshot(path string, cat *catalog.Catalog) (Verification, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Verification{}, fmt.Errorf("%w: %v", economy.ErrPersistenceRead, err)
	}
	snap, err := economy.DecodeSnapshot(b)
	if err != nil {
		return Verification{}, err
	}
	sum := sha256.Sum256(b)
	st, rep := economy.Reconcile(cat, snap, economy.Options{})
	return Verification{
		Path:          path,
		SHA256:        hex.EncodeToString(sum[:]),
		Version:       snap.Version,
		GameID:        snap.GameID,
		SavedAt:       snap.SavedAt,
		Balance:       st.Balance().String(),
		Lifetime:      st.LifetimeEarned().String(),
		PrestigeLevel: st.PrestigeLevel(),
		Report:        rep,
	}, nil
}

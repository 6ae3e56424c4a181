package events

import "time"

type Type string

const (
	AchievementUnlocked Type = "achievement_unlocked"
	BonusSpawned        Type = "bonus_spawned"
	BonusExpired        Type = "bonus_expired"
	BonusCollected      Type = "bonus_collected"
	ComboStep           Type = "combo_step"
	ComboLost           Type = "combo_lost"
	Prestige            Type = "prestige"
	RankReached         Type = "rank_reached"
	SaveFailed          Type = "save_failed"
)

type Event struct {
	ID        int       `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

type Metadata map[string]interface{}

package game

import "time"

// BattleRecord is the persisted row for one battle. The full battle state
// lives in a JSON column; the relational columns exist only for lookups
// and background scans, and are mirrored from the state on every save.
type BattleRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JoinCode   string `gorm:"uniqueIndex" json:"join_code"`
	OwnerEmail string `gorm:"index" json:"owner_email"`
	OwnerName  string `json:"owner_name"`

	Status string `json:"status"`
	Phase  string `json:"phase"`
	Winner string `json:"winner,omitempty"`

	// ActionDeadline is when the player's current planning window expires.
	ActionDeadline time.Time `json:"action_deadline,omitempty"`
	// StatsCounted guards against double-counting a finished battle.
	StatsCounted bool `json:"stats_counted"`

	State BattleState `gorm:"serializer:json" json:"state"`
}

// SyncColumns mirrors the queryable columns from the embedded state.
func (r *BattleRecord) SyncColumns() {
	r.Status = r.State.Status
	r.Phase = r.State.Phase
	r.Winner = r.State.Winner
}

// User aggregates lifetime stats for a signed-in player.
type User struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	PlayerUUID    string `gorm:"index" json:"player_uuid"`
	PlayerName    string `json:"player_name"`
	Email         string `gorm:"uniqueIndex" json:"email"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
}

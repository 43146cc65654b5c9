package storage

import (
	"time"

	"github.com/veldt-games/riposte/internal/game"
)

type Repository interface {
	CreateBattle(rec *game.BattleRecord) error
	GetBattleByID(id uint) (*game.BattleRecord, error)
	FindBattleByJoinCode(code string) (*game.BattleRecord, error)
	UpdateBattle(rec *game.BattleRecord) error
	ListBattlesByOwner(email string) ([]game.BattleRecord, error)
	// FindTimedOutBattles returns in-progress battles waiting on player
	// input (planning or a pending card choice) whose action deadline is at
	// or before the provided time. The caller decides how to resolve them.
	FindTimedOutBattles(now time.Time) ([]game.BattleRecord, error)

	UpsertUser(email, uuid, name string) error
	GetStatsByEmail(email string) (*game.User, error)
	SaveUser(u *game.User) error
	// UpdateStatsOnBattleEnd adds the finished battle to the owner's
	// lifetime stats. Callers must check StatsCounted first.
	UpdateStatsOnBattleEnd(rec *game.BattleRecord) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)
}

package storage

import (
	"strconv"
	"time"

	"github.com/veldt-games/riposte/internal/game"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
	// leaderboard reads collapse under singleflight since the query is
	// identical for every caller hitting the endpoint at once.
	sf singleflight.Group
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateBattle(rec *game.BattleRecord) error {
	rec.SyncColumns()
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	if err := r.db.Where("join_code = ?", code).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) UpdateBattle(rec *game.BattleRecord) error {
	rec.SyncColumns()
	return r.db.Save(rec).Error
}

func (r *sqliteRepository) ListBattlesByOwner(email string) ([]game.BattleRecord, error) {
	var recs []game.BattleRecord
	if err := r.db.Where("owner_email = ?", email).Order("updated_at desc").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) FindTimedOutBattles(now time.Time) ([]game.BattleRecord, error) {
	var recs []game.BattleRecord
	err := r.db.
		Where("status = ? AND phase IN ? AND action_deadline <= ?",
			game.StatusInProgress, []string{game.PhasePlanning, game.PhaseAwaitingChoice}, now).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
		} else {
			return err
		}
	}
	u.PlayerName = name
	u.PlayerUUID = uuid
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(rec *game.BattleRecord) error {
	if rec.OwnerEmail == "" {
		return nil
	}
	var u game.User
	if err := r.db.Where("email = ?", rec.OwnerEmail).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: rec.OwnerEmail, PlayerName: rec.OwnerName}
		} else {
			return err
		}
	}
	u.BattlesPlayed++
	if rec.State.Winner == string(game.SidePlayer) {
		u.Wins++
	} else {
		u.Losses++
	}
	return r.db.Save(&u).Error
}

// GetTopPlayers returns the top N players ordered by wins, then battles
// played.
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	v, err, _ := r.sf.Do("top_players:"+strconv.Itoa(limit), func() (interface{}, error) {
		var users []game.User
		if err := r.db.Model(&game.User{}).
			Order("wins DESC").
			Order("battles_played DESC").
			Limit(limit).
			Find(&users).Error; err != nil {
			return nil, err
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]game.User), nil
}

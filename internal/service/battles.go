package service

import (
	"errors"
	"time"

	"github.com/veldt-games/riposte/internal/ai"
	"github.com/veldt-games/riposte/internal/catalog"
	"github.com/veldt-games/riposte/internal/config"
	"github.com/veldt-games/riposte/internal/engine"
	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/rng"
)

// BattleRepo is the minimal repository interface the battle operations
// need. Using a small interface simplifies testing.
type BattleRepo interface {
	CreateBattle(rec *game.BattleRecord) error
	GetBattleByID(id uint) (*game.BattleRecord, error)
	FindBattleByJoinCode(code string) (*game.BattleRecord, error)
	UpdateBattle(rec *game.BattleRecord) error
	UpdateStatsOnBattleEnd(rec *game.BattleRecord) error
}

// Deps bundles the battle collaborators wired into the engine for every
// operation. Sink and Combo may be nil; the engine falls back to its
// defaults.
type Deps struct {
	Catalog *catalog.Catalog
	RNG     rng.RNG
	Planner *ai.Planner
	Sink    engine.PresentationSink
	Combo   engine.ComboEvaluator
}

var (
	ErrBattleNotFound    = errors.New("battle not found")
	ErrNotBattleOwner    = errors.New("battle belongs to another player")
	ErrBattleFinished    = errors.New("battle is not in progress")
	ErrActionsLocked     = errors.New("actions are locked; resolving current turn")
	ErrChoicePending     = errors.New("a card choice is pending; resolve it first")
	ErrNoChoicePending   = errors.New("no card choice is pending")
	ErrUnknownCard       = errors.New("unknown card")
	ErrCardNotAvailable  = errors.New("card not available to this deck")
	ErrBudgetExceeded    = errors.New("deck exceeds energy or speed budget")
	ErrMissingTokens     = errors.New("missing required tokens for card")
	ErrResolutionBusy    = errors.New("a resolution step is already in flight")
	ErrUnknownUnit       = errors.New("unknown enemy unit")
)

// NewBattleState seeds a fresh battle from the configured tunables. The
// composite enemy's aggregate hp is derived from its units, never stored
// independently.
func NewBattleState(tun config.BattleTunables, ownerName string) game.BattleState {
	player := game.Actor{
		Name:      ownerName,
		Side:      game.SidePlayer,
		HP:        tun.PlayerMaxHP,
		MaxHP:     tun.PlayerMaxHP,
		Energy:    tun.PlayerMaxEnergy,
		MaxEnergy: tun.PlayerMaxEnergy,
		Speed:     tun.PlayerMaxSpeed,
		MaxSpeed:  tun.PlayerMaxSpeed,
		EtherCap:  tun.PlayerEtherCap,
	}
	if player.Name == "" {
		player.Name = "Fencer"
	}

	units := make([]game.Unit, len(tun.EnemyUnits))
	copy(units, tun.EnemyUnits)
	enemy := game.Actor{
		Name:      tun.EnemyName,
		Side:      game.SideEnemy,
		Energy:    tun.EnemyMaxEnergy,
		MaxEnergy: tun.EnemyMaxEnergy,
		Speed:     tun.EnemyMaxSpeed,
		MaxSpeed:  tun.EnemyMaxSpeed,
		EtherCap:  tun.EnemyEtherCap,
		Units:     units,
	}
	for _, u := range units {
		enemy.MaxHP += u.MaxHP
	}
	enemy.RecomputeHP()

	return game.BattleState{
		Player:  player,
		Enemy:   enemy,
		Turn:    1,
		Phase:   game.PhasePlanning,
		Status:  game.StatusInProgress,
		Message: "The bout has started. Choose your cards.",
	}
}

// CreateBattle persists a new battle owned by the signed-in player.
func CreateBattle(repo BattleRepo, tun config.BattleTunables, joinCode, ownerEmail, ownerName string, actionTimeout time.Duration) (*game.BattleRecord, error) {
	rec := &game.BattleRecord{
		JoinCode:       joinCode,
		OwnerEmail:     ownerEmail,
		OwnerName:      ownerName,
		ActionDeadline: time.Now().Add(actionTimeout),
		State:          NewBattleState(tun, ownerName),
	}
	if err := repo.CreateBattle(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// loadOwnedBattle fetches a battle by join code and checks ownership.
func loadOwnedBattle(repo BattleRepo, code, ownerEmail string) (*game.BattleRecord, error) {
	rec, err := repo.FindBattleByJoinCode(code)
	if err != nil || rec == nil {
		return nil, ErrBattleNotFound
	}
	if rec.OwnerEmail != ownerEmail {
		return nil, ErrNotBattleOwner
	}
	return rec, nil
}

// SelectTarget sets the globally-selected enemy unit used as the
// single-target fallback. Allowed at any point while the battle runs.
func SelectTarget(repo BattleRepo, code, ownerEmail, unitID string) (*game.BattleRecord, error) {
	rec, err := loadOwnedBattle(repo, code, ownerEmail)
	if err != nil {
		return nil, err
	}
	if rec.State.Status != game.StatusInProgress {
		return nil, ErrBattleFinished
	}
	if unitID != "" && rec.State.Enemy.UnitByID(unitID) == nil {
		return nil, ErrUnknownUnit
	}
	rec.State.SelectedUnitID = unitID
	if err := repo.UpdateBattle(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// EndBattle resigns the battle in the enemy's favor and counts the loss.
func EndBattle(repo BattleRepo, code, ownerEmail string) (*game.BattleRecord, error) {
	rec, err := loadOwnedBattle(repo, code, ownerEmail)
	if err != nil {
		return nil, err
	}
	if rec.State.Status != game.StatusInProgress {
		return nil, ErrBattleFinished
	}
	rec.State.Status = game.StatusFinished
	rec.State.Phase = game.PhaseResolved
	rec.State.Winner = string(game.SideEnemy)
	rec.State.Message = "You conceded the bout."
	rec.State.PendingChoice = nil
	rec.ActionDeadline = time.Time{}
	if !rec.StatsCounted {
		_ = repo.UpdateStatsOnBattleEnd(rec)
		rec.StatsCounted = true
	}
	if err := repo.UpdateBattle(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

package service

import (
	"sync"
	"time"

	"github.com/veldt-games/riposte/internal/engine"
	"github.com/veldt-games/riposte/internal/game"
)

// stepGuard serializes resolution per battle id across requests. A step
// arriving while another is in flight is rejected, not queued.
var stepGuard sync.Map

// Step advances the battle by exactly one resolution step and persists the
// outcome. Turn and battle boundaries are handled here: deadlines reset
// when a new planning phase opens and stats are counted once on finish.
func Step(repo BattleRepo, deps Deps, code, ownerEmail string, actionTimeout time.Duration) (*game.BattleRecord, engine.StepOutcome, []engine.Event, error) {
	rec, err := loadOwnedBattle(repo, code, ownerEmail)
	if err != nil {
		return nil, "", nil, err
	}
	if _, busy := stepGuard.LoadOrStore(rec.ID, struct{}{}); busy {
		return nil, "", nil, ErrResolutionBusy
	}
	defer stepGuard.Delete(rec.ID)

	st := &rec.State
	if st.Status != game.StatusInProgress {
		return nil, "", nil, ErrBattleFinished
	}

	b := engine.New(st, deps.Catalog, deps.RNG, deps.Sink, deps.Combo)
	outcome, events := b.Advance()

	switch outcome {
	case engine.StepTurnFinished:
		rec.ActionDeadline = time.Now().Add(actionTimeout)
	case engine.StepBattleFinished:
		rec.ActionDeadline = time.Time{}
		if !rec.StatsCounted {
			_ = repo.UpdateStatsOnBattleEnd(rec)
			rec.StatsCounted = true
		}
	}

	if err := repo.UpdateBattle(rec); err != nil {
		return nil, outcome, events, err
	}
	return rec, outcome, events, nil
}

// ResolveChoice feeds the player's breach selection back into the paused
// resolution.
func ResolveChoice(repo BattleRepo, deps Deps, code, ownerEmail, cardID string) (*game.BattleRecord, error) {
	rec, err := loadOwnedBattle(repo, code, ownerEmail)
	if err != nil {
		return nil, err
	}
	st := &rec.State
	if st.Status != game.StatusInProgress {
		return nil, ErrBattleFinished
	}
	if st.PendingChoice == nil {
		return nil, ErrNoChoicePending
	}

	b := engine.New(st, deps.Catalog, deps.RNG, deps.Sink, deps.Combo)
	if err := b.ResumeWithChoice(cardID); err != nil {
		return nil, ErrUnknownCard
	}
	if err := repo.UpdateBattle(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

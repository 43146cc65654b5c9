package service

import (
	"time"

	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/logging"
)

// HandleTimedOutBattle finishes a battle whose action deadline passed
// with no submission. A battle parked on a pending card choice counts as
// abandoned too, otherwise it would block forever. There is no winner;
// the battle simply ends, and no stats are counted for an abandoned bout.
func HandleTimedOutBattle(repo BattleRepo, rec *game.BattleRecord) error {
	st := &rec.State
	if st.Status != game.StatusInProgress {
		return nil
	}
	if st.Phase != game.PhasePlanning && st.Phase != game.PhaseAwaitingChoice {
		return nil
	}

	st.Status = game.StatusFinished
	st.Phase = game.PhaseResolved
	st.Winner = ""
	st.Message = "The bout ended due to inactivity."
	st.PendingChoice = nil
	rec.StatsCounted = true
	rec.ActionDeadline = time.Time{}
	logging.Info("battle timed out; finishing", logging.Fields{"battle_code": rec.JoinCode, "turn": st.Turn})
	return repo.UpdateBattle(rec)
}

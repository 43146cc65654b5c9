package engine

import (
	"strconv"
	"strings"

	"github.com/veldt-games/riposte/internal/game"
)

// finishTurn runs the end-of-turn economy once the queue is exhausted:
// combo scoring, ether banking, win/loss, then the reset into planning.
func (b *Battle) finishTurn() (StepOutcome, []Event) {
	st := b.state
	sc := newStepContext(b)

	for _, side := range []game.Side{game.SidePlayer, game.SideEnemy} {
		actor := st.ActorFor(side)
		pct := b.combo.Multiplier(st.Played(side))
		if sc.ledger(actor).Has(game.TokenEtherBan) {
			pct = 0
		}
		gain := actor.EtherTurn * pct / 100
		if gain > 0 {
			actor.EtherPool += gain
			if actor.EtherPool > actor.EtherCap {
				actor.EtherPool = actor.EtherCap
			}
			msg := actor.Name + " banks " + strconv.Itoa(gain) + " ether"
			if pct > 100 {
				msg += " (combo x" + strconv.Itoa(pct) + "%)"
			}
			sc.emit(Event{Type: EventEther, Side: side, Amount: gain, Message: msg})
		} else if actor.EtherTurn > 0 {
			sc.emit(Event{Type: EventEther, Side: side,
				Message: actor.Name + "'s ether gain is lost"})
		}
	}

	switch {
	case !st.Enemy.Alive():
		// The loser's pool is forfeit to the winner, still capped.
		st.Player.EtherPool += st.Enemy.EtherPool
		if st.Player.EtherPool > st.Player.EtherCap {
			st.Player.EtherPool = st.Player.EtherCap
		}
		st.Enemy.EtherPool = 0
		b.concludeBattle(sc, game.SidePlayer)
	case !st.Player.Alive():
		st.Enemy.EtherPool += st.Player.EtherPool
		if st.Enemy.EtherPool > st.Enemy.EtherCap {
			st.Enemy.EtherPool = st.Enemy.EtherCap
		}
		st.Player.EtherPool = 0
		b.concludeBattle(sc, game.SideEnemy)
	default:
		b.resetForPlanning(sc)
	}

	st.LastTurnSummary = summarize(sc.events)
	b.sink.TurnEnded(sc.events, st)
	if st.Status == game.StatusFinished {
		return StepBattleFinished, sc.events
	}
	return StepTurnFinished, sc.events
}

func (b *Battle) concludeBattle(sc *stepContext, winner game.Side) {
	st := b.state
	st.Status = game.StatusFinished
	st.Winner = string(winner)
	st.Phase = game.PhaseResolved
	st.PendingChoice = nil
	sc.emit(Event{Type: EventTurnEnd, Side: winner,
		Message: st.ActorFor(winner).Name + " wins the bout"})
}

// resetForPlanning clears everything turn-scoped. Banked energy from warmup
// lands here, on top of the normal refill.
func (b *Battle) resetForPlanning(sc *stepContext) {
	st := b.state
	for _, a := range []*game.Actor{&st.Player, &st.Enemy} {
		sc.ledger(a).ClearTurnScoped()
		a.Block = 0
		for i := range a.Units {
			sc.unitLedger(a.Side, &a.Units[i]).ClearTurnScoped()
			a.Units[i].Block = 0
		}
		a.Energy = a.MaxEnergy + a.BankedEnergy
		a.BankedEnergy = 0
		a.Speed = a.MaxSpeed
		a.EtherTurn = 0
	}

	st.Queue = nil
	st.QIndex = 0
	st.ParryWindows = nil
	st.DefenseRamps = nil
	st.PendingChoice = nil
	st.PlayerPlayed = nil
	st.EnemyPlayed = nil
	st.Turn++
	st.Phase = game.PhasePlanning

	sc.emit(Event{Type: EventTurnEnd, Message: "turn " + strconv.Itoa(st.Turn) + " begins"})
}

func summarize(events []Event) string {
	parts := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.Message != "" {
			parts = append(parts, ev.Message)
		}
	}
	return strings.Join(parts, "; ")
}

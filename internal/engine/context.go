package engine

import (
	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/token"
)

// stepContext accumulates the structured events of one resolution step.
type stepContext struct {
	b      *Battle
	st     *game.BattleState
	events []Event
}

func newStepContext(b *Battle) *stepContext {
	return &stepContext{b: b, st: b.state, events: make([]Event, 0, 16)}
}

func (sc *stepContext) add(msg string) {
	sc.events = append(sc.events, Event{Type: EventInfo, Message: msg})
}

func (sc *stepContext) emit(ev Event) {
	sc.events = append(sc.events, ev)
}

// ledger returns the token store view of an actor, wired so every token
// mutation lands in the step's event list.
func (sc *stepContext) ledger(a *game.Actor) *token.Ledger {
	side := a.Side
	return token.For(a.Name, &a.Tokens, func(msg string) {
		sc.emit(Event{Type: EventToken, Side: side, Message: msg})
	})
}

// unitLedger is the same for a composite enemy's sub-unit.
func (sc *stepContext) unitLedger(side game.Side, u *game.Unit) *token.Ledger {
	return token.For(u.Name, &u.Tokens, func(msg string) {
		sc.emit(Event{Type: EventToken, Side: side, Message: msg})
	})
}

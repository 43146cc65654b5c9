package engine

import (
	"strconv"

	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/logging"
)

// resolveStep computes the full outcome of the action at the cursor. It
// runs synchronously and returns only through the context's event list;
// timing and staging belong entirely to the presentation layer.
func (b *Battle) resolveStep(sc *stepContext) {
	st := b.state
	item := &st.Queue[st.QIndex]
	actor := st.ActorFor(item.Side)
	opp := st.ActorFor(item.Side.Opponent())
	sp := item.SP

	// Clock housekeeping: tokens whose grant point the clock has passed,
	// then any active defense ramps.
	sc.expireTimelineTokens(sp)
	sc.applyDefenseRamps(sp)

	card := item.Card
	switch card.Type {
	case game.CardTypeAttack, game.CardTypeDefense, game.CardTypeGeneral, game.CardTypeSpecial:
	default:
		// Never hard-crash mid-combat: log and proceed with no state change.
		logging.Warn("resolver contract violation: unknown card type", logging.Fields{
			"card_id": card.ID, "card_type": string(card.Type),
		})
		return
	}

	// BURN fires every time its holder plays a card, independent of the
	// card's own effect, and bypasses block.
	sc.applyBurn(actor)
	if !actor.Alive() {
		sc.deathCheck(actor)
		if !actor.Alive() {
			return
		}
	}

	// Required tokens are consumed before resolution. Sufficiency is a
	// caller precondition, not handled here.
	led := sc.ledger(actor)
	for _, cost := range card.Required {
		led.Remove(cost.TokenID, cost.Stacks)
	}

	st.RecordPlayed(item.Side, card)
	actor.EtherTurn += card.EtherGain

	dealt := 0
	critHits := 0
	if card.Type == game.CardTypeAttack {
		dealt, critHits = sc.resolveHits(item, actor, opp)
	}

	if card.Block > 0 || card.Type == game.CardTypeDefense {
		gain := card.Block
		if card.Type == game.CardTypeDefense {
			gain += actor.Strength
		}
		if gain > 0 {
			actor.Block += gain
			sc.emit(Event{Type: EventBlock, Side: actor.Side, Amount: gain,
				Message: actor.Name + " gains " + strconv.Itoa(gain) + " block"})
		}
	}

	sc.applyOnHitSpecials(item, actor, opp, dealt)
	sc.applyTimelineSpecials(item, dealt)
	sc.applyPlayTimeSpecials(item, actor, opp)
	if card.Type == game.CardTypeAttack {
		sc.checkParryWindows(item, actor)
	}

	opp.RecomputeHP()
	sc.deathCheck(&st.Player)
	sc.deathCheck(&st.Enemy)

	if critHits > 0 {
		sc.add(actor.Name + " lands " + strconv.Itoa(critHits) + " critical hit(s)")
	}
}

// applyBurn deals the holder's accumulated BURN damage directly to hp.
func (sc *stepContext) applyBurn(a *game.Actor) {
	dmg := sc.ledger(a).BurnDamage()
	if dmg <= 0 {
		return
	}
	if a.Composite() {
		if u := a.FirstAliveUnit(); u != nil {
			u.HP -= dmg
			if u.HP < 0 {
				u.HP = 0
			}
		}
		a.RecomputeHP()
	} else {
		a.HP -= dmg
		if a.HP < 0 {
			a.HP = 0
		}
	}
	sc.emit(Event{Type: EventBurn, Side: a.Side, Amount: dmg,
		Message: a.Name + " burns for " + strconv.Itoa(dmg)})
}

// expireTimelineTokens drops stale turn tokens on both sides as the clock
// passes their grant points.
func (sc *stepContext) expireTimelineTokens(sp int) {
	turn := sc.st.Turn
	for _, a := range []*game.Actor{&sc.st.Player, &sc.st.Enemy} {
		sc.ledger(a).ExpireByTimeline(turn, sp)
		for i := range a.Units {
			sc.unitLedger(a.Side, &a.Units[i]).ExpireByTimeline(turn, sp)
		}
	}
}

// applyDefenseRamps grants 1 block per timeline unit elapsed since each
// ramp's activation. TotalApplied guards against double application.
func (sc *stepContext) applyDefenseRamps(sp int) {
	for i := range sc.st.DefenseRamps {
		ramp := &sc.st.DefenseRamps[i]
		target := sp - ramp.ActivatedSP
		if target <= ramp.TotalApplied {
			continue
		}
		delta := target - ramp.TotalApplied
		ramp.TotalApplied = target
		actor := sc.st.ActorFor(ramp.Side)
		actor.Block += delta
		sc.emit(Event{Type: EventBlock, Side: ramp.Side, Amount: delta,
			Message: actor.Name + "'s growing defense adds " + strconv.Itoa(delta) + " block"})
	}
}

// deathCheck handles hp reaching zero, including the revive charm (a
// usage-lifetime token consumed on the check).
func (sc *stepContext) deathCheck(a *game.Actor) {
	if a.HP > 0 {
		return
	}
	if sc.ledger(a).Consume(game.TokenRevive, 1) == 1 {
		restored := a.MaxHP / 2
		if restored < 1 {
			restored = 1
		}
		if a.Composite() {
			// Composite hp is always derived from the units, so the revive
			// heals the unit array and rederives the aggregate.
			remaining := restored
			for i := range a.Units {
				if remaining == 0 {
					break
				}
				u := &a.Units[i]
				heal := u.MaxHP
				if heal > remaining {
					heal = remaining
				}
				u.HP = heal
				remaining -= heal
			}
			a.RecomputeHP()
		} else {
			a.HP = restored
		}
		sc.emit(Event{Type: EventRevive, Side: a.Side, Amount: a.HP,
			Message: a.Name + " is revived with " + strconv.Itoa(a.HP) + " hp"})
		return
	}
	a.HP = 0
	sc.emit(Event{Type: EventDefeat, Side: a.Side, Message: a.Name + " is defeated"})
}

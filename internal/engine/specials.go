package engine

import (
	"strconv"

	"github.com/veldt-games/riposte/internal/game"
)

func amount(override, def int) int {
	if override > 0 {
		return override
	}
	return def
}

// applyOnHitSpecials runs the rules that only fire when the card connected
// for damage this step.
func (sc *stepContext) applyOnHitSpecials(item *game.QueueItem, actor, opp *game.Actor, dealt int) {
	card := item.Card
	switch card.Special {
	case game.SpecialPushEnemyTimeline:
		if dealt <= 0 {
			return
		}
		delta := amount(card.PushAmount, DefaultPushAmount)
		if sc.b.pushFuture(opp.Side, delta) > 0 {
			sc.emit(Event{Type: EventTimeline, Side: opp.Side, Amount: delta,
				Message: opp.Name + "'s timeline is pushed back " + strconv.Itoa(delta)})
		}

	case game.SpecialCreateAttackOnHit:
		if dealt <= 0 {
			return
		}
		sc.spawnChainAttacks(item, actor)

	case game.SpecialDestroyOnCollision:
		if dealt <= 0 {
			return
		}
		sp := item.SP
		removed := sc.b.removeFuture(func(q game.QueueItem) bool {
			return q.Side == opp.Side && q.SP == sp
		})
		for _, q := range removed {
			sc.emit(Event{Type: EventTimeline, Side: opp.Side,
				Message: opp.Name + "'s " + q.Card.Name + " is destroyed in the clash"})
		}
	}
}

// spawnChainAttacks creates ghost follow-up attacks for a fleche-style card.
// Chains are capped at depth two; spawned cards inherit the rule so the
// chain can continue, and the creating card itself is excluded from the
// pool drawn from.
func (sc *stepContext) spawnChainAttacks(item *game.QueueItem, actor *game.Actor) {
	if item.Card.FlecheChainCount >= 2 {
		return
	}
	picks := sc.b.cat.RandomAttacks(sc.b.rng, 3, item.Card.ID)
	if len(picks) == 0 {
		return
	}
	items := make([]game.QueueItem, 0, len(picks))
	for _, c := range picks {
		c.Special = game.SpecialCreateAttackOnHit
		c.FlecheChainCount = item.Card.FlecheChainCount + 1
		c.IsGhost = true
		items = append(items, game.QueueItem{Side: actor.Side, Card: c, SP: item.SP + c.SpeedCost})
		sc.emit(Event{Type: EventCardCreated, Side: actor.Side,
			Message: actor.Name + " chains into " + c.Name})
	}
	sc.b.insertFuture(items)
}

// applyTimelineSpecials runs the tempo rules that reshape the queue whether
// or not the card dealt damage.
func (sc *stepContext) applyTimelineSpecials(item *game.QueueItem, dealt int) {
	card := item.Card
	own := item.Side
	opp := own.Opponent()

	switch card.Special {
	case game.SpecialAdvanceTimeline:
		delta := amount(card.AdvanceAmount, DefaultAdvanceAmount)
		if sc.b.advanceFuture(own, delta) > 0 {
			sc.emit(Event{Type: EventTimeline, Side: own, Amount: delta,
				Message: sc.st.ActorFor(own).Name + " quickens the pace by " + strconv.Itoa(delta)})
		}

	case game.SpecialBeatEffect:
		// The beat always gains tempo; the push lands only on contact.
		sc.b.advanceFuture(own, amount(card.AdvanceAmount, DefaultBeatAdvance))
		if dealt > 0 {
			sc.b.pushFuture(opp, amount(card.PushAmount, DefaultBeatPush))
		}
		sc.emit(Event{Type: EventTimeline, Side: own,
			Message: sc.st.ActorFor(own).Name + " beats the blade"})

	case game.SpecialPushLastEnemyCard:
		delta := amount(card.PushAmount, DefaultPushLast)
		if sc.b.pushLastFuture(opp, delta) {
			sc.emit(Event{Type: EventTimeline, Side: opp, Amount: delta,
				Message: sc.st.ActorFor(opp).Name + "'s final action is pushed back " + strconv.Itoa(delta)})
		}

	case game.SpecialChainOnFencing:
		next := sc.b.nextFuture(own)
		if next == nil || next.Card.Category != game.CategoryFencing {
			return
		}
		delta := amount(card.AdvanceAmount, DefaultChainAdvance)
		sc.b.advanceFuture(own, delta)
		sc.emit(Event{Type: EventTimeline, Side: own, Amount: delta,
			Message: sc.st.ActorFor(own).Name + " flows into the next fencing action"})
	}
}

// applyPlayTimeSpecials runs the rules that fire purely because the card was
// played, plus the vanish trait.
func (sc *stepContext) applyPlayTimeSpecials(item *game.QueueItem, actor, opp *game.Actor) {
	card := item.Card
	sp := item.SP

	switch card.Special {
	case game.SpecialGrowingDefense:
		sc.st.DefenseRamps = append(sc.st.DefenseRamps, game.DefenseRamp{Side: actor.Side, ActivatedSP: sp})
		sc.add(actor.Name + " settles into a growing defense")

	case game.SpecialWarmup:
		actor.BankedEnergy += 2
		sc.add(actor.Name + " warms up, banking 2 energy for next turn")

	case game.SpecialTraining:
		actor.Strength++
		sc.add(actor.Name + "'s strength rises to " + strconv.Itoa(actor.Strength))

	case game.SpecialDoubleEdge:
		if u := actor.FirstAliveUnit(); u != nil {
			u.HP--
			actor.RecomputeHP()
		} else {
			actor.HP--
			if actor.HP < 0 {
				actor.HP = 0
			}
		}
		sc.emit(Event{Type: EventHit, Side: actor.Side, Amount: 1,
			Message: actor.Name + " bleeds 1 from the reckless cut"})

	case game.SpecialParryPush:
		w := game.ParryWindow{
			Side:       actor.Side,
			CenterSP:   sp,
			MaxSP:      sp + amount(card.ParryRange, DefaultParryRange),
			PushAmount: amount(card.PushAmount, DefaultParryPush),
		}
		sc.st.ParryWindows = append(sc.st.ParryWindows, w)
		sc.add(actor.Name + " sets a parry until sp " + strconv.Itoa(w.MaxSP))

	case game.SpecialStun:
		removed := sc.b.removeFuture(func(q game.QueueItem) bool {
			return q.Side == opp.Side && q.SP >= sp && q.SP <= sp+StunRange
		})
		for _, q := range removed {
			sc.emit(Event{Type: EventTimeline, Side: opp.Side,
				Message: opp.Name + "'s " + q.Card.Name + " is stunned out of the exchange"})
		}

	case game.SpecialBreach:
		sc.offerChoice(item, sc.b.cat.RandomAttacks(sc.b.rng, 3, card.ID))

	case game.SpecialCreateFencing3:
		sc.offerChoice(item, sc.b.cat.RandomByCategory(sc.b.rng, 3, game.CategoryFencing))
	}

	// Vanish applies to the catalog card, so spawned ghosts never shrink
	// the player's pool.
	if card.HasTrait(game.TraitVanish) && !card.IsGhost && !sc.st.Vanished(card.ID) {
		sc.st.VanishedCardIDs = append(sc.st.VanishedCardIDs, card.ID)
		sc.add(card.Name + " vanishes for the rest of the battle")
	}
}

// offerChoice suspends resolution until ResumeWithChoice. An empty option
// list fizzles rather than deadlocking the battle.
func (sc *stepContext) offerChoice(item *game.QueueItem, options []game.Card) {
	if len(options) == 0 {
		sc.add(item.Card.Name + " finds no opening")
		return
	}
	sc.st.PendingChoice = &game.ChoiceRequest{
		Side:     item.Side,
		SourceID: item.Card.ID,
		AtSP:     item.SP,
		Options:  options,
	}
	sc.st.Phase = game.PhaseAwaitingChoice
	sc.emit(Event{Type: EventChoice, Side: item.Side,
		Message: item.Card.Name + " opens a breach: choose a follow-up"})
}

// checkParryWindows fires every armed opposing window the attack landed
// inside. CenterSP itself is excluded; MaxSP is included. Triggered windows
// push the attacker's future actions, and anything shoved past the end of
// the timeline is lost.
func (sc *stepContext) checkParryWindows(item *game.QueueItem, attacker *game.Actor) {
	// Swift attacks land before a blade can answer them.
	if item.Card.HasTrait(game.TraitSwift) {
		return
	}
	sp := item.SP
	total := 0
	for i := range sc.st.ParryWindows {
		w := &sc.st.ParryWindows[i]
		if w.Triggered || w.Side != attacker.Side.Opponent() {
			continue
		}
		if sp > w.CenterSP && sp <= w.MaxSP {
			w.Triggered = true
			total += w.PushAmount
		}
	}
	if total == 0 {
		return
	}
	sc.b.pushFuture(attacker.Side, total)
	sc.emit(Event{Type: EventTimeline, Side: attacker.Side, Amount: total,
		Message: attacker.Name + " is parried and staggers back " + strconv.Itoa(total)})

	outed := sc.b.removeFuture(func(q game.QueueItem) bool {
		return q.Side == attacker.Side && q.SP > attacker.MaxSpeed
	})
	for _, q := range outed {
		sc.emit(Event{Type: EventTimeline, Side: attacker.Side,
			Message: attacker.Name + "'s " + q.Card.Name + " is pushed off the timeline"})
	}
}

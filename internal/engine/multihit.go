package engine

import (
	"strconv"

	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/token"
)

// HitResult describes one hit of an attack card.
type HitResult struct {
	Hit      int  `json:"hit"`
	Damage   int  `json:"damage"`
	Blocked  int  `json:"blocked"`
	Critical bool `json:"critical"`
	Jammed   bool `json:"jammed"`
}

// SetHitCallback registers a per-hit hook so the presentation layer can
// pace multi-hit animations. Resolution itself stays synchronous; the
// in-flight guard on Advance protects state while a callback runs.
func (b *Battle) SetHitCallback(fn func(HitResult)) { b.onHit = fn }

// resolveHits resolves an attack card hit by hit. Gun-category cards run a
// roulette check per hit: each hit adds a roulette stack and jam chance is
// stacks*5%; a jam cancels the remaining hits and resets the roulette.
func (sc *stepContext) resolveHits(item *game.QueueItem, actor, opp *game.Actor) (dealt, critHits int) {
	card := item.Card
	hits := card.Hits
	if hits < 1 {
		hits = 1
	}
	led := sc.ledger(actor)
	gun := card.Category == game.CategoryGun

	for hit := 0; hit < hits; hit++ {
		if gun && (hit == 0 || !card.HasTrait(game.TraitSingleRoulette)) {
			if sc.rouletteCheck(item, actor, led) {
				res := HitResult{Hit: hit, Jammed: true}
				if sc.b.onHit != nil {
					sc.b.onHit(res)
				}
				break
			}
		}

		base := card.Damage + actor.Strength
		if card.HasTrait(game.TraitMastery) {
			base = base * 3 / 2
		}
		crit := sc.b.rng.Float64()*100 < critChancePercent
		if crit {
			base *= 2
			critHits++
		}
		if base < 0 {
			base = 0
		}

		dmg, blocked := sc.applyAttackDamage(item, opp, base)
		dealt += dmg

		msg := actor.Name + " hits for " + strconv.Itoa(dmg)
		if blocked > 0 {
			msg += " (" + strconv.Itoa(blocked) + " blocked)"
		}
		if crit {
			msg += " (critical)"
		}
		sc.emit(Event{Type: EventHit, Side: actor.Side, Amount: dmg, Message: msg})

		if sc.b.onHit != nil {
			sc.b.onHit(HitResult{Hit: hit, Damage: dmg, Blocked: blocked, Critical: crit})
		}
	}
	return dealt, critHits
}

// rouletteCheck rolls the jam check with the stacks present before this
// hit, then banks this hit's stack. Returns true when the card's remaining
// hits are cancelled.
func (sc *stepContext) rouletteCheck(item *game.QueueItem, actor *game.Actor, led *token.Ledger) bool {
	stacks := led.Stacks(game.TokenRoulette)
	if stacks > 0 && sc.b.rng.Float64()*100 < float64(stacks*jamStepPercent) {
		if led.Has(game.TokenJamImmunity) {
			// Immunity suppresses the jam without resetting the roulette.
			sc.add(actor.Name + "'s jam is suppressed")
		} else {
			led.Set(game.TokenRoulette, 0, game.LifetimePermanent, game.TokenEffect{}, sc.st.Turn, item.SP)
			led.Add(game.TokenGunJam, 1, game.LifetimeTurn, game.TokenEffect{}, sc.st.Turn, item.SP)
			sc.emit(Event{Type: EventJam, Side: actor.Side, Message: actor.Name + "'s gun jams"})
			return true
		}
	}
	led.Add(game.TokenRoulette, 1, game.LifetimePermanent, game.TokenEffect{}, sc.st.Turn, item.SP)
	return false
}

// applyAttackDamage routes one hit's damage to the opponent under the three
// exclusive targeting modes. Block absorbs first unless the hit pierces.
// Composite aggregate hp is rederived afterwards, never decremented here.
func (sc *stepContext) applyAttackDamage(item *game.QueueItem, opp *game.Actor, base int) (dealt, blocked int) {
	card := item.Card
	piercing := card.HasTrait(game.TraitPiercing)

	if !opp.Composite() {
		return damagePool(&opp.HP, &opp.Block, base, piercing)
	}

	switch {
	case card.HasTrait(game.TraitAOE):
		for i := range opp.Units {
			u := &opp.Units[i]
			if !u.Alive() {
				continue
			}
			d, bl := damagePool(&u.HP, &u.Block, base, piercing)
			dealt += d
			blocked += bl
		}
	case len(card.TargetUnitIDs) > 0:
		for _, id := range card.TargetUnitIDs {
			u := opp.UnitByID(id)
			if u == nil || !u.Alive() {
				continue
			}
			d, bl := damagePool(&u.HP, &u.Block, base, piercing)
			dealt += d
			blocked += bl
		}
	default:
		u := sc.singleTarget(item, opp)
		if u == nil {
			return 0, 0
		}
		dealt, blocked = damagePool(&u.HP, &u.Block, base, piercing)
	}
	opp.RecomputeHP()
	return dealt, blocked
}

// singleTarget picks the explicit card target, else the globally-selected
// unit, else the first living unit.
func (sc *stepContext) singleTarget(item *game.QueueItem, opp *game.Actor) *game.Unit {
	if id := item.Card.TargetUnitID; id != "" {
		if u := opp.UnitByID(id); u != nil && u.Alive() {
			return u
		}
	}
	if id := sc.st.SelectedUnitID; id != "" {
		if u := opp.UnitByID(id); u != nil && u.Alive() {
			return u
		}
	}
	return opp.FirstAliveUnit()
}

// damagePool applies one hit to an hp/block pair and returns the hp damage
// dealt and the amount blocked.
func damagePool(hp, block *int, amount int, piercing bool) (dealt, blocked int) {
	if amount <= 0 {
		return 0, 0
	}
	if !piercing {
		blocked = amount
		if *block < blocked {
			blocked = *block
		}
		*block -= blocked
		amount -= blocked
	}
	dealt = amount
	*hp -= amount
	if *hp < 0 {
		*hp = 0
	}
	return dealt, blocked
}

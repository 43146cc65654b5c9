// Package ai plans the enemy's turn: it enumerates legal card sets under
// the enemy's speed and energy budgets and picks the best-scoring one for a
// randomly chosen behavioral mode.
package ai

import (
	"sort"
	"strings"

	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/rng"
)

// Mode is the enemy's behavioral stance for one turn.
type Mode string

const (
	ModeAggro    Mode = "aggro"
	ModeTurtle   Mode = "turtle"
	ModeBalanced Mode = "balanced"
)

var modes = []Mode{ModeAggro, ModeTurtle, ModeBalanced}

// Overdrive is intentionally disabled until enemy attack patterns are
// designed for it. The scoring hook stays reachable behind this gate so the
// disabled state reads as policy, not dead code.
const overdriveEnabled = false

// Planner selects the enemy action set for a turn.
type Planner struct {
	RNG rng.RNG
	// MinCards is the minimum deck size required to plan (scales with the
	// number of enemy instances that must act). MaxCards caps the subset
	// size enumerated.
	MinCards int
	MaxCards int
}

type candidate struct {
	cards       []game.Card
	attackCost  int
	defenseCost int
	damage      int
	block       int
	speed       int
	energy      int
	score       int
	idKey       string
}

// OverdriveActive reports whether the enemy's damage-boost mode applies.
func (p *Planner) OverdriveActive(enemy *game.Actor) bool {
	if !overdriveEnabled {
		return false
	}
	return enemy.HP*4 <= enemy.MaxHP
}

func (p *Planner) overdriveMultiplier(enemy *game.Actor) int {
	if p.OverdriveActive(enemy) {
		return 2
	}
	return 1
}

// Plan returns the enemy's chosen cards for this turn. The deck falls back
// to the shared pool when it is empty or smaller than MinCards, duplicating
// the pool until the minimum is satisfiable. An empty result means the
// enemy has no legal action.
func (p *Planner) Plan(enemy *game.Actor, deck, pool []game.Card) []game.Card {
	minCards := p.MinCards
	if minCards < 1 {
		minCards = 1
	}
	maxCards := p.MaxCards
	if maxCards < minCards {
		maxCards = minCards
	}

	if len(deck) == 0 || len(deck) < minCards {
		deck = append([]game.Card(nil), pool...)
		for len(deck) > 0 && len(deck) < minCards {
			deck = append(deck, pool...)
		}
	}
	if len(deck) == 0 {
		return nil
	}

	mode := modes[p.RNG.Intn(len(modes))]

	// Budgets are boosted proportionally to the extra instances that must
	// share this plan.
	speedBudget := enemy.MaxSpeed + (minCards-1)*enemy.MaxSpeed/2
	energyBudget := enemy.Energy + (minCards-1)*enemy.Energy/2

	dmgMult := p.overdriveMultiplier(enemy)

	var legal []candidate
	var combo []game.Card
	var enumerate func(start int)
	enumerate = func(start int) {
		if len(combo) > 0 {
			if c, ok := p.evaluate(combo, mode, speedBudget, energyBudget, dmgMult); ok {
				legal = append(legal, c)
			}
		}
		if len(combo) == maxCards {
			return
		}
		for i := start; i < len(deck); i++ {
			combo = append(combo, deck[i])
			enumerate(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	enumerate(0)

	if len(legal) == 0 {
		return p.cheapestLegal(deck, speedBudget, energyBudget)
	}

	satisfying := make([]candidate, 0, len(legal))
	for _, c := range legal {
		if satisfies(mode, c) {
			satisfying = append(satisfying, c)
		}
	}
	ranked := legal
	if len(satisfying) > 0 {
		ranked = satisfying
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if len(a.cards) != len(b.cards) {
			return len(a.cards) > len(b.cards)
		}
		if a.score != b.score {
			return a.score > b.score
		}
		if a.speed != b.speed {
			return a.speed < b.speed
		}
		if a.energy != b.energy {
			return a.energy < b.energy
		}
		return a.idKey < b.idKey
	})
	return append([]game.Card(nil), ranked[0].cards...)
}

func (p *Planner) evaluate(combo []game.Card, mode Mode, speedBudget, energyBudget, dmgMult int) (candidate, bool) {
	c := candidate{cards: append([]game.Card(nil), combo...)}
	ids := make([]string, 0, len(combo))
	for _, card := range combo {
		c.speed += card.SpeedCost
		c.energy += card.ActionCost
		switch card.Type {
		case game.CardTypeAttack:
			c.attackCost += card.ActionCost
		case game.CardTypeDefense:
			c.defenseCost += card.ActionCost
		}
		c.damage += card.Damage * maxInt(card.Hits, 1)
		c.block += card.Block
		ids = append(ids, card.ID)
	}
	if c.speed > speedBudget || c.energy > energyBudget {
		return candidate{}, false
	}
	sort.Strings(ids)
	c.idKey = strings.Join(ids, ",")

	dmg := c.damage * dmgMult
	switch mode {
	case ModeAggro:
		c.score = 3*dmg + c.block + 2*c.attackCost - c.speed
	case ModeTurtle:
		c.score = dmg + 3*c.block + 2*c.defenseCost - c.speed
	default:
		c.score = 2*dmg + 2*c.block + c.attackCost + c.defenseCost - c.speed
	}
	return c, true
}

// satisfies applies the mode's statistical threshold on attack/defense
// action cost distribution.
func satisfies(mode Mode, c candidate) bool {
	switch mode {
	case ModeAggro:
		return c.damage > 0 && c.attackCost >= 2*c.defenseCost
	case ModeTurtle:
		return c.block > 0 && c.defenseCost >= 2*c.attackCost
	default:
		return c.attackCost > 0 && c.defenseCost > 0
	}
}

func (p *Planner) cheapestLegal(deck []game.Card, speedBudget, energyBudget int) []game.Card {
	best := -1
	for i, card := range deck {
		if card.SpeedCost > speedBudget || card.ActionCost > energyBudget {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		b := deck[best]
		if card.SpeedCost != b.SpeedCost {
			if card.SpeedCost < b.SpeedCost {
				best = i
			}
			continue
		}
		if card.ActionCost != b.ActionCost {
			if card.ActionCost < b.ActionCost {
				best = i
			}
			continue
		}
		if card.ID < b.ID {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return []game.Card{deck[best]}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

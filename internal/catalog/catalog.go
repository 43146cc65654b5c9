// Package catalog holds the read-only card definitions the engine draws
// instances from. The catalog itself is never mutated mid-battle.
package catalog

import (
	"fmt"

	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/rng"
)

type Catalog struct {
	player []game.Card
	enemy  []game.Card
	byID   map[string]game.Card
}

// New builds a catalog from the configured player and enemy pools. Every
// entry is normalized so malformed optional fields default to neutral
// values instead of failing later.
func New(playerCards, enemyCards []game.Card) *Catalog {
	c := &Catalog{byID: make(map[string]game.Card, len(playerCards)+len(enemyCards))}
	for _, card := range playerCards {
		card = Normalize(card)
		c.player = append(c.player, card)
		c.byID[card.ID] = card
	}
	for _, card := range enemyCards {
		card = Normalize(card)
		c.enemy = append(c.enemy, card)
		if _, ok := c.byID[card.ID]; !ok {
			c.byID[card.ID] = card
		}
	}
	return c
}

// Normalize fills neutral defaults: hits below 1 become 1, negative numeric
// fields become 0, ether gain defaults to 1.
func Normalize(c game.Card) game.Card {
	if c.Hits < 1 {
		c.Hits = 1
	}
	if c.Damage < 0 {
		c.Damage = 0
	}
	if c.Block < 0 {
		c.Block = 0
	}
	if c.ActionCost < 0 {
		c.ActionCost = 0
	}
	if c.SpeedCost < 0 {
		c.SpeedCost = 0
	}
	if c.EtherGain <= 0 {
		c.EtherGain = 1
	}
	return c
}

// ByID looks up a catalog entry.
func (c *Catalog) ByID(id string) (game.Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Instance returns a fresh playable copy of a catalog entry.
func (c *Catalog) Instance(id string) (game.Card, error) {
	card, ok := c.byID[id]
	if !ok {
		return game.Card{}, fmt.Errorf("unknown card %q", id)
	}
	return card, nil
}

// PlayerPool returns a copy of the player card pool.
func (c *Catalog) PlayerPool() []game.Card {
	out := make([]game.Card, len(c.player))
	copy(out, c.player)
	return out
}

// EnemyPool returns a copy of the shared enemy card pool.
func (c *Catalog) EnemyPool() []game.Card {
	out := make([]game.Card, len(c.enemy))
	copy(out, c.enemy)
	return out
}

// RandomAttacks draws up to n distinct attack cards from the player pool,
// excluding the given source id and any card with required tokens. Used by
// fleche chaining and breach generation.
func (c *Catalog) RandomAttacks(r rng.RNG, n int, excludeID string) []game.Card {
	return c.randomFrom(r, n, func(card game.Card) bool {
		return card.Type == game.CardTypeAttack && card.ID != excludeID && len(card.Required) == 0
	})
}

// RandomByCategory draws up to n distinct cards of the given category from
// the player pool, excluding cards with required tokens.
func (c *Catalog) RandomByCategory(r rng.RNG, n int, category string) []game.Card {
	return c.randomFrom(r, n, func(card game.Card) bool {
		return card.Category == category && len(card.Required) == 0
	})
}

func (c *Catalog) randomFrom(r rng.RNG, n int, keep func(game.Card) bool) []game.Card {
	candidates := make([]game.Card, 0, len(c.player))
	for _, card := range c.player {
		if keep(card) {
			candidates = append(candidates, card)
		}
	}
	// Fisher-Yates over the candidate copy, then take the head.
	for i := len(candidates) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]game.Card, n)
	copy(out, candidates[:n])
	return out
}

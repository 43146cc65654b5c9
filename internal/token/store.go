// Package token owns the buff/debuff ledger of an actor or unit. Tokens are
// created and removed only through this API so stacking stays clamped and
// every mutation produces a readable log line.
package token

import (
	"strconv"

	"github.com/veldt-games/riposte/internal/game"
)

// Ledger wraps one holder's token slice. The logf callback receives a
// human-readable line for every mutation; pass nil to silence it.
type Ledger struct {
	owner  string
	tokens *[]game.Token
	logf   func(string)
}

// For returns a ledger over the given holder's tokens.
func For(owner string, tokens *[]game.Token, logf func(string)) *Ledger {
	return &Ledger{owner: owner, tokens: tokens, logf: logf}
}

func (l *Ledger) log(msg string) {
	if l.logf != nil {
		l.logf(msg)
	}
}

func (l *Ledger) find(id string) *game.Token {
	for i := range *l.tokens {
		if (*l.tokens)[i].ID == id {
			return &(*l.tokens)[i]
		}
	}
	return nil
}

// Stacks returns the current stack count for the token id (0 when absent).
func (l *Ledger) Stacks(id string) int {
	if t := l.find(id); t != nil {
		return t.Stacks
	}
	return 0
}

// Has reports whether the holder carries at least one stack of the token.
func (l *Ledger) Has(id string) bool { return l.Stacks(id) > 0 }

// Add grants stacks of a token. Adding zero or fewer stacks is a no-op.
// Existing tokens stack; the lifetime and effect of the first grant win.
func (l *Ledger) Add(id string, stacks int, lifetime game.TokenLifetime, effect game.TokenEffect, turn, sp int) {
	if stacks <= 0 {
		return
	}
	if t := l.find(id); t != nil {
		t.Stacks += stacks
		l.log(l.owner + " gains " + strconv.Itoa(stacks) + " " + id + " (now " + strconv.Itoa(t.Stacks) + ")")
		return
	}
	*l.tokens = append(*l.tokens, game.Token{
		ID:            id,
		Stacks:        stacks,
		Lifetime:      lifetime,
		Effect:        effect,
		GrantedAtTurn: turn,
		GrantedAtSP:   sp,
	})
	l.log(l.owner + " gains " + strconv.Itoa(stacks) + " " + id)
}

// Remove drops stacks of a token. Removing more stacks than present clamps
// to zero, never negative; a token at zero stacks is deleted.
func (l *Ledger) Remove(id string, stacks int) {
	if stacks <= 0 {
		return
	}
	t := l.find(id)
	if t == nil {
		return
	}
	if stacks >= t.Stacks {
		stacks = t.Stacks
	}
	t.Stacks -= stacks
	l.log(l.owner + " loses " + strconv.Itoa(stacks) + " " + id + " (now " + strconv.Itoa(t.Stacks) + ")")
	l.compact()
}

// Set forces a token to an exact stack count. Setting zero removes it.
func (l *Ledger) Set(id string, stacks int, lifetime game.TokenLifetime, effect game.TokenEffect, turn, sp int) {
	if stacks < 0 {
		stacks = 0
	}
	t := l.find(id)
	if t == nil {
		if stacks > 0 {
			l.Add(id, stacks, lifetime, effect, turn, sp)
		}
		return
	}
	t.Stacks = stacks
	l.log(l.owner + " sets " + id + " to " + strconv.Itoa(stacks))
	l.compact()
}

// Consume spends up to n stacks of a usage-lifetime token and returns how
// many were actually consumed.
func (l *Ledger) Consume(id string, n int) int {
	t := l.find(id)
	if t == nil || n <= 0 {
		return 0
	}
	if n > t.Stacks {
		n = t.Stacks
	}
	t.Stacks -= n
	l.log(l.owner + " consumes " + strconv.Itoa(n) + " " + id)
	l.compact()
	return n
}

// ClearTurnScoped drops every turn-lifetime token unconditionally. Called at
// hard turn boundaries.
func (l *Ledger) ClearTurnScoped() {
	kept := (*l.tokens)[:0]
	for _, t := range *l.tokens {
		if t.Lifetime == game.LifetimeTurn {
			l.log(l.owner + " loses " + t.ID + " (turn ended)")
			continue
		}
		kept = append(kept, t)
	}
	*l.tokens = kept
}

// ExpireByTimeline removes turn-lifetime tokens granted on a previous turn
// whose grant sp has been passed by the current action's sp. This lets a
// token expire mid-turn as the clock passes its grant point.
func (l *Ledger) ExpireByTimeline(turn, sp int) {
	kept := (*l.tokens)[:0]
	for _, t := range *l.tokens {
		if t.Lifetime == game.LifetimeTurn && t.GrantedAtTurn < turn && t.GrantedAtSP <= sp {
			l.log(l.owner + " loses " + t.ID + " (expired on the timeline)")
			continue
		}
		kept = append(kept, t)
	}
	*l.tokens = kept
}

// BurnDamage sums stacks*value over every BURN token on the holder. Applied
// every time the holder plays a card, directly to hp.
func (l *Ledger) BurnDamage() int {
	total := 0
	for _, t := range *l.tokens {
		if t.Effect.Type == game.EffectBurn {
			total += t.Stacks * t.Effect.Value
		}
	}
	return total
}

func (l *Ledger) compact() {
	kept := (*l.tokens)[:0]
	for _, t := range *l.tokens {
		if t.Stacks > 0 {
			kept = append(kept, t)
		}
	}
	*l.tokens = kept
}

package token

import (
	"testing"

	"github.com/veldt-games/riposte/internal/game"
)

func TestRemoveClampsAtZero(t *testing.T) {
	var tokens []game.Token
	l := For("fencer", &tokens, nil)
	l.Add("bleed", 2, game.LifetimeTurn, game.TokenEffect{}, 1, 0)

	l.Remove("bleed", 5)

	if got := l.Stacks("bleed"); got != 0 {
		t.Fatalf("expected 0 stacks after over-removal, got %d", got)
	}
	if len(tokens) != 0 {
		t.Fatalf("expected token entry to be dropped at 0 stacks, got %v", tokens)
	}
}

func TestAddZeroStacksIsNoop(t *testing.T) {
	var tokens []game.Token
	l := For("fencer", &tokens, nil)
	l.Add("focus", 0, game.LifetimePermanent, game.TokenEffect{}, 1, 0)
	if len(tokens) != 0 {
		t.Fatalf("adding 0 stacks should not create a token, got %v", tokens)
	}
}

func TestAddStacksExisting(t *testing.T) {
	var tokens []game.Token
	l := For("fencer", &tokens, nil)
	l.Add("focus", 1, game.LifetimePermanent, game.TokenEffect{}, 1, 0)
	l.Add("focus", 2, game.LifetimePermanent, game.TokenEffect{}, 1, 3)
	if got := l.Stacks("focus"); got != 3 {
		t.Fatalf("expected 3 stacks, got %d", got)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected a single stacked entry, got %d", len(tokens))
	}
}

func TestClearTurnScopedKeepsOtherLifetimes(t *testing.T) {
	var tokens []game.Token
	l := For("fencer", &tokens, nil)
	l.Add("burn", 2, game.LifetimeTurn, game.TokenEffect{Type: game.EffectBurn, Value: 3}, 1, 0)
	l.Add("strength", 1, game.LifetimePermanent, game.TokenEffect{}, 1, 0)
	l.Add(game.TokenRevive, 1, game.LifetimeUsage, game.TokenEffect{}, 1, 0)

	l.ClearTurnScoped()

	if l.Has("burn") {
		t.Fatalf("turn token should be cleared at turn end")
	}
	if !l.Has("strength") || !l.Has(game.TokenRevive) {
		t.Fatalf("permanent/usage tokens must survive turn end: %v", tokens)
	}
}

func TestExpireByTimeline(t *testing.T) {
	var tokens []game.Token
	l := For("fencer", &tokens, nil)
	// granted on turn 1 at sp 10
	l.Add("guard", 1, game.LifetimeTurn, game.TokenEffect{}, 1, 10)

	// same turn: never expires mid-turn
	l.ExpireByTimeline(1, 99)
	if !l.Has("guard") {
		t.Fatalf("token should not expire within its grant turn")
	}

	// next turn, clock not yet past the grant sp
	l.ExpireByTimeline(2, 9)
	if !l.Has("guard") {
		t.Fatalf("token should survive until the clock passes its grant sp")
	}

	// next turn, clock at the grant sp
	l.ExpireByTimeline(2, 10)
	if l.Has("guard") {
		t.Fatalf("token should expire once the clock passes its grant point")
	}
}

func TestConsumeUsage(t *testing.T) {
	var tokens []game.Token
	l := For("fencer", &tokens, nil)
	l.Add(game.TokenRevive, 1, game.LifetimeUsage, game.TokenEffect{}, 1, 0)

	if got := l.Consume(game.TokenRevive, 2); got != 1 {
		t.Fatalf("expected to consume only the single present stack, got %d", got)
	}
	if l.Has(game.TokenRevive) {
		t.Fatalf("usage token should be gone after consumption")
	}
}

func TestBurnDamage(t *testing.T) {
	var tokens []game.Token
	l := For("fencer", &tokens, nil)
	l.Add("burn", 2, game.LifetimeTurn, game.TokenEffect{Type: game.EffectBurn, Value: 3}, 1, 0)
	if got := l.BurnDamage(); got != 6 {
		t.Fatalf("expected burn damage 6, got %d", got)
	}
}

package engine

import (
	"testing"

	"github.com/veldt-games/riposte/internal/game"
)

func TestTurnEndBanksEtherAndResets(t *testing.T) {
	st := testState()
	st.Player.EtherTurn = 4
	st.Player.Block = 7
	st.Player.BankedEnergy = 2
	st.Player.Energy = 1
	st.Player.Speed = 3
	st.Player.Tokens = []game.Token{
		{ID: "feint", Stacks: 1, Lifetime: game.LifetimeTurn},
		{ID: game.TokenRoulette, Stacks: 2, Lifetime: game.LifetimePermanent},
	}
	st.PlayerPlayed = []game.Card{attackCard(2, 3)}
	st.Phase = game.PhaseResolving
	b := testBattle(st, noChance())

	out, _ := b.Advance()
	if out != StepTurnFinished {
		t.Fatalf("Advance = %q, want turn_finished", out)
	}
	if st.Player.EtherPool != 4 {
		t.Fatalf("ether pool = %d, want 4", st.Player.EtherPool)
	}
	if st.Player.Block != 0 || st.Player.EtherTurn != 0 {
		t.Fatalf("turn-scoped fields not reset: block=%d ether_turn=%d", st.Player.Block, st.Player.EtherTurn)
	}
	if st.Player.Energy != 12 || st.Player.BankedEnergy != 0 {
		t.Fatalf("energy = %d banked = %d, want 12 and 0", st.Player.Energy, st.Player.BankedEnergy)
	}
	if st.Player.Speed != 30 {
		t.Fatalf("speed = %d, want refilled to 30", st.Player.Speed)
	}
	if len(st.Player.Tokens) != 1 || st.Player.Tokens[0].ID != game.TokenRoulette {
		t.Fatalf("tokens = %+v, want only the permanent roulette", st.Player.Tokens)
	}
	if st.Turn != 2 || st.Phase != game.PhasePlanning {
		t.Fatalf("turn=%d phase=%q, want 2/planning", st.Turn, st.Phase)
	}
	if st.PlayerPlayed != nil || st.Queue != nil {
		t.Fatalf("per-turn history not cleared")
	}
	if st.LastTurnSummary == "" {
		t.Fatalf("turn summary not recorded")
	}
}

func TestComboMultipliesEtherGain(t *testing.T) {
	st := testState()
	st.Player.EtherTurn = 4
	pair := attackCard(2, 3)
	st.PlayerPlayed = []game.Card{pair, pair}
	st.Phase = game.PhaseResolving
	b := testBattle(st, noChance())

	b.Advance()
	// A pair is a 150% combo: 4 * 150 / 100 = 6.
	if st.Player.EtherPool != 6 {
		t.Fatalf("ether pool = %d, want 6", st.Player.EtherPool)
	}
}

func TestEtherBanZeroesTheGain(t *testing.T) {
	st := testState()
	st.Player.EtherTurn = 5
	st.Player.Tokens = []game.Token{{ID: game.TokenEtherBan, Stacks: 1, Lifetime: game.LifetimeTurn}}
	st.Phase = game.PhaseResolving
	b := testBattle(st, noChance())

	b.Advance()
	if st.Player.EtherPool != 0 {
		t.Fatalf("ether pool = %d, want 0 under the ban", st.Player.EtherPool)
	}
}

func TestEtherPoolCapped(t *testing.T) {
	st := testState()
	st.Player.EtherCap = 10
	st.Player.EtherPool = 8
	st.Player.EtherTurn = 7
	st.Phase = game.PhaseResolving
	b := testBattle(st, noChance())

	b.Advance()
	if st.Player.EtherPool != 10 {
		t.Fatalf("ether pool = %d, want capped at 10", st.Player.EtherPool)
	}
}

func TestDefeatForfeitsPoolToWinner(t *testing.T) {
	st := testState()
	st.Enemy.HP = 0
	st.Enemy.EtherPool = 12
	st.Player.EtherPool = 3
	st.Phase = game.PhaseResolving
	b := testBattle(st, noChance())

	out, _ := b.Advance()
	if out != StepBattleFinished {
		t.Fatalf("Advance = %q, want battle_finished", out)
	}
	if st.Status != game.StatusFinished || st.Winner != string(game.SidePlayer) {
		t.Fatalf("status=%q winner=%q, want finished/player", st.Status, st.Winner)
	}
	if st.Player.EtherPool != 15 || st.Enemy.EtherPool != 0 {
		t.Fatalf("pools = %d/%d, want 15/0", st.Player.EtherPool, st.Enemy.EtherPool)
	}
	if st.Phase != game.PhaseResolved {
		t.Fatalf("phase = %q, want resolved", st.Phase)
	}
}

func TestFinishedBattleRejectsFurtherAdvance(t *testing.T) {
	st := testState()
	st.Status = game.StatusFinished
	b := testBattle(st, noChance())
	if out, _ := b.Advance(); out != StepBattleFinished {
		t.Fatalf("Advance = %q, want battle_finished", out)
	}
}

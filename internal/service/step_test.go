package service

import (
	"testing"
	"time"

	"github.com/veldt-games/riposte/internal/engine"
	"github.com/veldt-games/riposte/internal/game"
)

func TestStepResolvesQueueAndFinishesBattle(t *testing.T) {
	repo := newMockRepo()
	rec := newTestBattle(t, repo)
	deps := testDeps()

	// A single lethal player action on the timeline.
	rec.State.Enemy.Units = []game.Unit{{UnitID: "arm", Name: "Sword Arm", HP: 2, MaxHP: 15}}
	rec.State.Enemy.RecomputeHP()
	kill, _ := deps.Catalog.Instance("lunge")
	rec.State.Queue = []game.QueueItem{{Side: game.SidePlayer, Card: kill, SP: 4}}
	rec.State.Phase = game.PhaseResolving

	_, outcome, events, err := Step(repo, deps, "abc123", "p@e.com", time.Minute)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome != engine.StepResolved {
		t.Fatalf("outcome = %q, want resolved", outcome)
	}
	if len(events) == 0 {
		t.Fatalf("no events for a resolved step")
	}

	_, outcome, _, err = Step(repo, deps, "abc123", "p@e.com", time.Minute)
	if err != nil {
		t.Fatalf("final Step: %v", err)
	}
	if outcome != engine.StepBattleFinished {
		t.Fatalf("outcome = %q, want battle_finished", outcome)
	}
	if !repo.statsCalled || !rec.StatsCounted {
		t.Fatalf("stats not counted on finish")
	}
	if !rec.ActionDeadline.IsZero() {
		t.Fatalf("deadline should be cleared on finish")
	}

	if _, _, _, err := Step(repo, deps, "abc123", "p@e.com", time.Minute); err != ErrBattleFinished {
		t.Fatalf("step after finish: err = %v, want ErrBattleFinished", err)
	}
}

func TestStepResetsDeadlineOnNewTurn(t *testing.T) {
	repo := newMockRepo()
	rec := newTestBattle(t, repo)
	deps := testDeps()

	rec.State.Phase = game.PhaseResolving
	rec.ActionDeadline = time.Time{}

	_, outcome, _, err := Step(repo, deps, "abc123", "p@e.com", time.Minute)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if outcome != engine.StepTurnFinished {
		t.Fatalf("outcome = %q, want turn_finished", outcome)
	}
	if rec.ActionDeadline.IsZero() {
		t.Fatalf("deadline not reset for the new planning phase")
	}
	if rec.State.Turn != 2 || rec.State.Phase != game.PhasePlanning {
		t.Fatalf("turn=%d phase=%q, want 2/planning", rec.State.Turn, rec.State.Phase)
	}
}

func TestResolveChoiceRequiresPending(t *testing.T) {
	repo := newMockRepo()
	rec := newTestBattle(t, repo)
	deps := testDeps()

	if _, err := ResolveChoice(repo, deps, "abc123", "p@e.com", "lunge"); err != ErrNoChoicePending {
		t.Fatalf("err = %v, want ErrNoChoicePending", err)
	}

	cut, _ := deps.Catalog.Instance("cut")
	rec.State.PendingChoice = &game.ChoiceRequest{Side: game.SidePlayer, AtSP: 5, Options: []game.Card{cut}}
	rec.State.Phase = game.PhaseAwaitingChoice

	if _, err := ResolveChoice(repo, deps, "abc123", "p@e.com", "guard"); err != ErrUnknownCard {
		t.Fatalf("err = %v, want ErrUnknownCard for an option not offered", err)
	}
	if _, err := ResolveChoice(repo, deps, "abc123", "p@e.com", "cut"); err != nil {
		t.Fatalf("ResolveChoice: %v", err)
	}
	if rec.State.PendingChoice != nil || rec.State.Phase != game.PhaseResolving {
		t.Fatalf("choice not cleared")
	}
}

func TestHandleTimedOutBattle(t *testing.T) {
	repo := newMockRepo()
	rec := newTestBattle(t, repo)
	rec.ActionDeadline = time.Now().Add(-time.Minute)

	if err := HandleTimedOutBattle(repo, rec); err != nil {
		t.Fatalf("HandleTimedOutBattle: %v", err)
	}
	if rec.State.Status != game.StatusFinished || rec.State.Winner != "" {
		t.Fatalf("status=%q winner=%q, want finished with no winner", rec.State.Status, rec.State.Winner)
	}
	if repo.statsCalled {
		t.Fatalf("abandoned battles must not count stats")
	}
	if !rec.StatsCounted {
		t.Fatalf("stats must be marked counted to stop further updates")
	}

	// Resolving battles are left alone.
	rec2 := &game.BattleRecord{State: NewBattleState(testTunables(), "P")}
	rec2.State.Phase = game.PhaseResolving
	if err := HandleTimedOutBattle(repo, rec2); err != nil {
		t.Fatalf("HandleTimedOutBattle: %v", err)
	}
	if rec2.State.Status != game.StatusInProgress {
		t.Fatalf("resolving battle must not be timed out")
	}
}

func TestHandleTimedOutBattleAbandonedChoice(t *testing.T) {
	// A battle parked on an unanswered card choice past its deadline must
	// end instead of blocking forever.
	repo := newMockRepo()
	rec := newTestBattle(t, repo)
	rec.State.Phase = game.PhaseAwaitingChoice
	rec.State.PendingChoice = &game.ChoiceRequest{Side: game.SidePlayer}
	rec.ActionDeadline = time.Now().Add(-time.Hour)

	if err := HandleTimedOutBattle(repo, rec); err != nil {
		t.Fatalf("HandleTimedOutBattle: %v", err)
	}
	if rec.State.Status != game.StatusFinished {
		t.Fatalf("status = %q, want finished", rec.State.Status)
	}
	if rec.State.PendingChoice != nil {
		t.Fatalf("pending choice must be cleared on timeout")
	}
	if repo.statsCalled {
		t.Fatalf("abandoned battles must not count stats")
	}
}

// Package engine is the battle resolution core: it orders the merged action
// timeline, resolves one queued action at a time, applies the special-effect
// rules and runs the ether economy at turn boundaries. It is pure state
// transformation; persistence and presentation live behind interfaces.
package engine

import (
	"errors"
	"sort"

	"github.com/veldt-games/riposte/internal/catalog"
	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/rng"
)

// Rule tunables. Cards may override the per-special amounts; zero on the
// card means the default applies.
const (
	DefaultPushAmount    = 5
	DefaultAdvanceAmount = 4
	DefaultBeatAdvance   = 1
	DefaultBeatPush      = 2
	DefaultPushLast      = 9
	DefaultChainAdvance  = 3
	DefaultParryRange    = 5
	DefaultParryPush     = 3
	StunRange            = 5

	jamStepPercent    = 5
	critChancePercent = 10
)

// StepOutcome reports what one Advance call did.
type StepOutcome string

const (
	StepResolved       StepOutcome = "resolved"
	StepAwaitingChoice StepOutcome = "awaiting_choice"
	StepTurnFinished   StepOutcome = "turn_finished"
	StepBattleFinished StepOutcome = "battle_finished"
	StepBusy           StepOutcome = "busy"
)

var (
	ErrNotPlanning    = errors.New("battle is not in the planning phase")
	ErrNoChoice       = errors.New("no card choice is pending")
	ErrInvalidChoice  = errors.New("chosen card is not among the offered options")
	ErrBattleFinished = errors.New("battle is finished")
)

// Battle owns all mutable turn state for one battle and enforces the
// single-in-flight invariant. External callers interact only through
// CommitTurn, Advance and ResumeWithChoice.
type Battle struct {
	state *game.BattleState
	cat   *catalog.Catalog
	rng   rng.RNG
	sink  PresentationSink
	combo ComboEvaluator
	onHit func(HitResult)

	inFlight bool
}

// New wraps existing battle state with its collaborators. A nil sink or
// combo evaluator falls back to the null/default implementations.
func New(state *game.BattleState, cat *catalog.Catalog, r rng.RNG, sink PresentationSink, combo ComboEvaluator) *Battle {
	if sink == nil {
		sink = NullSink{}
	}
	if combo == nil {
		combo = PokerCombo{}
	}
	return &Battle{state: state, cat: cat, rng: r, sink: sink, combo: combo}
}

// State exposes the underlying battle state for persistence and reads.
func (b *Battle) State() *game.BattleState { return b.state }

// CommitTurn lays both sides' chosen cards onto the shared timeline and
// moves the battle into the resolving phase. Each side's cards are placed
// at their cumulative speed cost; the merged queue is sorted ascending by
// sp, stable on ties.
func (b *Battle) CommitTurn(playerCards, enemyCards []game.Card) error {
	st := b.state
	if st.Status != game.StatusInProgress {
		return ErrBattleFinished
	}
	if st.Phase != game.PhasePlanning {
		return ErrNotPlanning
	}

	st.Queue = st.Queue[:0]
	layout := func(side game.Side, cards []game.Card) {
		sp := 0
		actor := st.ActorFor(side)
		for _, c := range cards {
			sp += c.SpeedCost
			actor.Energy -= c.ActionCost
			actor.Speed -= c.SpeedCost
			st.Queue = append(st.Queue, game.QueueItem{Side: side, Card: c, SP: sp})
		}
	}
	layout(game.SidePlayer, playerCards)
	layout(game.SideEnemy, enemyCards)

	sort.SliceStable(st.Queue, func(i, j int) bool { return st.Queue[i].SP < st.Queue[j].SP })
	st.QIndex = 0
	st.Phase = game.PhaseResolving
	return nil
}

// Advance resolves the next queued action. A second call while one is in
// flight is a no-op, not queued; so is a call while a breach choice is
// pending. When the queue is exhausted the turn economy runs.
func (b *Battle) Advance() (StepOutcome, []Event) {
	if b.inFlight {
		return StepBusy, nil
	}
	b.inFlight = true
	defer func() { b.inFlight = false }()

	st := b.state
	if st.Status != game.StatusInProgress {
		return StepBattleFinished, nil
	}
	if st.PendingChoice != nil {
		return StepAwaitingChoice, nil
	}
	if st.Phase != game.PhaseResolving {
		return StepTurnFinished, nil
	}

	// Skip items whose actor is already defeated, without side effects.
	// Crossed items stay in the queue so feed consumers can tell resolved
	// actions from upcoming ones.
	for st.QIndex < len(st.Queue) && !st.ActorFor(st.Queue[st.QIndex].Side).Alive() {
		st.Queue[st.QIndex].HasCrossed = true
		st.QIndex++
	}
	if st.QIndex >= len(st.Queue) {
		return b.finishTurn()
	}

	sc := newStepContext(b)
	b.resolveStep(sc)
	st.Queue[st.QIndex].HasCrossed = true
	st.QIndex++
	b.sink.Step(sc.events, st)
	if st.PendingChoice != nil {
		return StepAwaitingChoice, sc.events
	}
	return StepResolved, sc.events
}

// ResumeWithChoice feeds the player's breach selection back in and inserts
// the chosen card onto the timeline. This is the only externally-driven
// re-entry point into an in-progress turn.
func (b *Battle) ResumeWithChoice(cardID string) error {
	st := b.state
	choice := st.PendingChoice
	if choice == nil {
		return ErrNoChoice
	}
	var chosen *game.Card
	for i := range choice.Options {
		if choice.Options[i].ID == cardID {
			chosen = &choice.Options[i]
			break
		}
	}
	if chosen == nil {
		return ErrInvalidChoice
	}

	item := game.QueueItem{Side: choice.Side, Card: *chosen, SP: choice.AtSP + chosen.SpeedCost}
	item.Card.IsGhost = true
	b.insertFuture([]game.QueueItem{item})

	st.PendingChoice = nil
	st.Phase = game.PhaseResolving
	return nil
}

// --- Timeline scheduler ------------------------------------------------

// currentSP is the clock position of the action being resolved; future
// items can never be pulled behind it.
func (b *Battle) currentSP() int {
	st := b.state
	if st.QIndex < len(st.Queue) {
		return st.Queue[st.QIndex].SP
	}
	if n := len(st.Queue); n > 0 {
		return st.Queue[n-1].SP
	}
	return 0
}

// sortTail re-sorts the post-cursor slice ascending by sp, stable on ties.
func (b *Battle) sortTail() {
	st := b.state
	if st.QIndex+1 >= len(st.Queue) {
		return
	}
	tail := st.Queue[st.QIndex+1:]
	sort.SliceStable(tail, func(i, j int) bool { return tail[i].SP < tail[j].SP })
}

// pushFuture delays the given side's future items by delta.
func (b *Battle) pushFuture(side game.Side, delta int) int {
	st := b.state
	moved := 0
	for i := st.QIndex + 1; i < len(st.Queue); i++ {
		if st.Queue[i].Side == side {
			st.Queue[i].SP += delta
			moved++
		}
	}
	b.sortTail()
	return moved
}

// advanceFuture pulls the given side's future items earlier by delta,
// clamped so nothing lands behind the current clock position.
func (b *Battle) advanceFuture(side game.Side, delta int) int {
	st := b.state
	floor := b.currentSP()
	moved := 0
	for i := st.QIndex + 1; i < len(st.Queue); i++ {
		if st.Queue[i].Side != side {
			continue
		}
		sp := st.Queue[i].SP - delta
		if sp < floor {
			sp = floor
		}
		st.Queue[i].SP = sp
		moved++
	}
	b.sortTail()
	return moved
}

// pushLastFuture delays only the side's temporally-last future item.
func (b *Battle) pushLastFuture(side game.Side, delta int) bool {
	st := b.state
	last := -1
	for i := st.QIndex + 1; i < len(st.Queue); i++ {
		if st.Queue[i].Side == side && (last == -1 || st.Queue[i].SP >= st.Queue[last].SP) {
			last = i
		}
	}
	if last == -1 {
		return false
	}
	st.Queue[last].SP += delta
	b.sortTail()
	return true
}

// nextFuture returns the side's nearest future item, or nil.
func (b *Battle) nextFuture(side game.Side) *game.QueueItem {
	st := b.state
	best := -1
	for i := st.QIndex + 1; i < len(st.Queue); i++ {
		if st.Queue[i].Side == side && (best == -1 || st.Queue[i].SP < st.Queue[best].SP) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return &st.Queue[best]
}

// insertFuture adds newly created cards after the cursor and re-sorts.
func (b *Battle) insertFuture(items []game.QueueItem) {
	st := b.state
	st.Queue = append(st.Queue, items...)
	b.sortTail()
}

// removeFuture drops post-cursor items matching the predicate and reports
// what was removed.
func (b *Battle) removeFuture(match func(game.QueueItem) bool) []game.QueueItem {
	st := b.state
	if st.QIndex+1 >= len(st.Queue) {
		return nil
	}
	var removed []game.QueueItem
	kept := st.Queue[:st.QIndex+1]
	for i := st.QIndex + 1; i < len(st.Queue); i++ {
		if match(st.Queue[i]) {
			removed = append(removed, st.Queue[i])
			continue
		}
		kept = append(kept, st.Queue[i])
	}
	st.Queue = kept
	return removed
}

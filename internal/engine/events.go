package engine

import "github.com/veldt-games/riposte/internal/game"

// Event is one structured outcome of a resolution step. The engine never
// performs presentation itself; it emits events and the sink decides what
// to render.
type Event struct {
	Type    string    `json:"type"`
	Side    game.Side `json:"side,omitempty"`
	Amount  int       `json:"amount,omitempty"`
	Message string    `json:"message"`
}

// Event types.
const (
	EventInfo        = "info"
	EventHit         = "hit"
	EventBlock       = "block"
	EventBurn        = "burn"
	EventToken       = "token"
	EventTimeline    = "timeline"
	EventCardCreated = "card_created"
	EventJam         = "jam"
	EventChoice      = "choice"
	EventEther       = "ether"
	EventDefeat      = "defeat"
	EventRevive      = "revive"
	EventTurnEnd     = "turn_end"
)

// PresentationSink receives events and the updated state after every
// resolution step and at turn boundaries. Calls are fire-and-forget from
// the engine's perspective; nothing the sink does affects resolution.
type PresentationSink interface {
	Step(events []Event, state *game.BattleState)
	TurnEnded(events []Event, state *game.BattleState)
}

// NullSink discards everything. Used by tests and headless resolution.
type NullSink struct{}

func (NullSink) Step(events []Event, state *game.BattleState)      {}
func (NullSink) TurnEnded(events []Event, state *game.BattleState) {}

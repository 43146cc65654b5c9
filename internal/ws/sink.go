package ws

import (
	"github.com/veldt-games/riposte/internal/engine"
	"github.com/veldt-games/riposte/internal/game"
)

// FeedMessage is the wire envelope pushed to spectators after each
// resolution step and at turn boundaries.
type FeedMessage struct {
	Type   string            `json:"type"`
	Events []engine.Event    `json:"events"`
	State  *game.BattleState `json:"state"`
}

const (
	feedStep    = "step"
	feedTurnEnd = "turn_end"
)

type feedSink struct {
	hub  *Hub
	room string
}

// SinkFor returns a presentation sink that broadcasts into the battle's
// room. Engine resolution never blocks on slow spectators; write failures
// just drop the connection.
func (h *Hub) SinkFor(room string) engine.PresentationSink {
	return &feedSink{hub: h, room: room}
}

func (s *feedSink) Step(events []engine.Event, state *game.BattleState) {
	s.hub.Broadcast(s.room, FeedMessage{Type: feedStep, Events: events, State: state})
}

func (s *feedSink) TurnEnded(events []engine.Event, state *game.BattleState) {
	s.hub.Broadcast(s.room, FeedMessage{Type: feedTurnEnd, Events: events, State: state})
}

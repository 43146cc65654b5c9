// Package ws pushes resolution events to battle spectators over WebSocket.
// Each battle's join code is a room; the service layer feeds rooms through
// the engine's presentation sink.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/veldt-games/riposte/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	id   string
	conn *websocket.Conn
}

// Hub tracks the open connections per battle room. Broadcasts drop dead
// connections as they fail; there is no background ping loop.
type Hub struct {
	mu    sync.Mutex
	rooms map[string][]*client
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string][]*client)}
}

// Handle upgrades the request and parks the connection in the battle's
// room until the peer closes it. The read loop exists only to observe the
// close; inbound messages are ignored.
func (h *Hub) Handle(c *gin.Context, room string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{"room": room})
		return
	}
	cl := &client{id: uuid.New().String(), conn: conn}
	h.join(room, cl)
	defer h.leave(room, cl)
	defer conn.Close()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) join(room string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rooms[room] = append(h.rooms[room], cl)
}

func (h *Hub) leave(room string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.rooms[room][:0]
	for _, other := range h.rooms[room] {
		if other != cl {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		delete(h.rooms, room)
		return
	}
	h.rooms[room] = kept
}

// Broadcast sends one JSON message to every connection in the room and
// prunes the ones that fail.
func (h *Hub) Broadcast(room string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		logging.Error("websocket payload marshal failed", err, logging.Fields{"room": room})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	kept := h.rooms[room][:0]
	for _, cl := range h.rooms[room] {
		if err := cl.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			cl.conn.Close()
			continue
		}
		kept = append(kept, cl)
	}
	if len(kept) == 0 {
		delete(h.rooms, room)
		return
	}
	h.rooms[room] = kept
}

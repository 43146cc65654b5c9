package api

import (
	"time"

	"github.com/veldt-games/riposte/internal/ai"
	"github.com/veldt-games/riposte/internal/catalog"
	"github.com/veldt-games/riposte/internal/config"
	"github.com/veldt-games/riposte/internal/rng"
	"github.com/veldt-games/riposte/internal/service"
	"github.com/veldt-games/riposte/internal/storage"
	"github.com/veldt-games/riposte/internal/ws"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	repo          storage.Repository
	cat           *catalog.Catalog
	hub           *ws.Hub
	tunables      config.BattleTunables
	actionTimeout time.Duration
	newRNG        func() rng.RNG
}

// NewBattleHandler wires the repository, card catalog and live-feed hub
// into one handler set.
func NewBattleHandler(repo storage.Repository, cat *catalog.Catalog, hub *ws.Hub, tun config.BattleTunables, actionTimeout time.Duration) *BattleHandler {
	return &BattleHandler{
		repo:          repo,
		cat:           cat,
		hub:           hub,
		tunables:      tun,
		actionTimeout: actionTimeout,
		newRNG:        func() rng.RNG { return rng.New(time.Now().UnixNano()) },
	}
}

// depsFor builds the per-request engine collaborators, with the live feed
// bound to the battle's room.
func (h *BattleHandler) depsFor(code string) service.Deps {
	r := h.newRNG()
	return service.Deps{
		Catalog: h.cat,
		RNG:     r,
		Planner: &ai.Planner{RNG: r, MinCards: h.tunables.AIMinCards, MaxCards: h.tunables.AIMaxCards},
		Sink:    h.hub.SinkFor(code),
	}
}

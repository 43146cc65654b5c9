package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/veldt-games/riposte/internal/constants"
	"github.com/veldt-games/riposte/internal/logging"
	"github.com/veldt-games/riposte/internal/service"
)

// GetBattle returns a single battle looked up by join code.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	code, ok := battleCode(c)
	if !ok {
		return
	}

	rec, err := h.repo.FindBattleByJoinCode(code)
	if err != nil {
		respondServiceError(c, service.ErrBattleNotFound)
		return
	}
	respondBattle(c, http.StatusOK, rec)
}

// ListBattles returns the authenticated player's battles, most recent
// first.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	recs, err := h.repo.ListBattlesByOwner(c.GetString("userEmail"))
	if err != nil {
		logging.Error("failed to list battles", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	out, merr := MarshalForContext(c, recs)
	if merr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListCards returns the playable card pool.
func (h *BattleHandler) ListCards(c *gin.Context) {
	c.JSON(http.StatusOK, h.cat.PlayerPool())
}

// ListLeaderboard returns the top players ranked by wins. An optional
// ?limit= query parameter caps the result, up to 100 entries.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		limit = n
	}
	if limit > 100 {
		limit = 100
	}

	players, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		logging.Error("failed to fetch leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, merr := MarshalForContext(c, players)
	if merr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

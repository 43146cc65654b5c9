package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veldt-games/riposte/internal/constants"
	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/logging"
	"github.com/veldt-games/riposte/internal/service"
)

// respondServiceError translates service sentinels into HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrNotBattleOwner):
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrNotBattleOwner})
	case errors.Is(err, service.ErrBattleFinished):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
	case errors.Is(err, service.ErrActionsLocked):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrActionsLockedResolving})
	case errors.Is(err, service.ErrChoicePending):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrChoiceRequired})
	case errors.Is(err, service.ErrNoChoicePending):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoChoicePending})
	case errors.Is(err, service.ErrResolutionBusy):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrResolutionInFlight})
	case errors.Is(err, service.ErrUnknownCard):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownCard})
	case errors.Is(err, service.ErrCardNotAvailable):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrCardNotAvailable})
	case errors.Is(err, service.ErrBudgetExceeded):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrBudgetExceeded})
	case errors.Is(err, service.ErrMissingTokens):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrMissingRequiredTokens})
	case errors.Is(err, service.ErrUnknownUnit):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownUnit})
	default:
		logging.Error("battle operation failed", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
	}
}

// battleCode extracts and validates the :battleCode path parameter. A
// false return means a response was already written.
func battleCode(c *gin.Context) (string, bool) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return "", false
	}
	return code, true
}

func respondBattle(c *gin.Context, status int, rec *game.BattleRecord) {
	out, err := MarshalForContext(c, rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(status, out)
}

// CreateBattle starts a new battle owned by the authenticated player.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	email := c.GetString("userEmail")
	name := c.GetString("userName")

	rec, err := service.CreateBattle(h.repo, h.tunables, generateJoinCode(), email, name, h.actionTimeout)
	if err != nil {
		logging.Error("failed to create battle", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: rec.ID,
		constants.LogFieldCode:     rec.JoinCode,
	})
	respondBattle(c, http.StatusCreated, rec)
}

// SubmitTurn stores the player's card layout for the turn and locks the
// battle into resolution.
func (h *BattleHandler) SubmitTurn(c *gin.Context) {
	code, ok := battleCode(c)
	if !ok {
		return
	}
	var payload struct {
		CardIDs []string `json:"card_ids"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	rec, err := service.SubmitTurn(h.repo, h.depsFor(code), code, c.GetString("userEmail"), payload.CardIDs, h.actionTimeout)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondBattle(c, http.StatusOK, rec)
}

// Step resolves the next queued card and reports the outcome alongside
// the updated battle.
func (h *BattleHandler) Step(c *gin.Context) {
	code, ok := battleCode(c)
	if !ok {
		return
	}

	rec, outcome, events, err := service.Step(h.repo, h.depsFor(code), code, c.GetString("userEmail"), h.actionTimeout)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	out, merr := MarshalForContext(c, rec)
	if merr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeBattle})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"outcome": outcome,
		"events":  events,
		"battle":  out,
	})
}

// Choice answers a pending card choice, typically raised by a breach.
func (h *BattleHandler) Choice(c *gin.Context) {
	code, ok := battleCode(c)
	if !ok {
		return
	}
	var payload struct {
		CardID string `json:"card_id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.CardID == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	rec, err := service.ResolveChoice(h.repo, h.depsFor(code), code, c.GetString("userEmail"), payload.CardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondBattle(c, http.StatusOK, rec)
}

// Target sets the preferred enemy unit for single-target attacks.
func (h *BattleHandler) Target(c *gin.Context) {
	code, ok := battleCode(c)
	if !ok {
		return
	}
	var payload struct {
		UnitID string `json:"unit_id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	rec, err := service.SelectTarget(h.repo, code, c.GetString("userEmail"), payload.UnitID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondBattle(c, http.StatusOK, rec)
}

// End concedes the battle on behalf of the owner.
func (h *BattleHandler) End(c *gin.Context) {
	code, ok := battleCode(c)
	if !ok {
		return
	}

	rec, err := service.EndBattle(h.repo, code, c.GetString("userEmail"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondBattle(c, http.StatusOK, rec)
}

// Feed upgrades the connection to a websocket subscribed to the battle's
// live resolution feed.
func (h *BattleHandler) Feed(c *gin.Context) {
	code, ok := battleCode(c)
	if !ok {
		return
	}
	h.hub.Handle(c, code)
}

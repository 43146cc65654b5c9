package service

import (
	"time"

	"github.com/veldt-games/riposte/internal/engine"
	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/logging"
	"github.com/veldt-games/riposte/internal/token"
)

// SubmitTurn validates the player's deck, has the AI plan the enemy's
// answer and commits both onto the timeline. Resolution itself is driven
// step by step through Step.
func SubmitTurn(repo BattleRepo, deps Deps, code, ownerEmail string, cardIDs []string, actionTimeout time.Duration) (*game.BattleRecord, error) {
	rec, err := loadOwnedBattle(repo, code, ownerEmail)
	if err != nil {
		return nil, err
	}
	st := &rec.State
	if st.Status != game.StatusInProgress {
		return nil, ErrBattleFinished
	}
	if st.PendingChoice != nil {
		return nil, ErrChoicePending
	}
	if st.Phase != game.PhasePlanning {
		return nil, ErrActionsLocked
	}

	playerCards, err := validateDeck(deps, st, cardIDs)
	if err != nil {
		return nil, err
	}

	enemyCards := deps.Planner.Plan(&st.Enemy, deps.Catalog.EnemyPool(), deps.Catalog.EnemyPool())

	b := engine.New(st, deps.Catalog, deps.RNG, deps.Sink, deps.Combo)
	if err := b.CommitTurn(playerCards, enemyCards); err != nil {
		return nil, ErrActionsLocked
	}

	rec.ActionDeadline = time.Now().Add(actionTimeout)
	if err := repo.UpdateBattle(rec); err != nil {
		return nil, err
	}
	logging.Info("turn committed", logging.Fields{
		"battle_code": rec.JoinCode,
		"turn":        st.Turn,
		"player":      len(playerCards),
		"enemy":       len(enemyCards),
	})
	return rec, nil
}

// validateDeck resolves the submitted card ids against the player pool and
// checks the vanish list, the energy and speed budgets and required tokens.
func validateDeck(deps Deps, st *game.BattleState, cardIDs []string) ([]game.Card, error) {
	pool := map[string]game.Card{}
	for _, c := range deps.Catalog.PlayerPool() {
		pool[c.ID] = c
	}

	cards := make([]game.Card, 0, len(cardIDs))
	speed, energy := 0, 0
	need := map[string]int{}
	for _, id := range cardIDs {
		c, ok := pool[id]
		if !ok {
			if _, known := deps.Catalog.ByID(id); known {
				return nil, ErrCardNotAvailable
			}
			return nil, ErrUnknownCard
		}
		if st.Vanished(id) {
			return nil, ErrCardNotAvailable
		}
		speed += c.SpeedCost
		energy += c.ActionCost
		for _, req := range c.Required {
			need[req.TokenID] += req.Stacks
		}
		cards = append(cards, c)
	}
	if speed > st.Player.Speed || energy > st.Player.Energy {
		return nil, ErrBudgetExceeded
	}

	led := token.For(st.Player.Name, &st.Player.Tokens, nil)
	for id, stacks := range need {
		if led.Stacks(id) < stacks {
			return nil, ErrMissingTokens
		}
	}
	return cards, nil
}

package engine

import (
	"sort"

	"github.com/veldt-games/riposte/internal/game"
)

// ComboEvaluator scores a side's played cards at end of turn. The result is
// a percent multiplier applied to the turn's ether gain; 100 means no combo.
type ComboEvaluator interface {
	Multiplier(played []game.Card) int
}

// PokerCombo is the default evaluator. It ranks the turn like a poker hand
// over card ids, types and speed costs, and the best single pattern wins.
type PokerCombo struct{}

func (PokerCombo) Multiplier(played []game.Card) int {
	if len(played) < 2 {
		return 100
	}
	best := 100

	counts := map[string]int{}
	for _, c := range played {
		counts[c.ID]++
	}
	for _, n := range counts {
		switch {
		case n >= 5:
			best = maxInt(best, 400)
		case n == 4:
			best = maxInt(best, 300)
		case n == 3:
			best = maxInt(best, 200)
		case n == 2:
			best = maxInt(best, 150)
		}
	}

	if len(played) >= 3 {
		flush := true
		for _, c := range played[1:] {
			if c.Type != played[0].Type {
				flush = false
				break
			}
		}
		if flush {
			best = maxInt(best, 200)
		}
		if hasStraight(played) {
			best = maxInt(best, 250)
		}
	}
	return best
}

// hasStraight reports whether the cards contain three or more consecutive
// distinct speed costs.
func hasStraight(played []game.Card) bool {
	seen := map[int]bool{}
	for _, c := range played {
		seen[c.SpeedCost] = true
	}
	costs := make([]int, 0, len(seen))
	for v := range seen {
		costs = append(costs, v)
	}
	sort.Ints(costs)

	run := 1
	for i := 1; i < len(costs); i++ {
		if costs[i] == costs[i-1]+1 {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package engine

import (
	"testing"

	"github.com/veldt-games/riposte/internal/game"
)

func comboCard(id string, typ game.CardType, speed int) game.Card {
	return game.Card{ID: id, Type: typ, SpeedCost: speed}
}

func TestPokerComboMultiplier(t *testing.T) {
	atk := game.CardTypeAttack
	def := game.CardTypeDefense

	cases := []struct {
		name   string
		played []game.Card
		want   int
	}{
		{"no cards", nil, 100},
		{"single card", []game.Card{comboCard("a", atk, 3)}, 100},
		{"no pattern", []game.Card{comboCard("a", atk, 3), comboCard("b", def, 7)}, 100},
		{"pair", []game.Card{comboCard("a", atk, 3), comboCard("a", atk, 3)}, 150},
		{"triple", []game.Card{comboCard("a", atk, 3), comboCard("a", atk, 3), comboCard("a", atk, 3)}, 200},
		{"quad", []game.Card{comboCard("a", atk, 3), comboCard("a", atk, 3), comboCard("a", atk, 3), comboCard("a", atk, 3)}, 300},
		{"flush of types", []game.Card{comboCard("a", atk, 2), comboCard("b", atk, 5), comboCard("c", atk, 9)}, 200},
		{"straight of speeds", []game.Card{comboCard("a", atk, 2), comboCard("b", def, 3), comboCard("c", atk, 4)}, 250},
		{"straight beats flush", []game.Card{comboCard("a", atk, 2), comboCard("b", atk, 3), comboCard("c", atk, 4)}, 250},
		{"two cards never flush", []game.Card{comboCard("a", atk, 2), comboCard("b", atk, 9)}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := (PokerCombo{}).Multiplier(tc.played); got != tc.want {
				t.Fatalf("Multiplier = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestStraightNeedsConsecutiveDistinctSpeeds(t *testing.T) {
	atk := game.CardTypeAttack
	played := []game.Card{
		comboCard("a", atk, 2),
		comboCard("a", game.CardTypeDefense, 2),
		comboCard("c", atk, 4),
	}
	if got := (PokerCombo{}).Multiplier(played); got != 150 {
		t.Fatalf("Multiplier = %d, want 150 for the pair only", got)
	}
}

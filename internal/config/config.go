package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/veldt-games/riposte/internal/game"
)

type cardEntry struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Type       string           `json:"type"`
	Category   string           `json:"category"`
	Damage     int              `json:"damage"`
	Block      int              `json:"block"`
	Hits       int              `json:"hits"`
	SpeedCost  int              `json:"speed_cost"`
	ActionCost int              `json:"action_cost"`
	EtherGain  int              `json:"ether_gain"`
	Traits     []string         `json:"traits"`
	Special    string           `json:"special"`
	Required   []game.TokenCost `json:"required_tokens"`
	Rarity     string           `json:"rarity"`

	PushAmount    int `json:"push_amount"`
	AdvanceAmount int `json:"advance_amount"`
	ParryRange    int `json:"parry_range"`
}

type unitEntry struct {
	UnitID string `json:"unit_id"`
	Name   string `json:"name"`
	HP     int    `json:"hp"`
}

type rawConfig struct {
	CardList      []cardEntry `json:"card_list"`
	EnemyCardList []cardEntry `json:"enemy_card_list"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Per-turn deadline in seconds before the inactivity scanner finishes
	// an idle battle.
	ActionTimeoutSeconds int `json:"action_timeout_seconds"`
	Battle               *struct {
		PlayerMaxHP     int         `json:"player_max_hp"`
		PlayerMaxEnergy int         `json:"player_max_energy"`
		PlayerMaxSpeed  int         `json:"player_max_speed"`
		PlayerEtherCap  int         `json:"player_ether_cap"`
		EnemyName       string      `json:"enemy_name"`
		EnemyMaxEnergy  int         `json:"enemy_max_energy"`
		EnemyMaxSpeed   int         `json:"enemy_max_speed"`
		EnemyEtherCap   int         `json:"enemy_ether_cap"`
		EnemyUnits      []unitEntry `json:"enemy_units"`
		AIMinCards      int         `json:"ai_min_cards"`
		AIMaxCards      int         `json:"ai_max_cards"`
	} `json:"battle"`
}

// BattleTunables seeds new battles. Enemy hp derives from its units.
type BattleTunables struct {
	PlayerMaxHP     int
	PlayerMaxEnergy int
	PlayerMaxSpeed  int
	PlayerEtherCap  int
	EnemyName       string
	EnemyMaxEnergy  int
	EnemyMaxSpeed   int
	EnemyEtherCap   int
	EnemyUnits      []game.Unit
	AIMinCards      int
	AIMaxCards      int
}

// LoadedConfig contains the card pools, battle tunables and server settings.
type LoadedConfig struct {
	PlayerCards   []game.Card
	EnemyCards    []game.Card
	ServerAddress string
	ActionTimeout time.Duration
	Battle        BattleTunables
}

// LoadConfig reads the configuration file at path. The card_list and
// enemy_card_list keys are required and cross-validated (unique ids, known
// specials, known types).
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide a 'card_list' array)", path)
	}
	if len(rc.EnemyCardList) == 0 {
		return nil, fmt.Errorf("config file %s: enemy_card_list is empty", path)
	}

	playerCards, err := convertCards(path, rc.CardList)
	if err != nil {
		return nil, err
	}
	enemyCards, err := convertCards(path, rc.EnemyCardList)
	if err != nil {
		return nil, err
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	timeout := 90 * time.Second
	if rc.ActionTimeoutSeconds > 0 {
		timeout = time.Duration(rc.ActionTimeoutSeconds) * time.Second
	}

	tun := BattleTunables{
		PlayerMaxHP:     80,
		PlayerMaxEnergy: 6,
		PlayerMaxSpeed:  30,
		PlayerEtherCap:  99,
		EnemyName:       "Enemy",
		EnemyMaxEnergy:  6,
		EnemyMaxSpeed:   30,
		EnemyEtherCap:   99,
		AIMinCards:      1,
		AIMaxCards:      3,
	}
	if bb := rc.Battle; bb != nil {
		if bb.PlayerMaxHP > 0 {
			tun.PlayerMaxHP = bb.PlayerMaxHP
		}
		if bb.PlayerMaxEnergy > 0 {
			tun.PlayerMaxEnergy = bb.PlayerMaxEnergy
		}
		if bb.PlayerMaxSpeed > 0 {
			tun.PlayerMaxSpeed = bb.PlayerMaxSpeed
		}
		if bb.PlayerEtherCap > 0 {
			tun.PlayerEtherCap = bb.PlayerEtherCap
		}
		if bb.EnemyName != "" {
			tun.EnemyName = bb.EnemyName
		}
		if bb.EnemyMaxEnergy > 0 {
			tun.EnemyMaxEnergy = bb.EnemyMaxEnergy
		}
		if bb.EnemyMaxSpeed > 0 {
			tun.EnemyMaxSpeed = bb.EnemyMaxSpeed
		}
		if bb.EnemyEtherCap > 0 {
			tun.EnemyEtherCap = bb.EnemyEtherCap
		}
		if bb.AIMinCards > 0 {
			tun.AIMinCards = bb.AIMinCards
		}
		if bb.AIMaxCards > 0 {
			tun.AIMaxCards = bb.AIMaxCards
		}
		for _, u := range bb.EnemyUnits {
			if u.UnitID == "" || u.HP <= 0 {
				return nil, fmt.Errorf("config file %s: enemy unit needs a unit_id and positive hp", path)
			}
			tun.EnemyUnits = append(tun.EnemyUnits, game.Unit{UnitID: u.UnitID, Name: u.Name, HP: u.HP, MaxHP: u.HP})
		}
	}
	if len(tun.EnemyUnits) == 0 {
		return nil, fmt.Errorf("config file %s: battle.enemy_units must list at least one unit", path)
	}
	if tun.AIMaxCards < tun.AIMinCards {
		return nil, fmt.Errorf("config file %s: ai_max_cards must be >= ai_min_cards", path)
	}

	return &LoadedConfig{
		PlayerCards:   playerCards,
		EnemyCards:    enemyCards,
		ServerAddress: addr,
		ActionTimeout: timeout,
		Battle:        tun,
	}, nil
}

func convertCards(path string, entries []cardEntry) ([]game.Card, error) {
	out := make([]game.Card, 0, len(entries))
	idSet := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'id'", path)
		}
		if _, exists := idSet[id]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card id '%s'", path, id)
		}
		idSet[id] = struct{}{}

		switch game.CardType(e.Type) {
		case game.CardTypeAttack, game.CardTypeDefense, game.CardTypeGeneral, game.CardTypeSpecial:
		default:
			return nil, fmt.Errorf("config file %s: card '%s' has unknown type '%s'", path, id, e.Type)
		}
		if e.Special != "" && !game.KnownSpecial(e.Special) {
			return nil, fmt.Errorf("config file %s: card '%s' names unknown special '%s'", path, id, e.Special)
		}

		out = append(out, game.Card{
			ID:            id,
			Name:          e.Name,
			Type:          game.CardType(e.Type),
			Category:      e.Category,
			Damage:        e.Damage,
			Block:         e.Block,
			Hits:          e.Hits,
			SpeedCost:     e.SpeedCost,
			ActionCost:    e.ActionCost,
			EtherGain:     e.EtherGain,
			Traits:        e.Traits,
			Special:       e.Special,
			Required:      e.Required,
			Rarity:        e.Rarity,
			PushAmount:    e.PushAmount,
			AdvanceAmount: e.AdvanceAmount,
			ParryRange:    e.ParryRange,
		})
	}
	return out, nil
}

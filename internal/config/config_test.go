package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "riposte_config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `{
  "card_list": [
    {"id": "lunge", "name": "Lunge", "type": "attack", "category": "fencing", "damage": 4, "hits": 1, "speed_cost": 4, "action_cost": 2},
    {"id": "riposte", "name": "Riposte", "type": "defense", "block": 3, "speed_cost": 3, "action_cost": 1, "special": "parryPush"}
  ],
  "enemy_card_list": [
    {"id": "slash", "name": "Slash", "type": "attack", "damage": 3, "hits": 1, "speed_cost": 3, "action_cost": 1}
  ],
  "server": {"address": ":9090"},
  "action_timeout_seconds": 45,
  "battle": {
    "player_max_hp": 50,
    "enemy_units": [{"unit_id": "arm", "name": "Arm", "hp": 20}]
  }
}`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.PlayerCards) != 2 || len(cfg.EnemyCards) != 1 {
		t.Fatalf("unexpected pool sizes: %d player, %d enemy", len(cfg.PlayerCards), len(cfg.EnemyCards))
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("ServerAddress = %q", cfg.ServerAddress)
	}
	if cfg.ActionTimeout != 45*time.Second {
		t.Fatalf("ActionTimeout = %v", cfg.ActionTimeout)
	}
	if cfg.Battle.PlayerMaxHP != 50 {
		t.Fatalf("PlayerMaxHP = %d, want override 50", cfg.Battle.PlayerMaxHP)
	}
	// Unset tunables keep their defaults.
	if cfg.Battle.PlayerMaxSpeed != 30 || cfg.Battle.AIMaxCards != 3 {
		t.Fatalf("defaults not applied: speed=%d aiMax=%d", cfg.Battle.PlayerMaxSpeed, cfg.Battle.AIMaxCards)
	}
	if len(cfg.Battle.EnemyUnits) != 1 || cfg.Battle.EnemyUnits[0].MaxHP != 20 {
		t.Fatalf("enemy units not converted: %+v", cfg.Battle.EnemyUnits)
	}
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing file", ""},
		{"empty card list", `{"card_list": [], "enemy_card_list": [{"id": "x", "type": "attack"}]}`},
		{"duplicate id", `{
			"card_list": [{"id": "a", "type": "attack"}, {"id": "a", "type": "attack"}],
			"enemy_card_list": [{"id": "x", "type": "attack"}],
			"battle": {"enemy_units": [{"unit_id": "u", "hp": 1}]}
		}`},
		{"unknown type", `{
			"card_list": [{"id": "a", "type": "sorcery"}],
			"enemy_card_list": [{"id": "x", "type": "attack"}],
			"battle": {"enemy_units": [{"unit_id": "u", "hp": 1}]}
		}`},
		{"unknown special", `{
			"card_list": [{"id": "a", "type": "attack", "special": "timeWarp"}],
			"enemy_card_list": [{"id": "x", "type": "attack"}],
			"battle": {"enemy_units": [{"unit_id": "u", "hp": 1}]}
		}`},
		{"no enemy units", `{
			"card_list": [{"id": "a", "type": "attack"}],
			"enemy_card_list": [{"id": "x", "type": "attack"}]
		}`},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "missing.json")
		if tc.body != "" {
			path = writeConfig(t, tc.body)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestLoadConfigShipsWithRepo(t *testing.T) {
	// The checked-in config must always load.
	cfg, err := LoadConfig("../../riposte_config.json")
	if err != nil {
		t.Fatalf("repo config failed to load: %v", err)
	}
	if len(cfg.PlayerCards) == 0 || len(cfg.EnemyCards) == 0 {
		t.Fatalf("repo config has empty card pools")
	}
}

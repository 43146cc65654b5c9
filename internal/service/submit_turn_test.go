package service

import (
	"errors"
	"testing"
	"time"

	"github.com/veldt-games/riposte/internal/ai"
	"github.com/veldt-games/riposte/internal/catalog"
	"github.com/veldt-games/riposte/internal/config"
	"github.com/veldt-games/riposte/internal/game"
	"github.com/veldt-games/riposte/internal/rng"
)

type mockRepo struct {
	recs        map[string]*game.BattleRecord
	updated     *game.BattleRecord
	statsCalled bool
}

func newMockRepo() *mockRepo {
	return &mockRepo{recs: map[string]*game.BattleRecord{}}
}

func (m *mockRepo) CreateBattle(rec *game.BattleRecord) error {
	rec.ID = uint(len(m.recs) + 1)
	m.recs[rec.JoinCode] = rec
	return nil
}

func (m *mockRepo) GetBattleByID(id uint) (*game.BattleRecord, error) {
	for _, rec := range m.recs {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, errors.New("record not found")
}

func (m *mockRepo) FindBattleByJoinCode(code string) (*game.BattleRecord, error) {
	if rec, ok := m.recs[code]; ok {
		return rec, nil
	}
	return nil, errors.New("record not found")
}

func (m *mockRepo) UpdateBattle(rec *game.BattleRecord) error {
	m.updated = rec
	return nil
}

func (m *mockRepo) UpdateStatsOnBattleEnd(rec *game.BattleRecord) error {
	m.statsCalled = true
	return nil
}

func testTunables() config.BattleTunables {
	return config.BattleTunables{
		PlayerMaxHP:     40,
		PlayerMaxEnergy: 6,
		PlayerMaxSpeed:  30,
		PlayerEtherCap:  99,
		EnemyName:       "Duelist",
		EnemyMaxEnergy:  6,
		EnemyMaxSpeed:   30,
		EnemyEtherCap:   99,
		EnemyUnits: []game.Unit{
			{UnitID: "arm", Name: "Sword Arm", HP: 15, MaxHP: 15},
			{UnitID: "off", Name: "Off Hand", HP: 10, MaxHP: 10},
		},
		AIMinCards: 1,
		AIMaxCards: 2,
	}
}

func testDeps() Deps {
	player := []game.Card{
		{ID: "lunge", Name: "Lunge", Type: game.CardTypeAttack, Category: game.CategoryFencing, Damage: 4, Hits: 1, SpeedCost: 4, ActionCost: 1},
		{ID: "cut", Name: "Cut", Type: game.CardTypeAttack, Category: game.CategoryFencing, Damage: 2, Hits: 1, SpeedCost: 2, ActionCost: 1},
		{ID: "guard", Name: "Guard", Type: game.CardTypeDefense, Category: game.CategoryFencing, Block: 5, SpeedCost: 3, ActionCost: 1},
		{ID: "coup", Name: "Coup", Type: game.CardTypeAttack, Category: game.CategoryFencing, Damage: 9, Hits: 1, SpeedCost: 6, ActionCost: 2,
			Required: []game.TokenCost{{TokenID: "tempo", Stacks: 2}}},
	}
	enemy := []game.Card{
		{ID: "slash", Name: "Slash", Type: game.CardTypeAttack, Category: game.CategoryFencing, Damage: 3, Hits: 1, SpeedCost: 3, ActionCost: 1},
	}
	r := &rng.Scripted{Floats: []float64{0.99}}
	return Deps{
		Catalog: catalog.New(player, enemy),
		RNG:     r,
		Planner: &ai.Planner{RNG: rng.New(1), MinCards: 1, MaxCards: 2},
	}
}

func newTestBattle(t *testing.T, repo *mockRepo) *game.BattleRecord {
	t.Helper()
	rec, err := CreateBattle(repo, testTunables(), "abc123", "p@e.com", "P", time.Minute)
	if err != nil {
		t.Fatalf("CreateBattle: %v", err)
	}
	return rec
}

func TestCreateBattleSeedsState(t *testing.T) {
	repo := newMockRepo()
	rec := newTestBattle(t, repo)

	st := rec.State
	if st.Status != game.StatusInProgress || st.Phase != game.PhasePlanning || st.Turn != 1 {
		t.Fatalf("state = %q/%q turn %d, want in_progress/planning/1", st.Status, st.Phase, st.Turn)
	}
	if st.Enemy.HP != 25 || st.Enemy.MaxHP != 25 {
		t.Fatalf("enemy hp = %d/%d, want 25/25 from unit sum", st.Enemy.HP, st.Enemy.MaxHP)
	}
	if rec.ActionDeadline.IsZero() {
		t.Fatalf("action deadline not set")
	}
}

func TestSubmitTurnCommitsBothSides(t *testing.T) {
	repo := newMockRepo()
	newTestBattle(t, repo)

	rec, err := SubmitTurn(repo, testDeps(), "abc123", "p@e.com", []string{"lunge", "cut"}, time.Minute)
	if err != nil {
		t.Fatalf("SubmitTurn: %v", err)
	}
	st := rec.State
	if st.Phase != game.PhaseResolving {
		t.Fatalf("phase = %q, want resolving", st.Phase)
	}
	playerItems, enemyItems := 0, 0
	for _, q := range st.Queue {
		if q.Side == game.SidePlayer {
			playerItems++
		} else {
			enemyItems++
		}
	}
	if playerItems != 2 {
		t.Fatalf("player items = %d, want 2", playerItems)
	}
	if enemyItems == 0 {
		t.Fatalf("enemy planned no cards")
	}
	if repo.updated == nil {
		t.Fatalf("battle not persisted")
	}
}

func TestSubmitTurnValidation(t *testing.T) {
	cases := []struct {
		name    string
		cards   []string
		prep    func(rec *game.BattleRecord)
		owner   string
		wantErr error
	}{
		{"unknown card", []string{"fireball"}, nil, "p@e.com", ErrUnknownCard},
		{"enemy-only card", []string{"slash"}, nil, "p@e.com", ErrCardNotAvailable},
		{"vanished card", []string{"lunge"}, func(rec *game.BattleRecord) {
			rec.State.VanishedCardIDs = []string{"lunge"}
		}, "p@e.com", ErrCardNotAvailable},
		{"speed budget", []string{"lunge"}, func(rec *game.BattleRecord) {
			rec.State.Player.Speed = 3
		}, "p@e.com", ErrBudgetExceeded},
		{"energy budget", []string{"lunge", "cut"}, func(rec *game.BattleRecord) {
			rec.State.Player.Energy = 1
		}, "p@e.com", ErrBudgetExceeded},
		{"missing tokens", []string{"coup"}, nil, "p@e.com", ErrMissingTokens},
		{"wrong owner", []string{"lunge"}, nil, "other@e.com", ErrNotBattleOwner},
		{"locked while resolving", []string{"lunge"}, func(rec *game.BattleRecord) {
			rec.State.Phase = game.PhaseResolving
		}, "p@e.com", ErrActionsLocked},
		{"choice pending", []string{"lunge"}, func(rec *game.BattleRecord) {
			rec.State.Phase = game.PhaseAwaitingChoice
			rec.State.PendingChoice = &game.ChoiceRequest{Side: game.SidePlayer}
		}, "p@e.com", ErrChoicePending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMockRepo()
			rec := newTestBattle(t, repo)
			if tc.prep != nil {
				tc.prep(rec)
			}
			if _, err := SubmitTurn(repo, testDeps(), "abc123", tc.owner, tc.cards, time.Minute); err != tc.wantErr {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSubmitTurnAcceptsTokenCostWhenPresent(t *testing.T) {
	repo := newMockRepo()
	rec := newTestBattle(t, repo)
	rec.State.Player.Tokens = []game.Token{{ID: "tempo", Stacks: 2, Lifetime: game.LifetimeTurn, GrantedAtTurn: 1}}

	if _, err := SubmitTurn(repo, testDeps(), "abc123", "p@e.com", []string{"coup"}, time.Minute); err != nil {
		t.Fatalf("SubmitTurn: %v", err)
	}
}

func TestSelectTargetValidatesUnit(t *testing.T) {
	repo := newMockRepo()
	newTestBattle(t, repo)

	if _, err := SelectTarget(repo, "abc123", "p@e.com", "tail"); err != ErrUnknownUnit {
		t.Fatalf("err = %v, want ErrUnknownUnit", err)
	}
	rec, err := SelectTarget(repo, "abc123", "p@e.com", "off")
	if err != nil {
		t.Fatalf("SelectTarget: %v", err)
	}
	if rec.State.SelectedUnitID != "off" {
		t.Fatalf("selected unit = %q, want off", rec.State.SelectedUnitID)
	}
}

func TestEndBattleCountsLossOnce(t *testing.T) {
	repo := newMockRepo()
	newTestBattle(t, repo)

	rec, err := EndBattle(repo, "abc123", "p@e.com")
	if err != nil {
		t.Fatalf("EndBattle: %v", err)
	}
	if rec.State.Winner != string(game.SideEnemy) || rec.State.Status != game.StatusFinished {
		t.Fatalf("winner=%q status=%q, want enemy/finished", rec.State.Winner, rec.State.Status)
	}
	if !repo.statsCalled || !rec.StatsCounted {
		t.Fatalf("stats not counted on resignation")
	}
	if _, err := EndBattle(repo, "abc123", "p@e.com"); err != ErrBattleFinished {
		t.Fatalf("second end: err = %v, want ErrBattleFinished", err)
	}
}

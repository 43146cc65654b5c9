package game

// Side identifies which combatant owns an actor, token or queued action.
type Side string

const (
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// CardType is a string alias for the four card classes. Using a dedicated
// type instead of plain string makes code safer and self-documenting.
type CardType string

const (
	CardTypeAttack  CardType = "attack"
	CardTypeDefense CardType = "defense"
	CardTypeGeneral CardType = "general"
	CardTypeSpecial CardType = "special"
)

// Card categories used by multi-hit and chaining rules.
const (
	CategoryFencing = "fencing"
	CategoryGun     = "gun"
)

// TokenCost describes token stacks consumed when a card is played.
type TokenCost struct {
	TokenID string `json:"token_id"`
	Stacks  int    `json:"stacks"`
}

// Card is an immutable catalog entry. Queued instances may carry the
// transient fields at the bottom, which never exist on catalog entries.
type Card struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Type       CardType   `json:"type"`
	Category   string     `json:"category"`
	Damage     int        `json:"damage"`
	Block      int        `json:"block"`
	Hits       int        `json:"hits"`
	SpeedCost  int        `json:"speed_cost"`
	ActionCost int        `json:"action_cost"`
	EtherGain  int        `json:"ether_gain"`
	Traits     []string   `json:"traits,omitempty"`
	Special    string     `json:"special,omitempty"`
	Required   []TokenCost `json:"required_tokens,omitempty"`
	Rarity     string     `json:"rarity,omitempty"`

	// Per-card overrides for special-rule tunables; zero means the rule's
	// default applies.
	PushAmount    int `json:"push_amount,omitempty"`
	AdvanceAmount int `json:"advance_amount,omitempty"`
	ParryRange    int `json:"parry_range,omitempty"`

	// Transient instance fields.
	IsGhost          bool     `json:"is_ghost,omitempty"`
	TargetUnitID     string   `json:"target_unit_id,omitempty"`
	TargetUnitIDs    []string `json:"target_unit_ids,omitempty"`
	FlecheChainCount int      `json:"fleche_chain_count,omitempty"`
}

// HasTrait reports whether the card carries the given modifier tag.
func (c Card) HasTrait(trait string) bool {
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// Trait tags understood by the resolution pipeline.
const (
	TraitSwift          = "swift"
	TraitMastery        = "mastery"
	TraitVanish         = "vanish"
	TraitPiercing       = "piercing"
	TraitAOE            = "aoe"
	TraitSingleRoulette = "singleRoulette"
)

// Named special rules. Every value a catalog entry may carry must be listed
// here so config validation can reject typos before a battle ever starts.
const (
	SpecialBreach             = "breach"
	SpecialGrowingDefense     = "growingDefense"
	SpecialParryPush          = "parryPush"
	SpecialPushEnemyTimeline  = "pushEnemyTimeline"
	SpecialCreateAttackOnHit  = "createAttackOnHit"
	SpecialDestroyOnCollision = "destroyOnCollision"
	SpecialAdvanceTimeline    = "advanceTimeline"
	SpecialBeatEffect         = "beatEffect"
	SpecialPushLastEnemyCard  = "pushLastEnemyCard"
	SpecialChainOnFencing     = "chainOnFencing"
	SpecialWarmup             = "warmup"
	SpecialTraining           = "training"
	SpecialDoubleEdge         = "double_edge"
	SpecialStun               = "stun"
	SpecialCreateFencing3     = "createFencingCards3"
)

var knownSpecials = map[string]bool{
	SpecialBreach:             true,
	SpecialGrowingDefense:     true,
	SpecialParryPush:          true,
	SpecialPushEnemyTimeline:  true,
	SpecialCreateAttackOnHit:  true,
	SpecialDestroyOnCollision: true,
	SpecialAdvanceTimeline:    true,
	SpecialBeatEffect:         true,
	SpecialPushLastEnemyCard:  true,
	SpecialChainOnFencing:     true,
	SpecialWarmup:             true,
	SpecialTraining:           true,
	SpecialDoubleEdge:         true,
	SpecialStun:               true,
	SpecialCreateFencing3:     true,
}

// KnownSpecial reports whether the engine implements the named special rule.
func KnownSpecial(name string) bool { return knownSpecials[name] }

// TokenLifetime classifies how a token expires.
type TokenLifetime string

const (
	LifetimePermanent TokenLifetime = "permanent"
	LifetimeTurn      TokenLifetime = "turn"
	LifetimeUsage     TokenLifetime = "usage"
)

// TokenEffect is the machine-readable payload of a token (e.g. BURN value).
type TokenEffect struct {
	Type  string `json:"type,omitempty"`
	Value int    `json:"value,omitempty"`
}

// Well-known token ids and effect types.
const (
	TokenRoulette    = "roulette"
	TokenGunJam      = "gun_jam"
	TokenJamImmunity = "jam_immunity"
	TokenEtherBan    = "ether_ban"
	TokenRevive      = "revive_charm"

	EffectBurn = "BURN"
)

// Token is a stacking buff/debuff attached to an actor or unit.
type Token struct {
	ID            string        `json:"id"`
	Stacks        int           `json:"stacks"`
	Lifetime      TokenLifetime `json:"lifetime"`
	Effect        TokenEffect   `json:"effect,omitempty"`
	GrantedAtTurn int           `json:"granted_at_turn"`
	GrantedAtSP   int           `json:"granted_at_sp"`
}

// Unit is a sub-actor of a composite enemy.
type Unit struct {
	UnitID string  `json:"unit_id"`
	Name   string  `json:"name"`
	HP     int     `json:"hp"`
	MaxHP  int     `json:"max_hp"`
	Block  int     `json:"block"`
	Tokens []Token `json:"tokens,omitempty"`
}

// Alive reports whether the unit still fights.
func (u *Unit) Alive() bool { return u.HP > 0 }

// Actor is one side of a battle. It is owned exclusively by the turn in
// progress; the economy step resets it at turn boundaries.
type Actor struct {
	Name      string  `json:"name"`
	Side      Side    `json:"side"`
	HP        int     `json:"hp"`
	MaxHP     int     `json:"max_hp"`
	Block     int     `json:"block"`
	Strength  int     `json:"strength"`
	Energy    int     `json:"energy"`
	MaxEnergy int     `json:"max_energy"`
	Speed     int     `json:"speed"`
	MaxSpeed  int     `json:"max_speed"`
	Tokens    []Token `json:"tokens,omitempty"`
	Units     []Unit  `json:"units,omitempty"`

	EtherTurn    int `json:"ether_turn"`
	EtherPool    int `json:"ether_pool"`
	EtherCap     int `json:"ether_cap"`
	BankedEnergy int `json:"banked_energy"`
}

// Alive reports whether the actor can still act.
func (a *Actor) Alive() bool { return a.HP > 0 }

// Composite reports whether the actor is a multi-unit enemy.
func (a *Actor) Composite() bool { return len(a.Units) > 0 }

// RecomputeHP rederives the aggregate hp of a composite actor from its
// units. Aggregate hp is never decremented independently of the unit array.
func (a *Actor) RecomputeHP() {
	if !a.Composite() {
		return
	}
	total := 0
	for i := range a.Units {
		if a.Units[i].HP > 0 {
			total += a.Units[i].HP
		}
	}
	a.HP = total
}

// FirstAliveUnit returns the first living unit, or nil.
func (a *Actor) FirstAliveUnit() *Unit {
	for i := range a.Units {
		if a.Units[i].Alive() {
			return &a.Units[i]
		}
	}
	return nil
}

// UnitByID returns the unit with the given id, or nil.
func (a *Actor) UnitByID(id string) *Unit {
	for i := range a.Units {
		if a.Units[i].UnitID == id {
			return &a.Units[i]
		}
	}
	return nil
}

// QueueItem is one committed action on the shared timeline.
type QueueItem struct {
	Side       Side `json:"side"`
	Card       Card `json:"card"`
	SP         int  `json:"sp"`
	HasCrossed bool `json:"has_crossed,omitempty"`
}

// ParryWindow is a timed range established by a parry card. An opposing
// attack landing strictly after CenterSP and at or before MaxSP triggers it.
type ParryWindow struct {
	Side       Side `json:"side"`
	CenterSP   int  `json:"center_sp"`
	MaxSP      int  `json:"max_sp"`
	PushAmount int  `json:"push_amount"`
	Triggered  bool `json:"triggered"`
}

// DefenseRamp tracks a growingDefense activation so the ramp is applied
// exactly once per elapsed timeline unit.
type DefenseRamp struct {
	Side         Side `json:"side"`
	ActivatedSP  int  `json:"activated_sp"`
	TotalApplied int  `json:"total_applied"`
}

// ChoiceRequest is the externally-blocking breach state: resolution halts
// until the player picks one of the offered cards.
type ChoiceRequest struct {
	Side     Side   `json:"side"`
	SourceID string `json:"source_id"`
	AtSP     int    `json:"at_sp"`
	Options  []Card `json:"options"`
}

// Battle status and phase values.
const (
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"

	PhasePlanning       = "planning"
	PhaseResolving      = "resolving"
	PhaseAwaitingChoice = "awaiting_choice"
	PhaseResolved       = "resolved"
)

// BattleState is the complete mutable state of one battle. It is plain data:
// the engine owns all mutation, storage serializes it as a JSON column.
type BattleState struct {
	Player Actor `json:"player"`
	Enemy  Actor `json:"enemy"`

	Queue  []QueueItem `json:"queue"`
	QIndex int         `json:"q_index"`

	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Status  string `json:"status"`
	Winner  string `json:"winner,omitempty"`
	Message string `json:"message,omitempty"`

	ParryWindows  []ParryWindow  `json:"parry_windows,omitempty"`
	DefenseRamps  []DefenseRamp  `json:"defense_ramps,omitempty"`
	PendingChoice *ChoiceRequest `json:"pending_choice,omitempty"`

	PlayerPlayed []Card `json:"player_played,omitempty"`
	EnemyPlayed  []Card `json:"enemy_played,omitempty"`

	// SelectedUnitID is the globally-selected enemy unit used as the
	// single-target fallback when a card names no explicit unit.
	SelectedUnitID string `json:"selected_unit_id,omitempty"`

	// VanishedCardIDs lists cards removed from the player's pool for the
	// rest of the battle by the vanish trait.
	VanishedCardIDs []string `json:"vanished_card_ids,omitempty"`

	LastTurnSummary string `json:"last_turn_summary,omitempty"`
}

// ActorFor returns the actor fighting on the given side.
func (b *BattleState) ActorFor(s Side) *Actor {
	if s == SidePlayer {
		return &b.Player
	}
	return &b.Enemy
}

// Played returns the cards the given side has resolved this turn.
func (b *BattleState) Played(s Side) []Card {
	if s == SidePlayer {
		return b.PlayerPlayed
	}
	return b.EnemyPlayed
}

// RecordPlayed appends a resolved card to the side's per-turn history.
func (b *BattleState) RecordPlayed(s Side, c Card) {
	if s == SidePlayer {
		b.PlayerPlayed = append(b.PlayerPlayed, c)
	} else {
		b.EnemyPlayed = append(b.EnemyPlayed, c)
	}
}

// Vanished reports whether the card id has been removed from the player's
// pool by a vanish effect.
func (b *BattleState) Vanished(cardID string) bool {
	for _, id := range b.VanishedCardIDs {
		if id == cardID {
			return true
		}
	}
	return false
}

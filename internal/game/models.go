package game

import (
	"time"

	"gorm.io/gorm"
)

// CardKind distinguishes battle-eligible vehicle cards from collectible-only
// cards (sponsors, drivers, badges). Only vehicle cards may be dealt.
type CardKind string

const (
	KindVehicle CardKind = "vehicle"
	KindOther   CardKind = "other"
)

// Card is a collectible owned by a user. The three battle stats are
// configured via the server config (gearclash_config.json) and should NOT
// be persisted in the database. Mark them with `gorm:"-"` so GORM ignores
// them for schema/migration purposes while keeping the fields available
// in-memory and in JSON responses.
type Card struct {
	gorm.Model
	Name    string   `json:"name"`
	Kind    CardKind `json:"kind"`
	Rarity  string   `json:"rarity"`
	OwnerID uint     `json:"owner_id" gorm:"index"`

	Power    int `json:"power" gorm:"-"`
	Torque   int `json:"torque" gorm:"-"`
	TopSpeed int `json:"top_speed" gorm:"-"`
}

// Eligible reports whether the card may be dealt into a battle hand.
func (c *Card) Eligible() bool { return c.Kind == KindVehicle }

// User stores player identity and the total XP earned outside this engine
// (missions, purchases). Available XP is always derived as earned minus the
// sum of xp_invested across the user's tuned cars; it is never stored.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	XPEarned int    `json:"xp_earned"`
}

func (User) TableName() string { return "player_profiles" }

// TunedCar is a card enrolled in the tuning mini-game. A card has at most
// one TunedCar per user; xp_invested always equals the sum of the per-stage
// costs paid for the current stages, so removal can refund it exactly.
type TunedCar struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"uniqueIndex:idx_tuned_user_card"`
	CardID uint `json:"card_id" gorm:"uniqueIndex:idx_tuned_user_card"`

	EngineStage int `json:"engine_stage"`
	TurboStage  int `json:"turbo_stage"`
	WeightStage int `json:"weight_stage"`
	XPInvested  int `json:"xp_invested"`
}

func (TunedCar) TableName() string { return "tuned_cars" }

// Stage returns the current stage for the given mod.
func (t *TunedCar) Stage(mod Mod) int {
	switch mod {
	case ModEngine:
		return t.EngineStage
	case ModTurbo:
		return t.TurboStage
	case ModWeightReduction:
		return t.WeightStage
	}
	return 0
}

// SetStage assigns the stage for the given mod.
func (t *TunedCar) SetStage(mod Mod, stage int) {
	switch mod {
	case ModEngine:
		t.EngineStage = stage
	case ModTurbo:
		t.TurboStage = stage
	case ModWeightReduction:
		t.WeightStage = stage
	}
}

// BattleMode selects how a challenge is resolved.
type BattleMode string

const (
	// ModeSlots is the best-of-3 mode: three cards assigned to the three
	// category slots, one round per slot, majority of round wins decides.
	ModeSlots BattleMode = "slots"
	// ModeCategory is the weighted-aggregate mode: one card per side scored
	// against a category's weight triple, higher aggregate wins.
	ModeCategory BattleMode = "category"
)

// ChallengeStatus is the lifecycle state of a challenge.
type ChallengeStatus string

const (
	StatusPending   ChallengeStatus = "pending"
	StatusCompleted ChallengeStatus = "completed"
	StatusDeclined  ChallengeStatus = "declined"
	StatusExpired   ChallengeStatus = "expired"
)

// RewardKind tags how a completed challenge pays out.
type RewardKind string

const (
	// RewardXP credits fixed XP amounts (win/lose/draw) to both sides.
	RewardXP RewardKind = "xp"
	// RewardCardWager transfers the loser's wagered cards to the winner;
	// on a draw the wagers are returned unchanged.
	RewardCardWager RewardKind = "card_wager"
)

// RoundSide identifies who took a round (or the match).
type RoundSide string

const (
	SideChallenger RoundSide = "challenger"
	SideOpponent   RoundSide = "opponent"
	SideDraw       RoundSide = "draw"
)

// Challenge is a proposed or resolved 1v1 contest. OpponentID is nil for an
// open challenge until someone accepts. After creation the status column is
// mutated exactly once: to completed, declined, or expired.
type Challenge struct {
	gorm.Model
	ChallengerID uint            `json:"challenger_id" gorm:"index"`
	OpponentID   *uint           `json:"opponent_id" gorm:"index"`
	Mode         BattleMode      `json:"mode"`
	Category     string          `json:"category"`
	RewardKind   RewardKind      `json:"reward_kind"`
	Status       ChallengeStatus `json:"status" gorm:"index"`
	ExpiresAt    time.Time       `json:"expires_at"`

	// Slot-mode assignment (three cards per side). Opponent columns stay 0
	// until acceptance.
	ChallengerPowerCardID  uint `json:"challenger_power_card_id"`
	ChallengerTorqueCardID uint `json:"challenger_torque_card_id"`
	ChallengerSpeedCardID  uint `json:"challenger_speed_card_id"`
	OpponentPowerCardID    uint `json:"opponent_power_card_id"`
	OpponentTorqueCardID   uint `json:"opponent_torque_card_id"`
	OpponentSpeedCardID    uint `json:"opponent_speed_card_id"`

	// Category-mode assignment (one card per side).
	ChallengerCardID uint `json:"challenger_card_id"`
	OpponentCardID   uint `json:"opponent_card_id"`

	// Resolution. Scores are round-win counts in slot mode and weighted
	// aggregate scores in category mode. WinnerID is nil on a draw.
	Rounds          []RoundResult `json:"rounds"`
	ChallengerScore float64       `json:"challenger_score"`
	OpponentScore   float64       `json:"opponent_score"`
	WinnerID        *uint         `json:"winner_id"`
}

// Open reports whether the challenge has no fixed opponent.
func (c *Challenge) Open() bool { return c.OpponentID == nil }

// ChallengerCardIDs returns every card the challenger staked, whichever
// mode the challenge uses.
func (c *Challenge) ChallengerCardIDs() []uint {
	if c.Mode == ModeCategory {
		return []uint{c.ChallengerCardID}
	}
	return []uint{c.ChallengerPowerCardID, c.ChallengerTorqueCardID, c.ChallengerSpeedCardID}
}

// RoundResult records one slot comparison of a resolved slot-mode challenge.
type RoundResult struct {
	gorm.Model
	ChallengeID uint `json:"-" gorm:"index"`

	Slot             Slot      `json:"slot"`
	ChallengerCardID uint      `json:"challenger_card_id"`
	ChallengerValue  int       `json:"challenger_value"`
	OpponentCardID   uint      `json:"opponent_card_id"`
	OpponentValue    int       `json:"opponent_value"`
	Winner           RoundSide `json:"winner"`
}

// DealtHand is a server-committed random sample of a user's eligible cards.
// The hand is persisted before it is revealed so retrying the deal request
// returns the same cards instead of re-rolling. The three card IDs are
// stored in separate columns so queries can use explicit constraints.
type DealtHand struct {
	gorm.Model
	UserID  uint   `json:"user_id" gorm:"index"`
	HandKey string `json:"hand_key" gorm:"uniqueIndex"`

	Card1ID uint `json:"card1_id"`
	Card2ID uint `json:"card2_id"`
	Card3ID uint `json:"card3_id"`

	// Consumed is set when the hand is spent on a challenge (create or
	// accept); a user has at most one open hand at a time.
	Consumed bool `json:"consumed"`
}

func (DealtHand) TableName() string { return "dealt_hands" }

// CardIDs returns the dealt card IDs in deal order.
func (h *DealtHand) CardIDs() []uint {
	return []uint{h.Card1ID, h.Card2ID, h.Card3ID}
}

// Contains reports whether the hand includes the given card.
func (h *DealtHand) Contains(cardID uint) bool {
	return cardID == h.Card1ID || cardID == h.Card2ID || cardID == h.Card3ID
}

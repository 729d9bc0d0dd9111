package service

import (
	"time"

	"github.com/gearclash/gearclash/internal/engine"
	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/notify"
)

// CreateChallengeRequest is the validated input for challenge creation.
// OpponentID nil posts an open challenge anyone may accept. Assignment is
// used in slot mode, CardID in category mode.
type CreateChallengeRequest struct {
	ChallengerID uint
	OpponentID   *uint
	Mode         game.BattleMode
	Category     string
	RewardKind   game.RewardKind
	Assignment   engine.SlotAssignment
	CardID       uint
}

// CreateChallenge validates the challenger's layout, enforces the sliding
// weekly creation cap and persists a pending challenge. Slot mode consumes
// the challenger's open dealt hand.
func CreateChallenge(repo ChallengeRepo, settings Settings, req CreateChallengeRequest, notifier notify.Notifier) (*game.Challenge, error) {
	if req.OpponentID != nil && *req.OpponentID == req.ChallengerID {
		return nil, ErrSelfChallenge
	}

	rewardKind := req.RewardKind
	if rewardKind == "" {
		rewardKind = game.RewardXP
	}
	if rewardKind != game.RewardXP && rewardKind != game.RewardCardWager {
		return nil, ErrInvalidRewardKind
	}

	// Sliding window, not calendar-aligned: a challenge created 8 days ago
	// no longer counts.
	now := time.Now()
	count, err := repo.CountChallengesCreatedSince(req.ChallengerID, now.Add(-settings.RateWindow))
	if err != nil {
		return nil, err
	}
	if count >= int64(settings.WeeklyChallengeCap) {
		return nil, game.ErrRateLimited
	}

	ch := &game.Challenge{
		ChallengerID: req.ChallengerID,
		OpponentID:   req.OpponentID,
		Mode:         req.Mode,
		RewardKind:   rewardKind,
		Status:       game.StatusPending,
		ExpiresAt:    now.Add(settings.ChallengeTTL),
	}

	switch req.Mode {
	case game.ModeSlots:
		hand, err := repo.GetOpenHand(req.ChallengerID)
		if err != nil {
			return nil, err
		}
		if hand == nil {
			return nil, ErrNoOpenHand
		}
		if err := req.Assignment.Validate(hand.CardIDs()); err != nil {
			return nil, err
		}
		if _, err := loadSide(repo, req.ChallengerID, req.Assignment); err != nil {
			return nil, err
		}
		ch.ChallengerPowerCardID = req.Assignment[game.SlotPower]
		ch.ChallengerTorqueCardID = req.Assignment[game.SlotTorque]
		ch.ChallengerSpeedCardID = req.Assignment[game.SlotSpeed]
		if err := repo.ConsumeHand(hand.ID); err != nil {
			return nil, err
		}

	case game.ModeCategory:
		cat, ok := settings.categoryByName(req.Category)
		if !ok {
			return nil, ErrUnknownCategory
		}
		ch.Category = cat.Name
		if _, err := loadContestant(repo, req.ChallengerID, req.CardID); err != nil {
			return nil, err
		}
		ch.ChallengerCardID = req.CardID

	default:
		return nil, ErrInvalidMode
	}

	if err := repo.CreateChallenge(ch); err != nil {
		return nil, err
	}

	if req.OpponentID != nil {
		notify.Async(notifier, *req.OpponentID, notify.TemplateChallengeReceived, map[string]interface{}{
			"challenge_id":  ch.ID,
			"challenger_id": ch.ChallengerID,
		})
	}
	return ch, nil
}

package service

import (
	"time"

	"github.com/gearclash/gearclash/internal/engine"
	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/notify"
)

// AcceptChallengeRequest is the acceptor's counter-layout: a full slot
// assignment in slot mode, or a single chosen card in category mode.
type AcceptChallengeRequest struct {
	AcceptorID uint
	Assignment engine.SlotAssignment
	CardID     uint
}

// AcceptChallenge resolves a pending challenge against the acceptor's
// counter-assignment. Resolution is computed first (pure), then committed
// through the repository's pending->completed compare-and-swap: of two
// concurrent accepts exactly one wins and the other gets ErrAlreadyResolved.
// Every referenced card's ownership is re-validated here, so a card traded
// away since dealing fails with ErrCardNoLongerOwned.
func AcceptChallenge(repo ChallengeRepo, settings Settings, challengeID uint, req AcceptChallengeRequest, notifier notify.Notifier) (*game.Challenge, error) {
	ch, err := repo.GetChallengeByID(challengeID)
	if err != nil {
		return nil, err
	}
	switch ch.Status {
	case game.StatusPending:
	case game.StatusExpired:
		return nil, game.ErrChallengeExpired
	default:
		return nil, game.ErrAlreadyResolved
	}
	// Lazy expiry: never trust the stored status alone.
	if time.Now().After(ch.ExpiresAt) {
		_ = repo.MarkChallengeStatus(ch.ID, game.StatusPending, game.StatusExpired)
		return nil, game.ErrChallengeExpired
	}
	if ch.ChallengerID == req.AcceptorID {
		return nil, ErrOwnChallenge
	}
	if !ch.Open() && *ch.OpponentID != req.AcceptorID {
		return nil, ErrNotChallenged
	}

	var (
		acceptorHand  *game.DealtHand
		opponentCards []uint
	)

	switch ch.Mode {
	case game.ModeSlots:
		acceptorHand, err = repo.GetOpenHand(req.AcceptorID)
		if err != nil {
			return nil, err
		}
		if acceptorHand == nil {
			return nil, ErrNoOpenHand
		}
		if err := req.Assignment.Validate(acceptorHand.CardIDs()); err != nil {
			return nil, err
		}

		challengerAssignment := engine.SlotAssignment{
			game.SlotPower:  ch.ChallengerPowerCardID,
			game.SlotTorque: ch.ChallengerTorqueCardID,
			game.SlotSpeed:  ch.ChallengerSpeedCardID,
		}
		challengerSide, err := loadSide(repo, ch.ChallengerID, challengerAssignment)
		if err != nil {
			return nil, err
		}
		acceptorSide, err := loadSide(repo, req.AcceptorID, req.Assignment)
		if err != nil {
			return nil, err
		}

		out := engine.ResolveSlots(settings.Catalog, challengerSide, acceptorSide)
		ch.Rounds = out.Rounds
		ch.ChallengerScore = float64(out.ChallengerWins)
		ch.OpponentScore = float64(out.OpponentWins)
		ch.WinnerID = sideToUser(out.Winner, ch.ChallengerID, req.AcceptorID)
		ch.OpponentPowerCardID = req.Assignment[game.SlotPower]
		ch.OpponentTorqueCardID = req.Assignment[game.SlotTorque]
		ch.OpponentSpeedCardID = req.Assignment[game.SlotSpeed]
		opponentCards = []uint{ch.OpponentPowerCardID, ch.OpponentTorqueCardID, ch.OpponentSpeedCardID}

	case game.ModeCategory:
		cat, ok := settings.categoryByName(ch.Category)
		if !ok {
			return nil, ErrUnknownCategory
		}
		challenger, err := loadContestant(repo, ch.ChallengerID, ch.ChallengerCardID)
		if err != nil {
			return nil, err
		}
		acceptor, err := loadContestant(repo, req.AcceptorID, req.CardID)
		if err != nil {
			return nil, err
		}

		out := engine.ResolveCategory(settings.Catalog, cat, challenger, acceptor)
		ch.ChallengerScore = out.ChallengerScore
		ch.OpponentScore = out.OpponentScore
		ch.WinnerID = sideToUser(out.Winner, ch.ChallengerID, req.AcceptorID)
		ch.OpponentCardID = req.CardID
		opponentCards = []uint{req.CardID}

	default:
		return nil, ErrInvalidMode
	}

	acceptorID := req.AcceptorID
	ch.OpponentID = &acceptorID

	alloc := Allocate(settings.rewardMode(ch.RewardKind),
		ch.ChallengerID, acceptorID, ch.WinnerID,
		ch.ChallengerCardIDs(), opponentCards)

	if err := repo.CompleteChallenge(ch, alloc.Credits, alloc.Transfers); err != nil {
		return nil, err
	}
	ch.Status = game.StatusCompleted

	if acceptorHand != nil {
		// The hand is spent; a failure here only delays the next deal.
		_ = repo.ConsumeHand(acceptorHand.ID)
	}

	payload := map[string]interface{}{"challenge_id": ch.ID}
	if ch.WinnerID != nil {
		payload["winner_id"] = *ch.WinnerID
	}
	notify.Async(notifier, ch.ChallengerID, notify.TemplateChallengeResolved, payload)
	notify.Async(notifier, acceptorID, notify.TemplateChallengeResolved, payload)
	return ch, nil
}

func sideToUser(side game.RoundSide, challengerID, opponentID uint) *uint {
	switch side {
	case game.SideChallenger:
		return &challengerID
	case game.SideOpponent:
		return &opponentID
	}
	return nil
}

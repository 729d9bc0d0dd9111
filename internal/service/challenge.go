package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gearclash/gearclash/internal/engine"
	"github.com/gearclash/gearclash/internal/game"
)

var (
	ErrNoOpenHand        = errors.New("no dealt hand; deal a hand first")
	ErrUnknownCategory   = errors.New("unknown battle category")
	ErrInvalidMode       = errors.New("unknown battle mode")
	ErrOwnChallenge      = errors.New("cannot accept your own challenge")
	ErrNotChallenged     = errors.New("challenge is addressed to another player")
	ErrSelfChallenge     = errors.New("cannot challenge yourself")
	ErrInvalidRewardKind = errors.New("unknown reward kind")
)

// ChallengeRepo is the repository interface required by the challenge
// lifecycle. Kept small so tests can drive it with an in-memory mock.
type ChallengeRepo interface {
	GetChallengeByID(id uint) (*game.Challenge, error)
	CreateChallenge(ch *game.Challenge) error
	CountChallengesCreatedSince(userID uint, since time.Time) (int64, error)
	GetCardsByIDs(ids []uint) ([]game.Card, error)
	GetOpenHand(userID uint) (*game.DealtHand, error)
	ConsumeHand(handID uint) error
	GetTunedCarForCard(userID, cardID uint) (*game.TunedCar, error)
	CompleteChallenge(ch *game.Challenge, credits []game.XPCredit, transfers []game.CardTransfer) error
	MarkChallengeStatus(id uint, from, to game.ChallengeStatus) error
}

// Settings carries the injected balance/policy knobs consumed by the
// lifecycle. Built from config at startup; tests construct alternates.
type Settings struct {
	Catalog    *game.ModCatalog
	Categories []game.Category

	WinXP  int
	LoseXP int
	DrawXP int

	WeeklyChallengeCap int
	RateWindow         time.Duration
	ChallengeTTL       time.Duration
}

func (s Settings) rewardMode(kind game.RewardKind) RewardMode {
	return RewardMode{Kind: kind, WinXP: s.WinXP, LoseXP: s.LoseXP, DrawXP: s.DrawXP}
}

func (s Settings) categoryByName(name string) (game.Category, bool) {
	for _, cat := range s.Categories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return game.Category{}, false
}

// GetChallenge reads a challenge, surfacing lazy expiry: an overdue row
// still stored as pending is returned (and best-effort persisted) as
// expired, so no caller ever trusts the stored status alone.
func GetChallenge(repo ChallengeRepo, id uint) (*game.Challenge, error) {
	ch, err := repo.GetChallengeByID(id)
	if err != nil {
		return nil, err
	}
	if ch.Status == game.StatusPending && time.Now().After(ch.ExpiresAt) {
		_ = repo.MarkChallengeStatus(ch.ID, game.StatusPending, game.StatusExpired)
		ch.Status = game.StatusExpired
	}
	return ch, nil
}

// loadContestant fetches a card, re-validates its ownership at call time
// and attaches the owner's tuning state when the card is tuned.
func loadContestant(repo ChallengeRepo, ownerID, cardID uint) (engine.Contestant, error) {
	cards, err := repo.GetCardsByIDs([]uint{cardID})
	if err != nil {
		return engine.Contestant{}, err
	}
	if len(cards) != 1 || cards[0].OwnerID != ownerID || !cards[0].Eligible() {
		return engine.Contestant{}, game.ErrCardNoLongerOwned
	}
	c := engine.Contestant{Card: cards[0]}
	tc, err := repo.GetTunedCarForCard(ownerID, cardID)
	if err != nil && !errors.Is(err, game.ErrNotFound) {
		return engine.Contestant{}, err
	}
	if err == nil {
		c.Tuned = tc
	}
	return c, nil
}

// loadSide builds the per-slot contestants for one side of a slot-mode
// challenge.
func loadSide(repo ChallengeRepo, ownerID uint, assignment engine.SlotAssignment) (map[game.Slot]engine.Contestant, error) {
	side := make(map[game.Slot]engine.Contestant, len(game.Slots))
	for _, slot := range game.Slots {
		c, err := loadContestant(repo, ownerID, assignment[slot])
		if err != nil {
			return nil, err
		}
		side[slot] = c
	}
	return side, nil
}

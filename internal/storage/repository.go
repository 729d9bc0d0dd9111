package storage

import (
	"time"

	"github.com/gearclash/gearclash/internal/game"
)

type Repository interface {
	// Users and balances. Available XP is always derived (earned minus the
	// sum of xp_invested across tuned cars), never cached.
	GetUserByID(id uint) (*game.User, error)
	UpsertUser(email, name string) (*game.User, error)
	CreditXP(userID uint, amount int) error
	AvailableXP(userID uint) (earned, invested int, err error)

	// Cards. ListEligibleCards returns the user's vehicle-kind cards with
	// stats filled from config.
	ListEligibleCards(userID uint) ([]game.Card, error)
	GetCardsByIDs(ids []uint) ([]game.Card, error)

	// Tuning. ApplyUpgrade runs the cost check and the stage commit inside
	// one transaction so concurrent upgrades cannot overspend a balance.
	GetTunedCarByID(id uint) (*game.TunedCar, error)
	GetTunedCarForCard(userID, cardID uint) (*game.TunedCar, error)
	ListTunedCars(userID uint) ([]game.TunedCar, error)
	CreateTunedCar(tc *game.TunedCar) error
	RemoveTunedCar(tc *game.TunedCar) error
	ApplyUpgrade(tunedCarID uint, mod game.Mod, catalog *game.ModCatalog) (*game.TunedCar, error)

	// Dealt hands. A user has at most one open hand; GetOpenHand returns
	// (nil, nil) when there is none.
	GetOpenHand(userID uint) (*game.DealtHand, error)
	CreateHand(h *game.DealtHand) error
	ConsumeHand(handID uint) error

	// Challenges. CompleteChallenge performs the pending->completed
	// compare-and-swap and applies reward deltas in the same transaction;
	// MarkChallengeStatus is the CAS used for decline and expiry.
	CreateChallenge(ch *game.Challenge) error
	GetChallengeByID(id uint) (*game.Challenge, error)
	ListOpenChallenges(now time.Time) ([]game.Challenge, error)
	ListChallengesForUser(userID uint) ([]game.Challenge, error)
	CountChallengesCreatedSince(userID uint, since time.Time) (int64, error)
	CompleteChallenge(ch *game.Challenge, credits []game.XPCredit, transfers []game.CardTransfer) error
	MarkChallengeStatus(id uint, from, to game.ChallengeStatus) error
	ExpireOverdueChallenges(now time.Time) (int64, error)
}

package service

import (
	"errors"

	"github.com/gearclash/gearclash/internal/game"
)

var (
	ErrCardNotOwned    = errors.New("card does not belong to this player")
	ErrCardNotEligible = errors.New("only vehicle cards can be tuned")
)

// TuningRepo is the minimal repository interface required by the tuning
// ledger operations.
type TuningRepo interface {
	GetCardsByIDs(ids []uint) ([]game.Card, error)
	GetTunedCarByID(id uint) (*game.TunedCar, error)
	ListTunedCars(userID uint) ([]game.TunedCar, error)
	CreateTunedCar(tc *game.TunedCar) error
	RemoveTunedCar(tc *game.TunedCar) error
	ApplyUpgrade(tunedCarID uint, mod game.Mod, catalog *game.ModCatalog) (*game.TunedCar, error)
	AvailableXP(userID uint) (earned, invested int, err error)
}

// AddTunedCar enrolls a card in tuning with all stages at zero. The card
// must exist, belong to the caller and be a vehicle.
func AddTunedCar(repo TuningRepo, userID, cardID uint) (*game.TunedCar, error) {
	cards, err := repo.GetCardsByIDs([]uint{cardID})
	if err != nil {
		return nil, err
	}
	if len(cards) != 1 {
		return nil, game.ErrNotFound
	}
	if cards[0].OwnerID != userID {
		return nil, ErrCardNotOwned
	}
	if !cards[0].Eligible() {
		return nil, ErrCardNotEligible
	}

	tc := &game.TunedCar{UserID: userID, CardID: cardID}
	if err := repo.CreateTunedCar(tc); err != nil {
		return nil, err
	}
	return tc, nil
}

// RemoveTunedCar deletes the tuned car and reports the refunded amount.
// The balance is derived (earned minus invested), so deleting the row IS
// the refund: the invested sum drops and the available XP rises by exactly
// xp_invested. No earned-XP credit happens here.
func RemoveTunedCar(repo TuningRepo, userID, tunedCarID uint) (refund int, err error) {
	tc, err := repo.GetTunedCarByID(tunedCarID)
	if err != nil {
		return 0, err
	}
	if tc.UserID != userID {
		return 0, game.ErrNotFound
	}
	if err := repo.RemoveTunedCar(tc); err != nil {
		return 0, err
	}
	return tc.XPInvested, nil
}

// UpgradeTunedCar advances one mod by one stage. The cost check and the
// commit run atomically in the repository (see Repository.ApplyUpgrade);
// this function only verifies ownership and delegates.
func UpgradeTunedCar(repo TuningRepo, catalog *game.ModCatalog, userID, tunedCarID uint, mod game.Mod) (*game.TunedCar, error) {
	tc, err := repo.GetTunedCarByID(tunedCarID)
	if err != nil {
		return nil, err
	}
	if tc.UserID != userID {
		return nil, game.ErrNotFound
	}
	return repo.ApplyUpgrade(tunedCarID, mod, catalog)
}

// Balance reports a user's XP position: earned, invested and available.
func Balance(repo TuningRepo, userID uint) (earned, invested, available int, err error) {
	earned, invested, err = repo.AvailableXP(userID)
	if err != nil {
		return 0, 0, 0, err
	}
	return earned, invested, earned - invested, nil
}

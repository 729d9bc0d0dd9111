package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gearclash/gearclash/internal/dedupe"
	"github.com/gearclash/gearclash/internal/engine"
	"github.com/gearclash/gearclash/internal/game"

	"github.com/google/uuid"
)

// DealRepo is the minimal repository interface required by hand dealing.
// Using a small interface simplifies testing.
type DealRepo interface {
	ListEligibleCards(userID uint) ([]game.Card, error)
	GetCardsByIDs(ids []uint) ([]game.Card, error)
	GetOpenHand(userID uint) (*game.DealtHand, error)
	CreateHand(h *game.DealtHand) error
}

// DealHand returns the user's open hand, dealing a fresh one only when none
// exists. The hand is committed to storage before it is returned, so a
// client retrying the request gets the same cards back instead of a
// re-roll; concurrent requests for the same user are collapsed by
// singleflight onto one deal.
func DealHand(repo DealRepo, userID uint) (*game.DealtHand, []game.Card, error) {
	v, err, _ := dedupe.DealGroup.Do(fmt.Sprintf("deal:%d", userID), func() (interface{}, error) {
		if h, err := repo.GetOpenHand(userID); err != nil {
			return nil, err
		} else if h != nil {
			return h, nil
		}

		collection, err := repo.ListEligibleCards(userID)
		if err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		cards, err := engine.Deal(collection, engine.HandSize, rng)
		if err != nil {
			return nil, err
		}
		h := &game.DealtHand{
			UserID:  userID,
			HandKey: uuid.NewString(),
			Card1ID: cards[0].ID,
			Card2ID: cards[1].ID,
			Card3ID: cards[2].ID,
		}
		if err := repo.CreateHand(h); err != nil {
			return nil, err
		}
		return h, nil
	})
	if err != nil {
		return nil, nil, err
	}
	hand := v.(*game.DealtHand)
	cards, err := repo.GetCardsByIDs(hand.CardIDs())
	if err != nil {
		return nil, nil, err
	}
	return hand, cards, nil
}

// OpenHand is the idempotent read of an already-dealt hand. It never deals.
func OpenHand(repo DealRepo, userID uint) (*game.DealtHand, []game.Card, error) {
	h, err := repo.GetOpenHand(userID)
	if err != nil {
		return nil, nil, err
	}
	if h == nil {
		return nil, nil, game.ErrNotFound
	}
	cards, err := repo.GetCardsByIDs(h.CardIDs())
	if err != nil {
		return nil, nil, err
	}
	return h, cards, nil
}

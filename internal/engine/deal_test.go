package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/gearclash/gearclash/internal/game"
)

func TestDeal_DistinctEligibleCards(t *testing.T) {
	collection := []game.Card{
		car(1, 100, 100, 100),
		car(2, 100, 100, 100),
		car(3, 100, 100, 100),
		car(4, 100, 100, 100),
	}
	// Non-vehicle cards are never dealt.
	sponsor := game.Card{Kind: game.KindOther}
	sponsor.ID = 99
	collection = append(collection, sponsor)

	rng := rand.New(rand.NewSource(7))
	hand, err := Deal(collection, HandSize, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hand) != HandSize {
		t.Fatalf("expected %d cards, got %d", HandSize, len(hand))
	}
	seen := map[uint]bool{}
	for _, c := range hand {
		if c.ID == 99 {
			t.Fatalf("ineligible card was dealt")
		}
		if seen[c.ID] {
			t.Fatalf("card %d dealt twice", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestDeal_InsufficientCards(t *testing.T) {
	collection := []game.Card{car(1, 100, 100, 100), car(2, 100, 100, 100)}
	rng := rand.New(rand.NewSource(1))
	if _, err := Deal(collection, HandSize, rng); !errors.Is(err, game.ErrInsufficientCards) {
		t.Fatalf("expected ErrInsufficientCards, got %v", err)
	}
}

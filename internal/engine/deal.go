package engine

import (
	"math/rand"

	"github.com/gearclash/gearclash/internal/game"
)

// HandSize is the number of cards dealt for one battle side.
const HandSize = 3

// Deal draws count distinct cards uniformly at random, without replacement,
// from the battle-eligible subset of the collection. The draw itself is
// pure sampling; committing the result before revealing it to the client is
// the service layer's job.
func Deal(collection []game.Card, count int, rng *rand.Rand) ([]game.Card, error) {
	eligible := make([]game.Card, 0, len(collection))
	for _, c := range collection {
		if c.Eligible() {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) < count {
		return nil, game.ErrInsufficientCards
	}
	rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	return eligible[:count], nil
}

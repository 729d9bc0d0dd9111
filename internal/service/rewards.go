package service

import "github.com/gearclash/gearclash/internal/game"

// RewardMode is the tagged payout variant for a resolved challenge. The XP
// amounts are policy knobs injected from config; the orderings (winner
// strictly better than loser, symmetric draw) are enforced at config load.
type RewardMode struct {
	Kind   game.RewardKind
	WinXP  int
	LoseXP int
	DrawXP int
}

// Allocation is the set of deltas a resolved challenge produces. The
// persistence layer applies it in the same transaction as the completion.
type Allocation struct {
	Credits   []game.XPCredit
	Transfers []game.CardTransfer
}

// Allocate translates an outcome into deltas. challengerCards and
// opponentCards are the wagered card IDs of each side (only used in
// card-wager mode).
func Allocate(mode RewardMode, challengerID, opponentID uint, winnerID *uint, challengerCards, opponentCards []uint) Allocation {
	var out Allocation

	if winnerID == nil {
		// Draw: both sides get the draw amount and wagers stay where they are.
		out.Credits = []game.XPCredit{
			{UserID: challengerID, Amount: mode.DrawXP},
			{UserID: opponentID, Amount: mode.DrawXP},
		}
		return out
	}

	loserID := challengerID
	loserCards := challengerCards
	if *winnerID == challengerID {
		loserID = opponentID
		loserCards = opponentCards
	}

	out.Credits = append(out.Credits, game.XPCredit{UserID: *winnerID, Amount: mode.WinXP})
	switch mode.Kind {
	case game.RewardCardWager:
		// The loser's wagered cards move to the winner; no consolation XP.
		for _, cardID := range loserCards {
			out.Transfers = append(out.Transfers, game.CardTransfer{
				CardID:     cardID,
				FromUserID: loserID,
				ToUserID:   *winnerID,
			})
		}
	default:
		out.Credits = append(out.Credits, game.XPCredit{UserID: loserID, Amount: mode.LoseXP})
	}
	return out
}

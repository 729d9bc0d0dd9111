package engine

import "github.com/gearclash/gearclash/internal/game"

// SlotOutcome is the full result of a best-of-3 resolution.
type SlotOutcome struct {
	Rounds         []game.RoundResult
	ChallengerWins int
	OpponentWins   int
	Winner         game.RoundSide
}

// ResolveSlots compares one stat per slot between the two sides and
// aggregates the three rounds with a majority rule. Each round counts
// equally; a higher effective stat wins the round and equal values draw.
// The side with strictly more round wins takes the match, anything else is
// a draw.
func ResolveSlots(catalog *game.ModCatalog, challenger, opponent map[game.Slot]Contestant) SlotOutcome {
	out := SlotOutcome{Rounds: make([]game.RoundResult, 0, len(game.Slots))}
	for _, slot := range game.Slots {
		cc := challenger[slot]
		oc := opponent[slot]
		cv := EffectiveStat(catalog, cc, slot)
		ov := EffectiveStat(catalog, oc, slot)

		winner := game.SideDraw
		switch {
		case cv > ov:
			winner = game.SideChallenger
			out.ChallengerWins++
		case ov > cv:
			winner = game.SideOpponent
			out.OpponentWins++
		}
		out.Rounds = append(out.Rounds, game.RoundResult{
			Slot:             slot,
			ChallengerCardID: cc.Card.ID,
			ChallengerValue:  cv,
			OpponentCardID:   oc.Card.ID,
			OpponentValue:    ov,
			Winner:           winner,
		})
	}

	switch {
	case out.ChallengerWins > out.OpponentWins:
		out.Winner = game.SideChallenger
	case out.OpponentWins > out.ChallengerWins:
		out.Winner = game.SideOpponent
	default:
		out.Winner = game.SideDraw
	}
	return out
}

// CategoryOutcome is the result of a weighted-aggregate resolution.
type CategoryOutcome struct {
	ChallengerScore float64
	OpponentScore   float64
	Winner          game.RoundSide
}

// Score computes a contestant's weighted aggregate for a category, using
// effective (tuned) stats throughout.
func Score(catalog *game.ModCatalog, cat game.Category, c Contestant) float64 {
	return cat.PowerWeight*float64(EffectiveStat(catalog, c, game.SlotPower)) +
		cat.TorqueWeight*float64(EffectiveStat(catalog, c, game.SlotTorque)) +
		cat.SpeedWeight*float64(EffectiveStat(catalog, c, game.SlotSpeed))
}

// ResolveCategory scores a single chosen card per side against the
// category's weight triple. Higher aggregate wins, equal scores draw.
func ResolveCategory(catalog *game.ModCatalog, cat game.Category, challenger, opponent Contestant) CategoryOutcome {
	cs := Score(catalog, cat, challenger)
	os := Score(catalog, cat, opponent)
	out := CategoryOutcome{ChallengerScore: cs, OpponentScore: os, Winner: game.SideDraw}
	if cs > os {
		out.Winner = game.SideChallenger
	} else if os > cs {
		out.Winner = game.SideOpponent
	}
	return out
}

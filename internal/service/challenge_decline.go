package service

import (
	"time"

	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/notify"
)

// DeclineChallenge refuses a pending challenge. For a fixed challenge only
// the challenged party may decline; for an open challenge the challenger
// cancels it, modeled as a self-decline. The transition is a
// compare-and-swap so a concurrent accept and decline cannot both win.
func DeclineChallenge(repo ChallengeRepo, challengeID, callerID uint, notifier notify.Notifier) error {
	ch, err := repo.GetChallengeByID(challengeID)
	if err != nil {
		return err
	}
	switch ch.Status {
	case game.StatusPending:
	case game.StatusExpired:
		return game.ErrChallengeExpired
	default:
		return game.ErrAlreadyResolved
	}
	if time.Now().After(ch.ExpiresAt) {
		_ = repo.MarkChallengeStatus(ch.ID, game.StatusPending, game.StatusExpired)
		return game.ErrChallengeExpired
	}

	if ch.Open() {
		if ch.ChallengerID != callerID {
			return ErrNotChallenged
		}
	} else if *ch.OpponentID != callerID {
		return ErrNotChallenged
	}

	if err := repo.MarkChallengeStatus(ch.ID, game.StatusPending, game.StatusDeclined); err != nil {
		return err
	}

	if callerID != ch.ChallengerID {
		notify.Async(notifier, ch.ChallengerID, notify.TemplateChallengeDeclined, map[string]interface{}{
			"challenge_id": ch.ID,
		})
	}
	return nil
}

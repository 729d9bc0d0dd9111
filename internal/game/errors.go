package game

import "errors"

// Business-rule rejections shared across the engine, service and storage
// layers. All are expected, recoverable-by-caller conditions; the API layer
// maps each to a response status. None of them should be retried blindly.
var (
	ErrInsufficientCards    = errors.New("not enough eligible cards to deal")
	ErrIncompleteAssignment = errors.New("assignment must fill all three slots with distinct dealt cards")
	ErrAlreadyTuned         = errors.New("card is already being tuned")
	ErrNotFound             = errors.New("not found")
	ErrMaxStageReached      = errors.New("mod is already at its final stage")
	ErrInsufficientXP       = errors.New("not enough available XP")
	ErrRateLimited          = errors.New("weekly challenge limit reached")
	ErrChallengeExpired     = errors.New("challenge has expired")
	ErrAlreadyResolved      = errors.New("challenge is no longer pending")
	ErrCardNoLongerOwned    = errors.New("a referenced card is no longer owned by its player")
)

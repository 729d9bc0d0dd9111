package api

import (
	"net/http"
	"time"

	"github.com/gearclash/gearclash/internal/constants"
	"github.com/gearclash/gearclash/internal/engine"
	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/service"
	"github.com/gin-gonic/gin"
)

// slotAssignmentBody is the wire shape of a slot assignment: one card ID per
// battle category.
type slotAssignmentBody struct {
	PowerCardID  uint `json:"power_card_id"`
	TorqueCardID uint `json:"torque_card_id"`
	SpeedCardID  uint `json:"speed_card_id"`
}

func (b slotAssignmentBody) toAssignment() engine.SlotAssignment {
	return engine.SlotAssignment{
		game.SlotPower:  b.PowerCardID,
		game.SlotTorque: b.TorqueCardID,
		game.SlotSpeed:  b.SpeedCardID,
	}
}

// CreateChallenge posts a new pending challenge.
func (h *BattleHandler) CreateChallenge(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var body struct {
		OpponentID *uint              `json:"opponent_id"`
		Mode       string             `json:"mode"`
		Category   string             `json:"category"`
		RewardKind string             `json:"reward_kind"`
		Assignment slotAssignmentBody `json:"assignment"`
		CardID     uint               `json:"card_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	ch, err := service.CreateChallenge(h.repo, h.settings, service.CreateChallengeRequest{
		ChallengerID: userID,
		OpponentID:   body.OpponentID,
		Mode:         game.BattleMode(body.Mode),
		Category:     body.Category,
		RewardKind:   game.RewardKind(body.RewardKind),
		Assignment:   body.Assignment.toAssignment(),
		CardID:       body.CardID,
	}, h.notifier)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedCreateChallenge)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(ch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateChallenge})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListChallenges returns the user's challenges, or the open-challenge board
// when ?open=1 is given.
func (h *BattleHandler) ListChallenges(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var (
		challenges []game.Challenge
		err        error
	)
	if c.Query("open") == "1" {
		challenges, err = h.repo.ListOpenChallenges(time.Now())
	} else {
		challenges, err = h.repo.ListChallengesForUser(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchChallenges})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(challenges)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchChallenges})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetChallenge returns one challenge by ID, surfacing lazy expiry.
func (h *BattleHandler) GetChallenge(c *gin.Context) {
	if _, ok := sessionUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	challengeID, ok := parseUintParam(c, "challengeID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidID})
		return
	}
	ch, err := service.GetChallenge(h.repo, challengeID)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedFetchChallenges)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(ch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchChallenges})
		return
	}
	c.JSON(http.StatusOK, out)
}

// AcceptChallenge resolves a pending challenge against the caller's layout.
func (h *BattleHandler) AcceptChallenge(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	challengeID, ok := parseUintParam(c, "challengeID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidID})
		return
	}
	var body struct {
		Assignment slotAssignmentBody `json:"assignment"`
		CardID     uint               `json:"card_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	ch, err := service.AcceptChallenge(h.repo, h.settings, challengeID, service.AcceptChallengeRequest{
		AcceptorID: userID,
		Assignment: body.Assignment.toAssignment(),
		CardID:     body.CardID,
	}, h.notifier)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedAcceptChallenge)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(ch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedAcceptChallenge})
		return
	}
	c.JSON(http.StatusOK, out)
}

// DeclineChallenge refuses a pending challenge (or withdraws an open one).
func (h *BattleHandler) DeclineChallenge(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	challengeID, ok := parseUintParam(c, "challengeID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidID})
		return
	}
	if err := service.DeclineChallenge(h.repo, challengeID, userID, h.notifier); err != nil {
		respondServiceError(c, err, constants.ErrFailedAcceptChallenge)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": string(game.StatusDeclined)})
}

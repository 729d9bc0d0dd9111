package api

import (
	"errors"
	"net/http"

	"github.com/gearclash/gearclash/internal/constants"
	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/service"
	"github.com/gin-gonic/gin"
)

// DealHand deals a fresh 3-card hand, or returns the already-open hand when
// one exists. Retrying the request never re-rolls.
func (h *BattleHandler) DealHand(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	hand, cards, err := service.DealHand(h.repo, userID)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedDealHand)
		return
	}
	h.respondHand(c, hand, cards)
}

// OpenHand returns the user's current open hand without dealing.
func (h *BattleHandler) OpenHand(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	hand, cards, err := service.OpenHand(h.repo, userID)
	if err != nil {
		if errors.Is(err, game.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: "No open hand"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHand})
		return
	}
	h.respondHand(c, hand, cards)
}

func (h *BattleHandler) respondHand(c *gin.Context, hand *game.DealtHand, cards []game.Card) {
	out, err := MarshalIntoSnakeTimestamps(gin.H{"hand": hand, "cards": cards})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchHand})
		return
	}
	c.JSON(http.StatusOK, out)
}

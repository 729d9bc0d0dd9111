package api

import (
	"net/http"

	"github.com/gearclash/gearclash/internal/constants"
	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/service"
	"github.com/gin-gonic/gin"
)

// AddTunedCar enrolls one of the user's vehicle cards in tuning.
func (h *BattleHandler) AddTunedCar(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	var body struct {
		CardID uint `json:"card_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.CardID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	tc, err := service.AddTunedCar(h.repo, userID, body.CardID)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedAddTunedCar)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(tc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedAddTunedCar})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListTunedCars returns the user's tuning garage.
func (h *BattleHandler) ListTunedCars(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	tuned, err := h.repo.ListTunedCars(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(tuned)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, out)
}

// RemoveTunedCar deletes a tuned car. The response reports the XP freed by
// the removal; the balance is derived, so no credit is written.
func (h *BattleHandler) RemoveTunedCar(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	tunedCarID, ok := parseUintParam(c, "tunedCarID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidID})
		return
	}
	refund, err := service.RemoveTunedCar(h.repo, userID, tunedCarID)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedRemoveTunedCar)
		return
	}
	c.JSON(http.StatusOK, gin.H{"xp_refunded": refund})
}

// UpgradeTunedCar advances one mod of a tuned car by one stage.
func (h *BattleHandler) UpgradeTunedCar(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	tunedCarID, ok := parseUintParam(c, "tunedCarID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidID})
		return
	}
	mod, ok := game.ParseMod(c.Param("mod"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMod})
		return
	}
	tc, err := service.UpgradeTunedCar(h.repo, h.settings.Catalog, userID, tunedCarID, mod)
	if err != nil {
		respondServiceError(c, err, constants.ErrFailedUpgrade)
		return
	}
	out, err := MarshalIntoSnakeTimestamps(tc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpgrade})
		return
	}
	c.JSON(http.StatusOK, out)
}

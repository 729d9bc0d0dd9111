package api

import (
	"net/http"

	"github.com/gearclash/gearclash/internal/constants"
	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/service"
	"github.com/gin-gonic/gin"
)

// ListCards returns the authenticated user's battle-eligible cards with
// config-sourced stats.
func (h *BattleHandler) ListCards(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	cards, err := h.repo.ListEligibleCards(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	out, err := MarshalIntoSnakeTimestamps(cards)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchCards})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetBalance returns the user's XP position: earned, invested and available.
func (h *BattleHandler) GetBalance(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	earned, invested, available, err := service.Balance(h.repo, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBalance})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"xp_earned":    earned,
		"xp_invested":  invested,
		"xp_available": available,
	})
}

// ListCategories returns the configured battle category presets.
func (h *BattleHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Categories)
}

// ListMods returns the upgrade curves for the tuning shop screen.
func (h *BattleHandler) ListMods(c *gin.Context) {
	out := make([]gin.H, 0, len(game.Mods))
	for _, mod := range game.Mods {
		curve, ok := h.settings.Catalog.Curve(mod)
		if !ok {
			continue
		}
		out = append(out, gin.H{
			"mod":     mod,
			"costs":   curve.Costs,
			"bonuses": curve.Bonuses,
		})
	}
	c.JSON(http.StatusOK, out)
}

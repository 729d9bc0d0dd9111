package api

import (
	"net/http"
	"os"
	"time"

	"github.com/gearclash/gearclash/internal/constants"
	"github.com/gearclash/gearclash/internal/storage"
	"github.com/gin-gonic/gin"
)

// AuthHandler mints and clears session tokens. Real sign-in happens in the
// platform's identity service; this backend only validates the session it
// issued. The dev-token endpoint exists for local development and must be
// enabled explicitly.
type AuthHandler struct {
	repo storage.Repository
}

func NewAuthHandler(repo storage.Repository) *AuthHandler {
	return &AuthHandler{repo: repo}
}

type devTokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DevToken issues a session token for the given email, creating the player
// profile if needed. Gated behind GEARCLASH_DEV_TOKENS=1 so it can never be
// reached in production.
func (h *AuthHandler) DevToken(c *gin.Context) {
	if os.Getenv(constants.EnvDevTokenEndpoint) != "1" {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: "Not found"})
		return
	}
	var req devTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	user, err := h.repo.UpsertUser(req.Email, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: "Failed to create session"})
		return
	}
	ttl := 24 * time.Hour
	token, err := createSessionToken(user.ID, user.Email, user.Name, ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: "Failed to create session"})
		return
	}
	setSessionCookie(c, token, ttl)
	c.JSON(http.StatusOK, gin.H{"token": token, "user_id": user.ID, "email": user.Email, "name": user.Name})
}

// Me returns the authenticated player's profile. The stored profile wins
// over the session claims so a renamed player sees the current name.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := sessionUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
		return
	}
	user, err := h.repo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "email": user.Email, "name": user.Name})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

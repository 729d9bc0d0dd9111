package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gearclash/gearclash/internal/constants"
	"github.com/gearclash/gearclash/internal/game"
	"github.com/gearclash/gearclash/internal/service"
	"github.com/gin-gonic/gin"
)

// parseUintParam parses a numeric route parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// respondServiceError maps the typed domain/service errors onto HTTP
// statuses. Anything unmapped is a server fault and answers 500 with the
// given fallback message so internals never leak to clients.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var status int
	switch {
	case errors.Is(err, game.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrChallengeExpired):
		status = http.StatusGone
	case errors.Is(err, game.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, game.ErrAlreadyResolved),
		errors.Is(err, game.ErrAlreadyTuned),
		errors.Is(err, game.ErrInsufficientXP),
		errors.Is(err, game.ErrMaxStageReached),
		errors.Is(err, game.ErrInsufficientCards),
		errors.Is(err, game.ErrCardNoLongerOwned),
		errors.Is(err, service.ErrNoOpenHand):
		status = http.StatusConflict
	case errors.Is(err, game.ErrIncompleteAssignment),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, service.ErrInvalidRewardKind),
		errors.Is(err, service.ErrSelfChallenge),
		errors.Is(err, service.ErrCardNotEligible):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrOwnChallenge),
		errors.Is(err, service.ErrNotChallenged),
		errors.Is(err, service.ErrCardNotOwned):
		status = http.StatusForbidden
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
		return
	}
	c.JSON(status, gin.H{constants.JSONKeyError: err.Error()})
}

// normalizeTimestamps recursively renames GORM timestamp keys from CamelCase
// (CreatedAt, UpdatedAt, DeletedAt) to snake_case keys (created_at, updated_at,
// deleted_at) so frontend clients consistently receive snake_case timestamps.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		if val, ok := vv["CreatedAt"]; ok {
			vv["created_at"] = val
			delete(vv, "CreatedAt")
		}
		if val, ok := vv["UpdatedAt"]; ok {
			vv["updated_at"] = val
			delete(vv, "UpdatedAt")
		}
		if val, ok := vv["DeletedAt"]; ok {
			vv["deleted_at"] = val
			delete(vv, "DeletedAt")
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes timestamp keys to snake_case. It is used
// to produce API responses with consistent snake_case timestamp keys.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

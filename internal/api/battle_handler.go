package api

import (
	"github.com/gearclash/gearclash/internal/notify"
	"github.com/gearclash/gearclash/internal/service"
	"github.com/gearclash/gearclash/internal/storage"
)

// BattleHandler groups all card, tuning, deal and challenge HTTP handlers.
type BattleHandler struct {
	repo     storage.Repository
	settings service.Settings
	notifier notify.Notifier
}

// NewBattleHandler creates a new BattleHandler with the given repository and
// configured balance/policy settings.
func NewBattleHandler(repo storage.Repository, settings service.Settings, notifier notify.Notifier) *BattleHandler {
	return &BattleHandler{repo: repo, settings: settings, notifier: notifier}
}

package notify

import (
	"github.com/gearclash/gearclash/internal/constants"
	"github.com/gearclash/gearclash/internal/logging"
)

// Notification templates emitted by the challenge lifecycle.
const (
	TemplateChallengeReceived = "challenge_received"
	TemplateChallengeResolved = "challenge_resolved"
	TemplateChallengeDeclined = "challenge_declined"
)

// Notifier delivers a user-facing notification. Implementations are
// fire-and-forget: a delivery failure must never roll back the operation
// that triggered it.
type Notifier interface {
	Notify(userID uint, template string, payload map[string]interface{})
}

// LogNotifier is the default delivery backend: it writes the notification
// to the structured log. Push/in-app transports live outside this service.
type LogNotifier struct{}

func (LogNotifier) Notify(userID uint, template string, payload map[string]interface{}) {
	fields := logging.Fields{
		constants.LogFieldUserID:   userID,
		constants.LogFieldTemplate: template,
	}
	for k, v := range payload {
		fields[k] = v
	}
	logging.Info("notification", fields)
}

// Async dispatches the notification on its own goroutine so the caller's
// request path never waits on delivery.
func Async(n Notifier, userID uint, template string, payload map[string]interface{}) {
	if n == nil {
		return
	}
	go n.Notify(userID, template, payload)
}

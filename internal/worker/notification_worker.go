package worker

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/config"
	"github.com/spec-kit/insurance-service/internal/events"
	"github.com/spec-kit/insurance-service/internal/service"
)

// StartNotificationWorker subscribes notification handlers to catalog and intake events.
// Handlers run synchronously on the publisher's goroutine.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	notifications := service.NewNotificationService(dispatcher, logger, cfg)
	notifications.RegisterHandlers()

	logger.Info("notification worker started",
		zap.Int("event_types", len(events.AllEventTypes)),
		zap.Bool("email", strings.TrimSpace(cfg.EmailFrom) != ""),
		zap.Bool("webhook", strings.TrimSpace(cfg.WebhookURL) != ""))
	return notifications
}

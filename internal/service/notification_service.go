package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/insurance-service/internal/config"
	"github.com/spec-kit/insurance-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInsuranceCreated, n.handleCatalogChange)
	n.dispatcher.Subscribe(events.EventInsuranceUpdated, n.handleCatalogChange)
	n.dispatcher.Subscribe(events.EventInsuranceStatusChanged, n.handleCatalogChange)
	n.dispatcher.Subscribe(events.EventInsuranceDeleted, n.handleCatalogChange)
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationSubmitted)
}

func (n *NotificationService) handleCatalogChange(ctx context.Context, event events.Event) error {
	n.logger.Info("catalog changed",
		zap.String("event_type", string(event.Type)),
		zap.String("insurance_id", event.InsuranceID),
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleApplicationSubmitted(ctx context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("insurance_id", event.InsuranceID),
		zap.String("event_id", event.ID),
	}
	if payload, ok := event.Payload.(events.ApplicationSubmittedPayload); ok {
		fields = append(fields,
			zap.String("application_id", payload.ApplicationID),
			zap.String("insurance_name", payload.InsuranceName),
			zap.String("selected_date", payload.SelectedDate.Format("2006-01-02")),
			zap.String("phone", maskPhone(payload.Phone)))
	}
	n.logger.Info("application submitted", fields...)
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("insurance_id", event.InsuranceID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("insurance_id", event.InsuranceID),
		zap.String("event_type", string(event.Type)))
}

// maskPhone keeps the last four digits so logs never carry a full number.
func maskPhone(phone string) string {
	runes := []rune(phone)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/insurance-service/internal/config"
	"github.com/spec-kit/insurance-service/internal/events"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******4567", maskPhone("5551234567"))
	assert.Equal(t, "***", maskPhone("123"))
	assert.Equal(t, "", maskPhone(""))
}

func TestNotificationHandlersLogEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		WebhookURL: "https://hooks.example.test/insurance",
	})
	svc.RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:        events.EventApplicationSubmitted,
		InsuranceID: "ins-1",
		Actor:       events.PublicActor(),
		Timestamp:   time.Now(),
		Payload: events.ApplicationSubmittedPayload{
			ApplicationID: "app-1",
			InsuranceName: "Kasko",
			SelectedDate:  time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
			Phone:         "5551234567",
		},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:        events.EventInsuranceDeleted,
		InsuranceID: "ins-1",
		Actor:       events.AdminActor("admin"),
	}))

	submitted := logs.FilterMessage("application submitted").All()
	require.Len(t, submitted, 1)
	fields := submitted[0].ContextMap()
	assert.Equal(t, "******4567", fields["phone"])
	assert.Equal(t, "2026-05-20", fields["selected_date"])

	changed := logs.FilterMessage("catalog changed").All()
	require.Len(t, changed, 1)
	assert.Equal(t, "admin", changed[0].ContextMap()["actor"])

	assert.Equal(t, 2, logs.FilterMessage("sendWebhookNotificationStub").Len())
	assert.Zero(t, logs.FilterMessage("sendEmailNotificationStub").Len())
}

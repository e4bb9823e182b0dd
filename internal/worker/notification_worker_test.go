package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/insurance-service/internal/config"
	"github.com/spec-kit/insurance-service/internal/events"
)

func TestStartNotificationWorker(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()

	svc := StartNotificationWorker(dispatcher, zap.New(core), config.NotificationConfig{})
	require.NotNil(t, svc)
	assert.Equal(t, 1, logs.FilterMessage("notification worker started").Len())

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		Type:        events.EventInsuranceCreated,
		InsuranceID: "ins-1",
		Actor:       events.AdminActor("admin"),
	}))
	assert.Equal(t, 1, logs.FilterMessage("catalog changed").Len())
}

func TestStartNotificationWorkerWithoutDispatcher(t *testing.T) {
	assert.Nil(t, StartNotificationWorker(nil, zap.NewNop(), config.NotificationConfig{}))
}

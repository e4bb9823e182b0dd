package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventInsuranceCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventInsuranceDeleted, func(context.Context, Event) error {
		t.Fatal("unexpected delivery")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventInsuranceCreated, InsuranceID: "ins-1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ins-1", got[0].InsuranceID)
	assert.NotEmpty(t, got[0].ID)
}

func TestPublishContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()
	boom := errors.New("boom")

	calls := 0
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		calls++
		return boom
	})
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventApplicationSubmitted})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestActorFromContext(t *testing.T) {
	assert.Equal(t, PublicActor(), ActorFromContext(context.Background()))

	ctx := ContextWithActor(context.Background(), AdminActor("admin"))
	actor := ActorFromContext(ctx)
	assert.Equal(t, ActorAdmin, actor.Kind)
	assert.Equal(t, "admin", actor.Username)
}

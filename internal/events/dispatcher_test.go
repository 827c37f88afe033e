package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventOrderCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	event := Event{
		ID:        "evt-1",
		Type:      EventOrderCreated,
		Timestamp: time.Now(),
		Payload:   OrderCreatedPayload{OrderID: "O1", UserID: "U1"},
	}
	require.NoError(t, dispatcher.Publish(context.Background(), event))
	require.Len(t, received, 1)
	assert.Equal(t, "evt-1", received[0].ID)

	// events of other types are not delivered
	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventUserRegistered}))
	assert.Len(t, received, 1)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var secondCalled bool
	dispatcher.Subscribe(EventOrderCreated, func(context.Context, Event) error {
		return errors.New("handler failed")
	})
	dispatcher.Subscribe(EventOrderCreated, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventOrderCreated}))
	assert.True(t, secondCalled)
}

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()

	var got []Event
	bus.Subscribe(SubscriptionCreated, func(e Event) {
		got = append(got, e)
	})

	bus.Publish(SubscriptionCreated, map[string]interface{}{"subscription_id": uint(1)})
	bus.Publish(MeetingCreated, map[string]interface{}{"meeting_id": uint(2)})

	assert.Len(t, got, 1, "handler only receives subscribed type")
	assert.Equal(t, SubscriptionCreated, got[0].Type)
	assert.Equal(t, uint(1), got[0].Payload["subscription_id"])
	assert.False(t, got[0].At.IsZero())
}

func TestBusMultipleHandlers(t *testing.T) {
	bus := New()

	count := 0
	bus.Subscribe(MeetingSynced, func(Event) { count++ })
	bus.Subscribe(MeetingSynced, func(Event) { count++ })

	bus.Publish(MeetingSynced, nil)
	assert.Equal(t, 2, count)
}

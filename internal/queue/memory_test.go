package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryVenueQueue(t *testing.T) {
	q := NewMemoryVenueQueue()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := q.SubscribeVenueUpdates(ctx)
	require.NoError(t, err)

	require.NoError(t, q.PublishVenueUpdated(ctx, &VenueEvent{VenueID: "v1", UpdatedAt: time.Now()}))

	select {
	case event := <-events:
		assert.Equal(t, "v1", event.VenueID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, ok := <-events
		return !ok
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, q.Close())
	assert.ErrorIs(t, q.PublishVenueUpdated(context.Background(), &VenueEvent{VenueID: "v1"}), ErrQueueClosed)
}

func TestMemoryVenueQueue_SlowSubscriberDoesNotBlockQueue(t *testing.T) {
	q := NewMemoryVenueQueue()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := q.SubscribeVenueUpdates(ctx)
	require.NoError(t, err)

	// nobody reads, so the buffer fills and the publisher blocks
	published := make(chan error, 1)
	go func() {
		for {
			if err := q.PublishVenueUpdated(context.Background(), &VenueEvent{VenueID: "v1"}); err != nil {
				published <- err
				return
			}
		}
	}()

	subscribed := make(chan error, 1)
	go func() {
		_, err := q.SubscribeVenueUpdates(ctx)
		subscribed <- err
	}()
	select {
	case err := <-subscribed:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscribe blocked behind a pending publish")
	}

	require.NoError(t, q.Close())
	select {
	case err := <-published:
		assert.ErrorIs(t, err, ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("publish not released by close")
	}
}

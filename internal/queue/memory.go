package queue

import (
	"context"
	"errors"
	"sync"
)

var ErrQueueClosed = errors.New("queue closed")

var _ VenueQueue = (*MemoryVenueQueue)(nil)

// MemoryVenueQueue delivers every event to every live subscriber. It stands
// in for kafka when no brokers are configured.
type MemoryVenueQueue struct {
	mu          sync.Mutex
	subscribers map[*memorySubscriber]struct{}
	closed      bool
}

// memorySubscriber is never closed on the publishing side; done tells
// publishers and the forwarder that the subscription ended.
type memorySubscriber struct {
	events chan *VenueEvent
	done   chan struct{}
	once   sync.Once
}

func (s *memorySubscriber) stop() {
	s.once.Do(func() { close(s.done) })
}

func NewMemoryVenueQueue() *MemoryVenueQueue {
	return &MemoryVenueQueue{subscribers: make(map[*memorySubscriber]struct{})}
}

// PublishVenueUpdated hands the event to every subscriber. Sends happen
// outside the lock.
func (m *MemoryVenueQueue) PublishVenueUpdated(ctx context.Context, event *VenueEvent) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrQueueClosed
	}
	subs := make([]*memorySubscriber, 0, len(m.subscribers))
	for sub := range m.subscribers {
		subs = append(subs, sub)
	}
	m.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.events <- event:
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (m *MemoryVenueQueue) SubscribeVenueUpdates(ctx context.Context) (<-chan *VenueEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrQueueClosed
	}

	sub := &memorySubscriber{
		events: make(chan *VenueEvent),
		done:   make(chan struct{}),
	}
	m.subscribers[sub] = struct{}{}

	out := make(chan *VenueEvent, 64)
	go func() {
		defer close(out)
		defer m.unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.done:
				return
			case event := <-sub.events:
				select {
				case out <- event:
				case <-ctx.Done():
					return
				case <-sub.done:
					return
				}
			}
		}
	}()

	return out, nil
}

func (m *MemoryVenueQueue) unsubscribe(sub *memorySubscriber) {
	m.mu.Lock()
	delete(m.subscribers, sub)
	m.mu.Unlock()
	sub.stop()
}

func (m *MemoryVenueQueue) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for sub := range m.subscribers {
		delete(m.subscribers, sub)
		sub.stop()
	}
	return nil
}

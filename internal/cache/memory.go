package cache

import (
	"context"
	"sync"

	"github.com/emrgen/thirdplace/internal/model"
)

var _ VenueCache = (*MemoryVenueCache)(nil)

// MemoryVenueCache keeps venues in process. It is used when no redis address
// is configured and in tests.
type MemoryVenueCache struct {
	mu     sync.RWMutex
	venues map[string]model.Venue
}

func NewMemoryVenueCache() *MemoryVenueCache {
	return &MemoryVenueCache{venues: make(map[string]model.Venue)}
}

func (m *MemoryVenueCache) GetVenue(_ context.Context, id string) (*model.Venue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	venue, ok := m.venues[id]
	if !ok {
		return nil, nil
	}
	return &venue, nil
}

func (m *MemoryVenueCache) SetVenue(_ context.Context, venue *model.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.venues[venue.ID] = *venue
	return nil
}

func (m *MemoryVenueCache) DeleteVenue(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.venues, id)
	return nil
}

var _ ViewCounter = (*MemoryViewCounter)(nil)

type MemoryViewCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewMemoryViewCounter() *MemoryViewCounter {
	return &MemoryViewCounter{counts: make(map[string]int64)}
}

func (m *MemoryViewCounter) IncrView(_ context.Context, blogID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counts[blogID]++
	return nil
}

func (m *MemoryViewCounter) Drain(_ context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := m.counts
	m.counts = make(map[string]int64)
	return counts, nil
}

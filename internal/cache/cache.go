package cache

import (
	"context"

	"github.com/emrgen/thirdplace/internal/model"
)

// VenueCache is a cache for venues.
type VenueCache interface {
	// GetVenue gets a venue from the cache, nil when it is not cached.
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
	// SetVenue sets a venue in the cache.
	SetVenue(ctx context.Context, venue *model.Venue) error
	// DeleteVenue removes a venue from the cache.
	DeleteVenue(ctx context.Context, id string) error
}

// ViewCounter buffers blog view counts until they are flushed to the store.
type ViewCounter interface {
	// IncrView adds one view to a blog.
	IncrView(ctx context.Context, blogID string) error
	// Drain returns the buffered counts and resets them.
	Drain(ctx context.Context) (map[string]int64, error)
}

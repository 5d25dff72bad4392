package cache

import (
	"context"
	"errors"

	"github.com/emrgen/thirdplace/internal/model"
	"github.com/emrgen/thirdplace/internal/store"
	"github.com/sirupsen/logrus"
)

type VenueSource interface {
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
}

// CachedVenueLookup reads venues through the cache. A missing venue is
// reported as nil with no error. Cache failures fall back to the store.
type CachedVenueLookup struct {
	source VenueSource
	cache  VenueCache
}

func NewCachedVenueLookup(source VenueSource, cache VenueCache) *CachedVenueLookup {
	return &CachedVenueLookup{source: source, cache: cache}
}

func (c *CachedVenueLookup) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	venue, err := c.cache.GetVenue(ctx, id)
	if err != nil {
		logrus.Warnf("venue cache get %s: %v", id, err)
	}
	if venue != nil {
		return venue, nil
	}

	venue, err = c.source.GetVenue(ctx, id)
	if errors.Is(err, store.ErrVenueNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetVenue(ctx, venue); err != nil {
		logrus.Warnf("venue cache set %s: %v", id, err)
	}

	return venue, nil
}

// Invalidate drops a venue so the next lookup reads the store.
func (c *CachedVenueLookup) Invalidate(ctx context.Context, id string) error {
	return c.cache.DeleteVenue(ctx, id)
}

package cache

import (
	"context"
	"testing"

	"github.com/emrgen/thirdplace/internal/model"
	"github.com/emrgen/thirdplace/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	venues map[string]*model.Venue
	calls  int
}

func (c *countingSource) GetVenue(_ context.Context, id string) (*model.Venue, error) {
	c.calls++
	venue, ok := c.venues[id]
	if !ok {
		return nil, store.ErrVenueNotFound
	}
	return venue, nil
}

func TestCachedVenueLookup(t *testing.T) {
	source := &countingSource{venues: map[string]*model.Venue{
		"v1": {ID: "v1", Name: "Corner Cafe"},
	}}
	lookup := NewCachedVenueLookup(source, NewMemoryVenueCache())
	ctx := context.TODO()

	venue, err := lookup.GetVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Corner Cafe", venue.Name)

	_, err = lookup.GetVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	source.venues["v1"].Name = "Renamed"
	require.NoError(t, lookup.Invalidate(ctx, "v1"))
	venue, err = lookup.GetVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", venue.Name)
	assert.Equal(t, 2, source.calls)

	venue, err = lookup.GetVenue(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, venue)
}

func TestMemoryViewCounter(t *testing.T) {
	counter := NewMemoryViewCounter()
	ctx := context.TODO()

	require.NoError(t, counter.IncrView(ctx, "a"))
	require.NoError(t, counter.IncrView(ctx, "a"))
	require.NoError(t, counter.IncrView(ctx, "b"))

	counts, err := counter.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"a": 2, "b": 1}, counts)

	counts, err = counter.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, counts)
}

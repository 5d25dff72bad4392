package queue

import (
	"context"
	"time"
)

const DefaultVenueTopic = "venue.updated"

// VenueEvent announces that a venue's display fields changed.
type VenueEvent struct {
	VenueID   string    `json:"venueId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type VenueQueue interface {
	// PublishVenueUpdated appends a venue update to the queue.
	PublishVenueUpdated(ctx context.Context, event *VenueEvent) error
	// SubscribeVenueUpdates streams venue updates until ctx is done.
	SubscribeVenueUpdates(ctx context.Context) (<-chan *VenueEvent, error)
	Close() error
}

package jobs

import (
	"context"
	"time"

	"github.com/emrgen/thirdplace/internal/model"
	"github.com/sirupsen/logrus"
)

type UpdatedVenueLister interface {
	ListVenuesUpdatedSince(ctx context.Context, since time.Time) ([]*model.Venue, error)
}

type VenuePropagator interface {
	UpdateVenueInBlogRelationships(ctx context.Context, venue *model.Venue) (int, error)
}

// RelationshipSyncTask re-applies recently updated venues to the blogs that
// cache them. It catches events the queue consumer missed.
type RelationshipSyncTask struct {
	venues     UpdatedVenueLister
	propagator VenuePropagator
	cron       string
	since      time.Time
	now        func() time.Time
}

func NewRelationshipSyncTask(schedule string, venues UpdatedVenueLister, propagator VenuePropagator) *RelationshipSyncTask {
	return &RelationshipSyncTask{
		venues:     venues,
		propagator: propagator,
		cron:       schedule,
		now:        time.Now,
	}
}

func (r *RelationshipSyncTask) Name() string {
	return "relationship_sync"
}

func (r *RelationshipSyncTask) Schedule() string {
	return r.cron
}

func (r *RelationshipSyncTask) Run() {
	ctx := context.Background()
	started := r.now()

	venues, err := r.venues.ListVenuesUpdatedSince(ctx, r.since)
	if err != nil {
		logrus.Errorf("relationship sync: list venues: %v", err)
		return
	}

	blogs := 0
	for _, venue := range venues {
		n, err := r.propagator.UpdateVenueInBlogRelationships(ctx, venue)
		if err != nil {
			// keep the window open so the next run retries
			logrus.Errorf("relationship sync: venue %s: %v", venue.ID, err)
			return
		}
		blogs += n
	}

	r.since = started
	logrus.Infof("relationship sync: %d venues refreshed in %d blogs", len(venues), blogs)
}

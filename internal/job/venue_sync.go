package job

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/emrgen/thirdplace/internal/model"
	"github.com/emrgen/thirdplace/internal/queue"
	"github.com/emrgen/thirdplace/internal/store"
	"github.com/sirupsen/logrus"
)

const resubscribeDelay = 4 * time.Second

type VenueGetter interface {
	GetVenue(ctx context.Context, id string) (*model.Venue, error)
}

type VenuePropagator interface {
	UpdateVenueInBlogRelationships(ctx context.Context, venue *model.Venue) (int, error)
}

// VenueSync consumes venue update events and refreshes the venue copies
// cached inside blogs.
type VenueSync struct {
	queue      queue.VenueQueue
	venues     VenueGetter
	propagator VenuePropagator
	done       chan struct{}
	stopOnce   sync.Once
}

// NewVenueSync creates a new VenueSync instance.
func NewVenueSync(q queue.VenueQueue, venues VenueGetter, propagator VenuePropagator) *VenueSync {
	return &VenueSync{
		queue:      q,
		venues:     venues,
		propagator: propagator,
		done:       make(chan struct{}),
	}
}

// Stop ends Run. It is safe to call more than once.
func (s *VenueSync) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Run blocks until Stop is called, resubscribing whenever the event stream
// ends.
func (s *VenueSync) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-s.done
		cancel()
	}()

	for {
		events, err := s.queue.SubscribeVenueUpdates(ctx)
		if err != nil {
			logrus.Errorf("subscribe venue updates: %v", err)
		} else {
			s.consume(ctx, events)
		}

		select {
		case <-s.done:
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

func (s *VenueSync) consume(ctx context.Context, events <-chan *queue.VenueEvent) {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.Handle(ctx, event)
		}
	}
}

// Handle refreshes one venue. Failures are logged; the next sweep retries.
func (s *VenueSync) Handle(ctx context.Context, event *queue.VenueEvent) {
	venue, err := s.venues.GetVenue(ctx, event.VenueID)
	if errors.Is(err, store.ErrVenueNotFound) {
		logrus.Warnf("venue %s no longer exists, skipping sync", event.VenueID)
		return
	}
	if err != nil {
		logrus.Errorf("load venue %s: %v", event.VenueID, err)
		return
	}

	n, err := s.propagator.UpdateVenueInBlogRelationships(ctx, venue)
	if err != nil {
		logrus.Errorf("sync venue %s: %v", event.VenueID, err)
		return
	}

	logrus.Infof("synced venue %s into %d blogs", event.VenueID, n)
}

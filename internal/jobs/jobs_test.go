package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/emrgen/thirdplace/internal/cache"
	"github.com/emrgen/thirdplace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyStore struct {
	fail   bool
	counts map[string]int64
}

func (f *flakyStore) IncrementViewCounts(_ context.Context, counts map[string]int64) error {
	if f.fail {
		return errors.New("db down")
	}
	for id, n := range counts {
		f.counts[id] += n
	}
	return nil
}

func TestViewFlushTask_RetriesPending(t *testing.T) {
	counter := cache.NewMemoryViewCounter()
	store := &flakyStore{fail: true, counts: map[string]int64{}}
	task := NewViewFlushTask("@every 1m", counter, store)
	ctx := context.TODO()

	require.NoError(t, counter.IncrView(ctx, "b1"))
	require.NoError(t, counter.IncrView(ctx, "b1"))
	task.Run()
	assert.Empty(t, store.counts)

	store.fail = false
	require.NoError(t, counter.IncrView(ctx, "b1"))
	require.NoError(t, counter.IncrView(ctx, "b2"))
	task.Run()
	assert.Equal(t, map[string]int64{"b1": 3, "b2": 1}, store.counts)

	task.Run()
	assert.Equal(t, map[string]int64{"b1": 3, "b2": 1}, store.counts)
}

type updatedVenues struct {
	venues []*model.Venue
	since  []time.Time
}

func (u *updatedVenues) ListVenuesUpdatedSince(_ context.Context, since time.Time) ([]*model.Venue, error) {
	u.since = append(u.since, since)
	var out []*model.Venue
	for _, v := range u.venues {
		if v.UpdatedAt.After(since) {
			out = append(out, v)
		}
	}
	return out, nil
}

type countingPropagator struct {
	calls []string
	fail  bool
}

func (c *countingPropagator) UpdateVenueInBlogRelationships(_ context.Context, venue *model.Venue) (int, error) {
	if c.fail {
		return 0, errors.New("write failed")
	}
	c.calls = append(c.calls, venue.ID)
	return 2, nil
}

func TestRelationshipSyncTask(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	venues := &updatedVenues{venues: []*model.Venue{{ID: "v1", UpdatedAt: base}}}
	propagator := &countingPropagator{fail: true}
	task := NewRelationshipSyncTask("@every 5m", venues, propagator)
	task.now = func() time.Time { return base.Add(time.Minute) }

	task.Run()
	assert.True(t, task.since.IsZero())

	propagator.fail = false
	task.Run()
	assert.Equal(t, []string{"v1"}, propagator.calls)
	assert.Equal(t, base.Add(time.Minute), task.since)

	task.Run()
	assert.Equal(t, []string{"v1"}, propagator.calls)
}

func TestTaskExecutor_SkipsOverlappingRuns(t *testing.T) {
	job := &blockingJob{release: make(chan struct{}), started: make(chan struct{}, 4)}
	executor := NewTaskExecutor(job)

	go executor.runOnce(job)
	<-job.started

	executor.runOnce(job)
	close(job.release)

	assert.Len(t, job.started, 0)
}

type blockingJob struct {
	release chan struct{}
	started chan struct{}
}

func (b *blockingJob) Name() string     { return "blocking" }
func (b *blockingJob) Schedule() string { return "@every 1h" }
func (b *blockingJob) Run() {
	b.started <- struct{}{}
	<-b.release
}

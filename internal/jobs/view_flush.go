package jobs

import (
	"context"

	"github.com/emrgen/thirdplace/internal/cache"
	"github.com/sirupsen/logrus"
)

type ViewCountStore interface {
	IncrementViewCounts(ctx context.Context, counts map[string]int64) error
}

// ViewFlushTask moves buffered view counts into the store. Counts that fail
// to write are held and retried on the next run.
type ViewFlushTask struct {
	counter cache.ViewCounter
	store   ViewCountStore
	cron    string
	pending map[string]int64
}

func NewViewFlushTask(schedule string, counter cache.ViewCounter, store ViewCountStore) *ViewFlushTask {
	return &ViewFlushTask{
		counter: counter,
		store:   store,
		cron:    schedule,
		pending: make(map[string]int64),
	}
}

func (v *ViewFlushTask) Name() string {
	return "view_flush"
}

func (v *ViewFlushTask) Schedule() string {
	return v.cron
}

func (v *ViewFlushTask) Run() {
	ctx := context.Background()

	counts, err := v.counter.Drain(ctx)
	if err != nil {
		logrus.Errorf("view flush: drain: %v", err)
	}
	for id, n := range counts {
		v.pending[id] += n
	}

	if len(v.pending) == 0 {
		return
	}

	if err := v.store.IncrementViewCounts(ctx, v.pending); err != nil {
		logrus.Errorf("view flush: %d blogs pending: %v", len(v.pending), err)
		return
	}

	logrus.Infof("view flush: updated %d blogs", len(v.pending))
	v.pending = make(map[string]int64)
}

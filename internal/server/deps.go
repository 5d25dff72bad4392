package server

import (
	"context"

	"github.com/emrgen/thirdplace/internal/cache"
	"github.com/emrgen/thirdplace/internal/config"
	"github.com/emrgen/thirdplace/internal/queue"
	"github.com/sirupsen/logrus"
)

// backends holds the swappable infrastructure behind the services.
type backends struct {
	venueCache cache.VenueCache
	views      cache.ViewCounter
	queue      queue.VenueQueue
	closers    []func() error
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logrus.Warnf("error closing backend: %v", err)
		}
	}
}

// openBackends uses redis and kafka when configured and falls back to
// in-process implementations otherwise.
func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	b := &backends{}

	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		b.venueCache = cache.NewRedisVenueCache(client)
		b.views = cache.NewRedisViewCounter(client)
		logrus.Infof("using redis at %s", cfg.Redis.Addr)
	} else {
		b.venueCache = cache.NewMemoryVenueCache()
		b.views = cache.NewMemoryViewCounter()
		logrus.Info("redis.addr not set, using in-process caches")
	}

	if cfg.Kafka.Brokers != "" {
		q, err := queue.NewKafkaVenueQueue(queue.KafkaOptions{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		if err != nil {
			b.Close()
			return nil, err
		}
		b.queue = q
		logrus.Infof("using kafka at %s", cfg.Kafka.Brokers)
	} else {
		b.queue = queue.NewMemoryVenueQueue()
		logrus.Info("kafka.brokers not set, using in-process queue")
	}
	b.closers = append(b.closers, b.queue.Close)

	return b, nil
}

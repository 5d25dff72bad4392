package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/emrgen/thirdplace/internal/model"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	blogViewsHash = "blog:views"
	venueTTL      = time.Hour
)

func venueKey(id string) string {
	return "venue:" + id
}

var _ VenueCache = (*RedisVenueCache)(nil)

type RedisVenueCache struct {
	client *redis.Client
}

func NewRedisVenueCache(client *redis.Client) *RedisVenueCache {
	return &RedisVenueCache{client: client}
}

func (r *RedisVenueCache) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	res := r.client.Get(ctx, venueKey(id))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	venue := &model.Venue{}
	if err := json.Unmarshal(buf, venue); err != nil {
		return nil, err
	}

	return venue, nil
}

func (r *RedisVenueCache) SetVenue(ctx context.Context, venue *model.Venue) error {
	marshal, err := json.Marshal(venue)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, venueKey(venue.ID), marshal, venueTTL).Err()
}

func (r *RedisVenueCache) DeleteVenue(ctx context.Context, id string) error {
	return r.client.Del(ctx, venueKey(id)).Err()
}

var _ ViewCounter = (*RedisViewCounter)(nil)

type RedisViewCounter struct {
	client *redis.Client
}

func NewRedisViewCounter(client *redis.Client) *RedisViewCounter {
	return &RedisViewCounter{client: client}
}

func (r *RedisViewCounter) IncrView(ctx context.Context, blogID string) error {
	return r.client.HIncrBy(ctx, blogViewsHash, blogID, 1).Err()
}

// Drain reads and deletes the counter hash in one transaction so views
// recorded during a flush are kept for the next one.
func (r *RedisViewCounter) Drain(ctx context.Context) (map[string]int64, error) {
	var all *redis.MapStringStringCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		all = p.HGetAll(ctx, blogViewsHash)
		p.Del(ctx, blogViewsHash)
		return nil
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(all.Val()))
	for id, raw := range all.Val() {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logrus.Warnf("dropping corrupt view count for blog %s: %q", id, raw)
			continue
		}
		counts[id] = n
	}

	return counts, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/niaga-platform/service-analytics/internal/chart"
)

const seriesKeyPrefix = "analytics:sales-series"

// SeriesCache caches bucketed sales series in redis. A nil redis client
// disables caching.
type SeriesCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// CachedSeries is the cached form of a series.
type CachedSeries struct {
	TimeFrame chart.TimeFrame         `json:"time_frame"`
	Points    []chart.TimeSeriesPoint `json:"points"`
	CachedAt  time.Time               `json:"cached_at"`
}

// NewSeriesCache creates a new series cache
func NewSeriesCache(redisClient *redis.Client, ttl time.Duration, logger *zap.Logger) *SeriesCache {
	if ttl == 0 {
		ttl = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SeriesCache{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger,
	}
}

// cacheKey includes the bucket day so entries roll over at local midnight.
func (s *SeriesCache) cacheKey(shopID uuid.UUID, tf chart.TimeFrame, bucketDay string) string {
	return fmt.Sprintf("%s:%s:%s:%s", seriesKeyPrefix, shopID, tf, bucketDay)
}

// Get returns the cached series, or nil on a miss. Redis failures are logged
// and reported as a miss.
func (s *SeriesCache) Get(ctx context.Context, shopID uuid.UUID, tf chart.TimeFrame, bucketDay string) (*CachedSeries, error) {
	if s.redis == nil {
		return nil, nil
	}

	key := s.cacheKey(shopID, tf, bucketDay)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Warn("failed to get series from cache", zap.Error(err), zap.String("key", key))
		return nil, nil
	}

	var cached CachedSeries
	if err := json.Unmarshal(data, &cached); err != nil {
		s.logger.Warn("failed to unmarshal cached series", zap.Error(err), zap.String("key", key))
		return nil, nil
	}

	s.logger.Debug("cache hit for series", zap.String("shop_id", shopID.String()), zap.String("time_frame", tf.String()))
	return &cached, nil
}

// Set stores a series.
func (s *SeriesCache) Set(ctx context.Context, shopID uuid.UUID, tf chart.TimeFrame, bucketDay string, points []chart.TimeSeriesPoint) error {
	if s.redis == nil {
		return nil
	}

	key := s.cacheKey(shopID, tf, bucketDay)
	data, err := json.Marshal(CachedSeries{TimeFrame: tf, Points: points, CachedAt: time.Now()})
	if err != nil {
		s.logger.Warn("failed to marshal series for cache", zap.Error(err))
		return err
	}

	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to set series in cache", zap.Error(err), zap.String("key", key))
		return err
	}

	s.logger.Debug("cached series", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Invalidate removes every cached series of a shop.
func (s *SeriesCache) Invalidate(ctx context.Context, shopID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}

	pattern := fmt.Sprintf("%s:%s:*", seriesKeyPrefix, shopID)
	var keys []string
	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("failed to scan series cache keys", zap.Error(err))
		return err
	}

	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			s.logger.Warn("failed to invalidate series cache", zap.Error(err))
			return err
		}
		s.logger.Debug("invalidated series cache", zap.String("shop_id", shopID.String()), zap.Int("keys_removed", len(keys)))
	}

	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"freight/internal/domain"
)

// RateCacheStore caches market rates in Redis so that concurrent price
// calculations on the same lane share a single feed lookup.
type RateCacheStore struct {
	client     *redis.Client
	spotTTL    time.Duration
	historyTTL time.Duration
}

// NewRateCacheStore creates a new RateCacheStore.
func NewRateCacheStore(client *redis.Client, spotTTL, historyTTL time.Duration) *RateCacheStore {
	return &RateCacheStore{
		client:     client,
		spotTTL:    spotTTL,
		historyTTL: historyTTL,
	}
}

// Key prefixes
const (
	spotCachePrefix    = "cache:rate:spot:"
	historyCachePrefix = "cache:rate:history:"
)

func spotKey(lane string, equipment domain.EquipmentType) string {
	return spotCachePrefix + lane + ":" + string(equipment)
}

func historyKey(lane string, equipment domain.EquipmentType, days int) string {
	return fmt.Sprintf("%s%s:%s:%d", historyCachePrefix, lane, string(equipment), days)
}

// GetSpotRate retrieves a cached spot rate. A cache miss returns (nil, nil).
func (s *RateCacheStore) GetSpotRate(ctx context.Context, lane string, equipment domain.EquipmentType) (*domain.MarketRate, error) {
	data, err := s.client.Get(ctx, spotKey(lane, equipment)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var rate domain.MarketRate
	if err := json.Unmarshal(data, &rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

// SetSpotRate stores a spot rate in cache.
func (s *RateCacheStore) SetSpotRate(ctx context.Context, lane string, equipment domain.EquipmentType, rate *domain.MarketRate) error {
	data, err := json.Marshal(rate)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, spotKey(lane, equipment), data, s.spotTTL).Err()
}

// GetHistory retrieves a cached historical series. A cache miss returns
// (nil, nil).
func (s *RateCacheStore) GetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int) ([]domain.MarketRate, error) {
	data, err := s.client.Get(ctx, historyKey(lane, equipment, days)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var rates []domain.MarketRate
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// SetHistory stores a historical series in cache.
func (s *RateCacheStore) SetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int, rates []domain.MarketRate) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, historyKey(lane, equipment, days), data, s.historyTTL).Err()
}

package marketdata

import (
	"context"
	"log"

	"freight/internal/domain"
	"freight/internal/redis"
)

// CachedProvider is a read-through cache in front of another Provider.
// Cache failures are logged and the inner provider is consulted directly,
// so a Redis outage never blocks pricing.
type CachedProvider struct {
	inner Provider
	cache redis.RateCacheInterface
}

// NewCachedProvider creates a new CachedProvider.
func NewCachedProvider(inner Provider, cache redis.RateCacheInterface) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache}
}

// GetSpotRate returns the cached spot rate for the lane, falling through
// to the inner provider on a miss.
func (p *CachedProvider) GetSpotRate(ctx context.Context, origin, destination string, equipment domain.EquipmentType) (*domain.MarketRate, error) {
	lane := domain.LaneID(origin, destination)

	cached, err := p.cache.GetSpotRate(ctx, lane, equipment)
	if err != nil {
		log.Printf("rate cache read failed for %s: %v", lane, err)
	}
	if cached != nil {
		return cached, nil
	}

	rate, err := p.inner.GetSpotRate(ctx, origin, destination, equipment)
	if err != nil {
		return nil, err
	}
	if rate != nil {
		if err := p.cache.SetSpotRate(ctx, lane, equipment, rate); err != nil {
			log.Printf("rate cache write failed for %s: %v", lane, err)
		}
	}
	return rate, nil
}

// GetHistoricalRates returns the cached series for the lane, falling
// through to the inner provider on a miss.
func (p *CachedProvider) GetHistoricalRates(ctx context.Context, origin, destination string, days int, equipment domain.EquipmentType) ([]domain.MarketRate, error) {
	lane := domain.LaneID(origin, destination)

	cached, err := p.cache.GetHistory(ctx, lane, equipment, days)
	if err != nil {
		log.Printf("rate cache read failed for %s: %v", lane, err)
	}
	if len(cached) > 0 {
		return cached, nil
	}

	rates, err := p.inner.GetHistoricalRates(ctx, origin, destination, days, equipment)
	if err != nil {
		return nil, err
	}
	if len(rates) > 0 {
		if err := p.cache.SetHistory(ctx, lane, equipment, days, rates); err != nil {
			log.Printf("rate cache write failed for %s: %v", lane, err)
		}
	}
	return rates, nil
}

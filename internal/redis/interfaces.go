package redis

import (
	"context"

	"freight/internal/domain"
)

// RateCacheInterface defines the interface for market rate caching.
type RateCacheInterface interface {
	GetSpotRate(ctx context.Context, lane string, equipment domain.EquipmentType) (*domain.MarketRate, error)
	SetSpotRate(ctx context.Context, lane string, equipment domain.EquipmentType, rate *domain.MarketRate) error
	GetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int) ([]domain.MarketRate, error)
	SetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int, rates []domain.MarketRate) error
}

// Ensure concrete types implement interfaces.
var _ RateCacheInterface = (*RateCacheStore)(nil)

package repository

import (
	"context"

	"freight/internal/domain"
)

// RateHistoryRepository persists market rate observations so historical
// series survive feed outages.
type RateHistoryRepository interface {
	// Record stores one observation for a lane.
	Record(ctx context.Context, rate *domain.MarketRate) error

	// GetHistory retrieves observations for a lane from the last `days`
	// days, ordered by time ascending.
	GetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int) ([]domain.MarketRate, error)
}

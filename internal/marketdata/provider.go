package marketdata

import (
	"context"

	"freight/internal/domain"
)

// Provider supplies market benchmark rates for a lane and equipment type.
// A (nil, nil) spot rate means the feed has no benchmark for the lane;
// callers must treat that as a normal outcome, not a failure.
type Provider interface {
	// GetSpotRate returns the current benchmark for the lane, or nil if
	// the feed has no data.
	GetSpotRate(ctx context.Context, origin, destination string, equipment domain.EquipmentType) (*domain.MarketRate, error)

	// GetHistoricalRates returns up to `days` daily observations for the
	// lane, ordered by time ascending. The series may be empty or short.
	GetHistoricalRates(ctx context.Context, origin, destination string, days int, equipment domain.EquipmentType) ([]domain.MarketRate, error)
}

// Ensure concrete types implement Provider.
var (
	_ Provider = (*FeedClient)(nil)
	_ Provider = (*Service)(nil)
	_ Provider = (*CachedProvider)(nil)
)

package service

import "freight/internal/domain"

// MarketAdjuster nudges a cost-plus price toward the market benchmark.
// The correction is applied exactly once per calculation, never iterated.
type MarketAdjuster struct {
	config AdjusterConfig
}

// AdjusterConfig contains the deviation thresholds and pull factors.
type AdjusterConfig struct {
	UnderMarketThreshold float64 // deviation below which the price is pulled up
	OverMarketThreshold  float64 // deviation above which the price is pulled down
	PullUpPct            float64 // fraction of market average added when under market
	PullDownPct          float64 // fraction of market average subtracted when over market
}

// DefaultAdjusterConfig returns the default adjustment policy.
func DefaultAdjusterConfig() AdjusterConfig {
	return AdjusterConfig{
		UnderMarketThreshold: -0.10, // more than 10% under market
		OverMarketThreshold:  0.20,  // more than 20% over market
		PullUpPct:            0.05,
		PullDownPct:          0.03,
	}
}

// NewMarketAdjuster creates a new MarketAdjuster.
func NewMarketAdjuster(config AdjusterConfig) *MarketAdjuster {
	return &MarketAdjuster{config: config}
}

// Adjustment returns the signed EUR correction for the given price.
// A nil market rate (or a benchmark of zero) means no adjustment.
func (a *MarketAdjuster) Adjustment(currentPrice float64, rate *domain.MarketRate) float64 {
	if rate == nil || rate.AvgRate <= 0 {
		return 0
	}

	deviation := (currentPrice - rate.AvgRate) / rate.AvgRate

	switch {
	case deviation < a.config.UnderMarketThreshold:
		return a.config.PullUpPct * rate.AvgRate
	case deviation > a.config.OverMarketThreshold:
		return -a.config.PullDownPct * rate.AvgRate
	default:
		return 0 // within the acceptable band
	}
}

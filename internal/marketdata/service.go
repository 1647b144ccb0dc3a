package marketdata

import (
	"context"
	"log"

	"freight/internal/domain"
	"freight/internal/repository"
)

// Service combines the live rate feed with the local observation store.
// Every spot rate that is successfully fetched is recorded, and the store
// serves the historical series when the feed cannot.
type Service struct {
	feed Provider
	repo repository.RateHistoryRepository
}

// NewService creates a new market data Service.
func NewService(feed Provider, repo repository.RateHistoryRepository) *Service {
	return &Service{feed: feed, repo: repo}
}

// GetSpotRate fetches the current benchmark from the feed and records it
// as an observation. Recording is best-effort.
func (s *Service) GetSpotRate(ctx context.Context, origin, destination string, equipment domain.EquipmentType) (*domain.MarketRate, error) {
	rate, err := s.feed.GetSpotRate(ctx, origin, destination, equipment)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, nil
	}

	if s.repo != nil {
		if err := s.repo.Record(ctx, rate); err != nil {
			log.Printf("failed to record rate observation for %s: %v", rate.Lane, err)
		}
	}
	return rate, nil
}

// GetHistoricalRates fetches the series from the feed, falling back to
// locally recorded observations when the feed fails or has no history.
func (s *Service) GetHistoricalRates(ctx context.Context, origin, destination string, days int, equipment domain.EquipmentType) ([]domain.MarketRate, error) {
	rates, err := s.feed.GetHistoricalRates(ctx, origin, destination, days, equipment)
	if err == nil && len(rates) > 0 {
		return rates, nil
	}
	if err != nil {
		log.Printf("rate feed history failed for %s:%s: %v", origin, destination, err)
	}

	if s.repo == nil {
		return rates, err
	}

	stored, repoErr := s.repo.GetHistory(ctx, domain.LaneID(origin, destination), equipment, days)
	if repoErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, repoErr
	}
	return stored, nil
}

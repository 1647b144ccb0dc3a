package tests

import (
	"context"
	"sync"
	"sync/atomic"

	"freight/internal/domain"
	"freight/internal/marketdata"
	"freight/internal/redis"
	"freight/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK MARKET RATE PROVIDER
// ──────────────────────────────────────────────

// MockRateProvider is a mock implementation of marketdata.Provider.
type MockRateProvider struct {
	mu       sync.RWMutex
	SpotRate *domain.MarketRate
	History  []domain.MarketRate

	// Counters for verification
	SpotCallCount    int32
	HistoryCallCount int32

	// Error injection
	SpotError    error
	HistoryError error
}

// Ensure the mock satisfies the provider contract.
var _ marketdata.Provider = (*MockRateProvider)(nil)

// NewMockRateProvider creates a new mock provider with no data.
func NewMockRateProvider() *MockRateProvider {
	return &MockRateProvider{}
}

func (m *MockRateProvider) GetSpotRate(ctx context.Context, origin, destination string, equipment domain.EquipmentType) (*domain.MarketRate, error) {
	atomic.AddInt32(&m.SpotCallCount, 1)
	if m.SpotError != nil {
		return nil, m.SpotError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.SpotRate == nil {
		return nil, nil
	}
	// Return a copy to avoid mutation issues.
	copy := *m.SpotRate
	return &copy, nil
}

func (m *MockRateProvider) GetHistoricalRates(ctx context.Context, origin, destination string, days int, equipment domain.EquipmentType) ([]domain.MarketRate, error) {
	atomic.AddInt32(&m.HistoryCallCount, 1)
	if m.HistoryError != nil {
		return nil, m.HistoryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.MarketRate, len(m.History))
	copy(result, m.History)
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK RATE HISTORY REPOSITORY
// ──────────────────────────────────────────────

// MockRateHistoryRepository is an in-memory implementation of
// repository.RateHistoryRepository.
type MockRateHistoryRepository struct {
	mu           sync.RWMutex
	observations map[string][]domain.MarketRate

	RecordCallCount int32

	RecordError  error
	HistoryError error
}

// Ensure the mock satisfies the repository contract.
var _ repository.RateHistoryRepository = (*MockRateHistoryRepository)(nil)

// NewMockRateHistoryRepository creates a new mock repository.
func NewMockRateHistoryRepository() *MockRateHistoryRepository {
	return &MockRateHistoryRepository{
		observations: make(map[string][]domain.MarketRate),
	}
}

func (m *MockRateHistoryRepository) Record(ctx context.Context, rate *domain.MarketRate) error {
	atomic.AddInt32(&m.RecordCallCount, 1)
	if m.RecordError != nil {
		return m.RecordError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := rate.Lane + ":" + string(rate.Equipment)
	m.observations[key] = append(m.observations[key], *rate)
	return nil
}

func (m *MockRateHistoryRepository) GetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int) ([]domain.MarketRate, error) {
	if m.HistoryError != nil {
		return nil, m.HistoryError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := lane + ":" + string(equipment)
	result := make([]domain.MarketRate, len(m.observations[key]))
	copy(result, m.observations[key])
	return result, nil
}

// Observations returns the recorded observations for test assertions.
func (m *MockRateHistoryRepository) Observations(lane string, equipment domain.EquipmentType) []domain.MarketRate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.observations[lane+":"+string(equipment)]
}

// ──────────────────────────────────────────────
// MOCK RATE CACHE
// ──────────────────────────────────────────────

// MockRateCache is an in-memory implementation of redis.RateCacheInterface.
type MockRateCache struct {
	mu      sync.RWMutex
	spot    map[string]*domain.MarketRate
	history map[string][]domain.MarketRate

	SpotSetCallCount int32

	GetError error
	SetError error
}

// Ensure the mock satisfies the cache contract.
var _ redis.RateCacheInterface = (*MockRateCache)(nil)

// NewMockRateCache creates a new mock cache.
func NewMockRateCache() *MockRateCache {
	return &MockRateCache{
		spot:    make(map[string]*domain.MarketRate),
		history: make(map[string][]domain.MarketRate),
	}
}

func (m *MockRateCache) GetSpotRate(ctx context.Context, lane string, equipment domain.EquipmentType) (*domain.MarketRate, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rate, ok := m.spot[lane+":"+string(equipment)]
	if !ok {
		return nil, nil
	}
	copy := *rate
	return &copy, nil
}

func (m *MockRateCache) SetSpotRate(ctx context.Context, lane string, equipment domain.EquipmentType, rate *domain.MarketRate) error {
	atomic.AddInt32(&m.SpotSetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *rate
	m.spot[lane+":"+string(equipment)] = &copy
	return nil
}

func (m *MockRateCache) GetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int) ([]domain.MarketRate, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rates := m.history[lane+":"+string(equipment)]
	result := make([]domain.MarketRate, len(rates))
	copy(result, rates)
	return result, nil
}

func (m *MockRateCache) SetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int, rates []domain.MarketRate) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]domain.MarketRate, len(rates))
	copy(stored, rates)
	m.history[lane+":"+string(equipment)] = stored
	return nil
}

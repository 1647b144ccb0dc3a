package tests

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"freight/internal/config"
	"freight/internal/domain"
	"freight/internal/marketdata"
)

func TestCachedProvider_ServesSecondRequestFromCache(t *testing.T) {
	inner := NewMockRateProvider()
	inner.SpotRate = marketRate(450)
	cache := NewMockRateCache()
	provider := marketdata.NewCachedProvider(inner, cache)

	ctx := context.Background()

	first, err := provider.GetSpotRate(ctx, "IT-MIL", "DE-BER", domain.EquipmentVan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == nil {
		t.Fatal("expected a rate on first fetch")
	}

	second, err := provider.GetSpotRate(ctx, "IT-MIL", "DE-BER", domain.EquipmentVan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second == nil || second.AvgRate != first.AvgRate {
		t.Fatal("expected the cached rate on second fetch")
	}

	if inner.SpotCallCount != 1 {
		t.Errorf("expected 1 inner fetch, got %d", inner.SpotCallCount)
	}
}

func TestCachedProvider_CacheFailureFallsThrough(t *testing.T) {
	inner := NewMockRateProvider()
	inner.SpotRate = marketRate(450)
	cache := NewMockRateCache()
	cache.GetError = errors.New("redis down")
	cache.SetError = errors.New("redis down")
	provider := marketdata.NewCachedProvider(inner, cache)

	rate, err := provider.GetSpotRate(context.Background(), "IT-MIL", "DE-BER", domain.EquipmentVan)
	if err != nil {
		t.Fatalf("expected fall-through on cache failure, got %v", err)
	}
	if rate == nil || rate.AvgRate != 450 {
		t.Fatal("expected the inner provider's rate")
	}
}

func TestMarketDataService_RecordsObservations(t *testing.T) {
	feed := NewMockRateProvider()
	feed.SpotRate = marketRate(450)
	repo := NewMockRateHistoryRepository()
	svc := marketdata.NewService(feed, repo)

	rate, err := svc.GetSpotRate(context.Background(), "IT-MIL", "DE-BER", domain.EquipmentVan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate == nil {
		t.Fatal("expected a rate")
	}

	recorded := repo.Observations("IT-MIL:DE-BER", domain.EquipmentVan)
	if len(recorded) != 1 {
		t.Fatalf("expected 1 recorded observation, got %d", len(recorded))
	}
	if recorded[0].AvgRate != 450 {
		t.Errorf("expected recorded avg rate 450, got %.2f", recorded[0].AvgRate)
	}
}

func TestMarketDataService_HistoryFallsBackToStore(t *testing.T) {
	feed := NewMockRateProvider()
	feed.HistoryError = errors.New("feed down")
	repo := NewMockRateHistoryRepository()
	stored := *marketRate(440)
	stored.Timestamp = time.Now().Add(-24 * time.Hour)
	if err := repo.Record(context.Background(), &stored); err != nil {
		t.Fatalf("failed to seed repo: %v", err)
	}
	svc := marketdata.NewService(feed, repo)

	rates, err := svc.GetHistoricalRates(context.Background(), "IT-MIL", "DE-BER", 30, domain.EquipmentVan)
	if err != nil {
		t.Fatalf("expected stored history, got error: %v", err)
	}
	if len(rates) != 1 || rates[0].AvgRate != 440 {
		t.Fatalf("expected the stored observation, got %v", rates)
	}
}

func TestFeedClient_GetSpotRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/rates/spot" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("origin") != "IT-MIL" {
			t.Errorf("unexpected origin %s", r.URL.Query().Get("origin"))
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rate":{"lane":"IT-MIL:DE-BER","equipment":"VAN","avg_rate":452.5,"low_rate":410,"high_rate":495,"rate_per_km":0.9,"fuel_surcharge_pct":8.5,"timestamp":"2025-06-01T00:00:00Z"}}`))
	}))
	defer server.Close()

	client := marketdata.NewFeedClient(config.MarketDataConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: time.Second,
	})

	rate, err := client.GetSpotRate(context.Background(), "IT-MIL", "DE-BER", domain.EquipmentVan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate == nil || rate.AvgRate != 452.5 {
		t.Fatalf("expected avg rate 452.5, got %v", rate)
	}
	if rate.Lane != "IT-MIL:DE-BER" {
		t.Errorf("unexpected lane %s", rate.Lane)
	}
}

func TestFeedClient_NotFoundMeansNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := marketdata.NewFeedClient(config.MarketDataConfig{BaseURL: server.URL, Timeout: time.Second})

	rate, err := client.GetSpotRate(context.Background(), "IT-MIL", "XX-YYY", domain.EquipmentVan)
	if err != nil {
		t.Fatalf("expected no error on 404, got %v", err)
	}
	if rate != nil {
		t.Fatalf("expected nil rate on 404, got %v", rate)
	}
}

func TestFeedClient_ServerErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := marketdata.NewFeedClient(config.MarketDataConfig{BaseURL: server.URL, Timeout: time.Second})

	if _, err := client.GetSpotRate(context.Background(), "IT-MIL", "DE-BER", domain.EquipmentVan); err == nil {
		t.Fatal("expected an error on 500")
	}
}

func TestFeedClient_GetHistoricalRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/rates/history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("days") != "30" {
			t.Errorf("unexpected days %s", r.URL.Query().Get("days"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rates":[{"lane":"IT-MIL:DE-BER","equipment":"VAN","avg_rate":445,"timestamp":"2025-05-30T00:00:00Z"},{"lane":"IT-MIL:DE-BER","equipment":"VAN","avg_rate":455,"timestamp":"2025-05-31T00:00:00Z"}]}`))
	}))
	defer server.Close()

	client := marketdata.NewFeedClient(config.MarketDataConfig{BaseURL: server.URL, Timeout: time.Second})

	rates, err := client.GetHistoricalRates(context.Background(), "IT-MIL", "DE-BER", 30, domain.EquipmentVan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}
	if rates[0].AvgRate != 445 || rates[1].AvgRate != 455 {
		t.Errorf("unexpected series %v", rates)
	}
}

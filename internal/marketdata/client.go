package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"freight/internal/config"
	"freight/internal/domain"
)

// FeedClient talks to the freight-rate benchmarking API over HTTP.
type FeedClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewFeedClient creates a new FeedClient. The per-request timeout comes
// from the market-data configuration.
func NewFeedClient(cfg config.MarketDataConfig) *FeedClient {
	return &FeedClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// spotResponse is the feed's spot rate payload.
type spotResponse struct {
	Rate *domain.MarketRate `json:"rate"`
}

// historyResponse is the feed's historical series payload.
type historyResponse struct {
	Rates []domain.MarketRate `json:"rates"`
}

// GetSpotRate fetches the current benchmark for a lane. A 404 from the
// feed means no benchmark exists and is returned as (nil, nil).
func (c *FeedClient) GetSpotRate(ctx context.Context, origin, destination string, equipment domain.EquipmentType) (*domain.MarketRate, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("equipment", string(equipment))

	var resp spotResponse
	if err := c.get(ctx, "/v1/rates/spot", q, &resp); err != nil {
		if err == errNoData {
			return nil, nil
		}
		return nil, err
	}
	return resp.Rate, nil
}

// GetHistoricalRates fetches the daily series for a lane.
func (c *FeedClient) GetHistoricalRates(ctx context.Context, origin, destination string, days int, equipment domain.EquipmentType) ([]domain.MarketRate, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("equipment", string(equipment))
	q.Set("days", strconv.Itoa(days))

	var resp historyResponse
	if err := c.get(ctx, "/v1/rates/history", q, &resp); err != nil {
		if err == errNoData {
			return nil, nil
		}
		return nil, err
	}
	return resp.Rates, nil
}

// errNoData marks a 404 from the feed: the lane has no benchmark.
var errNoData = fmt.Errorf("no market data")

func (c *FeedClient) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNoData
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

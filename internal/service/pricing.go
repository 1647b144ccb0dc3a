package service

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"freight/internal/config"
	"freight/internal/domain"
	"freight/internal/marketdata"
)

// PricingEngine calculates customer prices for shipments. It owns only its
// static configuration; every calculation builds fresh value objects, so a
// single engine is safe for concurrent use.
type PricingEngine struct {
	pricingCfg config.PricingConfig
	marketCfg  config.MarketDataConfig
	costModel  *CostModel
	adjuster   *MarketAdjuster
	estimator  *ConfidenceEstimator
	provider   marketdata.Provider
}

// NewPricingEngine creates a new PricingEngine.
func NewPricingEngine(
	pricingCfg config.PricingConfig,
	marketCfg config.MarketDataConfig,
	provider marketdata.Provider,
) *PricingEngine {
	return &PricingEngine{
		pricingCfg: pricingCfg,
		marketCfg:  marketCfg,
		costModel:  NewCostModel(pricingCfg),
		adjuster:   NewMarketAdjuster(DefaultAdjusterConfig()),
		estimator:  NewConfidenceEstimator(DefaultConfidenceConfig()),
		provider:   provider,
	}
}

// CalculatePriceRequest contains the parameters for one price calculation.
type CalculatePriceRequest struct {
	ShipmentID      string
	Input           domain.PricingInput
	Strategy        domain.PricingStrategy
	TargetMarginPct float64 // 0 means use the configured default
}

// CalculatePrice calculates the customer price for one shipment. Market
// data failures degrade to a quote without market context; only invalid
// input is returned as an error.
func (e *PricingEngine) CalculatePrice(ctx context.Context, req CalculatePriceRequest) (*domain.PricingResult, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	marginPct := req.TargetMarginPct
	if marginPct == 0 {
		marginPct = e.pricingCfg.DefaultMarginPct
	}

	cost := e.costModel.Compute(req.Input)

	rate := e.fetchSpotRate(ctx, req.Input)

	margin := cost.BaseCost * marginPct / 100
	if margin < e.pricingCfg.MinMarginEUR {
		margin = e.pricingCfg.MinMarginEUR
	}

	adjustment := e.adjuster.Adjustment(cost.BaseCost+margin, rate)

	customerPrice, adjustment := e.applyStrategy(req.Strategy, cost.BaseCost, margin, adjustment, rate)

	// Margin floor: the quote never yields less than the configured
	// minimum margin over base cost.
	if customerPrice-cost.BaseCost < e.pricingCfg.MinMarginEUR {
		customerPrice = cost.BaseCost + e.pricingCfg.MinMarginEUR
	}

	marginEUR := customerPrice - cost.BaseCost

	confidence := e.estimateConfidence(ctx, req.Input, customerPrice)

	vatAmount := customerPrice * e.pricingCfg.VATPct / 100

	now := time.Now()
	result := &domain.PricingResult{
		ID:            uuid.New().String(),
		ShipmentID:    req.ShipmentID,
		Strategy:      req.Strategy,
		CustomerPrice: customerPrice,
		CarrierPrice:  cost.BaseCost,
		MarginEUR:     marginEUR,
		MarginPct:     marginEUR / cost.BaseCost * 100,
		Breakdown: domain.PricingBreakdown{
			FuelCost:         cost.Fuel,
			TollCost:         cost.Tolls,
			DriverCost:       cost.Driver,
			InsuranceCost:    cost.Insurance,
			ADRSurcharge:     cost.ADRSurcharge,
			TempSurcharge:    cost.TempSurcharge,
			ExpressFee:       cost.ExpressFee,
			DedicatedFee:     cost.DedicatedFee,
			BaseCost:         cost.BaseCost,
			Margin:           customerPrice - cost.BaseCost - adjustment,
			MarketAdjustment: adjustment,
			Subtotal:         customerPrice,
			VATRate:          e.pricingCfg.VATPct,
			VATAmount:        vatAmount,
			Total:            customerPrice + vatAmount,
		},
		Confidence:   confidence,
		MarketRate:   rate,
		CalculatedAt: now,
		ValidUntil:   now.Add(time.Duration(e.pricingCfg.ValidityHours) * time.Hour),
	}

	return result, nil
}

// applyStrategy resolves the customer price and the market adjustment that
// was actually applied.
func (e *PricingEngine) applyStrategy(
	strategy domain.PricingStrategy,
	baseCost, margin, adjustment float64,
	rate *domain.MarketRate,
) (float64, float64) {
	switch strategy {
	case domain.StrategyCostPlus:
		return baseCost + margin, 0
	case domain.StrategyMarketBased, domain.StrategyValueBased:
		return baseCost + margin + adjustment, adjustment
	case domain.StrategyCompetitive:
		if rate != nil && rate.AvgRate > 0 {
			price := rate.AvgRate * 0.98
			return price, price - baseCost - margin
		}
		// No benchmark to undercut; price cost-plus instead.
		return baseCost + margin, 0
	default:
		return baseCost + margin, 0
	}
}

// validate rejects malformed input before any computation.
func (e *PricingEngine) validate(req CalculatePriceRequest) error {
	if req.ShipmentID == "" {
		return ErrInvalidShipmentID
	}
	if req.Input.DistanceKm < 0 || math.IsNaN(req.Input.DistanceKm) {
		return ErrInvalidDistance
	}
	if req.Input.WeightKg < 0 || math.IsNaN(req.Input.WeightKg) {
		return ErrInvalidWeight
	}
	switch req.Input.Equipment {
	case domain.EquipmentVan, domain.EquipmentReefer, domain.EquipmentFlatbed:
	default:
		return ErrInvalidEquipment
	}
	switch req.Strategy {
	case domain.StrategyCostPlus, domain.StrategyMarketBased, domain.StrategyValueBased, domain.StrategyCompetitive:
	default:
		return ErrInvalidStrategy
	}
	if req.TargetMarginPct < 0 {
		return ErrInvalidMargin
	}
	return nil
}

// fetchSpotRate fetches the market benchmark with a bounded timeout. Any
// failure is logged and treated as "no market data".
func (e *PricingEngine) fetchSpotRate(ctx context.Context, input domain.PricingInput) *domain.MarketRate {
	fetchCtx, cancel := context.WithTimeout(ctx, e.marketCfg.Timeout)
	defer cancel()

	rate, err := e.provider.GetSpotRate(fetchCtx, input.OriginCode(), input.DestinationCode(), input.Equipment)
	if err != nil {
		log.Printf("spot rate unavailable for %s: %v", domain.LaneID(input.OriginCode(), input.DestinationCode()), err)
		return nil
	}
	return rate
}

// estimateConfidence fetches the historical series with a bounded timeout
// and estimates the interval. A failed fetch degrades to the fixed-ratio
// fallback.
func (e *PricingEngine) estimateConfidence(ctx context.Context, input domain.PricingInput, point float64) domain.PricingConfidence {
	fetchCtx, cancel := context.WithTimeout(ctx, e.marketCfg.Timeout)
	defer cancel()

	history, err := e.provider.GetHistoricalRates(fetchCtx, input.OriginCode(), input.DestinationCode(), e.marketCfg.HistoryDays, input.Equipment)
	if err != nil {
		log.Printf("rate history unavailable for %s: %v", domain.LaneID(input.OriginCode(), input.DestinationCode()), err)
		return e.estimator.Estimate(point, nil)
	}

	series := make([]float64, 0, len(history))
	for _, h := range history {
		series = append(series, h.AvgRate)
	}
	return e.estimator.Estimate(point, series)
}

// BatchResult pairs the outcome of one calculation with its position in
// the batch. Exactly one of Result and Err is set.
type BatchResult struct {
	ShipmentID string
	Result     *domain.PricingResult
	Err        error
}

// BatchCalculate prices every shipment concurrently. A failure in one
// calculation is captured in its slot and does not abort the others.
func (e *PricingEngine) BatchCalculate(ctx context.Context, reqs []CalculatePriceRequest) []BatchResult {
	results := make([]BatchResult, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req CalculatePriceRequest) {
			defer wg.Done()
			result, err := e.CalculatePrice(ctx, req)
			results[i] = BatchResult{
				ShipmentID: req.ShipmentID,
				Result:     result,
				Err:        err,
			}
		}(i, req)
	}
	wg.Wait()

	return results
}

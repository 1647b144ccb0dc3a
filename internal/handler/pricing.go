package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight/internal/domain"
	"freight/internal/service"
)

// PricingHandler handles HTTP requests for price quotes.
type PricingHandler struct {
	engine *service.PricingEngine
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(engine *service.PricingEngine) *PricingHandler {
	return &PricingHandler{engine: engine}
}

// QuoteRequest is the HTTP request body for calculating a quote.
type QuoteRequest struct {
	ShipmentID            string  `json:"shipment_id"`
	OriginCountry         string  `json:"origin_country"`
	OriginCity            string  `json:"origin_city"`
	DestinationCountry    string  `json:"destination_country"`
	DestinationCity       string  `json:"destination_city"`
	DistanceKm            float64 `json:"distance_km"`
	WeightKg              float64 `json:"weight_kg"`
	VolumeM3              float64 `json:"volume_m3,omitempty"`
	Pallets               int     `json:"pallets,omitempty"`
	ADR                   bool    `json:"adr,omitempty"`
	TemperatureControlled bool    `json:"temperature_controlled,omitempty"`
	Express               bool    `json:"express,omitempty"`
	Dedicated             bool    `json:"dedicated,omitempty"`
	Equipment             string  `json:"equipment"`                   // VAN, REEFER, FLATBED
	Strategy              string  `json:"strategy,omitempty"`          // defaults to COST_PLUS
	TargetMarginPct       float64 `json:"target_margin_pct,omitempty"` // 0 = configured default
}

// BatchQuoteRequest is the HTTP request body for batch quoting.
type BatchQuoteRequest struct {
	Shipments []QuoteRequest `json:"shipments"`
}

// BreakdownResponse is the itemized cost breakdown, EUR, 2 decimals.
type BreakdownResponse struct {
	FuelCost         float64 `json:"fuel_cost"`
	TollCost         float64 `json:"toll_cost"`
	DriverCost       float64 `json:"driver_cost"`
	InsuranceCost    float64 `json:"insurance_cost"`
	ADRSurcharge     float64 `json:"adr_surcharge"`
	TempSurcharge    float64 `json:"temp_surcharge"`
	ExpressFee       float64 `json:"express_fee"`
	DedicatedFee     float64 `json:"dedicated_fee"`
	BaseCost         float64 `json:"base_cost"`
	Margin           float64 `json:"margin"`
	MarketAdjustment float64 `json:"market_adjustment"`
	Subtotal         float64 `json:"subtotal"`
	VATRate          float64 `json:"vat_rate"`
	VATAmount        float64 `json:"vat_amount"`
	Total            float64 `json:"total"`
}

// ConfidenceResponse is the 95% interval around the quote.
type ConfidenceResponse struct {
	PointEstimate   float64 `json:"point_estimate"`
	LowerBound95    float64 `json:"lower_bound_95"`
	UpperBound95    float64 `json:"upper_bound_95"`
	SampleSize      int     `json:"sample_size"`
	VolatilityIndex float64 `json:"volatility_index"`
}

// MarketRateResponse is the benchmark snapshot used for the quote.
type MarketRateResponse struct {
	Lane      string  `json:"lane"`
	Equipment string  `json:"equipment"`
	AvgRate   float64 `json:"avg_rate"`
	LowRate   float64 `json:"low_rate"`
	HighRate  float64 `json:"high_rate"`
	Timestamp string  `json:"timestamp"`
}

// QuoteResponse is the HTTP response for a calculated quote.
type QuoteResponse struct {
	ID            string              `json:"id"`
	ShipmentID    string              `json:"shipment_id"`
	Strategy      string              `json:"strategy"`
	CustomerPrice float64             `json:"customer_price"`
	CarrierPrice  float64             `json:"carrier_price"`
	MarginEUR     float64             `json:"margin_eur"`
	MarginPct     float64             `json:"margin_pct"`
	Breakdown     BreakdownResponse   `json:"breakdown"`
	Confidence    ConfidenceResponse  `json:"confidence"`
	MarketRate    *MarketRateResponse `json:"market_rate,omitempty"`
	CalculatedAt  string              `json:"calculated_at"`
	ValidUntil    string              `json:"valid_until"`
}

// BatchQuoteItemResponse is one slot of a batch quote response.
type BatchQuoteItemResponse struct {
	ShipmentID string         `json:"shipment_id"`
	Quote      *QuoteResponse `json:"quote,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// CalculateQuote handles POST /v1/quotes
func (h *PricingHandler) CalculateQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.engine.CalculatePrice(c.Request.Context(), toEngineRequest(req))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toQuoteResponse(result))
}

// CalculateBatch handles POST /v1/quotes/batch
func (h *PricingHandler) CalculateBatch(c *gin.Context) {
	var req BatchQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if len(req.Shipments) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty batch"})
		return
	}

	reqs := make([]service.CalculatePriceRequest, len(req.Shipments))
	for i, s := range req.Shipments {
		reqs[i] = toEngineRequest(s)
	}

	results := h.engine.BatchCalculate(c.Request.Context(), reqs)

	response := make([]BatchQuoteItemResponse, len(results))
	for i, r := range results {
		item := BatchQuoteItemResponse{ShipmentID: r.ShipmentID}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else {
			quote := toQuoteResponse(r.Result)
			item.Quote = &quote
		}
		response[i] = item
	}

	respondJSON(c, http.StatusOK, response)
}

func toEngineRequest(req QuoteRequest) service.CalculatePriceRequest {
	strategy := domain.PricingStrategy(req.Strategy)
	if req.Strategy == "" {
		strategy = domain.StrategyCostPlus
	}

	return service.CalculatePriceRequest{
		ShipmentID: req.ShipmentID,
		Input: domain.PricingInput{
			OriginCountry:         req.OriginCountry,
			OriginCity:            req.OriginCity,
			DestinationCountry:    req.DestinationCountry,
			DestinationCity:       req.DestinationCity,
			DistanceKm:            req.DistanceKm,
			WeightKg:              req.WeightKg,
			VolumeM3:              req.VolumeM3,
			Pallets:               req.Pallets,
			ADR:                   req.ADR,
			TemperatureControlled: req.TemperatureControlled,
			Express:               req.Express,
			Dedicated:             req.Dedicated,
			Equipment:             domain.EquipmentType(req.Equipment),
		},
		Strategy:        strategy,
		TargetMarginPct: req.TargetMarginPct,
	}
}

func toQuoteResponse(result *domain.PricingResult) QuoteResponse {
	response := QuoteResponse{
		ID:            result.ID,
		ShipmentID:    result.ShipmentID,
		Strategy:      string(result.Strategy),
		CustomerPrice: round2(result.CustomerPrice),
		CarrierPrice:  round2(result.CarrierPrice),
		MarginEUR:     round2(result.MarginEUR),
		MarginPct:     round2(result.MarginPct),
		Breakdown: BreakdownResponse{
			FuelCost:         round2(result.Breakdown.FuelCost),
			TollCost:         round2(result.Breakdown.TollCost),
			DriverCost:       round2(result.Breakdown.DriverCost),
			InsuranceCost:    round2(result.Breakdown.InsuranceCost),
			ADRSurcharge:     round2(result.Breakdown.ADRSurcharge),
			TempSurcharge:    round2(result.Breakdown.TempSurcharge),
			ExpressFee:       round2(result.Breakdown.ExpressFee),
			DedicatedFee:     round2(result.Breakdown.DedicatedFee),
			BaseCost:         round2(result.Breakdown.BaseCost),
			Margin:           round2(result.Breakdown.Margin),
			MarketAdjustment: round2(result.Breakdown.MarketAdjustment),
			Subtotal:         round2(result.Breakdown.Subtotal),
			VATRate:          result.Breakdown.VATRate,
			VATAmount:        round2(result.Breakdown.VATAmount),
			Total:            round2(result.Breakdown.Total),
		},
		Confidence: ConfidenceResponse{
			PointEstimate:   round2(result.Confidence.PointEstimate),
			LowerBound95:    round2(result.Confidence.LowerBound95),
			UpperBound95:    round2(result.Confidence.UpperBound95),
			SampleSize:      result.Confidence.SampleSize,
			VolatilityIndex: result.Confidence.VolatilityIndex,
		},
		CalculatedAt: result.CalculatedAt.Format("2006-01-02T15:04:05Z07:00"),
		ValidUntil:   result.ValidUntil.Format("2006-01-02T15:04:05Z07:00"),
	}

	if result.MarketRate != nil {
		response.MarketRate = &MarketRateResponse{
			Lane:      result.MarketRate.Lane,
			Equipment: string(result.MarketRate.Equipment),
			AvgRate:   round2(result.MarketRate.AvgRate),
			LowRate:   round2(result.MarketRate.LowRate),
			HighRate:  round2(result.MarketRate.HighRate),
			Timestamp: result.MarketRate.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	return response
}

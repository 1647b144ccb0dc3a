package domain

import "time"

// EquipmentType represents the trailer/equipment class for a shipment.
type EquipmentType string

const (
	EquipmentVan     EquipmentType = "VAN"
	EquipmentReefer  EquipmentType = "REEFER"
	EquipmentFlatbed EquipmentType = "FLATBED"
)

// PricingStrategy selects how the customer price is derived.
type PricingStrategy string

const (
	StrategyCostPlus    PricingStrategy = "COST_PLUS"
	StrategyMarketBased PricingStrategy = "MARKET_BASED"
	StrategyValueBased  PricingStrategy = "VALUE_BASED"
	StrategyCompetitive PricingStrategy = "COMPETITIVE"
)

// PricingInput describes one shipment to price. It is created once per
// request and never mutated.
type PricingInput struct {
	OriginCountry         string
	OriginCity            string
	DestinationCountry    string
	DestinationCity       string
	DistanceKm            float64
	WeightKg              float64
	VolumeM3              float64 // optional, 0 = unknown
	Pallets               int     // optional, 0 = unknown
	ADR                   bool    // dangerous goods
	TemperatureControlled bool
	Express               bool
	Dedicated             bool
	Equipment             EquipmentType
}

// OriginCode returns the opaque location code forwarded to the market-data
// feed, e.g. "IT-MIL".
func (in PricingInput) OriginCode() string {
	return locationCode(in.OriginCountry, in.OriginCity)
}

// DestinationCode returns the opaque destination location code.
func (in PricingInput) DestinationCode() string {
	return locationCode(in.DestinationCountry, in.DestinationCity)
}

func locationCode(country, city string) string {
	if city == "" {
		return country
	}
	if country == "" {
		return city
	}
	return country + "-" + city
}

// PricingBreakdown itemizes every cost component of a quote. All amounts
// are EUR.
type PricingBreakdown struct {
	FuelCost         float64
	TollCost         float64
	DriverCost       float64
	InsuranceCost    float64
	ADRSurcharge     float64
	TempSurcharge    float64
	ExpressFee       float64
	DedicatedFee     float64
	BaseCost         float64 // sum of the components above, floored at the configured minimum
	Margin           float64
	MarketAdjustment float64
	Subtotal         float64 // customer price before VAT
	VATRate          float64 // percentage, e.g. 22.0
	VATAmount        float64
	Total            float64
}

// PricingConfidence is a 95% interval around the customer price derived
// from historical market volatility. SampleSize is 0 when no usable
// history was available and the bounds are the fixed-ratio fallback.
type PricingConfidence struct {
	PointEstimate   float64
	LowerBound95    float64
	UpperBound95    float64
	SampleSize      int
	VolatilityIndex float64 // coefficient of variation (std/mean) of the series
}

// PricingResult is the outcome of one price calculation. A recalculation
// produces a fresh result; results are never updated in place.
type PricingResult struct {
	ID            string
	ShipmentID    string
	Strategy      PricingStrategy
	CustomerPrice float64
	CarrierPrice  float64 // base transport cost handed to the carrier side
	MarginEUR     float64
	MarginPct     float64
	Breakdown     PricingBreakdown
	Confidence    PricingConfidence
	MarketRate    *MarketRate // nil when no market data was available
	CalculatedAt  time.Time
	ValidUntil    time.Time
}

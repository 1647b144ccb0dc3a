package tests

import (
	"math"
	"testing"

	"freight/internal/config"
	"freight/internal/domain"
	"freight/internal/service"
)

func testInput() domain.PricingInput {
	return domain.PricingInput{
		OriginCountry:      "IT",
		OriginCity:         "MIL",
		DestinationCountry: "DE",
		DestinationCity:    "BER",
		DistanceKm:         500,
		WeightKg:           5000,
		Equipment:          domain.EquipmentVan,
	}
}

func TestCostModel_ComputesComponents(t *testing.T) {
	cfg := config.LoadPricing()
	model := service.NewCostModel(cfg)

	cost := model.Compute(testInput())

	// fuel = 500 * 0.35, tolls = 500 * 0.18
	if !almostEqual(cost.Fuel, 175.0) {
		t.Errorf("expected fuel 175.00, got %.2f", cost.Fuel)
	}
	if !almostEqual(cost.Tolls, 90.0) {
		t.Errorf("expected tolls 90.00, got %.2f", cost.Tolls)
	}
	// insurance = 25 + 5000 * 0.002
	if !almostEqual(cost.Insurance, 35.0) {
		t.Errorf("expected insurance 35.00, got %.2f", cost.Insurance)
	}
}

func TestCostModel_DriverCostIsMaxOfDistanceAndTime(t *testing.T) {
	cfg := config.LoadPricing()
	model := service.NewCostModel(cfg)

	// At 500 km the distance-based estimate dominates:
	// 500 * 0.55 = 275 vs (500/65 + 2) * 25 = 242.31
	cost := model.Compute(testInput())
	if !almostEqual(cost.Driver, 275.0) {
		t.Errorf("expected driver cost 275.00, got %.2f", cost.Driver)
	}

	// At 50 km the time-based estimate dominates:
	// 50 * 0.55 = 27.50 vs (50/65 + 2) * 25 = 69.23
	short := testInput()
	short.DistanceKm = 50
	cost = model.Compute(short)
	expected := (50.0/cfg.AvgSpeedKmh + cfg.LoadingHours) * cfg.DriverRatePerHour
	if !almostEqual(cost.Driver, expected) {
		t.Errorf("expected driver cost %.2f, got %.2f", expected, cost.Driver)
	}
}

func TestCostModel_SurchargeMonotonicity(t *testing.T) {
	cfg := config.LoadPricing()
	model := service.NewCostModel(cfg)

	plain := model.Compute(testInput())
	if plain.ADRSurcharge != 0 || plain.TempSurcharge != 0 || plain.ExpressFee != 0 {
		t.Fatalf("expected no surcharges on plain input, got %+v", plain)
	}

	testCases := []struct {
		name   string
		modify func(*domain.PricingInput)
		check  func(service.CostBreakdown) float64
	}{
		{"adr", func(in *domain.PricingInput) { in.ADR = true }, func(c service.CostBreakdown) float64 { return c.ADRSurcharge }},
		{"temperature", func(in *domain.PricingInput) { in.TemperatureControlled = true }, func(c service.CostBreakdown) float64 { return c.TempSurcharge }},
		{"express", func(in *domain.PricingInput) { in.Express = true }, func(c service.CostBreakdown) float64 { return c.ExpressFee }},
		{"dedicated", func(in *domain.PricingInput) { in.Dedicated = true }, func(c service.CostBreakdown) float64 { return c.DedicatedFee }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := testInput()
			tc.modify(&input)
			cost := model.Compute(input)

			if tc.check(cost) <= 0 {
				t.Errorf("expected positive %s surcharge, got %.2f", tc.name, tc.check(cost))
			}
			if cost.BaseCost <= plain.BaseCost {
				t.Errorf("expected base cost to increase with %s flag: %.2f <= %.2f", tc.name, cost.BaseCost, plain.BaseCost)
			}
		})
	}
}

func TestCostModel_ADRSurchargeIsPercentOfFuel(t *testing.T) {
	cfg := config.LoadPricing()
	model := service.NewCostModel(cfg)

	input := testInput()
	input.ADR = true
	cost := model.Compute(input)

	expected := cost.Fuel * cfg.ADRSurchargePct / 100
	if !almostEqual(cost.ADRSurcharge, expected) {
		t.Errorf("expected ADR surcharge %.2f, got %.2f", expected, cost.ADRSurcharge)
	}
}

func TestCostModel_EnforcesMinimumBaseCost(t *testing.T) {
	cfg := config.LoadPricing()
	model := service.NewCostModel(cfg)

	input := testInput()
	input.DistanceKm = 1
	input.WeightKg = 10
	cost := model.Compute(input)

	if cost.BaseCost != cfg.MinBaseCost {
		t.Errorf("expected base cost floored at %.2f, got %.2f", cfg.MinBaseCost, cost.BaseCost)
	}
}

func TestCostModel_ZeroDistanceIsValid(t *testing.T) {
	model := service.NewCostModel(config.LoadPricing())

	input := testInput()
	input.DistanceKm = 0
	input.WeightKg = 0
	cost := model.Compute(input)

	if cost.BaseCost <= 0 {
		t.Errorf("expected positive base cost for zero distance, got %.2f", cost.BaseCost)
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

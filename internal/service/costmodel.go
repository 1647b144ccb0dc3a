package service

import (
	"freight/internal/config"
	"freight/internal/domain"
)

// CostModel converts shipment attributes into a base transportation cost,
// independent of market conditions. It is a pure function of the input and
// the static configuration.
type CostModel struct {
	cfg config.PricingConfig
}

// NewCostModel creates a new CostModel.
func NewCostModel(cfg config.PricingConfig) *CostModel {
	return &CostModel{cfg: cfg}
}

// CostBreakdown itemizes the components of the base cost. All amounts are EUR.
type CostBreakdown struct {
	Fuel          float64
	Tolls         float64
	Driver        float64
	Insurance     float64
	ADRSurcharge  float64
	TempSurcharge float64
	ExpressFee    float64
	DedicatedFee  float64
	BaseCost      float64
}

// Compute calculates the base cost for a shipment. Inputs are assumed
// valid; negative distance/weight are rejected by the engine before this
// point.
func (m *CostModel) Compute(input domain.PricingInput) CostBreakdown {
	fuel := input.DistanceKm * m.cfg.FuelRatePerKm
	tolls := input.DistanceKm * m.cfg.TollRatePerKm

	// Driver cost is the maximum of a distance-based and a time-based
	// estimate, so very slow routes and short-but-heavy routes are never
	// underpriced.
	driverByDistance := input.DistanceKm * m.cfg.DriverRatePerKm
	tripHours := input.DistanceKm/m.cfg.AvgSpeedKmh + m.cfg.LoadingHours
	driverByTime := tripHours * m.cfg.DriverRatePerHour
	driver := driverByDistance
	if driverByTime > driver {
		driver = driverByTime
	}

	insurance := m.cfg.InsuranceBase + input.WeightKg*m.cfg.InsuranceRatePerKg

	breakdown := CostBreakdown{
		Fuel:      fuel,
		Tolls:     tolls,
		Driver:    driver,
		Insurance: insurance,
	}

	// ADR and temperature surcharges are percentages of the fuel cost.
	if input.ADR {
		breakdown.ADRSurcharge = fuel * m.cfg.ADRSurchargePct / 100
	}
	if input.TemperatureControlled {
		breakdown.TempSurcharge = fuel * m.cfg.TempSurchargePct / 100
	}

	if input.Express {
		breakdown.ExpressFee = m.cfg.ExpressFee
	}
	if input.Dedicated {
		breakdown.DedicatedFee = m.cfg.DedicatedFee
	}

	total := breakdown.Fuel + breakdown.Tolls + breakdown.Driver + breakdown.Insurance +
		breakdown.ADRSurcharge + breakdown.TempSurcharge + breakdown.ExpressFee + breakdown.DedicatedFee

	if total < m.cfg.MinBaseCost {
		total = m.cfg.MinBaseCost
	}
	breakdown.BaseCost = total

	return breakdown
}

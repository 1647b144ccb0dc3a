package domain

import "time"

// MarketRate is one benchmark observation for a lane and equipment type,
// as reported by the freight-rate feed. Read-only to the pricing engine.
type MarketRate struct {
	Lane             string        `json:"lane"` // "<origin>:<destination>", e.g. "IT-MIL:DE-BER"
	Equipment        EquipmentType `json:"equipment"`
	AvgRate          float64       `json:"avg_rate"` // EUR
	LowRate          float64       `json:"low_rate"`
	HighRate         float64       `json:"high_rate"`
	RatePerKm        float64       `json:"rate_per_km"`
	FuelSurchargePct float64       `json:"fuel_surcharge_pct"`
	DistanceKm       float64       `json:"distance_km,omitempty"`
	Timestamp        time.Time     `json:"timestamp"`
}

// LaneID builds the canonical lane identifier used by the feed, the cache
// and the history store.
func LaneID(origin, destination string) string {
	return origin + ":" + destination
}

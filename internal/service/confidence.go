package service

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"freight/internal/domain"
)

// ConfidenceEstimator computes a 95% confidence interval around a price
// estimate from the volatility of historical market rates.
type ConfidenceEstimator struct {
	config ConfidenceConfig
}

// ConfidenceConfig contains the interval estimation parameters.
type ConfidenceConfig struct {
	MinSamples    int     // below this the fixed-ratio fallback is used
	FallbackRatio float64 // half-width of the fallback interval, as a fraction of the point estimate
	ClampRatio    float64 // sanity bound on the interval half-width
	Level         float64 // confidence level, e.g. 0.95
}

// DefaultConfidenceConfig returns the default estimation parameters.
func DefaultConfidenceConfig() ConfidenceConfig {
	return ConfidenceConfig{
		MinSamples:    7,
		FallbackRatio: 0.15,
		ClampRatio:    0.30,
		Level:         0.95,
	}
}

// NewConfidenceEstimator creates a new ConfidenceEstimator.
func NewConfidenceEstimator(config ConfidenceConfig) *ConfidenceEstimator {
	return &ConfidenceEstimator{config: config}
}

// Estimate returns the confidence interval for point given the historical
// rate series. A short or unusable series degrades to a fixed-ratio
// interval with SampleSize 0; this method never fails.
func (e *ConfidenceEstimator) Estimate(point float64, series []float64) domain.PricingConfidence {
	clean := make([]float64, 0, len(series))
	for _, v := range series {
		if v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			clean = append(clean, v)
		}
	}

	if len(clean) < e.config.MinSamples {
		return e.fallback(point)
	}

	mean := stat.Mean(clean, nil)
	std := stat.StdDev(clean, nil)
	if mean <= 0 || math.IsNaN(std) {
		return e.fallback(point)
	}

	n := float64(len(clean))
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 1}
	tCrit := t.Quantile(0.5 + e.config.Level/2)
	margin := tCrit * std / math.Sqrt(n)

	// Scale the margin to the current price level rather than the
	// historical one.
	deviationRatio := point / mean
	halfWidth := margin * deviationRatio

	// Sanity clamp against pathological volatility.
	maxWidth := point * e.config.ClampRatio
	if halfWidth > maxWidth {
		halfWidth = maxWidth
	}
	if halfWidth < 0 {
		halfWidth = 0
	}

	return domain.PricingConfidence{
		PointEstimate:   point,
		LowerBound95:    point - halfWidth,
		UpperBound95:    point + halfWidth,
		SampleSize:      len(clean),
		VolatilityIndex: std / mean,
	}
}

func (e *ConfidenceEstimator) fallback(point float64) domain.PricingConfidence {
	return domain.PricingConfidence{
		PointEstimate: point,
		LowerBound95:  point * (1 - e.config.FallbackRatio),
		UpperBound95:  point * (1 + e.config.FallbackRatio),
		SampleSize:    0,
	}
}

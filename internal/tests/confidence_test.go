package tests

import (
	"testing"

	"freight/internal/service"
)

// series30 builds a 30-point series alternating around mean 450 with a
// sample standard deviation of ~30.5.
func series30() []float64 {
	series := make([]float64, 30)
	for i := range series {
		if i%2 == 0 {
			series[i] = 420
		} else {
			series[i] = 480
		}
	}
	return series
}

func TestConfidenceEstimator_FallbackOnShortSeries(t *testing.T) {
	estimator := service.NewConfidenceEstimator(service.DefaultConfidenceConfig())

	testCases := []struct {
		name   string
		series []float64
	}{
		{"nil series", nil},
		{"empty series", []float64{}},
		{"six points", []float64{440, 450, 460, 445, 455, 450}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := estimator.Estimate(500, tc.series)

			if conf.SampleSize != 0 {
				t.Errorf("expected sample size 0, got %d", conf.SampleSize)
			}
			if !almostEqual(conf.LowerBound95, 500*0.85) {
				t.Errorf("expected lower bound 425.00, got %.2f", conf.LowerBound95)
			}
			if !almostEqual(conf.UpperBound95, 500*1.15) {
				t.Errorf("expected upper bound 575.00, got %.2f", conf.UpperBound95)
			}
		})
	}
}

func TestConfidenceEstimator_ThirtyDaySeries(t *testing.T) {
	estimator := service.NewConfidenceEstimator(service.DefaultConfidenceConfig())

	conf := estimator.Estimate(470, series30())

	if conf.SampleSize != 30 {
		t.Fatalf("expected sample size 30, got %d", conf.SampleSize)
	}

	// margin = t(0.975, 29) * std/sqrt(30) scaled by 470/450, roughly 11.9.
	if conf.LowerBound95 < 455 || conf.LowerBound95 > 461 {
		t.Errorf("expected lower bound near 458, got %.2f", conf.LowerBound95)
	}
	if conf.UpperBound95 < 479 || conf.UpperBound95 > 485 {
		t.Errorf("expected upper bound near 482, got %.2f", conf.UpperBound95)
	}

	// volatility index = std/mean, roughly 30.5/450.
	if conf.VolatilityIndex < 0.06 || conf.VolatilityIndex > 0.08 {
		t.Errorf("expected volatility index near 0.068, got %.4f", conf.VolatilityIndex)
	}
}

func TestConfidenceEstimator_BoundsOrdering(t *testing.T) {
	estimator := service.NewConfidenceEstimator(service.DefaultConfidenceConfig())

	testCases := []struct {
		name   string
		point  float64
		series []float64
	}{
		{"no history", 500, nil},
		{"stable market", 500, []float64{450, 451, 449, 450, 452, 448, 450, 451}},
		{"volatile market", 500, []float64{100, 900, 150, 850, 200, 800, 250, 750, 300, 700}},
		{"point far above history", 2000, series30()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := estimator.Estimate(tc.point, tc.series)

			if conf.LowerBound95 > conf.PointEstimate {
				t.Errorf("lower bound %.2f exceeds point %.2f", conf.LowerBound95, conf.PointEstimate)
			}
			if conf.UpperBound95 < conf.PointEstimate {
				t.Errorf("upper bound %.2f below point %.2f", conf.UpperBound95, conf.PointEstimate)
			}
		})
	}
}

func TestConfidenceEstimator_ClampsPathologicalVolatility(t *testing.T) {
	estimator := service.NewConfidenceEstimator(service.DefaultConfidenceConfig())

	// Wildly volatile series: the raw t-interval would exceed the clamp.
	series := []float64{10, 2000, 15, 1800, 20, 1900, 12, 1700, 18, 1600}
	conf := estimator.Estimate(500, series)

	if conf.LowerBound95 < 500*0.7-0.01 {
		t.Errorf("expected lower bound clamped at 350.00, got %.2f", conf.LowerBound95)
	}
	if conf.UpperBound95 > 500*1.3+0.01 {
		t.Errorf("expected upper bound clamped at 650.00, got %.2f", conf.UpperBound95)
	}
}

func TestConfidenceEstimator_DiscardsUnusableObservations(t *testing.T) {
	estimator := service.NewConfidenceEstimator(service.DefaultConfidenceConfig())

	// Zeros and negatives are not valid rates; with fewer than 7 usable
	// points the estimator must fall back.
	series := []float64{450, 0, -20, 460, 0, 440, 0, 455, 0, 445}
	conf := estimator.Estimate(500, series)

	if conf.SampleSize != 0 {
		t.Errorf("expected fallback (sample size 0), got sample size %d", conf.SampleSize)
	}
}

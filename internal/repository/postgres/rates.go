package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"freight/internal/domain"
)

// RateHistoryRepository is a PostgreSQL implementation of
// repository.RateHistoryRepository.
type RateHistoryRepository struct {
	q Querier
}

// NewRateHistoryRepository creates a new PostgreSQL rate history repository.
func NewRateHistoryRepository(db *sql.DB) *RateHistoryRepository {
	return &RateHistoryRepository{q: db}
}

// NewRateHistoryRepositoryWithTx creates a rate history repository using a
// transaction.
func NewRateHistoryRepositoryWithTx(tx *sql.Tx) *RateHistoryRepository {
	return &RateHistoryRepository{q: tx}
}

// Record stores one rate observation. Repeated observations for the same
// lane and timestamp are collapsed to the latest values.
func (r *RateHistoryRepository) Record(ctx context.Context, rate *domain.MarketRate) error {
	query := `
		INSERT INTO rate_observations (lane, equipment, avg_rate, low_rate, high_rate, rate_per_km, fuel_surcharge_pct, distance_km, observed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (lane, equipment, observed_at) DO UPDATE
		SET avg_rate = EXCLUDED.avg_rate,
		    low_rate = EXCLUDED.low_rate,
		    high_rate = EXCLUDED.high_rate,
		    rate_per_km = EXCLUDED.rate_per_km,
		    fuel_surcharge_pct = EXCLUDED.fuel_surcharge_pct,
		    distance_km = EXCLUDED.distance_km
	`

	var distance sql.NullFloat64
	if rate.DistanceKm > 0 {
		distance = sql.NullFloat64{Float64: rate.DistanceKm, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		rate.Lane,
		rate.Equipment,
		rate.AvgRate,
		rate.LowRate,
		rate.HighRate,
		rate.RatePerKm,
		rate.FuelSurchargePct,
		distance,
		rate.Timestamp,
	)

	return err
}

// GetHistory retrieves observations for a lane from the last `days` days,
// ordered by time ascending.
func (r *RateHistoryRepository) GetHistory(ctx context.Context, lane string, equipment domain.EquipmentType, days int) ([]domain.MarketRate, error) {
	query := fmt.Sprintf(`
		SELECT lane, equipment, avg_rate, low_rate, high_rate, rate_per_km, fuel_surcharge_pct, distance_km, observed_at
		FROM rate_observations
		WHERE lane = $1 AND equipment = $2 AND observed_at >= NOW() - INTERVAL '%d days'
		ORDER BY observed_at ASC
	`, days)

	rows, err := r.q.QueryContext(ctx, query, lane, equipment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []domain.MarketRate
	for rows.Next() {
		var rate domain.MarketRate
		var distance sql.NullFloat64
		if err := rows.Scan(
			&rate.Lane,
			&rate.Equipment,
			&rate.AvgRate,
			&rate.LowRate,
			&rate.HighRate,
			&rate.RatePerKm,
			&rate.FuelSurchargePct,
			&distance,
			&rate.Timestamp,
		); err != nil {
			return nil, err
		}
		if distance.Valid {
			rate.DistanceKm = distance.Float64
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

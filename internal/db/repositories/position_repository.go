package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/metrics"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// PositionRepository handles the append-only positions table.
type PositionRepository struct {
	db *sqlx.DB
	m  *metrics.MetricsRegistry
}

func NewPositionRepository(db *sqlx.DB, m *metrics.MetricsRegistry) *PositionRepository {
	return &PositionRepository{db: db, m: m}
}

func (r *PositionRepository) observe(queryType string, start time.Time) {
	if r.m == nil {
		return
	}
	r.m.DBQueriesTotal.WithLabelValues(queryType).Inc()
	r.m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

// Insert appends one position sample. The sample timestamp is assigned by the
// database. The caller guarantees lat/lon are present.
func (r *PositionRepository) Insert(ctx context.Context, s *entities.PositionSample) error {
	defer r.observe("position_insert", time.Now())

	query := `
		INSERT INTO positions (hex, callsign, lat, lon, altitude_ft, velocity_kt, heading_deg, vertical_rate_fpm, on_ground)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, sampled_at;
	`

	err := r.db.QueryRowxContext(ctx, query,
		s.Hex,
		s.Callsign,
		s.Lat,
		s.Lon,
		s.AltitudeFt,
		s.VelocityKt,
		s.HeadingDeg,
		s.VerticalRateFpm,
		s.OnGround,
	).Scan(&s.ID, &s.SampledAt)
	if err != nil {
		return fmt.Errorf("failed to insert position for %s: %w", s.Hex, err)
	}
	return nil
}

// ListSince returns one aircraft's samples within the window, oldest first.
func (r *PositionRepository) ListSince(ctx context.Context, hex string, since time.Time) ([]entities.PositionSample, error) {
	defer r.observe("position_list", time.Now())

	samples := []entities.PositionSample{}
	err := r.db.SelectContext(ctx, &samples,
		`SELECT * FROM positions WHERE hex = $1 AND sampled_at >= $2 ORDER BY sampled_at ASC`,
		hex, since)
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// DeleteOlderThan removes samples that fell out of the retention window and
// returns how many were removed.
func (r *PositionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	defer r.observe("position_prune", time.Now())

	res, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE sampled_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune positions: %w", err)
	}
	return res.RowsAffected()
}

// CountsSince returns the distinct-aircraft and total-sample counts for
// samples taken at or after the given instant. Used to recompute the daily
// aggregate from midnight UTC.
func (r *PositionRepository) CountsSince(ctx context.Context, since time.Time) (distinct int64, total int64, err error) {
	defer r.observe("position_counts", time.Now())

	row := r.db.QueryRowxContext(ctx,
		`SELECT COUNT(DISTINCT hex), COUNT(*) FROM positions WHERE sampled_at >= $1`, since)
	if err := row.Scan(&distinct, &total); err != nil {
		return 0, 0, err
	}
	return distinct, total, nil
}

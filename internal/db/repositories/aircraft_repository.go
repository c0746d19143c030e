package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/metrics"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// AircraftRepository handles the aircraft table, keyed by ICAO24 hex.
type AircraftRepository struct {
	db *sqlx.DB
	m  *metrics.MetricsRegistry
}

func NewAircraftRepository(db *sqlx.DB, m *metrics.MetricsRegistry) *AircraftRepository {
	return &AircraftRepository{db: db, m: m}
}

func (r *AircraftRepository) observe(queryType string, start time.Time) {
	if r.m == nil {
		return
	}
	r.m.DBQueriesTotal.WithLabelValues(queryType).Inc()
	r.m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

// Upsert inserts a new aircraft record or refreshes an existing one.
// first_seen and origin are fixed at insert. callsign, registration and type
// only change when the incoming value is non-null; last_seen always moves to
// now and sighting_count goes up by one.
func (r *AircraftRepository) Upsert(ctx context.Context, hex string, callsign, registration, acType *string) error {
	defer r.observe("aircraft_upsert", time.Now())

	query := `
		INSERT INTO aircraft (hex, callsign, origin, registration, aircraft_type, first_seen, last_seen, sighting_count)
		VALUES ($1, $2, 'spain', $3, $4, now(), now(), 1)
		ON CONFLICT (hex) DO UPDATE SET
			callsign       = COALESCE(EXCLUDED.callsign, aircraft.callsign),
			registration   = COALESCE(EXCLUDED.registration, aircraft.registration),
			aircraft_type  = COALESCE(EXCLUDED.aircraft_type, aircraft.aircraft_type),
			last_seen      = now(),
			sighting_count = aircraft.sighting_count + 1;
	`

	_, err := r.db.ExecContext(ctx, query, hex, callsign, registration, acType)
	if err != nil {
		return fmt.Errorf("failed to upsert aircraft %s: %w", hex, err)
	}
	return nil
}

// FindByHex returns one aircraft record, or nil when unknown.
func (r *AircraftRepository) FindByHex(ctx context.Context, hex string) (*entities.AircraftRecord, error) {
	defer r.observe("aircraft_find", time.Now())

	var rec entities.AircraftRecord
	err := r.db.QueryRowxContext(ctx, `SELECT * FROM aircraft WHERE hex = $1`, hex).StructScan(&rec)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListSeenSince returns aircraft last seen within the window, newest first.
func (r *AircraftRepository) ListSeenSince(ctx context.Context, since time.Time) ([]entities.AircraftRecord, error) {
	defer r.observe("aircraft_list", time.Now())

	records := []entities.AircraftRecord{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM aircraft WHERE last_seen >= $1 ORDER BY last_seen DESC`, since)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// DistinctWithPositionsSince returns every aircraft that has at least one
// position sample within the window. This is the discovery query for track
// reconstruction.
func (r *AircraftRepository) DistinctWithPositionsSince(ctx context.Context, since time.Time) ([]entities.DistinctAircraft, error) {
	defer r.observe("aircraft_distinct", time.Now())

	query := `
		SELECT a.hex, a.callsign, a.aircraft_type
		FROM aircraft a
		WHERE EXISTS (
			SELECT 1 FROM positions p
			WHERE p.hex = a.hex AND p.sampled_at >= $1
		)
		ORDER BY a.hex;
	`

	records := []entities.DistinctAircraft{}
	if err := r.db.SelectContext(ctx, &records, query, since); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteAll clears every aircraft record and, through the FK cascade, every
// position sample. Returns the number of aircraft rows removed.
func (r *AircraftRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer r.observe("aircraft_delete_all", time.Now())

	res, err := r.db.ExecContext(ctx, `DELETE FROM aircraft`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear aircraft: %w", err)
	}
	return res.RowsAffected()
}

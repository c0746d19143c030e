package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/constants"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/metrics"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/entities"
	gormModels "github.com/Edgar1001/AirTracker-Backend/internal/models/gorm"
)

// StateFetcher produces one fused snapshot of live aircraft states.
type StateFetcher interface {
	FetchAll(ctx context.Context) ([]dtos.AircraftState, error)
}

// AircraftStore is the keyed-upsert side of the persistence adapter.
type AircraftStore interface {
	Upsert(ctx context.Context, hex string, callsign, registration, acType *string) error
}

// PositionStore is the append/prune/count side of the persistence adapter.
type PositionStore interface {
	Insert(ctx context.Context, sample *entities.PositionSample) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	CountsSince(ctx context.Context, since time.Time) (distinct int64, total int64, err error)
}

// AggregateStore upserts the per-date rollup.
type AggregateStore interface {
	Upsert(ctx context.Context, agg *gormModels.DailyAggregate) error
}

// IngestService runs one ingestion cycle: retention cleanup, concurrent
// fetch+fusion, nationality filter, per-aircraft persistence, daily rollup.
type IngestService struct {
	fetcher    StateFetcher
	classifier *ClassificationService
	aircraft   AircraftStore
	positions  PositionStore
	aggregates AggregateStore
	m          *metrics.MetricsRegistry
}

func NewIngestService(
	fetcher StateFetcher,
	classifier *ClassificationService,
	aircraft AircraftStore,
	positions PositionStore,
	aggregates AggregateStore,
	m *metrics.MetricsRegistry,
) *IngestService {
	return &IngestService{
		fetcher:    fetcher,
		classifier: classifier,
		aircraft:   aircraft,
		positions:  positions,
		aggregates: aggregates,
		m:          m,
	}
}

// RunCycle executes one full cycle and returns its summary. The only fatal
// error is a fetch failure not already absorbed by per-feed isolation;
// cleanup, per-aircraft persistence and the daily rollup all degrade to
// logged warnings.
func (s *IngestService) RunCycle(ctx context.Context) (dtos.CycleSummary, error) {
	summary := dtos.CycleSummary{}

	// 1. Retention cleanup. A failure here means we just carry some stale
	// rows until the next cycle.
	cutoff := time.Now().Add(-constants.RetentionWindow)
	pruned, err := s.positions.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logging.Warn("Retention cleanup failed", "error", err.Error())
		pruned = 0
	}
	if s.m != nil && pruned > 0 {
		s.m.PositionsPrunedTotal.Add(float64(pruned))
	}

	// 2. Fetch and fuse all feeds.
	states, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return summary, err
	}

	// 3. Nothing in the air is not an error.
	if len(states) == 0 {
		return summary, nil
	}

	// 4. Keep only Spanish-registered aircraft.
	spanish := make([]dtos.AircraftState, 0, len(states))
	for _, state := range states {
		if s.classifier.IsSpanish(state.NormalizedHex()) {
			spanish = append(spanish, state)
		}
	}
	summary.Tracked = len(spanish)

	// 5. Persist each aircraft independently.
	for _, state := range spanish {
		hex := state.NormalizedHex()
		if hex == "" {
			continue
		}

		if err := s.aircraft.Upsert(ctx, hex, state.Callsign, state.Registration, state.Type); err != nil {
			logging.Warn("Aircraft upsert failed",
				"hex", hex,
				"error", err.Error(),
			)
			continue
		}

		if !state.HasPosition() {
			continue
		}

		sample := sampleFromState(hex, &state)
		if err := s.positions.Insert(ctx, sample); err != nil {
			logging.Warn("Position insert failed",
				"hex", hex,
				"error", err.Error(),
			)
			continue
		}
		summary.Stored++
	}

	// 6. Recompute today's rollup from scratch.
	if err := s.updateDailyAggregate(ctx); err != nil {
		logging.Warn("Daily aggregate update failed", "error", err.Error())
	}

	if s.m != nil {
		s.m.AircraftTracked.Set(float64(summary.Tracked))
		s.m.PositionsStoredTotal.Add(float64(summary.Stored))
	}

	return summary, nil
}

func (s *IngestService) updateDailyAggregate(ctx context.Context) error {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	distinct, total, err := s.positions.CountsSince(ctx, midnight)
	if err != nil {
		return err
	}

	return s.aggregates.Upsert(ctx, &gormModels.DailyAggregate{
		Day:              now.Format("2006-01-02"),
		DistinctAircraft: distinct,
		PositionCount:    total,
		UpdatedAt:        now,
	})
}

// sampleFromState builds the position row for one state. The caller has
// checked lat/lon. Altitude stays NULL when the feed only sent the ground
// sentinel; on-ground holds when the sentinel was present or the altitude
// resolves to exactly 0.
func sampleFromState(hex string, state *dtos.AircraftState) *entities.PositionSample {
	sample := &entities.PositionSample{
		Hex:             hex,
		Callsign:        nullString(state.Callsign),
		Lat:             *state.Lat,
		Lon:             *state.Lon,
		AltitudeFt:      nullFloat(state.AltitudeFt),
		VelocityKt:      nullFloat(state.GroundSpeedKt),
		HeadingDeg:      nullFloat(state.TrackDeg),
		VerticalRateFpm: nullFloat(state.VerticalRateFpm),
		OnGround:        state.OnGround || (state.AltitudeFt != nil && *state.AltitudeFt == 0),
	}
	return sample
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

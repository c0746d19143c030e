package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/entities"
	gormModels "github.com/Edgar1001/AirTracker-Backend/internal/models/gorm"
)

type mockFetcher struct {
	states []dtos.AircraftState
	err    error
}

func (m *mockFetcher) FetchAll(ctx context.Context) ([]dtos.AircraftState, error) {
	return m.states, m.err
}

type mockAircraftStore struct {
	upserts    []string
	failForHex string
}

func (m *mockAircraftStore) Upsert(ctx context.Context, hex string, callsign, registration, acType *string) error {
	if hex == m.failForHex {
		return errors.New("upsert refused")
	}
	m.upserts = append(m.upserts, hex)
	return nil
}

type mockPositionStore struct {
	inserted      []entities.PositionSample
	failForHex    string
	cleanupErr    error
	cleanupCutoff time.Time
	distinct      int64
	total         int64
}

func (m *mockPositionStore) Insert(ctx context.Context, sample *entities.PositionSample) error {
	if sample.Hex == m.failForHex {
		return errors.New("insert refused")
	}
	m.inserted = append(m.inserted, *sample)
	return nil
}

func (m *mockPositionStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	m.cleanupCutoff = cutoff
	if m.cleanupErr != nil {
		return 0, m.cleanupErr
	}
	return 5, nil
}

func (m *mockPositionStore) CountsSince(ctx context.Context, since time.Time) (int64, int64, error) {
	return m.distinct, m.total, nil
}

type mockAggregateStore struct {
	upserted *gormModels.DailyAggregate
	err      error
}

func (m *mockAggregateStore) Upsert(ctx context.Context, agg *gormModels.DailyAggregate) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = agg
	return nil
}

func newTestIngestService(fetcher StateFetcher, aircraft *mockAircraftStore, positions *mockPositionStore, aggregates *mockAggregateStore) *IngestService {
	return NewIngestService(fetcher, NewClassificationService(""), aircraft, positions, aggregates, nil)
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestIngestService_RunCycle_StoresSpanishAircraft(t *testing.T) {
	fetcher := &mockFetcher{states: []dtos.AircraftState{
		{Hex: "34AABB", Callsign: strPtr("IBE123"), Lat: floatPtr(40.4), Lon: floatPtr(-3.7), AltitudeFt: floatPtr(35000)},
		{Hex: "340001", Callsign: strPtr("AEA051")}, // no position: upsert only
		{Hex: "4ca123", Callsign: strPtr("EIN56"), Lat: floatPtr(41.0), Lon: floatPtr(-3.0)}, // not Spanish
	}}
	aircraft := &mockAircraftStore{}
	positions := &mockPositionStore{}
	aggregates := &mockAggregateStore{}

	svc := newTestIngestService(fetcher, aircraft, positions, aggregates)

	summary, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if summary.Tracked != 2 {
		t.Errorf("Expected 2 tracked, got %d", summary.Tracked)
	}
	if summary.Stored != 1 {
		t.Errorf("Expected 1 stored, got %d", summary.Stored)
	}
	if len(aircraft.upserts) != 2 {
		t.Fatalf("Expected 2 upserts, got %d", len(aircraft.upserts))
	}
	if aircraft.upserts[0] != "34aabb" {
		t.Errorf("Hex must be lower-cased before persistence, got %s", aircraft.upserts[0])
	}
	if len(positions.inserted) != 1 {
		t.Fatalf("Expected 1 position insert, got %d", len(positions.inserted))
	}
	if positions.inserted[0].AltitudeFt.Float64 != 35000 {
		t.Errorf("Expected altitude 35000, got %v", positions.inserted[0].AltitudeFt)
	}
}

func TestIngestService_RunCycle_EmptyFusionShortCircuits(t *testing.T) {
	aircraft := &mockAircraftStore{}
	positions := &mockPositionStore{}
	aggregates := &mockAggregateStore{}

	svc := newTestIngestService(&mockFetcher{}, aircraft, positions, aggregates)

	summary, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if summary.Tracked != 0 || summary.Stored != 0 {
		t.Errorf("Expected zero summary, got %+v", summary)
	}
	if aggregates.upserted != nil {
		t.Error("Empty cycle must not touch the daily aggregate")
	}
	if positions.cleanupCutoff.IsZero() {
		t.Error("Cleanup should still run before the short-circuit")
	}
}

func TestIngestService_RunCycle_FetchErrorIsFatal(t *testing.T) {
	svc := newTestIngestService(
		&mockFetcher{err: errors.New("context cancelled")},
		&mockAircraftStore{}, &mockPositionStore{}, &mockAggregateStore{},
	)

	if _, err := svc.RunCycle(context.Background()); err == nil {
		t.Error("Unabsorbed fetch error must propagate")
	}
}

func TestIngestService_RunCycle_PerAircraftFailureIsolated(t *testing.T) {
	fetcher := &mockFetcher{states: []dtos.AircraftState{
		{Hex: "340001", Lat: floatPtr(40.0), Lon: floatPtr(-3.0)},
		{Hex: "340002", Lat: floatPtr(40.1), Lon: floatPtr(-3.1)},
		{Hex: "340003", Lat: floatPtr(40.2), Lon: floatPtr(-3.2)},
	}}
	aircraft := &mockAircraftStore{failForHex: "340002"}
	positions := &mockPositionStore{}
	aggregates := &mockAggregateStore{}

	svc := newTestIngestService(fetcher, aircraft, positions, aggregates)

	summary, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("Per-aircraft failures must not fail the cycle, got %v", err)
	}

	if summary.Tracked != 3 {
		t.Errorf("Tracked counts the filtered set, not the stored set: got %d", summary.Tracked)
	}
	if summary.Stored != 2 {
		t.Errorf("Expected 2 stored after one upsert failure, got %d", summary.Stored)
	}
}

func TestIngestService_RunCycle_CleanupFailureTolerated(t *testing.T) {
	fetcher := &mockFetcher{states: []dtos.AircraftState{
		{Hex: "340001", Lat: floatPtr(40.0), Lon: floatPtr(-3.0)},
	}}
	positions := &mockPositionStore{cleanupErr: errors.New("lock timeout")}

	svc := newTestIngestService(fetcher, &mockAircraftStore{}, positions, &mockAggregateStore{})

	summary, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("Cleanup failure must not fail the cycle, got %v", err)
	}
	if summary.Stored != 1 {
		t.Errorf("Expected 1 stored, got %d", summary.Stored)
	}
}

func TestIngestService_RunCycle_AggregateFailureTolerated(t *testing.T) {
	fetcher := &mockFetcher{states: []dtos.AircraftState{
		{Hex: "340001", Lat: floatPtr(40.0), Lon: floatPtr(-3.0)},
	}}
	aggregates := &mockAggregateStore{err: errors.New("deadlock")}

	svc := newTestIngestService(fetcher, &mockAircraftStore{}, &mockPositionStore{}, aggregates)

	summary, err := svc.RunCycle(context.Background())
	if err != nil {
		t.Fatalf("Aggregate failure must not fail the cycle, got %v", err)
	}
	if summary.Stored != 1 {
		t.Errorf("Expected 1 stored, got %d", summary.Stored)
	}
}

func TestIngestService_RunCycle_DailyAggregateRecomputed(t *testing.T) {
	fetcher := &mockFetcher{states: []dtos.AircraftState{
		{Hex: "340001", Lat: floatPtr(40.0), Lon: floatPtr(-3.0)},
	}}
	positions := &mockPositionStore{distinct: 7, total: 132}
	aggregates := &mockAggregateStore{}

	svc := newTestIngestService(fetcher, &mockAircraftStore{}, positions, aggregates)

	if _, err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if aggregates.upserted == nil {
		t.Fatal("Expected a daily aggregate upsert")
	}
	if aggregates.upserted.DistinctAircraft != 7 || aggregates.upserted.PositionCount != 132 {
		t.Errorf("Aggregate should carry recomputed counts, got %+v", aggregates.upserted)
	}
	if aggregates.upserted.Day != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("Aggregate keyed by current UTC date, got %s", aggregates.upserted.Day)
	}
}

func TestIngestService_RunCycle_GroundSentinelHandling(t *testing.T) {
	fetcher := &mockFetcher{states: []dtos.AircraftState{
		// Sentinel feed record: on-ground, no numeric altitude.
		{Hex: "340010", Lat: floatPtr(40.49), Lon: floatPtr(-3.57), OnGround: true},
		// Altitude exactly 0 also means on ground.
		{Hex: "340011", Lat: floatPtr(40.50), Lon: floatPtr(-3.58), AltitudeFt: floatPtr(0)},
	}}
	positions := &mockPositionStore{}

	svc := newTestIngestService(fetcher, &mockAircraftStore{}, positions, &mockAggregateStore{})

	if _, err := svc.RunCycle(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(positions.inserted) != 2 {
		t.Fatalf("Expected 2 inserts, got %d", len(positions.inserted))
	}

	sentinel := positions.inserted[0]
	if sentinel.AltitudeFt.Valid {
		t.Error("Ground sentinel must store NULL altitude, not zero")
	}
	if !sentinel.OnGround {
		t.Error("Ground sentinel must set on_ground")
	}

	zeroAlt := positions.inserted[1]
	if !zeroAlt.OnGround {
		t.Error("Altitude 0 must set on_ground")
	}
	if !zeroAlt.AltitudeFt.Valid || zeroAlt.AltitudeFt.Float64 != 0 {
		t.Error("Numeric altitude 0 is still stored as 0")
	}
}

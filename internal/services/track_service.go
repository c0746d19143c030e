package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/constants"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/entities"
	"github.com/Edgar1001/AirTracker-Backend/internal/spatial"
)

// TrackAircraftReader is the discovery side of track reconstruction.
type TrackAircraftReader interface {
	DistinctWithPositionsSince(ctx context.Context, since time.Time) ([]entities.DistinctAircraft, error)
	FindByHex(ctx context.Context, hex string) (*entities.AircraftRecord, error)
}

// TrackPositionReader returns one aircraft's window of samples, oldest first.
type TrackPositionReader interface {
	ListSince(ctx context.Context, hex string, since time.Time) ([]entities.PositionSample, error)
}

// TrackService rebuilds continuous flight tracks from the stored position
// time series. Reads only; safe to run concurrently with an ingestion cycle.
type TrackService struct {
	aircraft   TrackAircraftReader
	positions  TrackPositionReader
	classifier *ClassificationService
}

func NewTrackService(aircraft TrackAircraftReader, positions TrackPositionReader, classifier *ClassificationService) *TrackService {
	return &TrackService{
		aircraft:   aircraft,
		positions:  positions,
		classifier: classifier,
	}
}

// BuildAllTracks reconstructs a track for every aircraft with positions in
// the trailing window, optionally restricted to a circular area. Aircraft
// left with fewer than 2 qualifying samples are omitted: a track needs two
// points to be drawable.
func (s *TrackService) BuildAllTracks(ctx context.Context, filter *dtos.GeoFilter) ([]dtos.AircraftTrack, error) {
	since := time.Now().Add(-constants.TrackWindow)

	candidates, err := s.aircraft.DistinctWithPositionsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	tracks := make([]dtos.AircraftTrack, 0, len(candidates))
	for _, c := range candidates {
		track, err := s.buildTrack(ctx, c.Hex, nullToPtr(c.Callsign), nullToPtr(c.Type), filter, since)
		if err != nil {
			logging.Warn("Track reconstruction failed",
				"hex", c.Hex,
				"error", err.Error(),
			)
			continue
		}
		if track != nil {
			tracks = append(tracks, *track)
		}
	}

	return tracks, nil
}

// BuildTrackForHex reconstructs a single aircraft's track. Returns nil when
// the aircraft is unknown or has fewer than 2 qualifying samples.
func (s *TrackService) BuildTrackForHex(ctx context.Context, hex string, filter *dtos.GeoFilter) (*dtos.AircraftTrack, error) {
	rec, err := s.aircraft.FindByHex(ctx, hex)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	since := time.Now().Add(-constants.TrackWindow)
	return s.buildTrack(ctx, rec.Hex, nullToPtr(rec.Callsign), nullToPtr(rec.Type), filter, since)
}

func (s *TrackService) buildTrack(ctx context.Context, hex string, callsign, acType *string, filter *dtos.GeoFilter, since time.Time) (*dtos.AircraftTrack, error) {
	samples, err := s.positions.ListSince(ctx, hex, since)
	if err != nil {
		return nil, err
	}

	positions := filterPositions(samples, filter)
	if len(positions) < 2 {
		return nil, nil
	}

	return &dtos.AircraftTrack{
		Hex:        hex,
		Callsign:   callsign,
		Type:       acType,
		Positions:  positions,
		Segments:   SegmentPositions(positions, constants.TrackGapThreshold),
		IsMilitary: s.classifier.IsMilitary(hex),
	}, nil
}

// filterPositions converts stored samples to track positions, dropping those
// outside the circular filter. The radius boundary is inclusive.
func filterPositions(samples []entities.PositionSample, filter *dtos.GeoFilter) []dtos.TrackPosition {
	positions := make([]dtos.TrackPosition, 0, len(samples))
	for _, s := range samples {
		if filter != nil && !spatial.WithinRadiusKm(filter.Lat, filter.Lon, s.Lat, s.Lon, filter.RadiusKm) {
			continue
		}
		positions = append(positions, trackPositionFromSample(s))
	}
	return positions
}

func trackPositionFromSample(s entities.PositionSample) dtos.TrackPosition {
	pos := dtos.TrackPosition{
		Lat:       s.Lat,
		Lon:       s.Lon,
		OnGround:  s.OnGround,
		Timestamp: s.SampledAt,
	}
	if s.Callsign.Valid {
		pos.Callsign = &s.Callsign.String
	}
	if s.AltitudeFt.Valid {
		pos.AltitudeFt = &s.AltitudeFt.Float64
	}
	if s.VelocityKt.Valid {
		pos.VelocityKt = &s.VelocityKt.Float64
	}
	if s.HeadingDeg.Valid {
		pos.HeadingDeg = &s.HeadingDeg.Float64
	}
	if s.VerticalRateFpm.Valid {
		pos.VerticalRateFpm = &s.VerticalRateFpm.Float64
	}
	return pos
}

// SegmentPositions splits a time-ordered position list into maximal runs
// where consecutive samples are no further apart than gapThreshold. A single
// forward scan carries the pending gap: when a gap exceeds the threshold the
// current run is closed and the next one records the gap that preceded it.
// The first run never has a gap before it.
func SegmentPositions(positions []dtos.TrackPosition, gapThreshold time.Duration) []dtos.TrackSegment {
	if len(positions) == 0 {
		return []dtos.TrackSegment{}
	}

	segments := make([]dtos.TrackSegment, 0, 1)
	current := dtos.TrackSegment{Positions: []dtos.TrackPosition{positions[0]}}

	for i := 1; i < len(positions); i++ {
		gap := positions[i].Timestamp.Sub(positions[i-1].Timestamp)
		if gap > gapThreshold {
			segments = append(segments, current)
			current = dtos.TrackSegment{
				Positions:    []dtos.TrackPosition{positions[i]},
				HasGapBefore: true,
				GapSeconds:   gap.Seconds(),
			}
			continue
		}
		current.Positions = append(current.Positions, positions[i])
	}

	return append(segments, current)
}

func nullToPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

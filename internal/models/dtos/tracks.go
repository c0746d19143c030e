package dtos

import "time"

// TrackPosition is one position sample as served to the presentation layer.
// Nullable telemetry stays nullable: a missing altitude is not an altitude of 0.
type TrackPosition struct {
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	Callsign        *string   `json:"callsign,omitempty"`
	AltitudeFt      *float64  `json:"altitude_ft,omitempty"`
	VelocityKt      *float64  `json:"velocity_kt,omitempty"`
	HeadingDeg      *float64  `json:"heading_deg,omitempty"`
	VerticalRateFpm *float64  `json:"vertical_rate_fpm,omitempty"`
	OnGround        bool      `json:"on_ground"`
	Timestamp       time.Time `json:"timestamp"`
}

// TrackSegment is a maximal run of positions with no internal gap exceeding
// the split threshold. GapSeconds is the silence before the segment and is
// only meaningful when HasGapBefore is true.
type TrackSegment struct {
	Positions    []TrackPosition `json:"positions"`
	HasGapBefore bool            `json:"has_gap_before"`
	GapSeconds   float64         `json:"gap_seconds,omitempty"`
}

// AircraftTrack is one aircraft's reconstructed flight history over the
// trailing window: the flat position list plus its gap segmentation.
type AircraftTrack struct {
	Hex        string          `json:"hex"`
	Callsign   *string         `json:"callsign,omitempty"`
	Type       *string         `json:"type,omitempty"`
	Positions  []TrackPosition `json:"positions"`
	Segments   []TrackSegment  `json:"segments"`
	IsMilitary bool            `json:"is_military"`
}

// GeoFilter restricts track reconstruction to samples within RadiusKm of a
// center point. The boundary is inclusive.
type GeoFilter struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	RadiusKm float64 `json:"radius_km"`
}

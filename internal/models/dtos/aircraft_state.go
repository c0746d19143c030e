package dtos

import "strings"

// AircraftState is one aircraft as reported by a single feed during one
// ingestion cycle. Optional fields are pointers; a nil means the feed did not
// report that value. The ICAO24 hex is the only key used downstream, so it is
// always normalized to lower case.
type AircraftState struct {
	Hex             string   `json:"hex"`
	Callsign        *string  `json:"callsign,omitempty"`
	Lat             *float64 `json:"lat,omitempty"`
	Lon             *float64 `json:"lon,omitempty"`
	AltitudeFt      *float64 `json:"altitude_ft,omitempty"`
	GroundSpeedKt   *float64 `json:"ground_speed_kt,omitempty"`
	TrackDeg        *float64 `json:"track_deg,omitempty"`
	VerticalRateFpm *float64 `json:"vertical_rate_fpm,omitempty"`
	Squawk          *string  `json:"squawk,omitempty"`
	Registration    *string  `json:"registration,omitempty"`
	Type            *string  `json:"type,omitempty"`
	Description     *string  `json:"description,omitempty"`
	OnGround        bool     `json:"on_ground"`
	Source          string   `json:"source"`
}

// NormalizedHex returns the lower-cased, trimmed ICAO24 address, or "" when
// the feed record carried none.
func (s *AircraftState) NormalizedHex() string {
	return strings.ToLower(strings.TrimSpace(s.Hex))
}

// HasPosition reports whether the state carries a usable lat/lon pair.
func (s *AircraftState) HasPosition() bool {
	return s.Lat != nil && s.Lon != nil
}

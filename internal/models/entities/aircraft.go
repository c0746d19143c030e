package entities

import (
	"database/sql"
	"time"
)

// AircraftRecord is one row of the aircraft table, keyed by the ICAO24 hex.
// FirstSeen is fixed at insert; LastSeen and SightingCount only move forward.
type AircraftRecord struct {
	Hex           string         `db:"hex" json:"hex"`
	Callsign      sql.NullString `db:"callsign" json:"callsign,omitempty"`
	Origin        string         `db:"origin" json:"origin"`
	Registration  sql.NullString `db:"registration" json:"registration,omitempty"`
	Type          sql.NullString `db:"aircraft_type" json:"aircraft_type,omitempty"`
	FirstSeen     time.Time      `db:"first_seen" json:"first_seen"`
	LastSeen      time.Time      `db:"last_seen" json:"last_seen"`
	SightingCount int64          `db:"sighting_count" json:"sighting_count"`
}

// DistinctAircraft is the projection returned by the distinct-hex window
// query used to discover which tracks to rebuild.
type DistinctAircraft struct {
	Hex      string         `db:"hex"`
	Callsign sql.NullString `db:"callsign"`
	Type     sql.NullString `db:"aircraft_type"`
}

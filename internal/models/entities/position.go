package entities

import (
	"database/sql"
	"time"
)

// PositionSample is one row of the append-only positions table. Rows are only
// written when both latitude and longitude are known; everything else is
// nullable and stays NULL when the feed did not report it.
type PositionSample struct {
	ID              int64           `db:"id"`
	Hex             string          `db:"hex"`
	Callsign        sql.NullString  `db:"callsign"`
	Lat             float64         `db:"lat"`
	Lon             float64         `db:"lon"`
	AltitudeFt      sql.NullFloat64 `db:"altitude_ft"`
	VelocityKt      sql.NullFloat64 `db:"velocity_kt"`
	HeadingDeg      sql.NullFloat64 `db:"heading_deg"`
	VerticalRateFpm sql.NullFloat64 `db:"vertical_rate_fpm"`
	OnGround        bool            `db:"on_ground"`
	SampledAt       time.Time       `db:"sampled_at"`
}

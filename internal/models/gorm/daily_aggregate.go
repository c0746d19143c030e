package gorm

import "time"

// DailyAggregate is one row per calendar date, recomputed (not incremented)
// on every ingestion cycle from the current day's position samples.
type DailyAggregate struct {
	Day              string    `gorm:"column:day;primaryKey;type:varchar(10)" json:"day"`
	DistinctAircraft int64     `gorm:"column:distinct_aircraft;not null" json:"distinct_aircraft"`
	PositionCount    int64     `gorm:"column:position_count;not null" json:"position_count"`
	UpdatedAt        time.Time `gorm:"column:updated_at;default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (DailyAggregate) TableName() string {
	return "daily_aggregates"
}

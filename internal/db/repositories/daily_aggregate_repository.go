package repositories

import (
	"context"

	gormModels "github.com/Edgar1001/AirTracker-Backend/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyAggregateRepository handles the per-date rollup table.
type DailyAggregateRepository struct {
	db *gormlib.DB
}

func NewDailyAggregateRepository(db *gormlib.DB) *DailyAggregateRepository {
	return &DailyAggregateRepository{db: db}
}

// Upsert writes the rollup for one calendar date, replacing any previous
// counts for that date. The aggregate is recomputed, never incremented.
func (r *DailyAggregateRepository) Upsert(ctx context.Context, agg *gormModels.DailyAggregate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"distinct_aircraft", "position_count", "updated_at"}),
		}).
		Create(agg).Error
}

// ListRecent returns the newest `days` aggregates, most recent first.
func (r *DailyAggregateRepository) ListRecent(ctx context.Context, days int) ([]gormModels.DailyAggregate, error) {
	var aggs []gormModels.DailyAggregate
	err := r.db.WithContext(ctx).
		Order("day DESC").
		Limit(days).
		Find(&aggs).Error
	if err != nil {
		return nil, err
	}
	return aggs, nil
}

// FindByDay returns one date's aggregate, or nil when absent.
func (r *DailyAggregateRepository) FindByDay(ctx context.Context, day string) (*gormModels.DailyAggregate, error) {
	var agg gormModels.DailyAggregate
	err := r.db.WithContext(ctx).Where("day = ?", day).First(&agg).Error
	if err != nil {
		if err == gormlib.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &agg, nil
}

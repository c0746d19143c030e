package api

import (
	"os"

	"github.com/Edgar1001/AirTracker-Backend/internal/common"
	"github.com/Edgar1001/AirTracker-Backend/internal/constants"
	"github.com/Edgar1001/AirTracker-Backend/internal/db"
	"github.com/Edgar1001/AirTracker-Backend/internal/db/repositories"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/metrics"
	"github.com/Edgar1001/AirTracker-Backend/internal/providers"
	"github.com/Edgar1001/AirTracker-Backend/internal/services"
)

type Repositories struct {
	Aircraft  *repositories.AircraftRepository
	Positions *repositories.PositionRepository
	Daily     *repositories.DailyAggregateRepository
}

type Services struct {
	Cache          common.CacheInterface
	Classification *services.ClassificationService
	Fusion         *services.FusionService
	Ingest         *services.IngestService
	Tracks         *services.TrackService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

// InitDependencies wires repositories and services together. The cache backs
// the track list endpoint: Redis when REDIS_HOST is set, in-memory otherwise.
func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Aircraft:  repositories.NewAircraftRepository(db.DB, metricsReg),
		Positions: repositories.NewPositionRepository(db.DB, metricsReg),
		Daily:     repositories.NewDailyAggregateRepository(db.PgDB),
	}

	var cacheSvc common.CacheInterface
	if os.Getenv("REDIS_HOST") != "" {
		redisCache, err := common.NewRedisCacheService()
		if err != nil {
			logging.Warn("Redis unavailable, falling back to in-memory cache",
				"error", err.Error(),
			)
			cacheSvc = common.NewCacheService(constants.TrackCacheTTL, 10*constants.TrackCacheTTL)
		} else {
			logging.Info("Using Redis cache backend")
			cacheSvc = redisCache
		}
	} else {
		cacheSvc = common.NewCacheService(constants.TrackCacheTTL, 10*constants.TrackCacheTTL)
	}

	classifier := services.NewClassificationService(os.Getenv("MILITARY_DATASET_PATH"))
	fusion := services.NewFusionService(providers.FromEnv(), metricsReg)
	ingest := services.NewIngestService(fusion, classifier, repos.Aircraft, repos.Positions, repos.Daily, metricsReg)
	tracks := services.NewTrackService(repos.Aircraft, repos.Positions, classifier)

	svcs := &Services{
		Cache:          cacheSvc,
		Classification: classifier,
		Fusion:         fusion,
		Ingest:         ingest,
		Tracks:         tracks,
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}

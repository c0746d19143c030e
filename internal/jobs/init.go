package jobs

import (
	"context"
	"os"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/constants"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/metrics"
	"github.com/Edgar1001/AirTracker-Backend/internal/services"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	ingest *services.IngestService,
	fusion *services.FusionService,
	m *metrics.MetricsRegistry,
) *IngestJob {
	interval := constants.DefaultFetchInterval
	if raw := os.Getenv("FETCH_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		} else {
			logging.Warn("Invalid FETCH_INTERVAL, using default",
				"value", raw,
				"default", interval.String(),
			)
		}
	}

	ingestJob := NewIngestJob(ingest, fusion, m, interval, logging.WithJob("ingest"))

	go ingestJob.RunScheduled(ctx, interval)

	return ingestJob
}

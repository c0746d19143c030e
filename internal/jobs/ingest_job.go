package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/metrics"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"

	"go.uber.org/zap"
)

// CycleRunner executes one ingestion cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) (dtos.CycleSummary, error)
}

// FeedLister exposes the configured feed names for status reporting.
type FeedLister interface {
	FeedNames() []string
}

// IngestJob drives the ingestion service on a fixed schedule. Cycles never
// overlap: if one is still running when the ticker fires, the new tick is
// skipped and counted, not queued.
type IngestJob struct {
	ingest   CycleRunner
	fusion   FeedLister
	m        *metrics.MetricsRegistry
	interval time.Duration
	log      *zap.SugaredLogger

	running atomic.Bool

	mu          sync.RWMutex
	lastCycleAt *time.Time
	lastSummary *dtos.CycleSummary
	lastError   string
}

// NewIngestJob creates the scheduled ingestion job.
func NewIngestJob(
	ingest CycleRunner,
	fusion FeedLister,
	m *metrics.MetricsRegistry,
	interval time.Duration,
	log *zap.SugaredLogger,
) *IngestJob {
	return &IngestJob{
		ingest:   ingest,
		fusion:   fusion,
		m:        m,
		interval: interval,
		log:      log,
	}
}

// Run executes a single ingestion cycle, guarded against overlap. It returns
// nil when a cycle was skipped because a previous one is still in flight.
func (j *IngestJob) Run(ctx context.Context) error {
	if !j.running.CompareAndSwap(false, true) {
		j.log.Warnw("Previous ingestion cycle still running, skipping tick")
		if j.m != nil {
			j.m.IngestCyclesTotal.WithLabelValues("skipped").Inc()
		}
		return nil
	}
	defer j.running.Store(false)

	start := time.Now()
	summary, err := j.ingest.RunCycle(ctx)
	elapsed := time.Since(start)

	if j.m != nil {
		j.m.IngestCycleDuration.Observe(elapsed.Seconds())
	}

	now := time.Now()
	j.mu.Lock()
	j.lastCycleAt = &now
	if err != nil {
		j.lastError = err.Error()
	} else {
		j.lastSummary = &summary
		j.lastError = ""
	}
	j.mu.Unlock()

	if err != nil {
		j.log.Errorw("Ingestion cycle failed",
			"duration", elapsed.Truncate(time.Millisecond).String(),
			"error", err.Error(),
		)
		if j.m != nil {
			j.m.IngestCyclesTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	j.log.Infow("Ingestion cycle completed",
		"tracked", summary.Tracked,
		"stored", summary.Stored,
		"duration", elapsed.Truncate(time.Millisecond).String(),
	)
	if j.m != nil {
		j.m.IngestCyclesTotal.WithLabelValues("ok").Inc()
	}
	return nil
}

// RunScheduled runs ingestion cycles on a fixed interval until ctx is done.
// The first cycle runs immediately.
func (j *IngestJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		j.log.Errorw("Error in initial ingestion run", "error", err.Error())
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.log.Errorw("Error in scheduled ingestion run", "error", err.Error())
			}
		case <-ctx.Done():
			j.log.Infow("Shutting down scheduled ingestion")
			return
		}
	}
}

// Status reports the scheduler's live state for the status endpoint.
func (j *IngestJob) Status() dtos.IngestStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return dtos.IngestStatus{
		Running:      j.running.Load(),
		LastCycleAt:  j.lastCycleAt,
		LastSummary:  j.lastSummary,
		LastError:    j.lastError,
		Feeds:        j.fusion.FeedNames(),
		IntervalSecs: int(j.interval.Seconds()),
	}
}

package services

import (
	"context"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/constants"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/metrics"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"
	"github.com/Edgar1001/AirTracker-Backend/internal/providers"

	"golang.org/x/sync/errgroup"
)

// FusionService fetches every configured feed concurrently and merges the
// results into one snapshot with at most one entry per ICAO24 hex. The feed
// order is the precedence order: a hex admitted by an earlier feed blocks the
// same hex from later feeds. Downstream persistence keys on the hex alone, so
// a duplicate here would mean two conflicting upserts in one cycle.
type FusionService struct {
	feeds []providers.FeedProvider
	m     *metrics.MetricsRegistry
}

func NewFusionService(feeds []providers.FeedProvider, m *metrics.MetricsRegistry) *FusionService {
	return &FusionService{feeds: feeds, m: m}
}

// FeedNames returns the configured feeds in precedence order.
func (s *FusionService) FeedNames() []string {
	names := make([]string, len(s.feeds))
	for i, f := range s.feeds {
		names[i] = f.Name()
	}
	return names
}

// FetchAll runs all feed fetches in parallel and fuses the results. A feed
// that fails contributes an empty list; the only error FetchAll itself
// returns is a cancelled context.
func (s *FusionService) FetchAll(ctx context.Context) ([]dtos.AircraftState, error) {
	results := make([][]dtos.AircraftState, len(s.feeds))

	g, gctx := errgroup.WithContext(ctx)
	for i, feed := range s.feeds {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, constants.FeedFetchTimeout)
			defer cancel()

			start := time.Now()
			states, err := feed.FetchStates(fetchCtx)
			elapsed := time.Since(start)

			if s.m != nil {
				s.m.FeedFetchDuration.WithLabelValues(feed.Name()).Observe(elapsed.Seconds())
			}

			if err != nil {
				// Adapter-level failure: absorbed, the feed simply
				// contributes nothing this cycle.
				logging.Error("Feed fetch failed",
					"feed", feed.Name(),
					"error", err.Error(),
				)
				if s.m != nil {
					s.m.FeedFetchesTotal.WithLabelValues(feed.Name(), "error").Inc()
				}
				return nil
			}

			if s.m != nil {
				s.m.FeedFetchesTotal.WithLabelValues(feed.Name(), "ok").Inc()
				s.m.FeedAircraftSeen.WithLabelValues(feed.Name()).Set(float64(len(states)))
			}
			results[i] = states
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return fuse(results), nil
}

// fuse merges per-feed snapshots in precedence order, keeping the first
// occurrence of each lower-cased hex.
func fuse(results [][]dtos.AircraftState) []dtos.AircraftState {
	fused := make([]dtos.AircraftState, 0, 64)
	admitted := make(map[string]bool)

	for _, states := range results {
		for _, state := range states {
			hex := state.NormalizedHex()
			if hex == "" || admitted[hex] {
				continue
			}
			admitted[hex] = true
			fused = append(fused, state)
		}
	}

	return fused
}

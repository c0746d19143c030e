package routes

import (
	"github.com/Edgar1001/AirTracker-Backend/internal/api"
	"github.com/Edgar1001/AirTracker-Backend/internal/jobs"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies, ingestJob *jobs.IngestJob) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/aircraft", api.ListAircraftHandler(deps.Repo.Aircraft))
		v1.Delete("/aircraft", api.ClearAircraftHandler(deps.Repo.Aircraft, deps.Services.Cache))
		v1.Get("/aircraft/{hex}", api.GetAircraftHandler(deps.Repo.Aircraft))
		v1.Get("/aircraft/{hex}/track", api.GetTrackHandler(deps.Services.Tracks))

		v1.Get("/tracks", api.ListTracksHandler(deps.Services.Tracks, deps.Services.Cache))

		v1.Get("/stats/daily", api.DailyStatsHandler(deps.Repo.Daily))
		v1.Get("/status", api.StatusHandler(ingestJob))
	})
}

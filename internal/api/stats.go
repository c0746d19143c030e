package api

import (
	"net/http"
	"strconv"

	"github.com/Edgar1001/AirTracker-Backend/internal/db/repositories"
	"github.com/Edgar1001/AirTracker-Backend/internal/jobs"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
)

const maxDailyStatsDays = 90

// DailyStatsHandler handles GET /api/v1/stats/daily?days=N.
func DailyStatsHandler(repo *repositories.DailyAggregateRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := 7
		if qs := r.URL.Query().Get("days"); qs != "" {
			parsed, err := strconv.Atoi(qs)
			if err != nil || parsed < 1 || parsed > maxDailyStatsDays {
				respondWithError(w, http.StatusBadRequest, "days must be between 1 and 90")
				return
			}
			days = parsed
		}

		aggregates, err := repo.ListRecent(r.Context(), days)
		if err != nil {
			logging.Error("Failed to list daily aggregates", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "failed to fetch daily stats")
			return
		}

		respondWithSuccess(w, http.StatusOK, &aggregates)
	}
}

// StatusHandler handles GET /api/v1/status, reporting the ingestion
// scheduler's live state.
func StatusHandler(job *jobs.IngestJob) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := job.Status()
		respondWithSuccess(w, http.StatusOK, &status)
	}
}

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/common"
	"github.com/Edgar1001/AirTracker-Backend/internal/constants"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/db/repositories"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// ListAircraftHandler handles GET /api/v1/aircraft. Returns every aircraft
// seen within the retention window, most recent first.
func ListAircraftHandler(repo *repositories.AircraftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		since := time.Now().Add(-constants.RetentionWindow)

		records, err := repo.ListSeenSince(r.Context(), since)
		if err != nil {
			logging.Error("Failed to list aircraft", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "failed to list aircraft")
			return
		}

		respondWithSuccess(w, http.StatusOK, &records)
	}
}

// GetAircraftHandler handles GET /api/v1/aircraft/{hex}.
func GetAircraftHandler(repo *repositories.AircraftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hex := normalizeHexParam(r)
		if hex == "" {
			respondWithError(w, http.StatusBadRequest, "missing hex identifier")
			return
		}

		record, err := repo.FindByHex(r.Context(), hex)
		if err != nil {
			logging.Error("Failed to fetch aircraft", "hex", hex, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "failed to fetch aircraft")
			return
		}
		if record == nil {
			respondWithError(w, http.StatusNotFound, "aircraft not found")
			return
		}

		respondWithSuccess(w, http.StatusOK, record)
	}
}

type clearResult struct {
	AircraftDeleted int64 `json:"aircraft_deleted"`
}

// ClearAircraftHandler handles DELETE /api/v1/aircraft. Positions go with
// their aircraft via the FK cascade; cached track lists are invalidated.
func ClearAircraftHandler(repo *repositories.AircraftRepository, cache common.CacheInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := repo.DeleteAll(r.Context())
		if err != nil {
			logging.Error("Failed to clear aircraft data", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "failed to clear aircraft data")
			return
		}

		cache.Delete(constants.CacheKeyTracks + "all")

		logging.Info("Cleared all aircraft data", "aircraft_deleted", deleted)
		respondWithSuccess(w, http.StatusOK, &clearResult{AircraftDeleted: deleted})
	}
}

func normalizeHexParam(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(chi.URLParam(r, "hex")))
}

// parseGeoFilter reads the optional lat/lon/radius_km query parameters. They
// are all-or-none: a partial set is a client error, absence means no filter.
func parseGeoFilter(r *http.Request) (*dtos.GeoFilter, bool) {
	q := r.URL.Query()
	latRaw, lonRaw, radRaw := q.Get("lat"), q.Get("lon"), q.Get("radius_km")

	if latRaw == "" && lonRaw == "" && radRaw == "" {
		return nil, true
	}
	if latRaw == "" || lonRaw == "" || radRaw == "" {
		return nil, false
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil, false
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		return nil, false
	}
	radius, err := strconv.ParseFloat(radRaw, 64)
	if err != nil || radius <= 0 {
		return nil, false
	}

	return &dtos.GeoFilter{Lat: lat, Lon: lon, RadiusKm: radius}, true
}

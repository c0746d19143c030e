package api

import (
	"net/http"

	"github.com/Edgar1001/AirTracker-Backend/internal/common"
	"github.com/Edgar1001/AirTracker-Backend/internal/constants"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"
	"github.com/Edgar1001/AirTracker-Backend/internal/services"
)

// GetTrackHandler handles GET /api/v1/aircraft/{hex}/track.
func GetTrackHandler(trackSvc *services.TrackService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hex := normalizeHexParam(r)
		if hex == "" {
			respondWithError(w, http.StatusBadRequest, "missing hex identifier")
			return
		}

		filter, ok := parseGeoFilter(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "lat, lon and radius_km must be provided together, with radius_km > 0")
			return
		}

		track, err := trackSvc.BuildTrackForHex(r.Context(), hex, filter)
		if err != nil {
			logging.Error("Track reconstruction failed", "hex", hex, "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "failed to build track")
			return
		}
		if track == nil {
			respondWithError(w, http.StatusNotFound, "no track available for aircraft")
			return
		}

		respondWithSuccess(w, http.StatusOK, track)
	}
}

// ListTracksHandler handles GET /api/v1/tracks. Unfiltered results are served
// from cache for a short TTL since track assembly reads the full window;
// geo-filtered requests are always computed fresh.
func ListTracksHandler(trackSvc *services.TrackService, cache common.CacheInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, ok := parseGeoFilter(r)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "lat, lon and radius_km must be provided together, with radius_km > 0")
			return
		}

		if filter != nil {
			tracks, err := trackSvc.BuildAllTracks(r.Context(), filter)
			if err != nil {
				logging.Error("Track list build failed", "error", err.Error())
				respondWithError(w, http.StatusInternalServerError, "failed to build tracks")
				return
			}
			respondWithSuccess(w, http.StatusOK, &tracks)
			return
		}

		cacheKey := constants.CacheKeyTracks + "all"
		if cached, found := cache.Get(cacheKey); found {
			// The Redis backend returns JSON-decoded generics; only the
			// in-memory backend preserves the concrete type. A failed
			// assertion is just a miss.
			if tracks, valid := cached.([]dtos.AircraftTrack); valid {
				respondWithSuccess(w, http.StatusOK, &tracks)
				return
			}
		}

		tracks, err := trackSvc.BuildAllTracks(r.Context(), nil)
		if err != nil {
			logging.Error("Track list build failed", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "failed to build tracks")
			return
		}

		cache.Set(cacheKey, tracks, constants.TrackCacheTTL)
		respondWithSuccess(w, http.StatusOK, &tracks)
	}
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"

	"golang.org/x/time/rate"
)

// OpenSkyProvider fetches state vectors from the OpenSky Network REST API.
// Anonymous access is heavily rate limited; credentials raise the quota.
// https://openskynetwork.github.io/opensky-api/rest.html
type OpenSkyProvider struct {
	BaseURL  string
	Username string
	Password string
	Client   *http.Client

	regions []Region
	limiter *rate.Limiter
}

// NewOpenSkyProvider creates the OpenSky adapter with bounding boxes for the
// Iberian peninsula (Balearics included) and the Canary Islands.
func NewOpenSkyProvider() *OpenSkyProvider {
	baseURL := os.Getenv("OPENSKY_BASE_URL")
	if baseURL == "" {
		baseURL = "https://opensky-network.org/api"
	}

	return &OpenSkyProvider{
		BaseURL:  baseURL,
		Username: os.Getenv("OPENSKY_USER"),
		Password: os.Getenv("OPENSKY_PASSWORD"),
		Client:   newFeedHTTPClient(),
		regions: []Region{
			{Name: "iberia", LatMin: 35.5, LatMax: 44.0, LonMin: -10.0, LonMax: 4.5},
			{Name: "canarias", LatMin: 27.3, LatMax: 29.5, LonMin: -18.5, LonMax: -13.0},
		},
		limiter: rate.NewLimiter(rate.Limit(0.5), 1),
	}
}

func (p *OpenSkyProvider) Name() string {
	return "opensky"
}

func (p *OpenSkyProvider) FetchStates(ctx context.Context) ([]dtos.AircraftState, error) {
	states := make([]dtos.AircraftState, 0, 64)
	seen := make(map[string]bool)

	for _, region := range p.regions {
		resp, err := p.fetchRegion(ctx, region)
		if err != nil {
			logging.Warn("Feed region fetch failed",
				"feed", p.Name(),
				"region", region.Name,
				"error", err.Error(),
			)
			continue
		}

		for _, vector := range resp.States {
			state, ok := stateFromOpenSkyVector(vector)
			if !ok {
				continue
			}
			hex := state.NormalizedHex()
			if hex == "" || seen[hex] {
				continue
			}
			seen[hex] = true
			states = append(states, state)
		}
	}

	return states, nil
}

func (p *OpenSkyProvider) fetchRegion(ctx context.Context, region Region) (*dtos.OpenSkyResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "rate limiter wait aborted",
			Err:     err,
		}
	}

	url := fmt.Sprintf("%s/states/all?lamin=%.2f&lomin=%.2f&lamax=%.2f&lomax=%.2f",
		p.BaseURL, region.LatMin, region.LonMin, region.LatMax, region.LonMax)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "failed to create request",
			Err:     err,
		}
	}
	if p.Username != "" {
		req.SetBasicAuth(p.Username, p.Password)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "request to opensky failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &ProviderError{
			Code:    ErrCodeRateLimited,
			Message: "opensky rate limit exceeded",
			Details: resp.Header.Get("X-Rate-Limit-Retry-After-Seconds"),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from opensky", resp.StatusCode),
			Details: string(body),
		}
	}

	var parsed dtos.OpenSkyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeBadPayload,
			Message: "failed to decode opensky response",
			Err:     err,
		}
	}

	return &parsed, nil
}

// stateFromOpenSkyVector maps one positional state vector to an
// AircraftState, converting OpenSky's metric units to feet and knots.
// Returns false when the vector is too short or carries no icao24.
func stateFromOpenSkyVector(vector []any) (dtos.AircraftState, bool) {
	if len(vector) < 12 {
		return dtos.AircraftState{}, false
	}

	hex, _ := vector[0].(string)
	hex = strings.ToLower(strings.TrimSpace(hex))
	if hex == "" {
		return dtos.AircraftState{}, false
	}

	state := dtos.AircraftState{
		Hex:    hex,
		Source: "opensky",
	}

	if callsign, ok := vector[1].(string); ok {
		state.Callsign = optString(callsign)
	}
	if lon, ok := vector[5].(float64); ok {
		state.Lon = &lon
	}
	if lat, ok := vector[6].(float64); ok {
		state.Lat = &lat
	}
	if altMeters, ok := vector[7].(float64); ok {
		altFt := altMeters * MetersToFeet
		state.AltitudeFt = &altFt
	}
	if onGround, ok := vector[8].(bool); ok {
		state.OnGround = onGround
	}
	if state.AltitudeFt != nil && *state.AltitudeFt == 0 {
		state.OnGround = true
	}
	if velocityMs, ok := vector[9].(float64); ok {
		kt := velocityMs * MsToKnots
		state.GroundSpeedKt = &kt
	}
	if track, ok := vector[10].(float64); ok {
		state.TrackDeg = &track
	}
	if vrateMs, ok := vector[11].(float64); ok {
		fpm := vrateMs * MsToFeetPerMin
		state.VerticalRateFpm = &fpm
	}
	if len(vector) > 14 {
		if squawk, ok := vector[14].(string); ok {
			state.Squawk = optString(squawk)
		}
	}

	return state, true
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"

	"golang.org/x/time/rate"
)

// readsbFeed is the shared implementation for aggregators that speak the
// readsb JSON dialect (airplanes.live, adsb.lol). Each configured region is
// queried independently; a failing region is logged and skipped.
type readsbFeed struct {
	name    string
	baseURL string
	regions []Region
	client  *http.Client
	limiter *rate.Limiter
}

func (f *readsbFeed) Name() string {
	return f.name
}

func (f *readsbFeed) FetchStates(ctx context.Context) ([]dtos.AircraftState, error) {
	states := make([]dtos.AircraftState, 0, 64)
	seen := make(map[string]bool)

	for _, region := range f.regions {
		url := fmt.Sprintf("%s/point/%.4f/%.4f/%.0f", f.baseURL, region.Lat, region.Lon, region.RadiusNM)

		resp, err := f.fetchRegion(ctx, url)
		if err != nil {
			logging.Warn("Feed region fetch failed",
				"feed", f.name,
				"region", region.Name,
				"error", err.Error(),
			)
			continue
		}

		for _, ac := range resp.Aircraft {
			state := stateFromReadsb(ac, f.name)
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

// fetchRegion performs one rate-limited GET against the feed.
func (f *readsbFeed) fetchRegion(ctx context.Context, url string) (*dtos.ReadsbResponse, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "rate limiter wait aborted",
			Err:     err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: "failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: fmt.Sprintf("request to %s failed", f.name),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &ProviderError{
			Code:    ErrCodeRateLimited,
			Message: fmt.Sprintf("%s rate limit exceeded", f.name),
			Details: resp.Header.Get("Retry-After"),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{
			Code:    ErrCodeNetworkError,
			Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, f.name),
			Details: string(body),
		}
	}

	var parsed dtos.ReadsbResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ProviderError{
			Code:    ErrCodeBadPayload,
			Message: fmt.Sprintf("failed to decode %s response", f.name),
			Err:     err,
		}
	}

	return &parsed, nil
}

// stateFromReadsb normalizes one readsb record. alt_baro is either feet as a
// JSON number or the string "ground"; the sentinel sets the on-ground flag
// and is never stored as an altitude.
func stateFromReadsb(ac dtos.ReadsbAircraft, source string) dtos.AircraftState {
	state := dtos.AircraftState{
		Hex:             strings.ToLower(strings.TrimSpace(ac.Hex)),
		Callsign:        optString(ac.Flight),
		Registration:    optString(ac.Reg),
		Type:            optString(ac.Type),
		Description:     optString(ac.Desc),
		Squawk:          optString(ac.Squawk),
		Lat:             ac.Lat,
		Lon:             ac.Lon,
		GroundSpeedKt:   ac.Gs,
		TrackDeg:        ac.Track,
		VerticalRateFpm: ac.BaroRate,
		Source:          source,
	}
	if state.VerticalRateFpm == nil {
		state.VerticalRateFpm = ac.GeomRate
	}

	switch alt := ac.AltBaro.(type) {
	case float64:
		state.AltitudeFt = &alt
		state.OnGround = alt == 0
	case string:
		// "ground" is the only string value this field takes
		state.OnGround = true
	default:
		if ac.AltGeom != nil {
			state.AltitudeFt = ac.AltGeom
			state.OnGround = *ac.AltGeom == 0
		}
	}

	return state
}

func optString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func newFeedHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
	}
}

package providers

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"
)

func newTestOpenSkyProvider(baseURL string) *OpenSkyProvider {
	return &OpenSkyProvider{
		BaseURL: baseURL,
		Client:  &http.Client{},
		regions: []Region{{Name: "iberia", LatMin: 35.5, LatMax: 44.0, LonMin: -10.0, LonMax: 4.5}},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func TestOpenSkyProvider_FetchStates_VectorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/states/all" {
			t.Errorf("Expected /states/all, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("lamin") == "" {
			t.Error("Expected bounding box query params")
		}
		// icao24, callsign, country, t_pos, t_contact, lon, lat, baro_alt_m,
		// on_ground, velocity_ms, track, vrate_ms, sensors, geo_alt, squawk, spi, src
		w.Write([]byte(`{
			"time": 1700000000,
			"states": [
				["34AB42", "AEA051  ", "Spain", null, 1700000000, -3.56, 40.49, 3048.0, false, 154.3, 180.0, -5.08, null, 3100.0, "3021", false, 0],
				["340999", null, "Spain", null, 1700000000, null, null, null, true, null, null, null, null, null, null, false, 0],
				[]
			]
		}`))
	}))
	defer server.Close()

	provider := newTestOpenSkyProvider(server.URL)

	states, err := provider.FetchStates(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("Expected 2 states (malformed vector dropped), got %d", len(states))
	}

	first := states[0]
	if first.Hex != "34ab42" {
		t.Errorf("Expected lower-cased hex 34ab42, got %s", first.Hex)
	}
	if first.Callsign == nil || *first.Callsign != "AEA051" {
		t.Errorf("Expected trimmed callsign AEA051, got %v", first.Callsign)
	}
	if first.Lat == nil || *first.Lat != 40.49 {
		t.Errorf("Expected lat 40.49, got %v", first.Lat)
	}
	if first.AltitudeFt == nil || math.Abs(*first.AltitudeFt-10000) > 1 {
		t.Errorf("Expected 3048 m to convert to ~10000 ft, got %v", first.AltitudeFt)
	}
	if first.GroundSpeedKt == nil || math.Abs(*first.GroundSpeedKt-300) > 1 {
		t.Errorf("Expected 154.3 m/s to convert to ~300 kt, got %v", first.GroundSpeedKt)
	}
	if first.VerticalRateFpm == nil || math.Abs(*first.VerticalRateFpm-(-1000)) > 1 {
		t.Errorf("Expected -5.08 m/s to convert to ~-1000 fpm, got %v", first.VerticalRateFpm)
	}
	if first.OnGround {
		t.Error("Airborne vector should not be on-ground")
	}

	grounded := states[1]
	if !grounded.OnGround {
		t.Error("on_ground vector should set the flag")
	}
	if grounded.Lat != nil || grounded.AltitudeFt != nil {
		t.Error("Null vector fields should stay nil")
	}
}

func TestOpenSkyProvider_FetchStates_ErrorReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider := newTestOpenSkyProvider(server.URL)

	states, err := provider.FetchStates(context.Background())
	if err != nil {
		t.Fatalf("Region failures are absorbed, got %v", err)
	}
	if len(states) != 0 {
		t.Errorf("Expected empty result, got %d", len(states))
	}
}

package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"
)

func newTestReadsbFeed(baseURL string, regions []Region) *readsbFeed {
	return &readsbFeed{
		name:    "test_feed",
		baseURL: baseURL,
		regions: regions,
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func TestReadsbFeed_FetchStates_FieldMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/point/") {
			t.Errorf("Expected /point/ path, got %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"now": 1700000000,
			"ac": [
				{"hex": "34AABB", "flight": "IBE123 ", "r": "EC-ABC", "t": "A320",
				 "alt_baro": 35000, "gs": 440.5, "track": 92.1, "baro_rate": -640,
				 "squawk": "1200", "lat": 40.41, "lon": -3.70},
				{"hex": "340001", "alt_baro": "ground", "lat": 40.49, "lon": -3.57},
				{"hex": "345678"}
			]
		}`))
	}))
	defer server.Close()

	feed := newTestReadsbFeed(server.URL, []Region{{Name: "iberia", Lat: 40, Lon: -3.7, RadiusNM: 250}})

	states, err := feed.FetchStates(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(states) != 3 {
		t.Fatalf("Expected 3 states, got %d", len(states))
	}

	first := states[0]
	if first.Hex != "34aabb" {
		t.Errorf("Expected lower-cased hex 34aabb, got %s", first.Hex)
	}
	if first.Callsign == nil || *first.Callsign != "IBE123" {
		t.Errorf("Expected trimmed callsign IBE123, got %v", first.Callsign)
	}
	if first.AltitudeFt == nil || *first.AltitudeFt != 35000 {
		t.Errorf("Expected altitude 35000, got %v", first.AltitudeFt)
	}
	if first.OnGround {
		t.Error("Airborne aircraft should not be flagged on-ground")
	}
	if first.Registration == nil || *first.Registration != "EC-ABC" {
		t.Errorf("Expected registration EC-ABC, got %v", first.Registration)
	}

	grounded := states[1]
	if grounded.AltitudeFt != nil {
		t.Errorf("Ground sentinel must not become an altitude, got %v", *grounded.AltitudeFt)
	}
	if !grounded.OnGround {
		t.Error("Ground sentinel should set the on-ground flag")
	}

	bare := states[2]
	if bare.Lat != nil || bare.Lon != nil || bare.Callsign != nil {
		t.Error("Missing optional fields should stay nil")
	}
}

func TestReadsbFeed_FetchStates_RegionFailureIsolated(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ac": [{"hex": "34cc01", "lat": 28.1, "lon": -15.4, "alt_baro": 12000}]}`))
	}))
	defer server.Close()

	feed := newTestReadsbFeed(server.URL, []Region{
		{Name: "iberia", Lat: 40, Lon: -3.7, RadiusNM: 250},
		{Name: "canarias", Lat: 28.3, Lon: -15.6, RadiusNM: 250},
	})

	states, err := feed.FetchStates(context.Background())
	if err != nil {
		t.Fatalf("A failing region must not fail the adapter, got %v", err)
	}
	if len(states) != 1 {
		t.Fatalf("Expected 1 state from the surviving region, got %d", len(states))
	}
	if states[0].Hex != "34cc01" {
		t.Errorf("Expected hex 34cc01, got %s", states[0].Hex)
	}
}

func TestReadsbFeed_FetchStates_AllRegionsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	feed := newTestReadsbFeed(server.URL, []Region{
		{Name: "iberia", Lat: 40, Lon: -3.7, RadiusNM: 250},
		{Name: "canarias", Lat: 28.3, Lon: -15.6, RadiusNM: 250},
	})

	states, err := feed.FetchStates(context.Background())
	if err != nil {
		t.Fatalf("Zero successful regions should return empty, not error, got %v", err)
	}
	if len(states) != 0 {
		t.Errorf("Expected empty result, got %d states", len(states))
	}
}

func TestReadsbFeed_FetchStates_DedupFirstWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Both regions return the same aircraft with different callsigns.
		if strings.Contains(r.URL.Path, "40.0000") {
			w.Write([]byte(`{"ac": [{"hex": "34AB01", "flight": "FIRST", "lat": 40.0, "lon": -3.7}]}`))
			return
		}
		w.Write([]byte(`{"ac": [{"hex": "34ab01", "flight": "SECOND", "lat": 28.3, "lon": -15.6}]}`))
	}))
	defer server.Close()

	feed := newTestReadsbFeed(server.URL, []Region{
		{Name: "iberia", Lat: 40.0, Lon: -3.7, RadiusNM: 250},
		{Name: "canarias", Lat: 28.3, Lon: -15.6, RadiusNM: 250},
	})

	states, err := feed.FetchStates(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(states) != 1 {
		t.Fatalf("Expected the duplicate to collapse to 1 state, got %d", len(states))
	}
	if states[0].Callsign == nil || *states[0].Callsign != "FIRST" {
		t.Errorf("First region occurrence should win, got %v", states[0].Callsign)
	}
}

func TestReadsbFeed_FetchStates_RateLimitedRegionSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	feed := newTestReadsbFeed(server.URL, []Region{{Name: "iberia", Lat: 40, Lon: -3.7, RadiusNM: 250}})

	states, err := feed.FetchStates(context.Background())
	if err != nil {
		t.Fatalf("429 should be absorbed per region, got %v", err)
	}
	if len(states) != 0 {
		t.Errorf("Expected no states from a rate-limited region, got %d", len(states))
	}
}

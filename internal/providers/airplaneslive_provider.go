package providers

import (
	"os"

	"golang.org/x/time/rate"
)

// AirplanesLiveProvider fetches live states from the airplanes.live public
// API. Documented limit is 1 request per second, enforced client-side.
// API Documentation: https://airplanes.live/api-guide/
type AirplanesLiveProvider struct {
	readsbFeed
}

// NewAirplanesLiveProvider creates the airplanes.live adapter covering
// mainland Spain plus the Canary Islands. The point/radius endpoint caps at
// 250 NM, so the peninsula and the Canaries are queried as separate regions.
func NewAirplanesLiveProvider() *AirplanesLiveProvider {
	baseURL := os.Getenv("AIRPLANESLIVE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.airplanes.live/v2"
	}

	return &AirplanesLiveProvider{
		readsbFeed: readsbFeed{
			name:    "airplanes_live",
			baseURL: baseURL,
			regions: []Region{
				{Name: "iberia", Lat: 40.0, Lon: -3.7, RadiusNM: 250},
				{Name: "canarias", Lat: 28.3, Lon: -15.6, RadiusNM: 250},
			},
			client:  newFeedHTTPClient(),
			limiter: rate.NewLimiter(1, 1),
		},
	}
}

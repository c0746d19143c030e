package providers

import (
	"os"

	"golang.org/x/time/rate"
)

// ADSBLolProvider fetches live states from the adsb.lol community API, which
// serves the same readsb JSON dialect as airplanes.live.
type ADSBLolProvider struct {
	readsbFeed
}

// NewADSBLolProvider creates the adsb.lol adapter. Same coverage split as
// airplanes.live: one region for the peninsula, one for the Canaries.
func NewADSBLolProvider() *ADSBLolProvider {
	baseURL := os.Getenv("ADSBLOL_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.adsb.lol/v2"
	}

	return &ADSBLolProvider{
		readsbFeed: readsbFeed{
			name:    "adsb_lol",
			baseURL: baseURL,
			regions: []Region{
				{Name: "iberia", Lat: 40.0, Lon: -3.7, RadiusNM: 250},
				{Name: "canarias", Lat: 28.3, Lon: -15.6, RadiusNM: 250},
			},
			client:  newFeedHTTPClient(),
			limiter: rate.NewLimiter(2, 2),
		},
	}
}

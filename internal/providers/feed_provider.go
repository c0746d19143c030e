package providers

import (
	"context"
	"fmt"

	"github.com/Edgar1001/AirTracker-Backend/internal/models/dtos"
)

// FeedProvider is the contract every live-feed adapter implements. A fetch
// covers all of the adapter's configured coverage regions; a single region
// failing is the adapter's problem to absorb, never the caller's. An adapter
// with zero successful regions returns an empty slice and a nil error.
type FeedProvider interface {
	// Name returns the feed identifier used for logging, metrics and
	// source tagging.
	Name() string

	// FetchStates fetches and normalizes the current aircraft states from
	// every coverage region, deduplicated by ICAO24 hex within the feed
	// (first occurrence wins).
	FetchStates(ctx context.Context) ([]dtos.AircraftState, error)
}

// Region is one geographic coverage query. Point-radius feeds use
// Lat/Lon/RadiusNM; bounding-box feeds use the Min/Max pairs.
type Region struct {
	Name     string
	Lat      float64
	Lon      float64
	RadiusNM float64
	LatMin   float64
	LatMax   float64
	LonMin   float64
	LonMax   float64
}

// ProviderError wraps a feed failure with a stable code for logging.
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Error codes for feed failures
const (
	ErrCodeNetworkError = "NETWORK_ERROR"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeBadPayload   = "BAD_PAYLOAD"
)

// Unit conversions between feed dialects. readsb feeds report feet and
// knots; OpenSky reports meters and m/s.
const (
	MetersToFeet    = 3.28084
	MsToKnots       = 1.9438452
	MsToFeetPerMin  = 196.850394
)

package constants

import "time"

const (
	// RetentionWindow is how long raw position samples are kept before cleanup.
	RetentionWindow = 24 * time.Hour

	// TrackWindow is the trailing window over which flight tracks are rebuilt.
	TrackWindow = 24 * time.Hour

	// TrackGapThreshold is the maximum silence between two consecutive
	// positions before a track is split into a new segment.
	TrackGapThreshold = 300 * time.Second

	// DefaultFetchInterval is how often the ingestion cycle runs.
	DefaultFetchInterval = 30 * time.Second

	// FeedFetchTimeout bounds a single feed adapter fetch. A stuck region
	// must not stall the whole cycle.
	FeedFetchTimeout = 15 * time.Second

	// TrackCacheTTL is how long assembled track lists are served from cache.
	TrackCacheTTL = 30 * time.Second
)

// SpanishHexPrefixes are the first 3 hex characters of the ICAO24 block
// allocated to Spain (340000-34FFFF). Lower case, matching normalized hexes.
var SpanishHexPrefixes = map[string]bool{
	"340": true,
	"341": true,
	"342": true,
	"343": true,
	"344": true,
	"345": true,
	"346": true,
	"347": true,
	"348": true,
	"349": true,
	"34a": true,
	"34b": true,
	"34c": true,
	"34d": true,
	"34e": true,
	"34f": true,
}

// Cache key prefixes
const (
	CacheKeyTracks = "TRACKS_"
)

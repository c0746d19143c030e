package providers

import (
	"os"
	"strings"

	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
)

// Feed identifiers as they appear in FEED_PRIORITY and in metrics labels.
const (
	FeedAirplanesLive = "airplanes_live"
	FeedAdsbLol       = "adsb_lol"
	FeedOpenSky       = "opensky"
)

// DefaultFeedPriority is the order state vectors win in during fusion when
// FEED_PRIORITY is not set. Earlier entries beat later ones for the same hex.
var DefaultFeedPriority = []string{
	FeedAirplanesLive,
	FeedAdsbLol,
	FeedOpenSky,
}

// FromEnv builds the feed adapters in fusion priority order. FEED_PRIORITY is
// a comma-separated list of feed names; unknown names are logged and skipped,
// and any feed missing from the list is appended at the end so a partial
// override never silently disables a feed.
func FromEnv() []FeedProvider {
	builders := map[string]func() FeedProvider{
		FeedAirplanesLive: func() FeedProvider { return NewAirplanesLiveProvider() },
		FeedAdsbLol:       func() FeedProvider { return NewADSBLolProvider() },
		FeedOpenSky:       func() FeedProvider { return NewOpenSkyProvider() },
	}

	order := DefaultFeedPriority
	if raw := os.Getenv("FEED_PRIORITY"); raw != "" {
		order = parsePriority(raw)
	}

	feeds := make([]FeedProvider, 0, len(builders))
	seen := make(map[string]bool, len(builders))
	for _, name := range order {
		build, ok := builders[name]
		if !ok {
			logging.Warn("Unknown feed in FEED_PRIORITY, skipping", "feed", name)
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		feeds = append(feeds, build())
	}

	for _, name := range DefaultFeedPriority {
		if !seen[name] {
			seen[name] = true
			feeds = append(feeds, builders[name]())
		}
	}

	return feeds
}

func parsePriority(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

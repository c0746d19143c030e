package services

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/Edgar1001/AirTracker-Backend/internal/constants"
	"github.com/Edgar1001/AirTracker-Backend/internal/logging"
)

// ClassificationService decides whether an ICAO24 hex belongs to the Spanish
// allocation block and whether it is a known military airframe. Both lookup
// tables are fixed for the process lifetime: the prefix table is compiled in,
// the military set is loaded once at construction.
type ClassificationService struct {
	militaryHexes map[string]bool
}

// militaryDatasetEntry is one record of the optional military aircraft
// dataset. Only the hex field matters; either spelling is accepted.
type militaryDatasetEntry struct {
	ICAO string `json:"icao"`
	Hex  string `json:"hex"`
}

// NewClassificationService builds the classifier, loading the military hex
// set from datasetPath. A missing or unparseable dataset leaves the set
// empty; start-up never fails over it.
func NewClassificationService(datasetPath string) *ClassificationService {
	svc := &ClassificationService{
		militaryHexes: loadMilitaryHexes(datasetPath),
	}
	logging.Info("Classification service ready",
		"military_hexes", len(svc.militaryHexes),
	)
	return svc
}

func loadMilitaryHexes(path string) map[string]bool {
	hexes := make(map[string]bool)
	if path == "" {
		return hexes
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logging.Warn("Military dataset not readable, continuing with empty set",
			"path", path,
			"error", err.Error(),
		)
		return hexes
	}

	var entries []militaryDatasetEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		logging.Warn("Military dataset not parseable, continuing with empty set",
			"path", path,
			"error", err.Error(),
		)
		return hexes
	}

	for _, e := range entries {
		hex := e.ICAO
		if hex == "" {
			hex = e.Hex
		}
		hex = strings.ToLower(strings.TrimSpace(hex))
		if hex != "" {
			hexes[hex] = true
		}
	}
	return hexes
}

// IsSpanish reports whether the hex falls in the ICAO24 block allocated to
// Spain. Only the first 3 characters of the lower-cased hex matter.
func (s *ClassificationService) IsSpanish(hex string) bool {
	hex = strings.ToLower(strings.TrimSpace(hex))
	if len(hex) < 3 {
		return false
	}
	return constants.SpanishHexPrefixes[hex[:3]]
}

// IsMilitary reports whether the hex is in the military dataset. With no
// dataset loaded this is always false.
func (s *ClassificationService) IsMilitary(hex string) bool {
	return s.militaryHexes[strings.ToLower(strings.TrimSpace(hex))]
}

package dtos

import "time"

// CycleSummary is the result of one ingestion cycle, consumed by the
// scheduler for logging only.
type CycleSummary struct {
	Tracked int `json:"tracked"`
	Stored  int `json:"stored"`
}

// IngestStatus is the live status surface exposed over the API.
type IngestStatus struct {
	Running      bool          `json:"running"`
	LastCycleAt  *time.Time    `json:"last_cycle_at,omitempty"`
	LastSummary  *CycleSummary `json:"last_summary,omitempty"`
	LastError    string        `json:"last_error,omitempty"`
	Feeds        []string      `json:"feeds"`
	IntervalSecs int           `json:"interval_seconds"`
}

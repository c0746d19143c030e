package services

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassificationService_IsSpanish(t *testing.T) {
	svc := NewClassificationService("")

	cases := []struct {
		hex  string
		want bool
	}{
		{"340000", true},
		{"34ffff", true},
		{"34AABB", true}, // case must not matter
		{"34FFFF", true},
		{"350000", false},
		{"33ffff", false},
		{"4ca123", false}, // Irish allocation
		{"a12345", false},
		{"34", false}, // too short to classify
		{"", false},
	}

	for _, c := range cases {
		if got := svc.IsSpanish(c.hex); got != c.want {
			t.Errorf("IsSpanish(%q) = %v, want %v", c.hex, got, c.want)
		}
	}
}

func TestClassificationService_IsSpanish_DependsOnPrefixOnly(t *testing.T) {
	svc := NewClassificationService("")

	// Same prefix, arbitrary suffixes.
	for _, hex := range []string{"341000", "341fff", "341abc", "341ABC"} {
		if !svc.IsSpanish(hex) {
			t.Errorf("IsSpanish(%q) should be true for prefix 341", hex)
		}
	}
}

func TestClassificationService_MilitaryDatasetMissing(t *testing.T) {
	svc := NewClassificationService("/nonexistent/military.json")

	if svc.IsMilitary("340101") {
		t.Error("Empty set should classify nothing as military")
	}
}

func TestClassificationService_MilitaryDatasetCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "military.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewClassificationService(path)

	if svc.IsMilitary("340101") {
		t.Error("Corrupt dataset should leave the set empty")
	}
}

func TestClassificationService_MilitaryDatasetLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "military.json")
	payload := `[
		{"icao": "34A101", "name": "Ejercito del Aire"},
		{"hex": "340f0f"},
		{"name": "no hex at all"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	svc := NewClassificationService(path)

	if !svc.IsMilitary("34a101") {
		t.Error("Expected 34a101 in military set")
	}
	if !svc.IsMilitary("34A101") {
		t.Error("Military lookup must be case-insensitive")
	}
	if !svc.IsMilitary("340f0f") {
		t.Error("Expected 340f0f in military set via hex field")
	}
	if svc.IsMilitary("340000") {
		t.Error("Unlisted hex should not be military")
	}
}

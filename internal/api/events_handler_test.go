package api

import (
	"testing"
	"time"
)

func TestParseEventDate(t *testing.T) {
	testcases := []struct {
		raw      string
		expected time.Time
	}{
		{"2024-08-17T07:00:00Z", time.Date(2024, 8, 17, 7, 0, 0, 0, time.UTC)},
		{"2024-08-17 07:00:00", time.Date(2024, 8, 17, 7, 0, 0, 0, time.UTC)},
		{"2024-08-17", time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testcases {
		parsed, err := parseEventDate(tc.raw)
		if err != nil {
			t.Errorf("parseEventDate(%q) error: %v", tc.raw, err)
			continue
		}
		if !parsed.Equal(tc.expected) {
			t.Errorf("parseEventDate(%q): expected %v, got %v", tc.raw, tc.expected, parsed)
		}
	}

	if _, err := parseEventDate("17 Agustus 2024"); err == nil {
		t.Error("expected error for unrecognized format")
	}
}

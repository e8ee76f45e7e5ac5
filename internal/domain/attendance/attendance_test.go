package attendance

import (
	"testing"
	"time"
)

func TestWorkedHours(t *testing.T) {
	clockIn := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	if got := WorkedHours(clockIn, nil); got != 0 {
		t.Fatalf("open day should report 0 hours, got %v", got)
	}

	out := clockIn.Add(8*time.Hour + 30*time.Minute)
	if got := WorkedHours(clockIn, &out); got != 8.5 {
		t.Fatalf("expected 8.5 hours, got %v", got)
	}

	// A clock skew producing a negative span clamps to zero.
	before := clockIn.Add(-time.Hour)
	if got := WorkedHours(clockIn, &before); got != 0 {
		t.Fatalf("expected clamp to 0, got %v", got)
	}
}

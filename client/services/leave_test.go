package services

import "testing"

func TestRequestDays(t *testing.T) {
	tests := []struct {
		start, end string
		want       float64
		wantErr    bool
	}{
		{"2026-03-02", "2026-03-02", 1, false},
		{"2026-03-02", "2026-03-06", 5, false},
		{"2026-02-27", "2026-03-02", 4, false},
		{"2026-12-30", "2027-01-02", 4, false},
		{"2026-03-06", "2026-03-02", 0, true},
		{"not-a-date", "2026-03-02", 0, true},
		{"2026-03-02", "03/06/2026", 0, true},
	}
	for _, tc := range tests {
		got, err := RequestDays(tc.start, tc.end)
		if tc.wantErr {
			if err == nil {
				t.Errorf("RequestDays(%q, %q): expected error", tc.start, tc.end)
			}
			continue
		}
		if err != nil {
			t.Errorf("RequestDays(%q, %q): %v", tc.start, tc.end, err)
			continue
		}
		if got != tc.want {
			t.Errorf("RequestDays(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
		}
	}
}

func TestCheckBalance(t *testing.T) {
	balance := LeaveBalance{Entitled: 24, Used: 20, Remaining: 4}

	if err := CheckBalance(balance, 4); err != nil {
		t.Fatalf("expected exactly-remaining request to pass: %v", err)
	}
	if err := CheckBalance(balance, 4.5); err == nil {
		t.Fatal("expected over-balance request to fail")
	}
	if err := CheckBalance(balance, 0); err == nil {
		t.Fatal("expected zero-day request to fail")
	}
	if err := CheckBalance(balance, -1); err == nil {
		t.Fatal("expected negative request to fail")
	}
}

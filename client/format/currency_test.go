package format

import "testing"

func TestINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0"},
		{7, "₹7"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{45000, "₹45,000"},
		{100000, "₹1,00,000"},
		{1234567.89, "₹12,34,568"},
		{10000000, "₹1,00,00,000"},
		{123456789, "₹12,34,56,789"},
		{-45000, "₹-45,000"},
		{49999.5, "₹50,000"},
	}
	for _, tc := range tests {
		if got := INR(tc.in); got != tc.want {
			t.Errorf("INR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{100, "100"},
		{1000, "1,000"},
		{99999, "99,999"},
		{100000, "1,00,000"},
		{2500000, "25,00,000"},
		{-1234567, "-12,34,567"},
	}
	for _, tc := range tests {
		if got := Number(tc.in); got != tc.want {
			t.Errorf("Number(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

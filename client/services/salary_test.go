package services

import (
	"math"
	"testing"
)

func TestRecompute(t *testing.T) {
	tests := []struct {
		name                               string
		basic, allowances, deductions, pct float64
		gross, tax, net                    float64
	}{
		{"typical", 50000, 10000, 2000, 10, 60000, 6000, 52000},
		{"zero tax", 30000, 5000, 1000, 0, 35000, 0, 34000},
		{"no allowances", 40000, 0, 0, 20, 40000, 8000, 32000},
		{"deductions exceed net", 10000, 0, 9500, 10, 10000, 1000, -500},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gross, tax, net := Recompute(tc.basic, tc.allowances, tc.deductions, tc.pct)
			if gross != tc.gross || tax != tc.tax || net != tc.net {
				t.Fatalf("got (%v, %v, %v), want (%v, %v, %v)",
					gross, tax, net, tc.gross, tc.tax, tc.net)
			}
		})
	}
}

func TestConsistentFigures(t *testing.T) {
	rec := SalaryRecord{
		BasicSalary: 50000, Allowances: 10000, Deductions: 2000, TaxPercent: 10,
		GrossSalary: 60000, TaxAmount: 6000, NetSalary: 52000,
	}
	if !ConsistentFigures(rec) {
		t.Fatal("expected matching figures to be consistent")
	}

	drifted := rec
	drifted.NetSalary += 0.005
	if !ConsistentFigures(drifted) {
		t.Fatal("expected sub-tolerance drift to pass")
	}

	wrong := rec
	wrong.TaxAmount = 5000
	if ConsistentFigures(wrong) {
		t.Fatal("expected mismatched tax to fail")
	}

	if math.Abs(rec.GrossSalary-(rec.BasicSalary+rec.Allowances)) > 0.01 {
		t.Fatal("fixture invalid")
	}
}

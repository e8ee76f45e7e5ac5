package salary

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name                               string
		basic, allowances, deductions, pct float64
		gross, tax, net                    float64
	}{
		{"typical", 50000, 10000, 2000, 10, 60000, 6000, 52000},
		{"zero percent", 30000, 5000, 1500, 0, 35000, 0, 33500},
		{"all components zero", 0, 0, 0, 0, 0, 0, 0},
		{"full percent", 20000, 0, 0, 100, 20000, 20000, 0},
		{"fractional percent", 60000, 0, 0, 12.5, 60000, 7500, 52500},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gross, tax, net := Compute(tc.basic, tc.allowances, tc.deductions, tc.pct)
			if gross != tc.gross {
				t.Fatalf("gross = %v, want %v", gross, tc.gross)
			}
			if tax != tc.tax {
				t.Fatalf("tax = %v, want %v", tax, tc.tax)
			}
			if net != tc.net {
				t.Fatalf("net = %v, want %v", net, tc.net)
			}
		})
	}
}

func TestPayslipPDF(t *testing.T) {
	rec := Record{
		ID: 1, EmployeeID: 2, EmployeeName: "Asha Verma",
		Month: 3, Year: 2026,
		BasicSalary: 50000, Allowances: 10000, Deductions: 2000, TaxPercent: 10,
		GrossSalary: 60000, TaxAmount: 6000, NetSalary: 52000,
		Processed: true,
	}
	pdf, err := PayslipPDF(rec)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("expected non-empty PDF")
	}
	if string(pdf[:5]) != "%PDF-" {
		t.Fatalf("expected PDF header, got %q", pdf[:5])
	}
}

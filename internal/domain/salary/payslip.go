package salary

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PayslipPDF renders the salary record as a one page PDF.
func PayslipPDF(rec Record) ([]byte, error) {
	period := time.Date(rec.Year, time.Month(rec.Month), 1, 0, 0, 0, 0, time.UTC)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", rec.EmployeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period.Format("January 2006")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic Salary: INR %.2f", rec.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: INR %.2f", rec.Allowances))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross Salary: INR %.2f", rec.GrossSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tax (%.1f%%): INR %.2f", rec.TaxPercent, rec.TaxAmount))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: INR %.2f", rec.Deductions))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net Salary: INR %.2f", rec.NetSalary))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	status := "Pending"
	if rec.Processed {
		status = "Processed"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s    Generated: %s", status, time.Now().Format("2006-01-02")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

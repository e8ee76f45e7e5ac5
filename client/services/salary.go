package services

import (
	"context"
	"fmt"
	"math"

	"payroll/client/api"
)

// Salary backs both the admin salary management page and the employee
// payslip pages. The arithmetic identity is re-checked client-side before
// displaying a record; the server's figures stay authoritative.
type Salary struct {
	api *api.Client
}

func NewSalary(c *api.Client) *Salary { return &Salary{api: c} }

type SalaryInput struct {
	BasicSalary float64 `json:"basicSalary"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
	TaxPercent  float64 `json:"taxPercent"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
}

// Recompute derives gross, tax and net from the salary components:
// gross = basic + allowances, tax = gross * pct / 100,
// net = gross - tax - deductions.
func Recompute(basic, allowances, deductions, taxPercent float64) (gross, tax, net float64) {
	gross = basic + allowances
	tax = gross * taxPercent / 100
	net = gross - tax - deductions
	return gross, tax, net
}

// ConsistentFigures reports whether a record's server-computed figures match
// the identity within a rounding tolerance.
func ConsistentFigures(rec SalaryRecord) bool {
	gross, tax, net := Recompute(rec.BasicSalary, rec.Allowances, rec.Deductions, rec.TaxPercent)
	const tolerance = 0.01
	return math.Abs(gross-rec.GrossSalary) < tolerance &&
		math.Abs(tax-rec.TaxAmount) < tolerance &&
		math.Abs(net-rec.NetSalary) < tolerance
}

func (s *Salary) Upsert(ctx context.Context, employeeID int64, input SalaryInput) (SalaryRecord, error) {
	var out SalaryRecord
	err := s.api.Post(ctx, fmt.Sprintf("/api/salary/%d", employeeID), input, &out)
	return out, err
}

func (s *Salary) History(ctx context.Context, employeeID int64) ([]SalaryRecord, error) {
	var out []SalaryRecord
	err := s.api.Get(ctx, fmt.Sprintf("/api/salary/%d", employeeID), &out)
	return out, err
}

func (s *Salary) ByMonth(ctx context.Context, employeeID int64, month, year int) (SalaryRecord, error) {
	var out SalaryRecord
	err := s.api.Get(ctx, fmt.Sprintf("/api/salary/%d/%d/%d", employeeID, month, year), &out)
	return out, err
}

func (s *Salary) AllByPeriod(ctx context.Context, month, year int) ([]SalaryRecord, error) {
	var out []SalaryRecord
	err := s.api.Get(ctx, fmt.Sprintf("/api/salary/month/%d/year/%d", month, year), &out)
	return out, err
}

func (s *Salary) Unprocessed(ctx context.Context) ([]SalaryRecord, error) {
	var out []SalaryRecord
	err := s.api.Get(ctx, "/api/salary/unprocessed", &out)
	return out, err
}

func (s *Salary) MarkProcessed(ctx context.Context, salaryID int64) (SalaryRecord, error) {
	var out SalaryRecord
	err := s.api.Post(ctx, fmt.Sprintf("/api/salary/%d/process", salaryID), nil, &out)
	return out, err
}

func (s *Salary) Delete(ctx context.Context, salaryID int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/salary/%d", salaryID))
}

// Mine returns the calling employee's own history.
func (s *Salary) Mine(ctx context.Context) ([]SalaryRecord, error) {
	var out []SalaryRecord
	err := s.api.Get(ctx, "/api/salary/my-salary", &out)
	return out, err
}

func (s *Salary) MineByMonth(ctx context.Context, month, year int) (SalaryRecord, error) {
	var out SalaryRecord
	err := s.api.Get(ctx, fmt.Sprintf("/api/salary/my-salary/%d/%d", month, year), &out)
	return out, err
}

// Payslip fetches the rendered PDF for any employee (admin surface).
func (s *Salary) Payslip(ctx context.Context, employeeID int64, month, year int) ([]byte, error) {
	return s.api.GetBytes(ctx, fmt.Sprintf("/api/salary/%d/payslip/%d/%d", employeeID, month, year))
}

// MyPayslip fetches the calling employee's own payslip PDF.
func (s *Salary) MyPayslip(ctx context.Context, month, year int) ([]byte, error) {
	return s.api.GetBytes(ctx, fmt.Sprintf("/api/salary/my-payslip/%d/%d", month, year))
}

package salary

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("salary record not found")
	ErrInvalidInput     = errors.New("invalid salary input")
	ErrAlreadyProcessed = errors.New("salary already processed")
)

type Record struct {
	ID           int64     `json:"id"`
	EmployeeID   int64     `json:"employeeId"`
	EmployeeName string    `json:"employeeName"`
	Month        int       `json:"month"`
	Year         int       `json:"year"`
	BasicSalary  float64   `json:"basicSalary"`
	Allowances   float64   `json:"allowances"`
	Deductions   float64   `json:"deductions"`
	TaxPercent   float64   `json:"taxPercent"`
	GrossSalary  float64   `json:"grossSalary"`
	TaxAmount    float64   `json:"taxAmount"`
	NetSalary    float64   `json:"netSalary"`
	Processed    bool      `json:"processed"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Input struct {
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	BasicSalary float64 `json:"basicSalary"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
	TaxPercent  float64 `json:"taxPercent"`
}

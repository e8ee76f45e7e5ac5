// Package services contains one thin service per page. Every call goes
// through the shared API client; the services add no access-control logic of
// their own and apply results only to pages that are still mounted (the
// caller's context handles abandonment).
package services

import "time"

type Employee struct {
	ID          int64       `json:"id"`
	FullName    string      `json:"fullName"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Designation string      `json:"designation"`
	Role        string      `json:"role"`
	Department  *Department `json:"department,omitempty"`
	JoiningDate string      `json:"joiningDate"`
	Active      bool        `json:"active"`
}

type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Headcount   int    `json:"headcount,omitempty"`
}

type AttendanceRecord struct {
	ID          int64      `json:"id"`
	EmployeeID  int64      `json:"employeeId"`
	Day         string     `json:"day"`
	ClockIn     time.Time  `json:"clockIn"`
	ClockOut    *time.Time `json:"clockOut,omitempty"`
	WorkedHours float64    `json:"workedHours"`
}

type LeaveRequest struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employeeId"`
	Type       string  `json:"type"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Days       float64 `json:"days"`
	Reason     string  `json:"reason"`
	Status     string  `json:"status"`
}

type LeaveBalance struct {
	EmployeeID int64   `json:"employeeId"`
	Year       int     `json:"year"`
	Entitled   float64 `json:"entitled"`
	Used       float64 `json:"used"`
	Remaining  float64 `json:"remaining"`
}

type Document struct {
	ID         string    `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type SalaryRecord struct {
	ID          int64     `json:"id"`
	EmployeeID  int64     `json:"employeeId"`
	Employee    string    `json:"employeeName"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	BasicSalary float64   `json:"basicSalary"`
	Allowances  float64   `json:"allowances"`
	Deductions  float64   `json:"deductions"`
	TaxPercent  float64   `json:"taxPercent"`
	GrossSalary float64   `json:"grossSalary"`
	TaxAmount   float64   `json:"taxAmount"`
	NetSalary   float64   `json:"netSalary"`
	Processed   bool      `json:"processed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ComplianceReport struct {
	Year          int     `json:"year"`
	RecordsTotal  int     `json:"recordsTotal"`
	Processed     int     `json:"processed"`
	Unprocessed   int     `json:"unprocessed"`
	TaxWithheld   float64 `json:"taxWithheld"`
	GrossPaid     float64 `json:"grossPaid"`
	NetPaid       float64 `json:"netPaid"`
	ProcessedRate float64 `json:"processedRate"`
}

type AnalyticsSummary struct {
	Headcount       int     `json:"headcount"`
	Departments     int     `json:"departments"`
	PayrollYTDGross float64 `json:"payrollYtdGross"`
	PayrollYTDNet   float64 `json:"payrollYtdNet"`
}

type DepartmentShare struct {
	Department string `json:"department"`
	Headcount  int    `json:"headcount"`
}

type MonthlyPayroll struct {
	Month int     `json:"month"`
	Gross float64 `json:"gross"`
	Tax   float64 `json:"tax"`
	Net   float64 `json:"net"`
}

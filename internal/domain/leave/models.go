package leave

import (
	"errors"
	"time"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

var (
	ErrNotFound            = errors.New("leave request not found")
	ErrInvalidRange        = errors.New("end date is before start date")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrAlreadyDecided      = errors.New("leave request already decided")
)

type Request struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employeeId"`
	Type       string    `json:"type"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Days       float64   `json:"days"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Balance struct {
	EmployeeID int64   `json:"employeeId"`
	Year       int     `json:"year"`
	Entitled   float64 `json:"entitled"`
	Used       float64 `json:"used"`
	Remaining  float64 `json:"remaining"`
}

type Input struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// RequestDays counts calendar days in the range, both endpoints included.
func RequestDays(start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	return end.Sub(start).Hours()/24 + 1
}

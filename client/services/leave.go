package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payroll/client/api"
)

// Leave backs the leave management page. The day count and balance check are
// mirrored client-side so the form can reject an obviously bad request
// before it reaches the server; the server remains authoritative.
type Leave struct {
	api *api.Client
}

func NewLeave(c *api.Client) *Leave { return &Leave{api: c} }

type LeaveInput struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// RequestDays returns the inclusive day count between two ISO dates.
func RequestDays(startDate, endDate string) (float64, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return 0, errors.New("end date before start date")
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// CheckBalance is the superficial client-side gate: it rejects a request
// that plainly exceeds the remaining balance.
func CheckBalance(balance LeaveBalance, requestedDays float64) error {
	if requestedDays <= 0 {
		return errors.New("requested days must be positive")
	}
	if requestedDays > balance.Remaining {
		return fmt.Errorf("requested %.1f days but only %.1f remaining", requestedDays, balance.Remaining)
	}
	return nil
}

func (s *Leave) Submit(ctx context.Context, input LeaveInput) (LeaveRequest, error) {
	var out LeaveRequest
	err := s.api.Post(ctx, "/api/leave/requests", input, &out)
	return out, err
}

func (s *Leave) Mine(ctx context.Context) ([]LeaveRequest, error) {
	var out []LeaveRequest
	err := s.api.Get(ctx, "/api/leave/requests/me", &out)
	return out, err
}

func (s *Leave) Pending(ctx context.Context) ([]LeaveRequest, error) {
	var out []LeaveRequest
	err := s.api.Get(ctx, "/api/leave/requests?status=PENDING", &out)
	return out, err
}

func (s *Leave) Approve(ctx context.Context, id int64) error {
	return s.api.Post(ctx, fmt.Sprintf("/api/leave/requests/%d/approve", id), nil, nil)
}

func (s *Leave) Reject(ctx context.Context, id int64) error {
	return s.api.Post(ctx, fmt.Sprintf("/api/leave/requests/%d/reject", id), nil, nil)
}

func (s *Leave) MyBalance(ctx context.Context) (LeaveBalance, error) {
	var out LeaveBalance
	err := s.api.Get(ctx, "/api/leave/balance/me", &out)
	return out, err
}

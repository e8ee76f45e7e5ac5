package leave

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid leave request")

type Service struct {
	Store       StoreAPI
	Entitlement float64
	Now         func() time.Time
}

func NewService(store StoreAPI, entitlement float64) *Service {
	return &Service{Store: store, Entitlement: entitlement, Now: time.Now}
}

func (s *Service) Request(ctx context.Context, employeeID int64, input Input) (Request, error) {
	input.Type = strings.TrimSpace(input.Type)
	input.Reason = strings.TrimSpace(input.Reason)
	if input.Type == "" {
		return Request{}, ErrInvalidInput
	}
	start, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return Request{}, ErrInvalidInput
	}
	end, err := time.Parse("2006-01-02", input.EndDate)
	if err != nil {
		return Request{}, ErrInvalidInput
	}
	if end.Before(start) {
		return Request{}, ErrInvalidRange
	}
	days := RequestDays(start, end)

	bal, err := s.Store.Balance(ctx, employeeID, start.Year(), s.Entitlement)
	if err != nil {
		return Request{}, err
	}
	if days > bal.Remaining {
		return Request{}, ErrInsufficientBalance
	}
	return s.Store.Create(ctx, employeeID, input, days)
}

func (s *Service) List(ctx context.Context, status string) ([]Request, error) {
	return s.Store.ListByStatus(ctx, strings.ToUpper(strings.TrimSpace(status)))
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID int64) ([]Request, error) {
	return s.Store.ListForEmployee(ctx, employeeID)
}

// Approve charges the days against the balance of the year the leave starts in.
func (s *Service) Approve(ctx context.Context, id int64) (Request, error) {
	req, err := s.Store.SetStatus(ctx, id, StatusPending, StatusApproved)
	if err != nil {
		return Request{}, err
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return Request{}, err
	}
	if err := s.Store.AddUsed(ctx, req.EmployeeID, start.Year(), s.Entitlement, req.Days); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (s *Service) Reject(ctx context.Context, id int64) (Request, error) {
	return s.Store.SetStatus(ctx, id, StatusPending, StatusRejected)
}

func (s *Service) Balance(ctx context.Context, employeeID int64) (Balance, error) {
	return s.Store.Balance(ctx, employeeID, s.Now().Year(), s.Entitlement)
}

package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

type fakeStore struct {
	requests map[int64]Request
	nextID   int64
	used     map[string]float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{requests: map[int64]Request{}, nextID: 1, used: map[string]float64{}}
}

func balanceKey(employeeID int64, year int) string {
	return fmt.Sprintf("%d:%d", employeeID, year)
}

func (f *fakeStore) Create(_ context.Context, employeeID int64, input Input, days float64) (Request, error) {
	req := Request{
		ID: f.nextID, EmployeeID: employeeID, Type: input.Type,
		StartDate: input.StartDate, EndDate: input.EndDate,
		Days: days, Reason: input.Reason, Status: StatusPending,
	}
	f.requests[req.ID] = req
	f.nextID++
	return req, nil
}

func (f *fakeStore) Get(_ context.Context, id int64) (Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

func (f *fakeStore) ListByStatus(_ context.Context, status string) ([]Request, error) {
	var out []Request
	for _, req := range f.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeStore) ListForEmployee(_ context.Context, employeeID int64) ([]Request, error) {
	var out []Request
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeStore) SetStatus(_ context.Context, id int64, from, to string) (Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	if req.Status != from {
		return Request{}, ErrAlreadyDecided
	}
	req.Status = to
	f.requests[id] = req
	return req, nil
}

func (f *fakeStore) Balance(_ context.Context, employeeID int64, year int, entitled float64) (Balance, error) {
	used := f.used[balanceKey(employeeID, year)]
	return Balance{
		EmployeeID: employeeID, Year: year,
		Entitled: entitled, Used: used, Remaining: entitled - used,
	}, nil
}

func (f *fakeStore) AddUsed(_ context.Context, employeeID int64, year int, _, days float64) error {
	f.used[balanceKey(employeeID, year)] += days
	return nil
}

var _ StoreAPI = (*fakeStore)(nil)

func newTestService(store StoreAPI) *Service {
	svc := NewService(store, 24)
	svc.Now = func() time.Time { return time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestRequestCountsInclusiveDays(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	req, err := svc.Request(context.Background(), 1, Input{
		Type: "ANNUAL", StartDate: "2026-07-06", EndDate: "2026-07-10", Reason: "family",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if req.Days != 5 {
		t.Fatalf("expected 5 inclusive days, got %v", req.Days)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}
}

func TestRequestSingleDay(t *testing.T) {
	svc := newTestService(newFakeStore())
	req, err := svc.Request(context.Background(), 1, Input{
		Type: "SICK", StartDate: "2026-07-06", EndDate: "2026-07-06",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if req.Days != 1 {
		t.Fatalf("expected 1 day, got %v", req.Days)
	}
}

func TestRequestRejectsReversedRange(t *testing.T) {
	svc := newTestService(newFakeStore())
	_, err := svc.Request(context.Background(), 1, Input{
		Type: "ANNUAL", StartDate: "2026-07-10", EndDate: "2026-07-06",
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRequestRejectsOverBalance(t *testing.T) {
	store := newFakeStore()
	store.used[balanceKey(1, 2026)] = 22
	svc := newTestService(store)

	_, err := svc.Request(context.Background(), 1, Input{
		Type: "ANNUAL", StartDate: "2026-07-06", EndDate: "2026-07-10",
	})
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestApproveChargesBalanceOnce(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	req, err := svc.Request(context.Background(), 1, Input{
		Type: "ANNUAL", StartDate: "2026-07-06", EndDate: "2026-07-10",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	approved, err := svc.Approve(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	balance, err := svc.Balance(context.Background(), 1)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance.Used != 5 || balance.Remaining != 19 {
		t.Fatalf("expected used=5 remaining=19, got %+v", balance)
	}

	// A second approval of the same request must not double-charge.
	if _, err := svc.Approve(context.Background(), req.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}
	balance, _ = svc.Balance(context.Background(), 1)
	if balance.Used != 5 {
		t.Fatalf("double-charged balance: %+v", balance)
	}
}

func TestRejectDoesNotChargeBalance(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	req, err := svc.Request(context.Background(), 1, Input{
		Type: "ANNUAL", StartDate: "2026-07-06", EndDate: "2026-07-08",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	rejected, err := svc.Reject(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if rejected.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}
	balance, _ := svc.Balance(context.Background(), 1)
	if balance.Used != 0 {
		t.Fatalf("reject must not charge the balance: %+v", balance)
	}
}

func TestRequestValidation(t *testing.T) {
	svc := newTestService(newFakeStore())

	if _, err := svc.Request(context.Background(), 1, Input{StartDate: "2026-07-06", EndDate: "2026-07-07"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing type, got %v", err)
	}
	if _, err := svc.Request(context.Background(), 1, Input{Type: "ANNUAL", StartDate: "junk", EndDate: "2026-07-07"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", err)
	}
}

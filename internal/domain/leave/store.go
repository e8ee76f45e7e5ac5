package leave

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StoreAPI interface {
	Create(ctx context.Context, employeeID int64, input Input, days float64) (Request, error)
	Get(ctx context.Context, id int64) (Request, error)
	ListByStatus(ctx context.Context, status string) ([]Request, error)
	ListForEmployee(ctx context.Context, employeeID int64) ([]Request, error)
	SetStatus(ctx context.Context, id int64, from, to string) (Request, error)
	Balance(ctx context.Context, employeeID int64, year int, entitled float64) (Balance, error)
	AddUsed(ctx context.Context, employeeID int64, year int, entitled, days float64) error
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// requestColumns must stay in step with the leave_requests DDL in
// migrations/0001_init.sql.
const requestColumns = "id, employee_id, leave_type, start_date::text, end_date::text, days, reason, status, created_at"

const selectRequest = "SELECT " + requestColumns + " FROM leave_requests"

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate,
		&req.Days, &req.Reason, &req.Status, &req.CreatedAt)
	return req, err
}

func collectRequests(rows pgx.Rows) ([]Request, error) {
	defer rows.Close()
	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, employeeID int64, input Input, days float64) (Request, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, days, reason, status)
    VALUES ($1, $2, $3::date, $4::date, $5, $6, 'PENDING')
    RETURNING `+requestColumns,
		employeeID, input.Type, input.StartDate, input.EndDate, days, input.Reason))
}

func (s *Store) Get(ctx context.Context, id int64) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, selectRequest+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) ListByStatus(ctx context.Context, status string) ([]Request, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status == "" {
		rows, err = s.DB.Query(ctx, selectRequest+" ORDER BY created_at DESC")
	} else {
		rows, err = s.DB.Query(ctx, selectRequest+" WHERE status = $1 ORDER BY created_at DESC", status)
	}
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64) ([]Request, error) {
	rows, err := s.DB.Query(ctx, selectRequest+" WHERE employee_id = $1 ORDER BY created_at DESC", employeeID)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

// SetStatus transitions only from the expected state, so concurrent approvals
// cannot double-count the balance.
func (s *Store) SetStatus(ctx context.Context, id int64, from, to string) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, `
    UPDATE leave_requests SET status = $1
    WHERE id = $2 AND status = $3
    RETURNING `+requestColumns,
		to, id, from))
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return Request{}, getErr
		}
		return Request{}, ErrAlreadyDecided
	}
	return req, err
}

func (s *Store) Balance(ctx context.Context, employeeID int64, year int, entitled float64) (Balance, error) {
	bal := Balance{EmployeeID: employeeID, Year: year, Entitled: entitled}
	err := s.DB.QueryRow(ctx, `
    SELECT entitled, used FROM leave_balances WHERE employee_id = $1 AND year = $2
  `, employeeID, year).Scan(&bal.Entitled, &bal.Used)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return Balance{}, err
	}
	bal.Remaining = bal.Entitled - bal.Used
	return bal, nil
}

func (s *Store) AddUsed(ctx context.Context, employeeID int64, year int, entitled, days float64) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leave_balances (employee_id, year, entitled, used)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (employee_id, year) DO UPDATE SET used = leave_balances.used + $4
  `, employeeID, year, entitled, days)
	return err
}

var _ StoreAPI = (*Store)(nil)

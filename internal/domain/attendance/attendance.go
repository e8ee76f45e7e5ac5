package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAlreadyClockedIn = errors.New("already clocked in today")
	ErrNotClockedIn     = errors.New("not clocked in today")
)

type Record struct {
	ID          int64      `json:"id"`
	EmployeeID  int64      `json:"employeeId"`
	Day         string     `json:"day"`
	ClockIn     time.Time  `json:"clockIn"`
	ClockOut    *time.Time `json:"clockOut,omitempty"`
	WorkedHours float64    `json:"workedHours"`
}

// WorkedHours returns the hours between clock-in and clock-out, zero while
// the day is still open.
func WorkedHours(clockIn time.Time, clockOut *time.Time) float64 {
	if clockOut == nil {
		return 0
	}
	hours := clockOut.Sub(clockIn).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

type StoreAPI interface {
	ClockIn(ctx context.Context, employeeID int64, now time.Time) (Record, error)
	ClockOut(ctx context.Context, employeeID int64, now time.Time) (Record, error)
	ListForEmployee(ctx context.Context, employeeID int64, limit int) ([]Record, error)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ClockIn(ctx context.Context, employeeID int64, now time.Time) (Record, error) {
	day := now.Format("2006-01-02")
	var rec Record
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance (employee_id, day, clock_in)
    VALUES ($1, $2::date, $3)
    ON CONFLICT (employee_id, day) DO NOTHING
    RETURNING id, employee_id, day::text, clock_in, clock_out
  `, employeeID, day, now).Scan(&rec.ID, &rec.EmployeeID, &rec.Day, &rec.ClockIn, &rec.ClockOut)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrAlreadyClockedIn
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) ClockOut(ctx context.Context, employeeID int64, now time.Time) (Record, error) {
	day := now.Format("2006-01-02")
	var rec Record
	err := s.DB.QueryRow(ctx, `
    UPDATE attendance SET clock_out = $3
    WHERE employee_id = $1 AND day = $2::date AND clock_out IS NULL
    RETURNING id, employee_id, day::text, clock_in, clock_out
  `, employeeID, day, now).Scan(&rec.ID, &rec.EmployeeID, &rec.Day, &rec.ClockIn, &rec.ClockOut)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotClockedIn
	}
	if err != nil {
		return Record{}, err
	}
	rec.WorkedHours = WorkedHours(rec.ClockIn, rec.ClockOut)
	return rec, nil
}

func (s *Store) ListForEmployee(ctx context.Context, employeeID int64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 31
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, day::text, clock_in, clock_out
    FROM attendance
    WHERE employee_id = $1
    ORDER BY day DESC
    LIMIT $2
  `, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Day, &rec.ClockIn, &rec.ClockOut); err != nil {
			return nil, err
		}
		rec.WorkedHours = WorkedHours(rec.ClockIn, rec.ClockOut)
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ StoreAPI = (*Store)(nil)

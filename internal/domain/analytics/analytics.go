package analytics

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Summary struct {
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

type StoreAPI interface {
	Summary(ctx context.Context, year int) (Summary, error)
	DepartmentShares(ctx context.Context) ([]DepartmentShare, error)
	MonthlyPayroll(ctx context.Context, year int) ([]MonthlyPayroll, error)
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Summary(ctx context.Context, year int) (Summary, error) {
	var out Summary
	err := s.DB.QueryRow(ctx, `
    SELECT
      (SELECT COUNT(1) FROM employees WHERE active),
      (SELECT COUNT(1) FROM departments),
      COALESCE(SUM(gross_salary) FILTER (WHERE year = $1), 0),
      COALESCE(SUM(net_salary) FILTER (WHERE year = $1), 0)
    FROM salary_records
  `, year).Scan(&out.Headcount, &out.Departments, &out.PayrollYTDGross, &out.PayrollYTDNet)
	return out, err
}

func (s *Store) DepartmentShares(ctx context.Context) ([]DepartmentShare, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.name, COUNT(e.id) FILTER (WHERE e.active)
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id
    GROUP BY d.id
    ORDER BY d.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DepartmentShare
	for rows.Next() {
		var share DepartmentShare
		if err := rows.Scan(&share.Department, &share.Headcount); err != nil {
			return nil, err
		}
		out = append(out, share)
	}
	return out, rows.Err()
}

// MonthlyPayroll returns one row per month that has salary records, months
// without records are omitted.
func (s *Store) MonthlyPayroll(ctx context.Context, year int) ([]MonthlyPayroll, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT month, SUM(gross_salary), SUM(tax_amount), SUM(net_salary)
    FROM salary_records
    WHERE year = $1
    GROUP BY month
    ORDER BY month
  `, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlyPayroll
	for rows.Next() {
		var row MonthlyPayroll
		if err := rows.Scan(&row.Month, &row.Gross, &row.Tax, &row.Net); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ StoreAPI = (*Store)(nil)

type Service struct {
	Store StoreAPI
	Now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store, Now: time.Now}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	return s.Store.Summary(ctx, s.Now().Year())
}

func (s *Service) DepartmentShares(ctx context.Context) ([]DepartmentShare, error) {
	return s.Store.DepartmentShares(ctx)
}

func (s *Service) MonthlyPayroll(ctx context.Context, year int) ([]MonthlyPayroll, error) {
	return s.Store.MonthlyPayroll(ctx, year)
}

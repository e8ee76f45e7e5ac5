package salary

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StoreAPI interface {
	Upsert(ctx context.Context, employeeID int64, input Input, gross, tax, net float64) (Record, error)
	Get(ctx context.Context, id int64) (Record, error)
	ForEmployeeMonth(ctx context.Context, employeeID int64, month, year int) (Record, error)
	HistoryForEmployee(ctx context.Context, employeeID int64) ([]Record, error)
	ForMonth(ctx context.Context, month, year int) ([]Record, error)
	ForYear(ctx context.Context, year int) ([]Record, error)
	Unprocessed(ctx context.Context) ([]Record, error)
	MarkProcessed(ctx context.Context, id int64) (Record, error)
	Delete(ctx context.Context, id int64) error
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectRecord = `
  SELECT s.id, s.employee_id, e.full_name, s.month, s.year,
         s.basic_salary, s.allowances, s.deductions, s.tax_percent,
         s.gross_salary, s.tax_amount, s.net_salary,
         s.processed, s.created_at, s.updated_at
  FROM salary_records s
  JOIN employees e ON e.id = s.employee_id
`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Month, &rec.Year,
		&rec.BasicSalary, &rec.Allowances, &rec.Deductions, &rec.TaxPercent,
		&rec.GrossSalary, &rec.TaxAmount, &rec.NetSalary,
		&rec.Processed, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Upsert keeps one record per employee and month. Re-submitting overwrites the
// components unless the record is already processed.
func (s *Store) Upsert(ctx context.Context, employeeID int64, input Input, gross, tax, net float64) (Record, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO salary_records
      (employee_id, month, year, basic_salary, allowances, deductions, tax_percent,
       gross_salary, tax_amount, net_salary)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    ON CONFLICT (employee_id, month, year) DO UPDATE SET
      basic_salary = $4, allowances = $5, deductions = $6, tax_percent = $7,
      gross_salary = $8, tax_amount = $9, net_salary = $10, updated_at = now()
    WHERE NOT salary_records.processed
    RETURNING id
  `, employeeID, input.Month, input.Year, input.BasicSalary, input.Allowances,
		input.Deductions, input.TaxPercent, gross, tax, net).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrAlreadyProcessed
	}
	if err != nil {
		return Record{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx, selectRecord+" WHERE s.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) ForEmployeeMonth(ctx context.Context, employeeID int64, month, year int) (Record, error) {
	rec, err := scanRecord(s.DB.QueryRow(ctx,
		selectRecord+" WHERE s.employee_id = $1 AND s.month = $2 AND s.year = $3",
		employeeID, month, year))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *Store) HistoryForEmployee(ctx context.Context, employeeID int64) ([]Record, error) {
	rows, err := s.DB.Query(ctx,
		selectRecord+" WHERE s.employee_id = $1 ORDER BY s.year DESC, s.month DESC", employeeID)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (s *Store) ForMonth(ctx context.Context, month, year int) ([]Record, error) {
	rows, err := s.DB.Query(ctx,
		selectRecord+" WHERE s.month = $1 AND s.year = $2 ORDER BY e.full_name", month, year)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (s *Store) ForYear(ctx context.Context, year int) ([]Record, error) {
	rows, err := s.DB.Query(ctx,
		selectRecord+" WHERE s.year = $1 ORDER BY s.month, e.full_name", year)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (s *Store) Unprocessed(ctx context.Context) ([]Record, error) {
	rows, err := s.DB.Query(ctx,
		selectRecord+" WHERE NOT s.processed ORDER BY s.year, s.month, e.full_name")
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (s *Store) MarkProcessed(ctx context.Context, id int64) (Record, error) {
	var updated int64
	err := s.DB.QueryRow(ctx, `
    UPDATE salary_records SET processed = TRUE, updated_at = now()
    WHERE id = $1 AND NOT processed
    RETURNING id
  `, id).Scan(&updated)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return Record{}, getErr
		}
		return Record{}, ErrAlreadyProcessed
	}
	if err != nil {
		return Record{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM salary_records WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ StoreAPI = (*Store)(nil)

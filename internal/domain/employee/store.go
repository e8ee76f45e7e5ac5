package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectEmployee = `
  SELECT e.id, e.full_name, e.email, e.phone, e.designation, u.role,
         e.joining_date, e.active, e.created_at,
         d.id, d.name, d.description
  FROM employees e
  LEFT JOIN departments d ON e.department_id = d.id
  LEFT JOIN users u ON u.employee_id = e.id
`

func scanEmployee(row pgx.Row) (Employee, error) {
	var (
		out      Employee
		role     *string
		joining  *time.Time
		deptID   *int64
		deptName *string
		deptDesc *string
	)
	err := row.Scan(&out.ID, &out.FullName, &out.Email, &out.Phone, &out.Designation, &role,
		&joining, &out.Active, &out.CreatedAt, &deptID, &deptName, &deptDesc)
	if err != nil {
		return Employee{}, err
	}
	if role != nil {
		out.Role = *role
	}
	if joining != nil {
		out.JoiningDate = joining.Format("2006-01-02")
	}
	if deptID != nil {
		out.Department = &Department{ID: *deptID}
		if deptName != nil {
			out.Department.Name = *deptName
		}
		if deptDesc != nil {
			out.Department.Description = *deptDesc
		}
	}
	return out, nil
}

func collectEmployees(rows pgx.Rows) ([]Employee, error) {
	defer rows.Close()
	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, selectEmployee+" WHERE e.active ORDER BY e.full_name")
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (s *Store) ListPaged(ctx context.Context, page, size int) (Page, error) {
	out := Page{Content: []Employee{}, Page: page, Size: size}
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE active").Scan(&out.TotalElements); err != nil {
		return Page{}, err
	}
	out.TotalPages = (out.TotalElements + size - 1) / size
	rows, err := s.DB.Query(ctx, selectEmployee+" WHERE e.active ORDER BY e.full_name LIMIT $1 OFFSET $2", size, page*size)
	if err != nil {
		return Page{}, err
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return Page{}, err
	}
	if employees != nil {
		out.Content = employees
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id int64) (Employee, error) {
	out, err := scanEmployee(s.DB.QueryRow(ctx, selectEmployee+" WHERE e.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	return out, err
}

func (s *Store) Search(ctx context.Context, query string) ([]Employee, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	rows, err := s.DB.Query(ctx, selectEmployee+`
    WHERE e.active AND (lower(e.full_name) LIKE $1 OR lower(e.email) LIKE $1 OR lower(e.designation) LIKE $1)
    ORDER BY e.full_name
  `, pattern)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (s *Store) ByDepartment(ctx context.Context, departmentID int64) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, selectEmployee+" WHERE e.active AND e.department_id = $1 ORDER BY e.full_name", departmentID)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (s *Store) Create(ctx context.Context, input Input, passwordHash string) (Employee, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Employee{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
    INSERT INTO employees (full_name, email, phone, designation, department_id, joining_date)
    VALUES ($1, $2, $3, $4, $5, NULLIF($6,'')::date)
    RETURNING id
  `, input.FullName, input.Email, input.Phone, input.Designation, input.DepartmentID, input.JoiningDate).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrDuplicateEmail
		}
		return Employee{}, err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO users (email, full_name, role, password_hash, employee_id)
    VALUES ($1, $2, $3, $4, $5)
  `, input.Email, input.FullName, input.Role, passwordHash, id); err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrDuplicateEmail
		}
		return Employee{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Employee{}, err
	}
	return s.Get(ctx, id)
}

func (s *Store) Update(ctx context.Context, id int64, input Input) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET full_name = $1, phone = $2, designation = $3, department_id = $4,
        joining_date = NULLIF($5,'')::date, updated_at = now()
    WHERE id = $6
  `, input.FullName, input.Phone, input.Designation, input.DepartmentID, input.JoiningDate, id)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	if _, err := s.DB.Exec(ctx, "UPDATE users SET full_name = $1 WHERE employee_id = $2", input.FullName, id); err != nil {
		return Employee{}, err
	}
	return s.Get(ctx, id)
}

// Deactivate soft-deletes: the employee disappears from listings but salary
// history stays intact.
func (s *Store) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "UPDATE employees SET active = FALSE, updated_at = now() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	_, err = s.DB.Exec(ctx, "UPDATE users SET active = FALSE WHERE employee_id = $1", id)
	return err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE active").Scan(&count)
	return count, err
}

func (s *Store) GetByUserID(ctx context.Context, userID int64) (Employee, error) {
	var employeeID *int64
	err := s.DB.QueryRow(ctx, "SELECT employee_id FROM users WHERE id = $1", userID).Scan(&employeeID)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && employeeID == nil) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return s.Get(ctx, *employeeID)
}

func (s *Store) UpdateProfile(ctx context.Context, employeeID int64, fullName, phone string) (Employee, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees SET full_name = $1, phone = $2, updated_at = now() WHERE id = $3
  `, fullName, phone, employeeID)
	if err != nil {
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, ErrNotFound
	}
	if _, err := s.DB.Exec(ctx, "UPDATE users SET full_name = $1 WHERE employee_id = $2", fullName, employeeID); err != nil {
		return Employee{}, err
	}
	return s.Get(ctx, employeeID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ StoreAPI = (*Store)(nil)

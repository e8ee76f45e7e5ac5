package department

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("department not found")
	ErrDuplicateName = errors.New("department name already exists")
	ErrNotEmpty      = errors.New("department still has employees")
	ErrInvalidName   = errors.New("department name is required")
)

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Headcount   int       `json:"headcount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type StoreAPI interface {
	List(ctx context.Context) ([]Department, error)
	Create(ctx context.Context, input Input) (Department, error)
	Update(ctx context.Context, id int64, input Input) (Department, error)
	Delete(ctx context.Context, id int64) error
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) List(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT d.id, d.name, d.description, d.created_at,
           COUNT(e.id) FILTER (WHERE e.active)
    FROM departments d
    LEFT JOIN employees e ON e.department_id = d.id
    GROUP BY d.id
    ORDER BY d.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var d Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.Headcount); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Create(ctx context.Context, input Input) (Department, error) {
	var d Department
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, description)
    VALUES ($1, $2)
    RETURNING id, name, description, created_at
  `, input.Name, input.Description).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if isUniqueViolation(err) {
		return Department{}, ErrDuplicateName
	}
	return d, err
}

func (s *Store) Update(ctx context.Context, id int64, input Input) (Department, error) {
	var d Department
	err := s.DB.QueryRow(ctx, `
    UPDATE departments SET name = $1, description = $2
    WHERE id = $3
    RETURNING id, name, description, created_at
  `, input.Name, input.Description, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrNotFound
	}
	if isUniqueViolation(err) {
		return Department{}, ErrDuplicateName
	}
	return d, err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	var headcount int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE department_id = $1 AND active", id).Scan(&headcount); err != nil {
		return err
	}
	if headcount > 0 {
		return ErrNotEmpty
	}
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ StoreAPI = (*Store)(nil)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Department, error) {
	return s.Store.List(ctx)
}

func (s *Service) Create(ctx context.Context, input Input) (Department, error) {
	if err := normalize(&input); err != nil {
		return Department{}, err
	}
	return s.Store.Create(ctx, input)
}

func (s *Service) Update(ctx context.Context, id int64, input Input) (Department, error) {
	if err := normalize(&input); err != nil {
		return Department{}, err
	}
	return s.Store.Update(ctx, id, input)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}

func normalize(input *Input) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		return ErrInvalidName
	}
	return nil
}

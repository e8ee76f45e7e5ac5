package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

type User struct {
	ID           int64
	Email        string
	FullName     string
	Role         string
	PasswordHash string
	EmployeeID   *int64
	Active       bool
}

type StoreAPI interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, full_name, role, password_hash, employee_id, active
    FROM users WHERE email = $1
  `, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash, &u.EmployeeID, &u.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Store) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", id)
	return err
}

var _ StoreAPI = (*Store)(nil)

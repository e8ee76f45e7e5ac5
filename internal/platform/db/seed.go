package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"payroll/internal/auth"
	"payroll/internal/platform/config"
)

// Seed creates the bootstrap admin account and a small sample org when the
// database is empty. Safe to run on every start.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	var users int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users").Scan(&users); err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	password := cfg.SeedAdminPassword
	if password == "" {
		password = "admin123"
		slog.Warn("seeding admin with default password, change it", "email", cfg.SeedAdminEmail)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO users (email, full_name, role, password_hash)
    VALUES ($1, 'System Administrator', $2, $3)
  `, cfg.SeedAdminEmail, auth.RoleAdmin, hash); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	departments := []struct {
		name, description string
	}{
		{"Engineering", "Product development"},
		{"Human Resources", "People operations"},
		{"Finance", "Payroll and accounting"},
	}
	for _, d := range departments {
		if _, err := tx.Exec(ctx, `
      INSERT INTO departments (name, description) VALUES ($1, $2)
    `, d.name, d.description); err != nil {
			return fmt.Errorf("seed department %s: %w", d.name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	slog.Info("seeded initial data", "adminEmail", cfg.SeedAdminEmail)
	return nil
}

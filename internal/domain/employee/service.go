package employee

import (
	"context"
	"errors"
	"strings"

	"payroll/internal/auth"
)

var ErrInvalidInput = errors.New("invalid employee input")

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.Store.List(ctx)
}

func (s *Service) ListPaged(ctx context.Context, page, size int) (Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return s.Store.ListPaged(ctx, page, size)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Search(ctx context.Context, query string) ([]Employee, error) {
	if strings.TrimSpace(query) == "" {
		return s.Store.List(ctx)
	}
	return s.Store.Search(ctx, query)
}

func (s *Service) ByDepartment(ctx context.Context, departmentID int64) ([]Employee, error) {
	return s.Store.ByDepartment(ctx, departmentID)
}

// Create registers the HR record and its login account in one step. The
// default role is EMPLOYEE; only the seeded admin creates further admins.
func (s *Service) Create(ctx context.Context, input Input) (Employee, error) {
	if err := validate(&input); err != nil {
		return Employee{}, err
	}
	if input.Password == "" {
		return Employee{}, errors.New("password is required")
	}
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return Employee{}, err
	}
	return s.Store.Create(ctx, input, hash)
}

func (s *Service) Update(ctx context.Context, id int64, input Input) (Employee, error) {
	if err := validate(&input); err != nil {
		return Employee{}, err
	}
	return s.Store.Update(ctx, id, input)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Deactivate(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.Store.Count(ctx)
}

func (s *Service) ProfileForUser(ctx context.Context, userID int64) (Employee, error) {
	return s.Store.GetByUserID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, employeeID int64, fullName, phone string) (Employee, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return Employee{}, ErrInvalidInput
	}
	return s.Store.UpdateProfile(ctx, employeeID, fullName, phone)
}

func validate(input *Input) error {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.FullName == "" || input.Email == "" || !strings.Contains(input.Email, "@") {
		return ErrInvalidInput
	}
	switch input.Role {
	case "":
		input.Role = auth.RoleEmployee
	case auth.RoleAdmin, auth.RoleEmployee:
	default:
		return ErrInvalidInput
	}
	return nil
}

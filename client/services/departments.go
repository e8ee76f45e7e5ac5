package services

import (
	"context"
	"fmt"

	"payroll/client/api"
)

// Departments backs the admin department page.
type Departments struct {
	api *api.Client
}

func NewDepartments(c *api.Client) *Departments { return &Departments{api: c} }

type DepartmentInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Departments) List(ctx context.Context) ([]Department, error) {
	var out []Department
	err := s.api.Get(ctx, "/api/admin/departments", &out)
	return out, err
}

func (s *Departments) Create(ctx context.Context, input DepartmentInput) (Department, error) {
	var out Department
	err := s.api.Post(ctx, "/api/admin/departments", input, &out)
	return out, err
}

func (s *Departments) Update(ctx context.Context, id int64, input DepartmentInput) (Department, error) {
	var out Department
	err := s.api.Put(ctx, fmt.Sprintf("/api/admin/departments/%d", id), input, &out)
	return out, err
}

func (s *Departments) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/admin/departments/%d", id))
}

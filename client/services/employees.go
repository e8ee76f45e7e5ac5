package services

import (
	"context"
	"fmt"
	"net/url"

	"payroll/client/api"
)

// Employees backs the admin employee directory page.
type Employees struct {
	api *api.Client
}

func NewEmployees(c *api.Client) *Employees { return &Employees{api: c} }

type EmployeeInput struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Designation  string `json:"designation"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	JoiningDate  string `json:"joiningDate"`
	Password     string `json:"password,omitempty"`
}

func (s *Employees) List(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := s.api.Get(ctx, "/api/admin/employees", &out)
	return out, err
}

func (s *Employees) Get(ctx context.Context, id int64) (Employee, error) {
	var out Employee
	err := s.api.Get(ctx, fmt.Sprintf("/api/admin/employees/%d", id), &out)
	return out, err
}

func (s *Employees) Search(ctx context.Context, query string) ([]Employee, error) {
	var out []Employee
	err := s.api.Get(ctx, "/api/admin/employees/search?q="+url.QueryEscape(query), &out)
	return out, err
}

func (s *Employees) ByDepartment(ctx context.Context, departmentID int64) ([]Employee, error) {
	var out []Employee
	err := s.api.Get(ctx, fmt.Sprintf("/api/admin/employees/department/%d", departmentID), &out)
	return out, err
}

func (s *Employees) Create(ctx context.Context, input EmployeeInput) (Employee, error) {
	var out Employee
	err := s.api.Post(ctx, "/api/admin/employees", input, &out)
	return out, err
}

func (s *Employees) Update(ctx context.Context, id int64, input EmployeeInput) (Employee, error) {
	var out Employee
	err := s.api.Put(ctx, fmt.Sprintf("/api/admin/employees/%d", id), input, &out)
	return out, err
}

func (s *Employees) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/admin/employees/%d", id))
}

func (s *Employees) Count(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := s.api.Get(ctx, "/api/admin/statistics/employees/count", &out)
	return out.Count, err
}

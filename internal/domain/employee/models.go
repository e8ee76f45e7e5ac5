package employee

import (
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

type Department struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Employee struct {
	ID          int64       `json:"id"`
	FullName    string      `json:"fullName"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Designation string      `json:"designation"`
	Role        string      `json:"role"`
	Department  *Department `json:"department,omitempty"`
	JoiningDate string      `json:"joiningDate"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type Page struct {
	Content       []Employee `json:"content"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
	TotalElements int        `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}

type Input struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Designation  string `json:"designation"`
	Role         string `json:"role"`
	DepartmentID *int64 `json:"departmentId"`
	JoiningDate  string `json:"joiningDate"`
	Password     string `json:"password"`
}

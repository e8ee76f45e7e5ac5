package employee

import "context"

type StoreAPI interface {
	List(ctx context.Context) ([]Employee, error)
	ListPaged(ctx context.Context, page, size int) (Page, error)
	Get(ctx context.Context, id int64) (Employee, error)
	Search(ctx context.Context, query string) ([]Employee, error)
	ByDepartment(ctx context.Context, departmentID int64) ([]Employee, error)
	Create(ctx context.Context, input Input, passwordHash string) (Employee, error)
	Update(ctx context.Context, id int64, input Input) (Employee, error)
	Deactivate(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	GetByUserID(ctx context.Context, userID int64) (Employee, error)
	UpdateProfile(ctx context.Context, employeeID int64, fullName, phone string) (Employee, error)
}

package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	// ListActive returns every active, non-deleted employee across companies.
	ListActive(ctx context.Context) ([]Employee, error)
}

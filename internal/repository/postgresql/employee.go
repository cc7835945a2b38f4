package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kriyahr/workforce-backend-go/internal/domain/employee"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, user_id, company_id, full_name, email, employment_status,
			   created_at, updated_at, deleted_at
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.FullName, &emp.Email,
		&emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, user_id, company_id, full_name, email, employment_status,
			   created_at, updated_at, deleted_at
		FROM employees
		WHERE employment_status = 'active' AND deleted_at IS NULL
		ORDER BY company_id, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.UserID, &emp.CompanyID, &emp.FullName, &emp.Email,
			&emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

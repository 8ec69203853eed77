package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

const employeeColumns = `
	id, employee_code, full_name, base_salary, joining_date,
	training_start_date, training_completed, is_active, is_blocked,
	created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.BaseSalary, &emp.JoiningDate,
		&emp.TrainingStartDate, &emp.TrainingCompleted, &emp.IsActive, &emp.IsBlocked,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active = TRUE ORDER BY employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// MarkTrainingCompleted implements employee.EmployeeRepository.
func (e *employeeRepository) MarkTrainingCompleted(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	query := `UPDATE employees SET training_completed = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark training completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

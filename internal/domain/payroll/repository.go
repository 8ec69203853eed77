package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type SalaryRepository interface {
	// GetByEmployeeMonthYear retrieves the record, nil when absent.
	// The (employee, month, year) triple is unique.
	GetByEmployeeMonthYear(ctx context.Context, employeeID string, month, year int) (*MonthlySalary, error)

	// GetByID retrieves a salary record
	GetByID(ctx context.Context, id string) (MonthlySalary, error)

	// Create persists a new record
	Create(ctx context.Context, s MonthlySalary) (MonthlySalary, error)

	// Update overwrites a record on payroll re-generation
	Update(ctx context.Context, s MonthlySalary) error

	// PreviousRemaining returns the saved remaining balance carried in from
	// the month before (month, year), zero when no saved record exists
	PreviousRemaining(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error)

	// ListSaved retrieves saved records, newest month first
	ListSaved(ctx context.Context) ([]MonthlySalary, error)

	// ListSavedByEmployee retrieves an employee's saved records
	ListSavedByEmployee(ctx context.Context, employeeID string) ([]MonthlySalary, error)
}

type PayrollService interface {
	// Generate computes and stores payroll for a month, optionally paying
	// each record from company funds
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)

	// History retrieves all saved salary records
	History(ctx context.Context) ([]SalaryResponse, error)

	// SlipsByEmployee retrieves an employee's saved salary records
	SlipsByEmployee(ctx context.Context, employeeID string) ([]SalaryResponse, error)

	// Slip retrieves one saved record
	Slip(ctx context.Context, id string) (SalaryResponse, error)
}

package employee

import "context"

// EmployeeRepository defines read access to the collaborator-owned
// employee table, plus the single write this core performs (training
// completion).
type EmployeeRepository interface {
	// GetByID retrieves an employee by primary key
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByCode retrieves an employee by display code
	GetByCode(ctx context.Context, code string) (Employee, error)

	// ListActive retrieves all active employees ordered by code
	ListActive(ctx context.Context) ([]Employee, error)

	// MarkTrainingCompleted flips the training flag once enough training days accrue
	MarkTrainingCompleted(ctx context.Context, id string) error
}

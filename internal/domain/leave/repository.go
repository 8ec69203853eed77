package leave

import (
	"context"
	"time"
)

type ApplicationRepository interface {
	// Create persists a pending application
	Create(ctx context.Context, app Application) (Application, error)

	// GetByID retrieves an application
	GetByID(ctx context.Context, id string) (Application, error)

	// HasOverlap reports whether a pending or approved application for the
	// employee intersects [start, end]
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// Update stores decision fields and deduction results
	Update(ctx context.Context, app Application) error

	// ListByEmployee retrieves an employee's applications, newest first
	ListByEmployee(ctx context.Context, employeeID string) ([]Application, error)

	// ListPending retrieves all pending applications, oldest first
	ListPending(ctx context.Context) ([]Application, error)
}

type BalanceRepository interface {
	// GetForUpdate retrieves the balance row with a row lock, creating the
	// default row when the employee has none yet
	GetForUpdate(ctx context.Context, employeeID string) (Balance, error)

	// Get retrieves the balance row without locking
	Get(ctx context.Context, employeeID string) (Balance, error)

	// Update stores bucket values and the tracked month/year
	Update(ctx context.Context, b Balance) error
}

type LeaveService interface {
	// Apply validates and submits a leave application
	Apply(ctx context.Context, req ApplyRequest) (ApplicationResponse, error)

	// Decide approves or rejects a pending application
	Decide(ctx context.Context, req DecideRequest) (DecideResponse, error)

	// Balance reports the employee's bucket availability after reset checks
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)

	// ListByEmployee retrieves an employee's applications
	ListByEmployee(ctx context.Context, employeeID string) ([]ApplicationResponse, error)

	// ListPending retrieves applications awaiting a decision
	ListPending(ctx context.Context) ([]ApplicationResponse, error)
}

package approval

import "context"

type ApprovalRepository interface {
	// GetByMonthYear retrieves the approval row for a month, nil when absent
	GetByMonthYear(ctx context.Context, month, year int) (*MonthlyApproval, error)

	// Create persists a new approval row
	Create(ctx context.Context, a MonthlyApproval) (MonthlyApproval, error)

	// Update overwrites tallies and approver on re-approval
	Update(ctx context.Context, a MonthlyApproval) error

	// MarkSalaryGenerated flags the month once payroll is posted
	MarkSalaryGenerated(ctx context.Context, id string) error
}

type ApprovalService interface {
	// Approve freezes (or re-freezes) a month's attendance tallies
	Approve(ctx context.Context, req ApproveMonthRequest) (ApprovalResponse, error)

	// Get retrieves the approval for a month
	Get(ctx context.Context, month, year int) (ApprovalResponse, error)
}

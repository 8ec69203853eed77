package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/approval"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type approvalRepository struct {
	db *database.DB
}

// GetByMonthYear implements approval.ApprovalRepository.
func (a *approvalRepository) GetByMonthYear(ctx context.Context, month, year int) (*approval.MonthlyApproval, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, approval_code, month, year, approved_up_to_date,
			   total_employees, total_present, total_absent, total_half_days, total_leaves,
			   salary_generated, approved_by_name, approved_by_role, approved_at, updated_at
		FROM monthly_approvals
		WHERE month = $1 AND year = $2
	`

	var m approval.MonthlyApproval
	err := q.QueryRow(ctx, query, month, year).Scan(
		&m.ID, &m.ApprovalCode, &m.Month, &m.Year, &m.ApprovedUpToDate,
		&m.TotalEmployees, &m.TotalPresent, &m.TotalAbsent, &m.TotalHalfDays, &m.TotalLeaves,
		&m.SalaryGenerated, &m.ApprovedByName, &m.ApprovedByRole, &m.ApprovedAt, &m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // month not approved yet
		}
		return nil, fmt.Errorf("failed to get monthly approval: %w", err)
	}

	return &m, nil
}

// Create implements approval.ApprovalRepository.
func (a *approvalRepository) Create(ctx context.Context, m approval.MonthlyApproval) (approval.MonthlyApproval, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO monthly_approvals (
			id, approval_code, month, year, approved_up_to_date,
			total_employees, total_present, total_absent, total_half_days, total_leaves,
			approved_by_name, approved_by_role, approved_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		) RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		m.ID,
		m.ApprovalCode,
		m.Month,
		m.Year,
		m.ApprovedUpToDate,
		m.TotalEmployees,
		m.TotalPresent,
		m.TotalAbsent,
		m.TotalHalfDays,
		m.TotalLeaves,
		m.ApprovedByName,
		m.ApprovedByRole,
		m.ApprovedAt,
	).Scan(&m.UpdatedAt)

	if err != nil {
		return approval.MonthlyApproval{}, fmt.Errorf("failed to create monthly approval: %w", err)
	}

	return m, nil
}

// Update implements approval.ApprovalRepository.
func (a *approvalRepository) Update(ctx context.Context, m approval.MonthlyApproval) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE monthly_approvals
		SET approved_up_to_date = $2,
			total_employees = $3,
			total_present = $4,
			total_absent = $5,
			total_half_days = $6,
			total_leaves = $7,
			approved_by_name = $8,
			approved_by_role = $9,
			approved_at = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		m.ID,
		m.ApprovedUpToDate,
		m.TotalEmployees,
		m.TotalPresent,
		m.TotalAbsent,
		m.TotalHalfDays,
		m.TotalLeaves,
		m.ApprovedByName,
		m.ApprovedByRole,
		m.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update monthly approval: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrApprovalNotFound
	}

	return nil
}

// MarkSalaryGenerated implements approval.ApprovalRepository.
func (a *approvalRepository) MarkSalaryGenerated(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	query := `UPDATE monthly_approvals SET salary_generated = TRUE, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark salary generated: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrApprovalNotFound
	}

	return nil
}

func NewApprovalRepository(db *database.DB) approval.ApprovalRepository {
	return &approvalRepository{db: db}
}

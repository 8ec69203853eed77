package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/leave"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type leaveApplicationRepository struct {
	db *database.DB
}

// Create implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) Create(ctx context.Context, app leave.Application) (leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_applications (
			id, leave_code, employee_id, start_date, end_date, total_days,
			leave_type, requested_casual, requested_sick, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		app.ID,
		app.LeaveCode,
		app.EmployeeID,
		app.StartDate,
		app.EndDate,
		app.TotalDays,
		app.Type,
		app.RequestedCasual,
		app.RequestedSick,
		app.Reason,
		app.Status,
	).Scan(&app.CreatedAt, &app.UpdatedAt)

	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	return app, nil
}

// GetByID implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) GetByID(ctx context.Context, id string) (leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT la.id, la.leave_code, la.employee_id, la.start_date, la.end_date, la.total_days,
			   la.leave_type, la.requested_casual, la.requested_sick,
			   la.casual_deducted, la.sick_deducted, la.unpaid_days,
			   la.reason, la.status, la.remarks,
			   la.decided_by_name, la.decided_by_role, la.decided_at,
			   la.created_at, la.updated_at,
			   e.full_name AS employee_name
		FROM leave_applications la
		LEFT JOIN employees e ON e.id = la.employee_id
		WHERE la.id = $1
	`

	app, err := scanLeaveApplication(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Application{}, leave.ErrApplicationNotFound
		}
		return leave.Application{}, fmt.Errorf("failed to get leave application: %w", err)
	}

	return app, nil
}

// HasOverlap implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_applications
			WHERE employee_id = $1
			  AND status IN ('pending', 'approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}

	return exists, nil
}

// Update implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) Update(ctx context.Context, app leave.Application) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_applications
		SET status = $2,
			casual_deducted = $3,
			sick_deducted = $4,
			unpaid_days = $5,
			remarks = $6,
			decided_by_name = $7,
			decided_by_role = $8,
			decided_at = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		app.ID,
		app.Status,
		app.CasualDeducted,
		app.SickDeducted,
		app.UnpaidDays,
		app.Remarks,
		app.DecidedByName,
		app.DecidedByRole,
		app.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrApplicationNotFound
	}

	return nil
}

// ListByEmployee implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Application, error) {
	return l.list(ctx, `WHERE la.employee_id = $1 ORDER BY la.created_at DESC`, employeeID)
}

// ListPending implements leave.ApplicationRepository.
func (l *leaveApplicationRepository) ListPending(ctx context.Context) ([]leave.Application, error) {
	return l.list(ctx, `WHERE la.status = 'pending' ORDER BY la.created_at`)
}

func (l *leaveApplicationRepository) list(ctx context.Context, tail string, args ...interface{}) ([]leave.Application, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT la.id, la.leave_code, la.employee_id, la.start_date, la.end_date, la.total_days,
			   la.leave_type, la.requested_casual, la.requested_sick,
			   la.casual_deducted, la.sick_deducted, la.unpaid_days,
			   la.reason, la.status, la.remarks,
			   la.decided_by_name, la.decided_by_role, la.decided_at,
			   la.created_at, la.updated_at,
			   e.full_name AS employee_name
		FROM leave_applications la
		LEFT JOIN employees e ON e.id = la.employee_id
	` + tail

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	defer rows.Close()

	var apps []leave.Application
	for rows.Next() {
		app, err := scanLeaveApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave applications: %w", err)
	}

	return apps, nil
}

func scanLeaveApplication(row pgx.Row) (leave.Application, error) {
	var app leave.Application
	err := row.Scan(
		&app.ID, &app.LeaveCode, &app.EmployeeID, &app.StartDate, &app.EndDate, &app.TotalDays,
		&app.Type, &app.RequestedCasual, &app.RequestedSick,
		&app.CasualDeducted, &app.SickDeducted, &app.UnpaidDays,
		&app.Reason, &app.Status, &app.Remarks,
		&app.DecidedByName, &app.DecidedByRole, &app.DecidedAt,
		&app.CreatedAt, &app.UpdatedAt,
		&app.EmployeeName,
	)
	return app, err
}

func NewLeaveApplicationRepository(db *database.DB) leave.ApplicationRepository {
	return &leaveApplicationRepository{db: db}
}

type leaveBalanceRepository struct {
	db *database.DB
}

// GetForUpdate implements leave.BalanceRepository. The row is created
// with the full yearly grant when the employee has none yet, then locked
// so concurrent approvals serialize.
func (l *leaveBalanceRepository) GetForUpdate(ctx context.Context, employeeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	insert := `
		INSERT INTO leave_balances (employee_id, sick_balance, casual_taken, tracked_month, tracked_year)
		VALUES ($1, $2, 0, EXTRACT(MONTH FROM NOW()), EXTRACT(YEAR FROM NOW()))
		ON CONFLICT (employee_id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert, employeeID, leave.SickPerYear); err != nil {
		return leave.Balance{}, fmt.Errorf("failed to seed leave balance: %w", err)
	}

	query := `
		SELECT employee_id, sick_balance, casual_taken, tracked_month, tracked_year, updated_at
		FROM leave_balances
		WHERE employee_id = $1
		FOR UPDATE
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&b.EmployeeID, &b.SickBalance, &b.CasualTaken, &b.TrackedMonth, &b.TrackedYear, &b.UpdatedAt,
	)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to lock leave balance: %w", err)
	}

	return b, nil
}

// Get implements leave.BalanceRepository. A missing row reads as the
// untouched default grant.
func (l *leaveBalanceRepository) Get(ctx context.Context, employeeID string) (leave.Balance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT employee_id, sick_balance, casual_taken, tracked_month, tracked_year, updated_at
		FROM leave_balances
		WHERE employee_id = $1
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&b.EmployeeID, &b.SickBalance, &b.CasualTaken, &b.TrackedMonth, &b.TrackedYear, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			now := time.Now()
			return leave.Balance{
				EmployeeID:   employeeID,
				SickBalance:  leave.SickPerYear,
				TrackedMonth: int(now.Month()),
				TrackedYear:  now.Year(),
			}, nil
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// Update implements leave.BalanceRepository.
func (l *leaveBalanceRepository) Update(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET sick_balance = $2,
			casual_taken = $3,
			tracked_month = $4,
			tracked_year = $5,
			updated_at = NOW()
		WHERE employee_id = $1
	`

	if _, err := q.Exec(ctx, query, b.EmployeeID, b.SickBalance, b.CasualTaken, b.TrackedMonth, b.TrackedYear); err != nil {
		return fmt.Errorf("failed to update leave balance: %w", err)
	}

	return nil
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

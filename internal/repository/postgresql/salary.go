package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nexushr/workforce-backend-go/internal/domain/payroll"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type salaryRepository struct {
	db *database.DB
}

const salaryColumns = `
	ms.id, ms.salary_code, ms.employee_id, ms.month, ms.year,
	ms.base_salary, ms.per_day_salary,
	ms.total_present, ms.total_absent, ms.total_half_days, ms.total_leaves,
	ms.total_holidays, ms.total_lwp, ms.total_training,
	ms.bonus, ms.travel_allowance,
	ms.pf_percent, ms.pf_amount, ms.esi_percent, ms.esi_amount,
	ms.gross_salary, ms.total_deductions, ms.net_payable,
	ms.paid_amount, ms.payment_date, ms.previous_balance, ms.remaining_balance,
	ms.is_saved, ms.payment_from_funds, ms.fund_transaction_id,
	ms.created_at, ms.updated_at,
	e.full_name AS employee_name,
	e.employee_code AS employee_code
`

func scanSalary(row pgx.Row) (payroll.MonthlySalary, error) {
	var s payroll.MonthlySalary
	err := row.Scan(
		&s.ID, &s.SalaryCode, &s.EmployeeID, &s.Month, &s.Year,
		&s.BaseSalary, &s.PerDaySalary,
		&s.TotalPresent, &s.TotalAbsent, &s.TotalHalfDays, &s.TotalLeaves,
		&s.TotalHolidays, &s.TotalLWP, &s.TotalTraining,
		&s.Bonus, &s.TravelAllowance,
		&s.PFPercent, &s.PFAmount, &s.ESIPercent, &s.ESIAmount,
		&s.GrossSalary, &s.TotalDeductions, &s.NetPayable,
		&s.PaidAmount, &s.PaymentDate, &s.PreviousBalance, &s.RemainingBalance,
		&s.IsSaved, &s.PaymentFromFunds, &s.FundTransactionID,
		&s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeCode,
	)
	return s, err
}

// GetByEmployeeMonthYear implements payroll.SalaryRepository.
func (r *salaryRepository) GetByEmployeeMonthYear(ctx context.Context, employeeID string, month, year int) (*payroll.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM monthly_salaries ms
		LEFT JOIN employees e ON e.id = ms.employee_id
		WHERE ms.employee_id = $1 AND ms.month = $2 AND ms.year = $3
	`

	s, err := scanSalary(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no record for this month yet
		}
		return nil, fmt.Errorf("failed to get salary record: %w", err)
	}

	return &s, nil
}

// GetByID implements payroll.SalaryRepository.
func (r *salaryRepository) GetByID(ctx context.Context, id string) (payroll.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM monthly_salaries ms
		LEFT JOIN employees e ON e.id = ms.employee_id
		WHERE ms.id = $1
	`

	s, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.MonthlySalary{}, payroll.ErrSalaryNotFound
		}
		return payroll.MonthlySalary{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return s, nil
}

// Create implements payroll.SalaryRepository.
func (r *salaryRepository) Create(ctx context.Context, s payroll.MonthlySalary) (payroll.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_salaries (
			id, salary_code, employee_id, month, year,
			base_salary, per_day_salary,
			total_present, total_absent, total_half_days, total_leaves,
			total_holidays, total_lwp, total_training,
			bonus, travel_allowance,
			pf_percent, pf_amount, esi_percent, esi_amount,
			gross_salary, total_deductions, net_payable,
			paid_amount, payment_date, previous_balance, remaining_balance,
			is_saved, payment_from_funds, fund_transaction_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.SalaryCode, s.EmployeeID, s.Month, s.Year,
		s.BaseSalary, s.PerDaySalary,
		s.TotalPresent, s.TotalAbsent, s.TotalHalfDays, s.TotalLeaves,
		s.TotalHolidays, s.TotalLWP, s.TotalTraining,
		s.Bonus, s.TravelAllowance,
		s.PFPercent, s.PFAmount, s.ESIPercent, s.ESIAmount,
		s.GrossSalary, s.TotalDeductions, s.NetPayable,
		s.PaidAmount, s.PaymentDate, s.PreviousBalance, s.RemainingBalance,
		s.IsSaved, s.PaymentFromFunds, s.FundTransactionID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return payroll.MonthlySalary{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return s, nil
}

// Update implements payroll.SalaryRepository.
func (r *salaryRepository) Update(ctx context.Context, s payroll.MonthlySalary) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_salaries
		SET base_salary = $2,
			per_day_salary = $3,
			total_present = $4,
			total_absent = $5,
			total_half_days = $6,
			total_leaves = $7,
			total_holidays = $8,
			total_lwp = $9,
			total_training = $10,
			bonus = $11,
			travel_allowance = $12,
			pf_percent = $13,
			pf_amount = $14,
			esi_percent = $15,
			esi_amount = $16,
			gross_salary = $17,
			total_deductions = $18,
			net_payable = $19,
			paid_amount = $20,
			payment_date = $21,
			previous_balance = $22,
			remaining_balance = $23,
			is_saved = $24,
			payment_from_funds = $25,
			fund_transaction_id = $26,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		s.ID,
		s.BaseSalary, s.PerDaySalary,
		s.TotalPresent, s.TotalAbsent, s.TotalHalfDays, s.TotalLeaves,
		s.TotalHolidays, s.TotalLWP, s.TotalTraining,
		s.Bonus, s.TravelAllowance,
		s.PFPercent, s.PFAmount, s.ESIPercent, s.ESIAmount,
		s.GrossSalary, s.TotalDeductions, s.NetPayable,
		s.PaidAmount, s.PaymentDate, s.PreviousBalance, s.RemainingBalance,
		s.IsSaved, s.PaymentFromFunds, s.FundTransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update salary record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrSalaryNotFound
	}

	return nil
}

// PreviousRemaining implements payroll.SalaryRepository.
func (r *salaryRepository) PreviousRemaining(ctx context.Context, employeeID string, month, year int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	prevMonth := month - 1
	prevYear := year
	if prevMonth == 0 {
		prevMonth = 12
		prevYear--
	}

	query := `
		SELECT remaining_balance
		FROM monthly_salaries
		WHERE employee_id = $1 AND month = $2 AND year = $3 AND is_saved = TRUE
	`

	var remaining decimal.Decimal
	err := q.QueryRow(ctx, query, employeeID, prevMonth, prevYear).Scan(&remaining)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get previous remaining balance: %w", err)
	}

	return remaining, nil
}

// ListSaved implements payroll.SalaryRepository.
func (r *salaryRepository) ListSaved(ctx context.Context) ([]payroll.MonthlySalary, error) {
	return r.list(ctx, `WHERE ms.is_saved = TRUE ORDER BY ms.year DESC, ms.month DESC, e.employee_code`)
}

// ListSavedByEmployee implements payroll.SalaryRepository.
func (r *salaryRepository) ListSavedByEmployee(ctx context.Context, employeeID string) ([]payroll.MonthlySalary, error) {
	return r.list(ctx, `WHERE ms.is_saved = TRUE AND ms.employee_id = $1 ORDER BY ms.year DESC, ms.month DESC`, employeeID)
}

func (r *salaryRepository) list(ctx context.Context, tail string, args ...interface{}) ([]payroll.MonthlySalary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM monthly_salaries ms
		LEFT JOIN employees e ON e.id = ms.employee_id
	` + tail

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []payroll.MonthlySalary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate salary records: %w", err)
	}

	return records, nil
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepository{db: db}
}

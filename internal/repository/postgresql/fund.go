package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nexushr/workforce-backend-go/internal/domain/fund"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type fundsRepository struct {
	db *database.DB
}

// GetForUpdate implements fund.FundsRepository. The singleton row is
// created with zero balances on first touch, then locked.
func (f *fundsRepository) GetForUpdate(ctx context.Context) (fund.CompanyFunds, error) {
	q := GetQuerier(ctx, f.db)

	insert := `
		INSERT INTO company_funds (id, total_funds, total_received_from_clients, total_paid_as_salary, total_profit)
		VALUES (1, 0, 0, 0, 0)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := q.Exec(ctx, insert); err != nil {
		return fund.CompanyFunds{}, fmt.Errorf("failed to seed company funds: %w", err)
	}

	query := `
		SELECT id, total_funds, total_received_from_clients, total_paid_as_salary, total_profit,
			   updated_by_name, updated_at
		FROM company_funds
		WHERE id = 1
		FOR UPDATE
	`

	var funds fund.CompanyFunds
	err := q.QueryRow(ctx, query).Scan(
		&funds.ID, &funds.TotalFunds, &funds.TotalReceivedFromClients, &funds.TotalPaidAsSalary, &funds.TotalProfit,
		&funds.UpdatedByName, &funds.UpdatedAt,
	)
	if err != nil {
		return fund.CompanyFunds{}, fmt.Errorf("failed to lock company funds: %w", err)
	}

	return funds, nil
}

// Get implements fund.FundsRepository.
func (f *fundsRepository) Get(ctx context.Context) (*fund.CompanyFunds, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		SELECT id, total_funds, total_received_from_clients, total_paid_as_salary, total_profit,
			   updated_by_name, updated_at
		FROM company_funds
		WHERE id = 1
	`

	var funds fund.CompanyFunds
	err := q.QueryRow(ctx, query).Scan(
		&funds.ID, &funds.TotalFunds, &funds.TotalReceivedFromClients, &funds.TotalPaidAsSalary, &funds.TotalProfit,
		&funds.UpdatedByName, &funds.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // never initialized
		}
		return nil, fmt.Errorf("failed to get company funds: %w", err)
	}

	return &funds, nil
}

// Update implements fund.FundsRepository.
func (f *fundsRepository) Update(ctx context.Context, funds fund.CompanyFunds) error {
	q := GetQuerier(ctx, f.db)

	query := `
		UPDATE company_funds
		SET total_funds = $1,
			total_received_from_clients = $2,
			total_paid_as_salary = $3,
			total_profit = $4,
			updated_by_name = $5,
			updated_at = NOW()
		WHERE id = 1
	`

	tag, err := q.Exec(ctx, query,
		funds.TotalFunds,
		funds.TotalReceivedFromClients,
		funds.TotalPaidAsSalary,
		funds.TotalProfit,
		funds.UpdatedByName,
	)
	if err != nil {
		return fmt.Errorf("failed to update company funds: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fund.ErrFundsNotInitialized
	}

	return nil
}

func NewFundsRepository(db *database.DB) fund.FundsRepository {
	return &fundsRepository{db: db}
}

type fundTransactionRepository struct {
	db *database.DB
}

const fundTransactionColumns = `
	id, transaction_code, transaction_type, amount, is_credit, balance_after,
	salary_id, project_id, description, created_by_name, created_by_role, transaction_date
`

func scanFundTransaction(row pgx.Row) (fund.Transaction, error) {
	var t fund.Transaction
	err := row.Scan(
		&t.ID, &t.TransactionCode, &t.Type, &t.Amount, &t.IsCredit, &t.BalanceAfter,
		&t.SalaryID, &t.ProjectID, &t.Description, &t.CreatedByName, &t.CreatedByRole, &t.TransactionDate,
	)
	return t, err
}

// Create implements fund.TransactionRepository.
func (f *fundTransactionRepository) Create(ctx context.Context, t fund.Transaction) (fund.Transaction, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		INSERT INTO fund_transactions (
			id, transaction_code, transaction_type, amount, is_credit, balance_after,
			salary_id, project_id, description, created_by_name, created_by_role, transaction_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
	`

	_, err := q.Exec(ctx, query,
		t.ID, t.TransactionCode, t.Type, t.Amount, t.IsCredit, t.BalanceAfter,
		t.SalaryID, t.ProjectID, t.Description, t.CreatedByName, t.CreatedByRole, t.TransactionDate,
	)
	if err != nil {
		return fund.Transaction{}, fmt.Errorf("failed to create fund transaction: %w", err)
	}

	return t, nil
}

// GetByID implements fund.TransactionRepository.
func (f *fundTransactionRepository) GetByID(ctx context.Context, id string) (fund.Transaction, error) {
	q := GetQuerier(ctx, f.db)

	query := `SELECT ` + fundTransactionColumns + ` FROM fund_transactions WHERE id = $1`

	t, err := scanFundTransaction(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return fund.Transaction{}, fund.ErrTransactionNotFound
		}
		return fund.Transaction{}, fmt.Errorf("failed to get fund transaction: %w", err)
	}

	return t, nil
}

// Delete implements fund.TransactionRepository.
func (f *fundTransactionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, f.db)

	tag, err := q.Exec(ctx, `DELETE FROM fund_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fund transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fund.ErrTransactionNotFound
	}

	return nil
}

// List implements fund.TransactionRepository.
func (f *fundTransactionRepository) List(ctx context.Context, filter fund.TransactionFilter) ([]fund.Transaction, error) {
	q := GetQuerier(ctx, f.db)

	query := `SELECT ` + fundTransactionColumns + ` FROM fund_transactions`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.Type != nil {
		conditions = append(conditions, fmt.Sprintf("transaction_type = $%d", argIndex))
		args = append(args, *filter.Type)
		argIndex++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("transaction_date::date >= $%d", argIndex))
		args = append(args, *filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("transaction_date::date <= $%d", argIndex))
		args = append(args, *filter.DateTo)
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY transaction_date DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fund transactions: %w", err)
	}
	defer rows.Close()

	return collectFundTransactions(rows)
}

// ListRecent implements fund.TransactionRepository.
func (f *fundTransactionRepository) ListRecent(ctx context.Context, n int) ([]fund.Transaction, error) {
	q := GetQuerier(ctx, f.db)

	query := `SELECT ` + fundTransactionColumns + ` FROM fund_transactions ORDER BY transaction_date DESC LIMIT $1`

	rows, err := q.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent fund transactions: %w", err)
	}
	defer rows.Close()

	return collectFundTransactions(rows)
}

// SumAmount implements fund.TransactionRepository.
func (f *fundTransactionRepository) SumAmount(ctx context.Context, txType fund.TransactionType, isCredit bool, from, to time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, f.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM fund_transactions
		WHERE transaction_type = $1
		  AND is_credit = $2
		  AND transaction_date BETWEEN $3 AND $4
	`

	var total decimal.Decimal
	err := q.QueryRow(ctx, query, txType, isCredit, from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum fund transactions: %w", err)
	}

	return total, nil
}

func collectFundTransactions(rows pgx.Rows) ([]fund.Transaction, error) {
	var txns []fund.Transaction
	for rows.Next() {
		t, err := scanFundTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fund transactions: %w", err)
	}
	return txns, nil
}

func NewFundTransactionRepository(db *database.DB) fund.TransactionRepository {
	return &fundTransactionRepository{db: db}
}

type expenseRepository struct {
	db *database.DB
}

// Create implements fund.ExpenseRepository.
func (e *expenseRepository) Create(ctx context.Context, expense fund.Expense) (fund.Expense, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO expenses (
			id, expense_code, expense_date, amount, description,
			payment_method, fund_transaction_id, added_by_name, added_by_role
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		expense.ID,
		expense.ExpenseCode,
		expense.ExpenseDate,
		expense.Amount,
		expense.Description,
		expense.PaymentMethod,
		expense.FundTransactionID,
		expense.AddedByName,
		expense.AddedByRole,
	).Scan(&expense.CreatedAt)

	if err != nil {
		return fund.Expense{}, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// GetByID implements fund.ExpenseRepository.
func (e *expenseRepository) GetByID(ctx context.Context, id string) (fund.Expense, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, expense_code, expense_date, amount, description,
			   payment_method, fund_transaction_id, added_by_name, added_by_role, created_at
		FROM expenses
		WHERE id = $1
	`

	var expense fund.Expense
	err := q.QueryRow(ctx, query, id).Scan(
		&expense.ID, &expense.ExpenseCode, &expense.ExpenseDate, &expense.Amount, &expense.Description,
		&expense.PaymentMethod, &expense.FundTransactionID, &expense.AddedByName, &expense.AddedByRole, &expense.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fund.Expense{}, fund.ErrExpenseNotFound
		}
		return fund.Expense{}, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// Delete implements fund.ExpenseRepository.
func (e *expenseRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fund.ErrExpenseNotFound
	}

	return nil
}

// List implements fund.ExpenseRepository.
func (e *expenseRepository) List(ctx context.Context) ([]fund.Expense, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, expense_code, expense_date, amount, description,
			   payment_method, fund_transaction_id, added_by_name, added_by_role, created_at
		FROM expenses
		ORDER BY expense_date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []fund.Expense
	for rows.Next() {
		var expense fund.Expense
		err := rows.Scan(
			&expense.ID, &expense.ExpenseCode, &expense.ExpenseDate, &expense.Amount, &expense.Description,
			&expense.PaymentMethod, &expense.FundTransactionID, &expense.AddedByName, &expense.AddedByRole, &expense.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

func NewExpenseRepository(db *database.DB) fund.ExpenseRepository {
	return &expenseRepository{db: db}
}

type projectRepository struct {
	db *database.DB
}

// GetForUpdate implements fund.ProjectRepository.
func (p *projectRepository) GetForUpdate(ctx context.Context, id string) (fund.Project, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, name, total_amount, amount_received, amount_pending
		FROM projects
		WHERE id = $1
		FOR UPDATE
	`

	var project fund.Project
	err := q.QueryRow(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.TotalAmount, &project.AmountReceived, &project.AmountPending,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fund.Project{}, fund.ErrProjectNotFound
		}
		return fund.Project{}, fmt.Errorf("failed to lock project: %w", err)
	}

	return project, nil
}

// ApplyPayment implements fund.ProjectRepository.
func (p *projectRepository) ApplyPayment(ctx context.Context, id string, amount decimal.Decimal) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE projects
		SET amount_received = amount_received + $2,
			amount_pending = amount_pending - $2
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("failed to apply project payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fund.ErrProjectNotFound
	}

	return nil
}

func NewProjectRepository(db *database.DB) fund.ProjectRepository {
	return &projectRepository{db: db}
}

package fund

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type FundsRepository interface {
	// GetForUpdate retrieves the singleton row under a row lock, creating
	// it with zero balances when absent. Must run inside a transaction.
	GetForUpdate(ctx context.Context) (CompanyFunds, error)

	// Get retrieves the singleton row without locking, nil when absent
	Get(ctx context.Context) (*CompanyFunds, error)

	// Update stores balance and cumulative counters
	Update(ctx context.Context, f CompanyFunds) error
}

type TransactionRepository interface {
	// Create appends a ledger row
	Create(ctx context.Context, t Transaction) (Transaction, error)

	// GetByID retrieves a ledger row
	GetByID(ctx context.Context, id string) (Transaction, error)

	// Delete removes a ledger row. Only compensating operations (payroll
	// refund, expense deletion) may call this.
	Delete(ctx context.Context, id string) error

	// List retrieves ledger rows with filters, newest first
	List(ctx context.Context, filter TransactionFilter) ([]Transaction, error)

	// ListRecent retrieves the newest n rows
	ListRecent(ctx context.Context, n int) ([]Transaction, error)

	// SumAmount totals rows of a type and direction within [from, to]
	SumAmount(ctx context.Context, txType TransactionType, isCredit bool, from, to time.Time) (decimal.Decimal, error)
}

type ExpenseRepository interface {
	// Create persists an expense row
	Create(ctx context.Context, e Expense) (Expense, error)

	// GetByID retrieves an expense
	GetByID(ctx context.Context, id string) (Expense, error)

	// Delete removes an expense row
	Delete(ctx context.Context, id string) error

	// List retrieves expenses, newest first
	List(ctx context.Context) ([]Expense, error)
}

type ProjectRepository interface {
	// GetForUpdate retrieves a project row under a row lock
	GetForUpdate(ctx context.Context, id string) (Project, error)

	// ApplyPayment moves amount from pending to received
	ApplyPayment(ctx context.Context, id string, amount decimal.Decimal) error
}

type FundService interface {
	// PostTransaction records a manual deposit or adjustment
	PostTransaction(ctx context.Context, req PostTransactionRequest) (TransactionResponse, error)

	// AddExpense debits funds and records the expense
	AddExpense(ctx context.Context, req AddExpenseRequest) (ExpenseResponse, error)

	// DeleteExpense reverses an expense with a compensating credit
	DeleteExpense(ctx context.Context, expenseID string) error

	// RecordClientPayment credits funds against a project's pending amount
	RecordClientPayment(ctx context.Context, req ClientPaymentRequest) (TransactionResponse, error)

	// PaySalary debits funds for a saved salary record
	PaySalary(ctx context.Context, req PaySalaryRequest) (TransactionResponse, error)

	// ListTransactions retrieves ledger rows with filters
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]TransactionResponse, error)

	// ListExpenses retrieves expenses
	ListExpenses(ctx context.Context) ([]ExpenseResponse, error)

	// Summary reports the financial dashboard figures
	Summary(ctx context.Context) (SummaryResponse, error)
}

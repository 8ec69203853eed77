package fund

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeInitialDeposit TransactionType = "initial_deposit"
	TypeClientPayment  TransactionType = "client_payment"
	TypeSalaryPayment  TransactionType = "salary_payment"
	TypeAdjustment     TransactionType = "adjustment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeInitialDeposit, TypeClientPayment, TypeSalaryPayment, TypeAdjustment:
		return true
	}
	return false
}

// CompanyFunds is the singleton cash position. It is only ever mutated
// through ledger operations holding its row lock.
type CompanyFunds struct {
	ID                       int
	TotalFunds               decimal.Decimal
	TotalReceivedFromClients decimal.Decimal
	TotalPaidAsSalary        decimal.Decimal
	TotalProfit              decimal.Decimal
	UpdatedByName            *string
	UpdatedAt                time.Time
}

// RecomputeProfit derives profit from the cumulative counters. Expenses
// reduce the live balance but are tracked outside the profit figure.
func (f *CompanyFunds) RecomputeProfit() {
	f.TotalProfit = f.TotalReceivedFromClients.Sub(f.TotalPaidAsSalary)
}

// Transaction is one immutable ledger row. BalanceAfter snapshots the
// singleton balance immediately after this row was applied.
type Transaction struct {
	ID              string
	TransactionCode string
	Type            TransactionType
	Amount          decimal.Decimal
	IsCredit        bool
	BalanceAfter    decimal.Decimal
	SalaryID        *string
	ProjectID       *string
	Description     string
	CreatedByName   string
	CreatedByRole   string
	TransactionDate time.Time
}

// Expense is a company expense backed by an adjustment debit.
type Expense struct {
	ID                string
	ExpenseCode       string
	ExpenseDate       time.Time
	Amount            decimal.Decimal
	Description       string
	PaymentMethod     string
	FundTransactionID *string
	AddedByName       string
	AddedByRole       string
	CreatedAt         time.Time
}

// Project is the collaborator-owned record client payments settle against.
type Project struct {
	ID             string
	Name           string
	TotalAmount    decimal.Decimal
	AmountReceived decimal.Decimal
	AmountPending  decimal.Decimal
}

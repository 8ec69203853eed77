package fund

import (
	"strings"

	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
)

// PostTransactionRequest covers manual ledger movements: initial deposits
// (credit) and adjustments (credit or debit).
type PostTransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	IsCredit    bool   `json:"is_credit"`
	Description string `json:"description,omitempty"`
}

func (r *PostTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	t := TransactionType(strings.ToLower(r.Type))
	if t != TypeInitialDeposit && t != TypeAdjustment {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be initial_deposit or adjustment",
		})
	}

	if !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a non-negative decimal amount",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AddExpenseRequest struct {
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	PaymentMethod string `json:"payment_method"`
	ExpenseDate   string `json:"expense_date"` // YYYY-MM-DD
}

func (r *AddExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a non-negative decimal amount",
		})
	}

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if _, valid := validator.IsValidDate(r.ExpenseDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "expense_date",
			Message: "expense_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClientPaymentRequest struct {
	ProjectID     string `json:"-"`
	Amount        string `json:"amount"`
	PaymentDate   string `json:"payment_date"` // YYYY-MM-DD
	PaymentMethod string `json:"payment_method,omitempty"`
	Reference     string `json:"reference,omitempty"`
	Remarks       string `json:"remarks,omitempty"`
}

func (r *ClientPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a non-negative decimal amount",
		})
	}

	if _, valid := validator.IsValidDate(r.PaymentDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_date",
			Message: "payment_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PaySalaryRequest struct {
	SalaryID    string `json:"-"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"` // YYYY-MM-DD
	Remarks     string `json:"remarks,omitempty"`
}

func (r *PaySalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be a non-negative decimal amount",
		})
	}

	if _, valid := validator.IsValidDate(r.PaymentDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_date",
			Message: "payment_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransactionFilter struct {
	Type     *string `json:"type,omitempty"`
	DateFrom *string `json:"date_from,omitempty"` // YYYY-MM-DD
	DateTo   *string `json:"date_to,omitempty"`   // YYYY-MM-DD
}

func (f *TransactionFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Type != nil && !TransactionType(*f.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: initial_deposit, client_payment, salary_payment, adjustment",
		})
	}

	if f.DateFrom != nil {
		if _, valid := validator.IsValidDate(*f.DateFrom); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_from",
				Message: "date_from must be in YYYY-MM-DD format",
			})
		}
	}

	if f.DateTo != nil {
		if _, valid := validator.IsValidDate(*f.DateTo); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date_to",
				Message: "date_to must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransactionResponse struct {
	ID              string  `json:"id"`
	TransactionCode string  `json:"transaction_code"`
	Type            string  `json:"type"`
	Amount          string  `json:"amount"`
	IsCredit        bool    `json:"is_credit"`
	BalanceAfter    string  `json:"balance_after"`
	SalaryID        *string `json:"salary_id,omitempty"`
	ProjectID       *string `json:"project_id,omitempty"`
	Description     string  `json:"description"`
	CreatedByName   string  `json:"created_by_name"`
	CreatedByRole   string  `json:"created_by_role"`
	TransactionDate string  `json:"transaction_date"`
}

type FundsResponse struct {
	TotalFunds               string `json:"total_funds"`
	TotalReceivedFromClients string `json:"total_received_from_clients"`
	TotalPaidAsSalary        string `json:"total_paid_as_salary"`
	TotalProfit              string `json:"total_profit"`
}

type ExpenseResponse struct {
	ID            string `json:"id"`
	ExpenseCode   string `json:"expense_code"`
	ExpenseDate   string `json:"expense_date"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	PaymentMethod string `json:"payment_method"`
	AddedByName   string `json:"added_by_name"`
}

type MonthTrend struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Profit  string `json:"profit"`
}

type SummaryResponse struct {
	Funds              *FundsResponse        `json:"funds"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
	TotalSalaryPayable string                `json:"total_salary_payable"`
	TotalSalaryPaid    string                `json:"total_salary_paid"`
	TotalSalaryPending string                `json:"total_salary_pending"`
	MonthlyTrend       []MonthTrend          `json:"monthly_trend"`
}

package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Month   string            `json:"month"` // YYYY-MM
	AutoPay bool              `json:"auto_pay"`
	Items   []SalaryItemInput `json:"items"`
}

// SalaryItemInput carries the caller-editable fields for one employee.
// Amounts arrive as strings and are parsed into decimals exactly once.
type SalaryItemInput struct {
	EmployeeCode    string `json:"employee_code"`
	Bonus           string `json:"bonus,omitempty"`
	TravelAllowance string `json:"travel_allowance,omitempty"`
	PFPercent       string `json:"pf_percent,omitempty"`
	ESIPercent      string `json:"esi_percent,omitempty"`
	PaidAmount      string `json:"paid_amount,omitempty"`
	PaymentDate     string `json:"payment_date,omitempty"` // YYYY-MM-DD
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	for _, item := range r.Items {
		if validator.IsEmpty(item.EmployeeCode) {
			errs = append(errs, validator.ValidationError{
				Field:   "items.employee_code",
				Message: "employee_code is required",
			})
			continue
		}
		for field, value := range map[string]string{
			"bonus":            item.Bonus,
			"travel_allowance": item.TravelAllowance,
			"pf_percent":       item.PFPercent,
			"esi_percent":      item.ESIPercent,
			"paid_amount":      item.PaidAmount,
		} {
			if value != "" && !validator.IsValidAmount(value) {
				errs = append(errs, validator.ValidationError{
					Field:   "items." + field,
					Message: field + " must be a non-negative decimal amount",
				})
			}
		}
		if item.PaymentDate != "" {
			if _, valid := validator.IsValidDate(item.PaymentDate); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   "items.payment_date",
					Message: "payment_date must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// amountOrZero parses an optional amount field after Validate has run.
func amountOrZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ToSalaryInput converts a validated item into typed computation input.
// Percent defaults are applied when the caller leaves them blank.
func (i SalaryItemInput) ToSalaryInput(employeeID string, base decimal.Decimal, defaultPF, defaultESI decimal.Decimal) SalaryInput {
	in := SalaryInput{
		EmployeeID:      employeeID,
		BaseSalary:      base,
		Bonus:           amountOrZero(i.Bonus),
		TravelAllowance: amountOrZero(i.TravelAllowance),
		PFPercent:       defaultPF,
		ESIPercent:      defaultESI,
		PaidAmount:      amountOrZero(i.PaidAmount),
	}
	if i.PFPercent != "" {
		in.PFPercent = amountOrZero(i.PFPercent)
	}
	if i.ESIPercent != "" {
		in.ESIPercent = amountOrZero(i.ESIPercent)
	}
	if i.PaymentDate != "" {
		if t, ok := validator.IsValidDate(i.PaymentDate); ok {
			in.PaymentDate = &t
		}
	}
	return in
}

type GenerateResponse struct {
	Saved                int      `json:"saved"`
	Updated              int      `json:"updated"`
	Paid                 int      `json:"paid"`
	Refunded             int      `json:"refunded"`
	InsufficientFundsFor []string `json:"insufficient_funds_for"`
}

type SalaryResponse struct {
	ID               string  `json:"id"`
	SalaryCode       string  `json:"salary_code"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeCode     *string `json:"employee_code,omitempty"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	BaseSalary       string  `json:"base_salary"`
	PerDaySalary     string  `json:"per_day_salary"`
	TotalPresent     int     `json:"total_present"`
	TotalAbsent      int     `json:"total_absent"`
	TotalHalfDays    int     `json:"total_half_days"`
	TotalLeaves      int     `json:"total_leaves"`
	TotalHolidays    int     `json:"total_holidays"`
	TotalLWP         int     `json:"total_lwp"`
	TotalTraining    int     `json:"total_training"`
	Bonus            string  `json:"bonus"`
	TravelAllowance  string  `json:"travel_allowance"`
	PFPercent        string  `json:"pf_percent"`
	PFAmount         string  `json:"pf_amount"`
	ESIPercent       string  `json:"esi_percent"`
	ESIAmount        string  `json:"esi_amount"`
	GrossSalary      string  `json:"gross_salary"`
	TotalDeductions  string  `json:"total_deductions"`
	NetPayable       string  `json:"net_payable"`
	PaidAmount       string  `json:"paid_amount"`
	PaymentDate      *string `json:"payment_date,omitempty"`
	PreviousBalance  string  `json:"previous_balance"`
	RemainingBalance string  `json:"remaining_balance"`
	PaymentFromFunds bool    `json:"payment_from_funds"`
}

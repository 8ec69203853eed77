package leave

import (
	"strings"

	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	EmployeeID string `json:"-"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Type       string `json:"type"`
	CasualDays int    `json:"casual_days,omitempty"`
	SickDays   int    `json:"sick_days,omitempty"`
	Reason     string `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if !LeaveType(strings.ToLower(r.Type)).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: casual, sick, combined",
		})
	}

	if r.CasualDays < 0 || r.SickDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "casual_days and sick_days must not be negative",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApplicationResponse struct {
	ID              string  `json:"id"`
	LeaveCode       string  `json:"leave_code"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Type            string  `json:"type"`
	CasualDeducted  int     `json:"casual_deducted"`
	SickDeducted    int     `json:"sick_deducted"`
	UnpaidDays      int     `json:"unpaid_days"`
	Status          string  `json:"status"`
	Reason          string  `json:"reason"`
	Remarks         *string `json:"remarks,omitempty"`
	DecidedByName   *string `json:"decided_by_name,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
	BalanceWarning  string  `json:"balance_warning,omitempty"`
}

type DecideRequest struct {
	ID      string `json:"-"`
	Action  string `json:"action"` // approve | reject
	Remarks string `json:"remarks,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	action := strings.ToLower(r.Action)
	if action != "approve" && action != "reject" {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecideResponse struct {
	Application  ApplicationResponse `json:"application"`
	BalanceAfter BalanceResponse     `json:"balance_after"`
}

type BalanceResponse struct {
	EmployeeID      string  `json:"employee_id"`
	CasualAvailable int     `json:"casual_available"`
	SickAvailable   float64 `json:"sick_available"`
	Month           int     `json:"month"`
	Year            int     `json:"year"`
}

package approval

import (
	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
)

type ApproveMonthRequest struct {
	Month string `json:"month"` // YYYY-MM
}

func (r *ApproveMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApprovalResponse struct {
	ID               string `json:"id"`
	ApprovalCode     string `json:"approval_code"`
	Month            int    `json:"month"`
	Year             int    `json:"year"`
	ApprovedUpToDate string `json:"approved_up_to_date"`
	TotalEmployees   int    `json:"total_employees"`
	TotalPresent     int    `json:"total_present"`
	TotalAbsent      int    `json:"total_absent"`
	TotalHalfDays    int    `json:"total_half_days"`
	TotalLeaves      int    `json:"total_leaves"`
	SalaryGenerated  bool   `json:"salary_generated"`
	ApprovedByName   string `json:"approved_by_name"`
	ApprovedAt       string `json:"approved_at"`
}

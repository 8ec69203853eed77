package attendance

import (
	"strings"

	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	ID             string  `json:"id"`
	AttendanceCode string  `json:"attendance_code"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	CheckInTime    *string `json:"check_in_time,omitempty"`
	CheckOutTime   *string `json:"check_out_time,omitempty"`
	WorkMinutes    *int    `json:"work_minutes,omitempty"`
	BreakMinutes   int     `json:"break_minutes"`
	IsLate         bool    `json:"is_late"`
	AutoDerived    bool    `json:"auto_derived"`
}

type ListFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !Status(*f.Status).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, half_day, absent, on_leave, holiday, lwp, no_call_no_present, training",
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ChangeStatusRequest is a manual override of a derived verdict.
type ChangeStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (r *ChangeStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Status(strings.ToLower(r.Status)).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, half_day, absent, on_leave, holiday, lwp, no_call_no_present, training",
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

type ChangeStatusResponse struct {
	Attendance AttendanceResponse      `json:"attendance"`
	AuditEntry StatusChangeLogResponse `json:"audit_entry"`
}

type StatusChangeLogResponse struct {
	ID            string `json:"id"`
	AttendanceID  string `json:"attendance_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	Reason        string `json:"reason"`
	ChangedByName string `json:"changed_by_name"`
	ChangedByRole string `json:"changed_by_role"`
	ChangedAt     string `json:"changed_at"`
}

type SweepResponse struct {
	MarkedAbsent int `json:"marked_absent"`
}

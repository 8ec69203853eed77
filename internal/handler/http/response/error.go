package response

import (
	"errors"
	"net/http"

	"github.com/nexushr/workforce-backend-go/internal/domain/approval"
	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/domain/fund"
	"github.com/nexushr/workforce-backend-go/internal/domain/leave"
	"github.com/nexushr/workforce-backend-go/internal/domain/payroll"
	"github.com/nexushr/workforce-backend-go/internal/domain/punch"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, actor.ErrNoActor):
		Unauthorized(w, "Authentication required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")
	case errors.Is(err, employee.ErrEmployeeBlocked):
		Forbidden(w, "Employee account is blocked")

	// Punch sequencing errors
	case errors.Is(err, punch.ErrAlreadyCheckedIn),
		errors.Is(err, punch.ErrNotCheckedIn),
		errors.Is(err, punch.ErrAlreadyCheckedOut),
		errors.Is(err, punch.ErrDayClosed),
		errors.Is(err, punch.ErrBreakNotAllowed),
		errors.Is(err, punch.ErrNoOpenBreak):
		Conflict(w, err.Error())
	case errors.Is(err, punch.ErrInvalidPunchType):
		BadRequest(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrSameStatus):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, attendance.ErrReasonRequired):
		BadRequest(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrOverlappingLeave),
		errors.Is(err, leave.ErrAlreadyDecided):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrZeroWorkingDays),
		errors.Is(err, leave.ErrInvalidCombinedSplit),
		errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error())

	// Approval domain errors
	case errors.Is(err, approval.ErrApprovalNotFound):
		NotFound(w, "Monthly approval not found")
	case errors.Is(err, approval.ErrFutureMonth),
		errors.Is(err, approval.ErrInvalidMonth):
		BadRequest(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, payroll.ErrApprovalRequired):
		BadRequest(w, err.Error())
	case errors.Is(err, payroll.ErrSalaryNotSaved):
		Conflict(w, err.Error())

	// Fund ledger errors
	case errors.Is(err, fund.ErrFundsNotInitialized):
		NotFound(w, "Company funds not initialized")
	case errors.Is(err, fund.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, fund.ErrTransactionNotFound):
		NotFound(w, "Fund transaction not found")
	case errors.Is(err, fund.ErrProjectNotFound):
		NotFound(w, "Project not found")
	case errors.Is(err, fund.ErrInsufficientFunds),
		errors.Is(err, fund.ErrExceedsPending),
		errors.Is(err, fund.ErrExceedsRemaining),
		errors.Is(err, fund.ErrInvalidAmount):
		BadRequest(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

package payroll

import "errors"

// Payroll domain errors
var (
	ErrApprovalRequired = errors.New("attendance for this month is not approved yet")
	ErrSalaryNotFound   = errors.New("salary record not found")
	ErrSalaryNotSaved   = errors.New("salary record has not been saved")
)

package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrSameStatus         = errors.New("attendance already has this status")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrReasonRequired     = errors.New("a reason is required to change attendance status")
)

package leave

import "errors"

// Leave domain errors
var (
	ErrApplicationNotFound  = errors.New("leave application not found")
	ErrZeroWorkingDays      = errors.New("selected range contains no working days")
	ErrOverlappingLeave     = errors.New("leave already applied for dates in this range")
	ErrInvalidCombinedSplit = errors.New("combined leave requires casual and sick days to equal total days")
	ErrAlreadyDecided       = errors.New("leave application has already been decided")
	ErrInvalidDateRange     = errors.New("end date must not be before start date")
)

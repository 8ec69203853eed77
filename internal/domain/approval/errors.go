package approval

import "errors"

// Monthly approval errors
var (
	ErrFutureMonth      = errors.New("cannot approve attendance for a future month")
	ErrApprovalNotFound = errors.New("monthly attendance approval not found")
	ErrInvalidMonth     = errors.New("invalid month")
)

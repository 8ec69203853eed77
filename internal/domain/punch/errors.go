package punch

import "errors"

// Punch sequencing errors
var (
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrNotCheckedIn         = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out today")
	ErrDayClosed            = errors.New("attendance is closed for today")
	ErrBreakNotAllowed      = errors.New("break can only start after check-in or a finished break")
	ErrNoOpenBreak          = errors.New("no open break to end")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed office radius")
	ErrInvalidPunchType     = errors.New("invalid punch type")
)

package punch

import (
	"time"

	"github.com/nexushr/workforce-backend-go/internal/domain/punch"
)

// ValidateNext checks whether the incoming punch type is a legal move in
// the per-day state machine, given the day's accepted punches in order.
// The machine is: not-checked-in -> checked-in <-> on-break -> checked-out,
// with checked-out terminal.
func ValidateNext(accepted []punch.Punch, incoming punch.PunchType) error {
	if !incoming.Valid() {
		return punch.ErrInvalidPunchType
	}

	var last punch.PunchType
	checkedIn := false
	checkedOut := false
	for _, p := range accepted {
		last = p.Type
		switch p.Type {
		case punch.TypeCheckIn:
			checkedIn = true
		case punch.TypeCheckOut:
			checkedOut = true
		}
	}

	if checkedOut {
		if incoming == punch.TypeCheckOut {
			return punch.ErrAlreadyCheckedOut
		}
		return punch.ErrDayClosed
	}

	switch incoming {
	case punch.TypeCheckIn:
		if checkedIn {
			return punch.ErrAlreadyCheckedIn
		}
	case punch.TypeCheckOut:
		if !checkedIn {
			return punch.ErrNotCheckedIn
		}
	case punch.TypeBreakStart:
		if last != punch.TypeCheckIn && last != punch.TypeBreakEnd {
			return punch.ErrBreakNotAllowed
		}
	case punch.TypeBreakEnd:
		if last != punch.TypeBreakStart {
			return punch.ErrNoOpenBreak
		}
	}

	return nil
}

// DayState derives the state-machine position from the day's punches.
// Checked-in means the last punch left the employee on the clock.
func DayState(accepted []punch.Punch) (isCheckedIn, isOnBreak, isCheckedOut bool) {
	if len(accepted) == 0 {
		return false, false, false
	}
	last := accepted[len(accepted)-1].Type
	switch last {
	case punch.TypeCheckIn, punch.TypeBreakEnd:
		return true, false, false
	case punch.TypeBreakStart:
		return false, true, false
	case punch.TypeCheckOut:
		return false, false, true
	}
	return false, false, false
}

// InLunchWindow reports whether a break start falls inside the lunch
// window. Both bounds are inclusive, so a break starting exactly on the
// closing hour still counts as lunch.
func InLunchWindow(t time.Time, fromHour, toHour int) bool {
	secs := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return secs >= fromHour*3600 && secs <= toHour*3600
}

// OpenBreakStart returns the unmatched break-start punch, nil when every
// break is closed.
func OpenBreakStart(accepted []punch.Punch) *punch.Punch {
	for i := len(accepted) - 1; i >= 0; i-- {
		switch accepted[i].Type {
		case punch.TypeBreakEnd:
			return nil
		case punch.TypeBreakStart:
			p := accepted[i]
			return &p
		}
	}
	return nil
}
